package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"book-catalog-backend/internal/config"
	"book-catalog-backend/internal/shared/validation"
	"book-catalog-backend/pkg/logger"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates the root command of the catalog API binary.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "api",
		Short:        "Book catalog HTTP API",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// loadConfig reads .env (development/local), builds the config and
// configures logging and gin for the environment.
func loadConfig() (*config.Config, error) {
	// Production sẽ dùng system environment variables
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.Init()

	log.Info().Str("env", cfg.App.Environment).Msg("🌍 configuration loaded")
	return cfg, nil
}
