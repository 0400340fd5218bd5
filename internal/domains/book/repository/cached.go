package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog-backend/internal/domains/book/model"
	"book-catalog-backend/internal/shared/utils"
	"book-catalog-backend/pkg/cache"
)

// cachedRepository adds cache-aside reads of single books on top of another repository.
// Cache failures are logged and never fail the request.
//
// Writes invalidate after they commit. A read only fills the cache if no
// invalidation happened since before it queried the store, so a row read
// before a concurrent update or delete is never cached after it.
type cachedRepository struct {
	RepositoryInterface
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(next RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &cachedRepository{
		RepositoryInterface: next,
		cache:               c,
		ttl:                 ttl,
	}
}

func (r *cachedRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	bookID, ok := utils.ParseUUID(id)
	if !ok {
		return r.RepositoryInterface.FindByID(ctx, id)
	}
	key := model.BookCacheKey(bookID)

	var cached model.Book
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("book cache read failed")
	}
	if found {
		return &cached, nil
	}

	// read before the store so a write in between is detected
	gen, genErr := r.cache.Generation(ctx, key)
	if genErr != nil {
		log.Warn().Err(genErr).Str("key", key).Msg("book cache generation read failed")
	}

	b, err := r.RepositoryInterface.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		stored, err := r.cache.SetIfGeneration(ctx, key, gen, b, r.ttl)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("key", key).Msg("book cache write failed")
		case !stored:
			log.Debug().Str("key", key).Msg("book changed during read, not cached")
		}
	}
	return b, nil
}

func (r *cachedRepository) UpdateByID(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error) {
	b, err := r.RepositoryInterface.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, id)
	return b, nil
}

func (r *cachedRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.RepositoryInterface.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *cachedRepository) evict(ctx context.Context, id string) {
	bookID, ok := utils.ParseUUID(id)
	if !ok {
		return
	}
	key := model.BookCacheKey(bookID)
	if err := r.cache.Invalidate(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("book cache evict failed")
	}
}
