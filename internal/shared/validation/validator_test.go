package validation

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=3"`
	Ignored  string `json:"-"`
}

func TestToDetails_ValidationErrors(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&loginBody{Email: "nope", Password: "x"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 3 characters long", details["password"])
}

func TestToDetails_Required(t *testing.T) {
	Init()

	details := ToDetails(binding.Validator.ValidateStruct(&loginBody{}))
	assert.Equal(t, map[string]string{"email": "is required", "password": "is required"}, details)
}

func TestToDetails_JSONErrors(t *testing.T) {
	var v map[string]any
	synErr := json.Unmarshal([]byte("{bad"), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(synErr))

	var typed struct {
		Stock int `json:"stock"`
	}
	typeErr := json.Unmarshal([]byte(`{"stock":"many"}`), &typed)
	assert.Equal(t, map[string]string{"stock": "must be a int"}, ToDetails(typeErr))

	assert.Equal(t, map[string]string{"payload": "request body is empty"}, ToDetails(io.EOF))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("other")))
	assert.Nil(t, ToDetails(nil))
}
