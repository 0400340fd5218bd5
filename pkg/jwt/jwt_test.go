package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestManager_IssueAndParse(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager("test-secret", 24*time.Hour).WithClock(fixedClock(now))

	token, err := m.Issue(Identity{Subject: "u-1", Email: "a@x.io"})
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "a@x.io", claims.Email)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestManager_ParseExpired(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager("test-secret", time.Hour).WithClock(fixedClock(issued))

	token, err := m.Issue(Identity{Subject: "u-1", Email: "a@x.io"})
	require.NoError(t, err)

	later := m.WithClock(fixedClock(issued.Add(2 * time.Hour)))
	_, err = later.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ParseWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue(Identity{Subject: "u-1"})
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsOtherAlgorithms(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewManager("s", 0).TTL())
}
