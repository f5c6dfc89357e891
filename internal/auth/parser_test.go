package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParse_ValidToken(t *testing.T) {
	parser := NewParser("test-secret")
	raw := signToken(t, "test-secret", Claims{
		UserID: "u-1",
		Role:   model.RoleAdvisor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	principal, err := parser.Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "u-1", principal.UserID)
	assert.True(t, principal.IsAdvisor())
}

func TestParse_WrongSecret(t *testing.T) {
	parser := NewParser("test-secret")
	raw := signToken(t, "other-secret", Claims{UserID: "u-1", Role: model.RoleAdmin})

	_, err := parser.Parse(raw)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	parser := NewParser("test-secret")
	raw := signToken(t, "test-secret", Claims{
		UserID: "u-1",
		Role:   model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := parser.Parse(raw)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_MissingRole(t *testing.T) {
	parser := NewParser("test-secret")
	raw := signToken(t, "test-secret", Claims{UserID: "u-1"})

	_, err := parser.Parse(raw)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	parser := NewParser("test-secret")

	_, err := parser.Parse("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
