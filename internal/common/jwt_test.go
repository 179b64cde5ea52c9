package common

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestTokenVerifier_Verify(t *testing.T) {
	verifier := NewTokenVerifier(testSecret)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	t.Run("flat id claim", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{
			AccountID:        "64f1c0ffee",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
		})
		id, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "64f1c0ffee", id)
	})

	t.Run("nested user claim", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{
			User:             &userClaims{MongoID: "64f1beef"},
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
		})
		id, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "64f1beef", id)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("other"), &Claims{AccountID: "x"})
		_, err := verifier.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{
			AccountID:        "x",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
		})
		_, err := verifier.Verify(token)
		assert.Error(t, err)
	})

	t.Run("no subject", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{})
		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidTokenStructure)
	})

	t.Run("unconfigured secret", func(t *testing.T) {
		_, err := NewTokenVerifier("").Verify("anything")
		assert.Error(t, err)
	})
}
