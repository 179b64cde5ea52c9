package common

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims accepts both token layouts issued by the login routes:
// {"id": "..."} and {"user": {"id": "..."}}.
type Claims struct {
	AccountID string      `json:"id,omitempty"`
	User      *userClaims `json:"user,omitempty"`
	jwt.RegisteredClaims
}

type userClaims struct {
	ID      string `json:"id,omitempty"`
	MongoID string `json:"_id,omitempty"`
}

func (c *Claims) Subject() string {
	if c.User != nil {
		if c.User.ID != "" {
			return c.User.ID
		}
		if c.User.MongoID != "" {
			return c.User.MongoID
		}
	}
	return c.AccountID
}

// ErrInvalidTokenStructure is returned for a valid token that names no account.
var ErrInvalidTokenStructure = errors.New("invalid token structure")

type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify returns the account id carried by a valid HS256 token.
func (v *TokenVerifier) Verify(tokenString string) (string, error) {
	if len(v.secret) == 0 {
		return "", errors.New("token secret not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	subject := claims.Subject()
	if subject == "" {
		return "", ErrInvalidTokenStructure
	}
	return subject, nil
}
