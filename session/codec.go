package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tampered, expired or malformed cookies.
var ErrInvalidToken = errors.New("invalid session token")

// Codec signs session IDs into cookie values and verifies them back.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a codec using HS256 with secret.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL is the token and cookie lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode returns a signed token carrying id.
func (c *Codec) Encode(id string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"exp": time.Now().Add(c.ttl).Unix(),
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns the session ID it carries.
func (c *Codec) Decode(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, ok := claims["sid"].(string)
	if !ok || id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}
