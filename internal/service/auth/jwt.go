// Package auth verifies the bearer tokens the calling platform issues.
// Token issuance, registration and login live outside this service; the
// engine only needs the authenticated learner identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common auth errors
var (
	// ErrInvalidToken indicates the token failed signature or claim
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the token claims the engine cares about.
type Claims struct {
	LearnerID uuid.UUID
}

// TokenVerifier validates bearer tokens and extracts the learner identity.
type TokenVerifier interface {
	// VerifyToken validates the token string and returns its claims.
	// Returns ErrExpiredToken or ErrInvalidToken on failure.
	VerifyToken(ctx context.Context, tokenString string) (*Claims, error)
}

// hmacVerifier verifies HS256-signed tokens with a shared secret.
type hmacVerifier struct {
	secret []byte
}

// NewHMACVerifier creates a TokenVerifier for HS256 tokens signed with
// the given secret.
func NewHMACVerifier(secret string) TokenVerifier {
	if secret == "" {
		panic("jwt secret cannot be empty")
	}
	return &hmacVerifier{secret: []byte(secret)}
}

// VerifyToken implements TokenVerifier.
func (v *hmacVerifier) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	learnerID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a valid learner ID", ErrInvalidToken)
	}

	// Reject tokens issued in the future (allowing a minute of skew).
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		if iat.After(time.Now().Add(time.Minute)) {
			return nil, fmt.Errorf("%w: issued in the future", ErrInvalidToken)
		}
	}

	return &Claims{LearnerID: learnerID}, nil
}
