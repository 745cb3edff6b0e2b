package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-thats-long-enough-for-hs256"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyTokenValid(t *testing.T) {
	t.Parallel() // Enable parallel execution

	learnerID := uuid.New()
	verifier := NewHMACVerifier(testSecret)

	tokenString := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"sub": learnerID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := verifier.VerifyToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, learnerID, claims.LearnerID)
}

func TestVerifyTokenFailures(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	verifier := NewHMACVerifier(testSecret)
	now := time.Now()

	testCases := []struct {
		name     string
		token    string
		expected error
	}{
		{
			name: "Wrong secret",
			token: signToken(t, jwt.SigningMethodHS256, "some-other-secret-that-is-wrong", jwt.MapClaims{
				"sub": learnerID.String(),
				"exp": now.Add(time.Hour).Unix(),
			}),
			expected: ErrInvalidToken,
		},
		{
			name: "Expired token",
			token: signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
				"sub": learnerID.String(),
				"exp": now.Add(-time.Hour).Unix(),
			}),
			expected: ErrExpiredToken,
		},
		{
			name: "Missing subject",
			token: signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
				"exp": now.Add(time.Hour).Unix(),
			}),
			expected: ErrInvalidToken,
		},
		{
			name: "Subject is not a learner ID",
			token: signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
				"sub": "not-a-uuid",
				"exp": now.Add(time.Hour).Unix(),
			}),
			expected: ErrInvalidToken,
		},
		{
			name: "Issued in the future",
			token: signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
				"sub": learnerID.String(),
				"iat": now.Add(time.Hour).Unix(),
				"exp": now.Add(2 * time.Hour).Unix(),
			}),
			expected: ErrInvalidToken,
		},
		{
			name: "Unexpected signing method",
			token: signToken(t, jwt.SigningMethodHS384, testSecret, jwt.MapClaims{
				"sub": learnerID.String(),
				"exp": now.Add(time.Hour).Unix(),
			}),
			expected: ErrInvalidToken,
		},
		{
			name:     "Garbage token",
			token:    "not.a.token",
			expected: ErrInvalidToken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := verifier.VerifyToken(context.Background(), tc.token)

			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestNewHMACVerifierPanicsOnEmptySecret(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewHMACVerifier("")
	})
}
