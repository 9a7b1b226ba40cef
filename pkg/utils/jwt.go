package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appErrors "blogiq-backend/pkg/errors"
)

// SessionClaims are the identity facts embedded in a session token.
type SessionClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

// GenerateSessionToken mints a signed HS256 session token valid for ttl.
func GenerateSessionToken(userID uuid.UUID, username, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken checks signature and expiry and returns the embedded
// claims. The returned error distinguishes expired, malformed and
// bad-signature tokens.
func ValidateSessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrTokenSignature
		}
		return []byte(secret), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, appErrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, appErrors.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, appErrors.ErrTokenSignature
		default:
			return nil, appErrors.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, appErrors.ErrTokenSignature
	}

	return claims, nil
}
