package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "blogiq-backend/pkg/errors"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := GenerateSessionToken(userID, "alice", "a@x.com", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, "secret")
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestValidateSessionToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := GenerateSessionToken(uuid.New(), "alice", "a@x.com", "secret", -time.Second)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, "secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, appErrors.ErrTokenExpired)
}

func TestValidateSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateSessionToken(uuid.New(), "alice", "a@x.com", "right-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, "wrong-secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, appErrors.ErrTokenSignature)
}

func TestValidateSessionToken_Malformed(t *testing.T) {
	t.Parallel()

	claims, err := ValidateSessionToken("not.a.jwt", "secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, appErrors.ErrTokenMalformed)
}
