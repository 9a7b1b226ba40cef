package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, password := range []string{"pw1", "correct horse battery staple", "päss wörd"} {
		hash, err := HashPassword(password, 4)
		require.NoError(t, err)

		assert.NotEqual(t, password, hash)
		assert.True(t, CheckPassword(hash, password))
	}
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw1", 4)
	require.NoError(t, err)

	assert.False(t, CheckPassword(hash, "pw2"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("pw1", 4)
	require.NoError(t, err)
	second, err := HashPassword("pw1", 4)
	require.NoError(t, err)

	// Per-call random salt: same plaintext, different digests.
	assert.NotEqual(t, first, second)
}

func TestHashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw1", 99)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "pw1"))
}
