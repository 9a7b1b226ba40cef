package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const resetTokenBytes = 20

// GenerateResetToken returns a cryptographically random, hex-encoded reset
// token. The token carries no user-derived information.
func GenerateResetToken() (string, error) {
	bytes := make([]byte, resetTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
