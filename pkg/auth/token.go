package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SessionTokenBytes is the entropy of a session token. 32 bytes renders as
// 64 hex characters, well above the 128-bit floor.
const SessionTokenBytes = 32

// GenerateSessionToken returns a cryptographically random opaque token.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
