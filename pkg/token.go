package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateTokenKey returns a 40-character opaque bearer token. Tokens
// carry no claims; they are resolved by a database lookup per request.
func GenerateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
