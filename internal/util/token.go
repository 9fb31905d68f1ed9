package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DefaultTokenLength is the length of promo page tokens.
const DefaultTokenLength = 64

// GenerateToken returns length lowercase hex characters drawn from crypto/rand.
// It reads ceil(length/2) bytes and truncates the encoding, so an odd length
// drops the final nibble.
func GenerateToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf)[:length], nil
}
