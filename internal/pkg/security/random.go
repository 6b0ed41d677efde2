package security

import (
	"crypto/rand"
	"fmt"
)

// GenerateRandomBytes returns length bytes read from crypto/rand.
func GenerateRandomBytes(length uint32) ([]byte, error) {
	key := make([]byte, length)

	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}

	return key, nil
}
