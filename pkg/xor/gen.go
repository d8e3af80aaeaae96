package xor

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// GenKey will generate an XOR key with the given length from the OS entropy pool.
func GenKey(length int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.New("asked to generate a key with no length")
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("failed to read requested key bytes: %w", err)
	}
	return buf, nil
}
