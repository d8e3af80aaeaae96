package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

func newGCM(key Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Lock seals data with the given Key, prefixing a random nonce.
// The additional data is authenticated, but not encrypted.
func Lock(key Key, data, additional []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, data, additional), nil
}

// Unlock opens data sealed with Lock.
// Tampering with the sealed data or the additional data, or using the wrong key, will cause Unlock to fail.
func Unlock(key Key, sealed, additional []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize+gcm.Overhead() {
		return nil, fmt.Errorf("%w: sealed data is too short", ErrInvalidData)
	}
	nonce, cipherText := sealed[:nonceSize], sealed[nonceSize:]
	plain, err := gcm.Open(nil, nonce, cipherText, additional)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return plain, nil
}
