package securestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/saylorsolutions/savelock/pkg/xor"
)

// legacyDelimiter separates the parts of colon delimited records.
const legacyDelimiter = ":"

var (
	ErrLegacySegments = errors.New("wrong number of legacy record segments")
	ErrLegacyChecksum = errors.New("legacy record checksum mismatch")
)

// legacyChecksum is the additive checksum used by colon delimited records.
func legacyChecksum(input string, secret []byte) string {
	buf := make([]byte, 0, len(input)+len(secret))
	buf = append(buf, input...)
	buf = append(buf, secret...)
	keyLen := int32(len(secret) ^ 64)
	var sum int32
	for i, b := range buf {
		v := int32(b)
		sum += v + (v*(int32(i)+keyLen))%3
	}
	return fmt.Sprintf("%02X", uint32(sum))
}

// FormatLegacyRecord produces a colon delimited record holding text.
// A non-empty deviceID binds the record to that device.
// This only exists to produce test fixtures and to support tools that still consume the older format.
func (s *Store) FormatLegacyRecord(text string, deviceID string) (string, error) {
	var out string
	err := s.withSecret(func(secret []byte) error {
		cipher, err := xor.Screen([]byte(text), secret)
		if err != nil {
			return err
		}
		b64 := base64.StdEncoding.EncodeToString(cipher)
		if len(deviceID) == 0 {
			out = b64 + legacyDelimiter + legacyChecksum(b64, secret)
			return nil
		}
		fingerprint := legacyChecksum(deviceID, secret)
		out = strings.Join([]string{b64, legacyChecksum(b64+fingerprint, secret), fingerprint}, legacyDelimiter)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (s *Store) legacyFingerprint() (string, error) {
	if len(s.fingerprint) > 0 {
		return s.fingerprint, nil
	}
	id := s.DeviceID()
	err := s.withSecret(func(secret []byte) error {
		s.fingerprint = legacyChecksum(id, secret)
		return nil
	})
	return s.fingerprint, err
}
