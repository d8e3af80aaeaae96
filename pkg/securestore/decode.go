package securestore

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/saylorsolutions/savelock/pkg/checksum"
	"github.com/saylorsolutions/savelock/pkg/xor"
)

// record is a stored value that passed its integrity checks, but not yet the device lock policy.
type record struct {
	dataType DataType
	payload  []byte
	// legacy records carry the text form of the value instead of encoded bytes.
	legacy bool
	text   string
	locked bool
	// foreign reports whether a locked record belongs to another device.
	foreign func() (bool, error)
}

// decoder turns stored text into a record.
// Any error returned from decode is treated as tampering.
type decoder interface {
	accepts(stored string) bool
	decode(s *Store, key, stored string) (*record, error)
}

// decoders are tried in order, the first that accepts the stored text is used.
var decoders = []decoder{
	legacyDecoder{},
	frameDecoder{},
}

func (s *Store) decode(key, stored string) (*record, error) {
	for _, d := range decoders {
		if d.accepts(stored) {
			return d.decode(s, key, stored)
		}
	}
	return nil, fmt.Errorf("%w: no decoder accepts record", ErrTruncated)
}

type frameDecoder struct{}

func (frameDecoder) accepts(string) bool {
	return true
}

func (frameDecoder) decode(s *Store, key, stored string) (*record, error) {
	if len(stored) == 0 {
		return nil, fmt.Errorf("%w: empty record", ErrTruncated)
	}
	data, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	f, err := decodeFrame(data)
	if err != nil {
		return nil, err
	}
	var plain []byte
	err = s.withValueKey(key, func(valueKey []byte) error {
		var screenErr error
		plain, screenErr = xor.Screen(f.cipher, valueKey)
		return screenErr
	})
	if err != nil {
		return nil, err
	}
	if sum := checksum.Sum32(plain, 0); sum != f.hash {
		return nil, fmt.Errorf("%w: expected %08x, got %08x", ErrIntegrity, f.hash, sum)
	}
	rec := &record{
		dataType: DataType(f.dataType),
		payload:  plain,
		locked:   f.locked(),
	}
	if rec.locked {
		owner := f.deviceHash
		rec.foreign = func() (bool, error) {
			current, err := s.currentDeviceHash()
			if err != nil {
				return false, err
			}
			return current != owner, nil
		}
	}
	return rec, nil
}

type legacyDecoder struct{}

func (legacyDecoder) accepts(stored string) bool {
	return strings.Contains(stored, legacyDelimiter)
}

func (legacyDecoder) decode(s *Store, _, stored string) (*record, error) {
	parts := strings.Split(stored, legacyDelimiter)
	if len(parts) != 2 && len(parts) != 3 {
		return nil, fmt.Errorf("%w: %d", ErrLegacySegments, len(parts))
	}
	cipher, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode legacy record: %w", err)
	}
	rec := &record{legacy: true, locked: len(parts) == 3}
	err = s.withSecret(func(secret []byte) error {
		signed := parts[0]
		if rec.locked {
			signed += parts[2]
		}
		if sum := legacyChecksum(signed, secret); sum != parts[1] {
			return fmt.Errorf("%w: expected %s, got %s", ErrLegacyChecksum, parts[1], sum)
		}
		if len(cipher) == 0 {
			return nil
		}
		plain, err := xor.Screen(cipher, secret)
		if err != nil {
			return err
		}
		rec.text = string(plain)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rec.locked {
		fingerprint := parts[2]
		rec.foreign = func() (bool, error) {
			current, err := s.legacyFingerprint()
			if err != nil {
				return false, err
			}
			return current != fingerprint, nil
		}
	}
	return rec, nil
}

// permits applies the device lock policy to a record that has already passed integrity checks.
// Rejected records are indistinguishable from missing ones to callers.
func (s *Store) permits(rec *record) bool {
	if s.emergency {
		return true
	}
	if !rec.locked {
		return s.lockLevel != LockStrict || s.readForeign
	}
	if s.lockLevel == LockNone {
		return true
	}
	foreign, err := rec.foreign()
	if err != nil {
		s.logger.Printf("failed to check device lock: %v", err)
		return false
	}
	if !foreign {
		return true
	}
	s.foreignSaveDetected()
	return s.readForeign
}
