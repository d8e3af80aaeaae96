package securestore

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/saylorsolutions/savelock/pkg/checksum"
	"github.com/saylorsolutions/savelock/pkg/prefs"
	"github.com/saylorsolutions/savelock/pkg/xor"
)

var (
	ErrPersistence = errors.New("failed to persist record")
	ErrIntegrity   = errors.New("record integrity check failed")
)

// Store reads and writes obfuscated records through a prefs.Prefs.
// A Store is not safe for concurrent use.
type Store struct {
	prefs prefs.Prefs
	config

	alterationReported bool
	foreignReported    bool
}

// New creates a Store backed by p, configured with zero or more Option.
// By default, the store uses DefaultSecret, no device lock, and the device.MachineID identifier.
func New(p prefs.Prefs, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, ErrNilPrefs
	}
	s := &Store{
		prefs:  p,
		config: defaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ResetDetection allows the alteration and foreign save callbacks to fire again.
func (s *Store) ResetDetection() {
	s.alterationReported = false
	s.foreignReported = false
}

func (s *Store) alterationDetected() {
	if s.alterationReported || s.onAlteration == nil {
		return
	}
	s.alterationReported = true
	s.onAlteration()
}

func (s *Store) foreignSaveDetected() {
	if s.foreignReported || s.onForeign == nil {
		return
	}
	s.foreignReported = true
	s.onForeign()
}

// Set writes value under key, framed and screened for the current configuration.
func Set[T any](s *Store, codec Codec[T], key string, value T) error {
	stored, err := s.encodeRecord(key, codec.Type(), codec.Encode(value))
	if err != nil {
		return err
	}
	if err := s.SetRaw(key, stored); err != nil {
		return err
	}
	if s.preserveLegacy && s.prefs.HasKey(key) {
		if err := s.prefs.SetString(key, codec.FormatLegacy(value)); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	return nil
}

// Get reads the value stored under key, returning def if there's no value or the value can't be trusted.
// Records rejected by the device lock policy return def just like missing records.
//
// Plain entries stored under the unobfuscated key are migrated on first read.
func Get[T any](s *Store, codec Codec[T], key string, def T) T {
	obKey, err := s.obfuscatedKey(key)
	if err != nil {
		s.logger.Printf("failed to obfuscate key '%s': %v", key, err)
		return def
	}
	if !s.prefs.HasKey(obKey) {
		return migratePlain(s, codec, key, def)
	}
	rec, err := s.decode(key, s.prefs.GetString(obKey, ""))
	if err != nil {
		s.logger.Printf("record '%s' failed verification: %v", key, err)
		s.alterationDetected()
		return def
	}
	if !s.permits(rec) {
		return def
	}
	if rec.legacy {
		return upgradeLegacy(s, codec, key, rec.text, def)
	}
	if !rec.dataType.known() {
		s.logger.Printf("record '%s' carries unrecognized type tag %d", key, byte(rec.dataType))
		s.alterationDetected()
		return def
	}
	if rec.dataType != codec.Type() {
		s.logger.Printf("record '%s' holds %s, not %s", key, rec.dataType, codec.Type())
		return def
	}
	v, err := codec.Decode(rec.payload)
	if err != nil {
		s.logger.Printf("record '%s' failed to decode: %v", key, err)
		s.alterationDetected()
		return def
	}
	return v
}

func upgradeLegacy[T any](s *Store, codec Codec[T], key, text string, def T) T {
	if len(text) == 0 {
		return def
	}
	v, err := codec.ParseLegacy(text)
	if err != nil {
		s.logger.Printf("legacy record '%s' failed to parse: %v", key, err)
		s.alterationDetected()
		return def
	}
	if err := Set(s, codec, key, v); err != nil {
		s.logger.Printf("failed to upgrade legacy record '%s': %v", key, err)
	}
	return v
}

func migratePlain[T any](s *Store, codec Codec[T], key string, def T) T {
	if !s.prefs.HasKey(key) {
		return def
	}
	s.logger.Printf("migrating plain entry '%s'", key)
	v, err := codec.ParseLegacy(s.prefs.GetString(key, ""))
	if err != nil {
		s.logger.Printf("plain entry '%s' can't be read as %s: %v", key, codec.Type(), err)
		return def
	}
	if err := Set(s, codec, key, v); err != nil {
		s.logger.Printf("failed to migrate plain entry '%s': %v", key, err)
		return v
	}
	if !s.preserveLegacy {
		if err := s.prefs.DeleteKey(key); err != nil {
			s.logger.Printf("failed to remove migrated plain entry '%s': %v", key, err)
		}
	}
	return v
}

func (s *Store) encodeRecord(key string, typ DataType, plain []byte) (string, error) {
	f := &frame{
		trailer: trailer{
			dataType:  uint8(typ),
			version:   FormatVersion,
			lockLevel: uint8(s.lockLevel),
			hash:      checksum.Sum32(plain, 0),
		},
	}
	if f.locked() {
		hash, err := s.currentDeviceHash()
		if err != nil {
			return "", err
		}
		f.deviceHash = hash
	}
	err := s.withValueKey(key, func(valueKey []byte) error {
		var err error
		f.cipher, err = xor.Screen(plain, valueKey)
		return err
	})
	if err != nil {
		return "", err
	}
	data, err := f.encode()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// withValueKey provides the screen key for values stored under key.
func (s *Store) withValueKey(key string, fn func(valueKey []byte) error) error {
	return s.withSecret(func(secret []byte) error {
		valueKey := make([]byte, 0, len(key)+len(secret))
		valueKey = append(valueKey, key...)
		valueKey = append(valueKey, secret...)
		defer memguard.WipeBytes(valueKey)
		return fn(valueKey)
	})
}

func (s *Store) obfuscatedKey(key string) (string, error) {
	var out string
	err := s.withSecret(func(secret []byte) error {
		screened, err := xor.Screen([]byte(key), secret)
		if err != nil {
			return err
		}
		out = base64.StdEncoding.EncodeToString(screened)
		return nil
	})
	return out, err
}

// Has reports whether key has a record, or a plain entry waiting to be migrated.
func (s *Store) Has(key string) bool {
	if s.prefs.HasKey(key) {
		return true
	}
	obKey, err := s.obfuscatedKey(key)
	if err != nil {
		s.logger.Printf("failed to obfuscate key '%s': %v", key, err)
		return false
	}
	return s.prefs.HasKey(obKey)
}

// Delete removes the record for key, along with any plain entry unless legacy entries are preserved.
func (s *Store) Delete(key string) error {
	obKey, err := s.obfuscatedKey(key)
	if err != nil {
		return err
	}
	if err := s.prefs.DeleteKey(obKey); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !s.preserveLegacy {
		if err := s.prefs.DeleteKey(key); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	return nil
}

// SetRaw stores already encoded record text under key, without any validation.
func (s *Store) SetRaw(key, stored string) error {
	obKey, err := s.obfuscatedKey(key)
	if err != nil {
		return err
	}
	if err := s.prefs.SetString(obKey, stored); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// GetRaw returns the encoded record text for key, or an empty string if there's no record.
func (s *Store) GetRaw(key string) string {
	obKey, err := s.obfuscatedKey(key)
	if err != nil {
		s.logger.Printf("failed to obfuscate key '%s': %v", key, err)
		return ""
	}
	return s.prefs.GetString(obKey, "")
}

// DeleteAll removes everything from the underlying preferences, including entries not written by a Store.
func (s *Store) DeleteAll() error {
	if err := s.prefs.DeleteAll(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Save flushes buffered changes to the underlying preferences.
func (s *Store) Save() error {
	if err := s.prefs.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// RawType reports the type tag of encoded record text without verifying it.
// Legacy and malformed records report Unknown.
func RawType(stored string) DataType {
	data, err := base64.StdEncoding.DecodeString(stored)
	if err != nil || len(data) < trailerLen {
		return Unknown
	}
	return DataType(data[len(data)-trailerLen])
}
