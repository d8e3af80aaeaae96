package securestore

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/awnumar/memguard"
	"github.com/saylorsolutions/savelock/pkg/checksum"
	"github.com/saylorsolutions/savelock/pkg/device"
)

const (
	// DefaultSecret is used when no secret is configured.
	// Anything saved with one secret is unreadable with another.
	DefaultSecret = "e806f6"
)

var (
	ErrEmptySecret      = errors.New("cannot use an empty secret")
	ErrInvalidLockLevel = errors.New("invalid lock level")
	ErrNilPrefs         = errors.New("nil preferences")
)

// Option configures a Store in New.
// If any Option returns an error, then construction stops and the error is returned.
type Option = func(s *Store) error

// WithSecret sets the secret mixed into every key and value screen.
func WithSecret(secret string) Option {
	return func(s *Store) error {
		return s.SetSecret(secret)
	}
}

// WithDeviceID overrides the device identifier, e.g. to lock saves to an account instead of a machine.
func WithDeviceID(id string) Option {
	return func(s *Store) error {
		s.SetDeviceID(id)
		return nil
	}
}

// WithDeviceSource sets where the device identifier comes from when none is set explicitly.
// The default is device.MachineID.
func WithDeviceSource(src device.Source) Option {
	return func(s *Store) error {
		if src == nil {
			return errors.New("nil device source")
		}
		s.deviceSource = src
		return nil
	}
}

func WithLockLevel(level LockLevel) Option {
	return func(s *Store) error {
		return s.SetLockLevel(level)
	}
}

func WithReadForeignSaves(val ...bool) Option {
	return func(s *Store) error {
		s.SetReadForeignSaves(optTrue(val))
		return nil
	}
}

func WithEmergencyMode(val ...bool) Option {
	return func(s *Store) error {
		s.SetEmergencyMode(optTrue(val))
		return nil
	}
}

func WithPreserveLegacyEntries(val ...bool) Option {
	return func(s *Store) error {
		s.SetPreserveLegacyEntries(optTrue(val))
		return nil
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		s.logger = logger
		return nil
	}
}

// OnAlterationDetected sets the callback fired when a record fails its integrity check or can't be parsed.
func OnAlterationDetected(fn func()) Option {
	return func(s *Store) error {
		s.onAlteration = fn
		return nil
	}
}

// OnPossibleForeignSaveDetected sets the callback fired when a record is locked to some other device.
func OnPossibleForeignSaveDetected(fn func()) Option {
	return func(s *Store) error {
		s.onForeign = fn
		return nil
	}
}

func optTrue(val []bool) bool {
	if len(val) > 0 {
		return val[0]
	}
	return true
}

type config struct {
	secret         *memguard.Enclave
	lockLevel      LockLevel
	readForeign    bool
	emergency      bool
	preserveLegacy bool

	deviceSource device.Source
	deviceID     string
	deviceHash   uint32
	deviceHashed bool
	fingerprint  string

	logger       *log.Logger
	onAlteration func()
	onForeign    func()
}

func defaultConfig() config {
	return config{
		secret:       memguard.NewEnclave([]byte(DefaultSecret)),
		deviceSource: device.MachineID(),
		logger:       log.New(io.Discard, "", 0),
	}
}

// SetSecret replaces the secret for subsequent operations.
func (s *Store) SetSecret(secret string) error {
	if len(secret) == 0 {
		return ErrEmptySecret
	}
	s.secret = memguard.NewEnclave([]byte(secret))
	s.resetDeviceHash()
	return nil
}

// SetDeviceID overrides the device identifier.
// Everything saved under the previous identifier will be considered foreign.
func (s *Store) SetDeviceID(id string) {
	s.deviceID = id
	s.resetDeviceHash()
}

func (s *Store) SetLockLevel(level LockLevel) error {
	if !level.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLockLevel, byte(level))
	}
	s.lockLevel = level
	return nil
}

func (s *Store) LockLevel() LockLevel {
	return s.lockLevel
}

// SetReadForeignSaves allows reading records locked to other devices.
// The foreign save callback still fires.
func (s *Store) SetReadForeignSaves(val bool) {
	s.readForeign = val
}

// SetEmergencyMode ignores the device lock entirely, for recovering saves after an unexpected device identifier change.
// Unlike SetReadForeignSaves, no foreign save callback fires.
func (s *Store) SetEmergencyMode(val bool) {
	s.emergency = val
}

// SetPreserveLegacyEntries keeps plain preference entries around after they're migrated.
func (s *Store) SetPreserveLegacyEntries(val bool) {
	s.preserveLegacy = val
}

// DeviceID returns the device identifier, obtaining it from the device source on first use.
func (s *Store) DeviceID() string {
	if len(s.deviceID) == 0 {
		id, err := s.deviceSource.DeviceID()
		if err != nil {
			s.logger.Printf("failed to obtain device id, saves will be locked to an empty id: %v", err)
		}
		s.deviceID = id
	}
	return s.deviceID
}

// ForceDeviceIDInit obtains the device identifier and its hash now, rather than on first use.
// Some platforms take a noticeable time to produce an identifier.
func (s *Store) ForceDeviceIDInit() error {
	if s.deviceHashed {
		s.logger.Println("ForceDeviceIDInit called, but the device id is already obtained")
		return nil
	}
	_, err := s.currentDeviceHash()
	return err
}

func (s *Store) resetDeviceHash() {
	s.deviceHash = 0
	s.deviceHashed = false
	s.fingerprint = ""
}

func (s *Store) currentDeviceHash() (uint32, error) {
	if s.deviceHashed {
		return s.deviceHash, nil
	}
	id := s.DeviceID()
	var hash uint32
	err := s.withSecret(func(secret []byte) error {
		buf := append([]byte(id), secret...)
		defer memguard.WipeBytes(buf)
		hash = checksum.Sum32(buf, 0)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.deviceHash = hash
	s.deviceHashed = true
	return hash, nil
}

func (s *Store) withSecret(fn func(secret []byte) error) error {
	if s.secret == nil {
		return ErrEmptySecret
	}
	lb, err := s.secret.Open()
	if err != nil {
		return fmt.Errorf("failed to open secret: %w", err)
	}
	defer lb.Destroy()
	return fn(lb.Bytes())
}
