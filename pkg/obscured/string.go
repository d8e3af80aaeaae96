package obscured

import (
	"bytes"

	"github.com/awnumar/memguard"
	"github.com/saylorsolutions/savelock/pkg/xor"
)

// String holds a screened string value.
// The zero value is ready to use and holds an empty string.
type String struct {
	key    []byte
	hidden []byte

	shadow    string
	hasShadow bool
	detector  *Detector
}

type Option = func(s *String)

// WithDetector binds the String to a Detector other than DefaultDetector.
func WithDetector(d *Detector) Option {
	return func(s *String) {
		s.detector = d
	}
}

// FromPlain creates a String holding plain.
func FromPlain(plain string, opts ...Option) *String {
	s := new(String)
	for _, opt := range opts {
		opt(s)
	}
	s.Set(plain)
	return s
}

func (s *String) getDetector() *Detector {
	if s.detector == nil {
		return DefaultDetector
	}
	return s.detector
}

func (s *String) ensureInit() {
	if s.key == nil {
		s.key = currentDefaultKey()
		s.hidden = nil
		s.hasShadow = false
	}
}

// Set replaces the held value, screening it with the current default key.
func (s *String) Set(plain string) {
	s.key = currentDefaultKey()
	s.hidden = s.screenPlain(plain, s.key)
	s.updateShadow(plain)
}

func (s *String) screenPlain(plain string, key []byte) []byte {
	buf := []byte(plain)
	defer memguard.WipeBytes(buf)
	return screen(buf, key)
}

func (s *String) updateShadow(plain string) {
	if s.getDetector().Running() {
		s.shadow = plain
		s.hasShadow = true
		return
	}
	s.shadow = ""
	s.hasShadow = false
}

func (s *String) unscreen() string {
	s.ensureInit()
	return string(screen(s.hidden, s.key))
}

// Reveal returns the plain value.
// If the screened bytes no longer match the shadow kept during detection, the Detector is notified.
func (s *String) Reveal() string {
	plain := s.unscreen()
	if s.hasShadow && plain != s.shadow {
		s.getDetector().report()
	}
	return plain
}

// ApplyNewKey re-screens the value if the default key changed since it was assigned.
func (s *String) ApplyNewKey() {
	s.ensureInit()
	key := currentDefaultKey()
	if bytes.Equal(s.key, key) {
		return
	}
	plain := s.Reveal()
	s.key = key
	s.hidden = s.screenPlain(plain, key)
}

// RandomizeKey re-screens the value with a new random key, changing its bytes in memory without changing the value.
func (s *String) RandomizeKey() error {
	plain := s.Reveal()
	key, err := xor.GenKey(RandomKeyLen)
	if err != nil {
		return err
	}
	memguard.WipeBytes(s.hidden)
	s.key = key
	s.hidden = s.screenPlain(plain, key)
	return nil
}

// EncryptedBlob returns the screened bytes for persisting, after applying the current default key.
// The blob can be restored with SetEncryptedBlob as long as the default key is the same.
func (s *String) EncryptedBlob() []byte {
	s.ApplyNewKey()
	return append([]byte{}, s.hidden...)
}

// SetEncryptedBlob replaces the held value with a blob previously returned from EncryptedBlob.
func (s *String) SetEncryptedBlob(blob []byte) {
	s.key = currentDefaultKey()
	s.hidden = append([]byte{}, blob...)
	s.hasShadow = false
	if s.getDetector().Running() {
		s.updateShadow(s.unscreen())
	}
}

// Equal reports whether both values hold the same string.
func (s *String) Equal(other *String) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	s.ensureInit()
	other.ensureInit()
	if bytes.Equal(s.key, other.key) {
		return bytes.Equal(s.hidden, other.hidden)
	}
	return s.Reveal() == other.Reveal()
}
