package xor

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyKey = errors.New("cannot use empty key")
)

type xorScreen struct {
	key  []byte
	init int
	cur  int
}

func newXorScreen(key []byte, offset ...int) (*xorScreen, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	s := &xorScreen{
		key: key,
	}
	if len(offset) > 0 {
		if offset[0] < 0 || offset[0] >= len(key) {
			return nil, fmt.Errorf("offset %d out of range for provided key of len %d", offset[0], len(key))
		}
		s.init = offset[0]
		s.cur = s.init
	}
	return s, nil
}

func (s *xorScreen) screen(b byte) byte {
	b ^= s.key[s.cur]
	s.cur = (s.cur + 1) % len(s.key)
	return b
}

func (s *xorScreen) reset() {
	s.cur = s.init
}

// Screen applies the key to every byte of data, starting at the key's first byte, and returns the result in a new slice.
// The input is left untouched.
// Calling Screen on the output with the same key returns the original data.
func Screen(data, key []byte) ([]byte, error) {
	scr, err := newXorScreen(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	for i := range data {
		out[i] = scr.screen(data[i])
	}
	return out, nil
}
