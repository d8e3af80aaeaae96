package obscured

import (
	"errors"
	"sync"

	"github.com/saylorsolutions/savelock/pkg/xor"
)

// DefaultKey is the initial default key for new String values.
const DefaultKey = "4441"

// RandomKeyLen is the length of keys generated with String.RandomizeKey.
const RandomKeyLen = 8

var ErrEmptyKey = errors.New("cannot use an empty key")

var (
	keyMux     sync.RWMutex
	defaultKey = []byte(DefaultKey)
)

// SetDefaultKey changes the key used for new assignments.
// Existing values keep their key until String.ApplyNewKey is called.
func SetDefaultKey(key string) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	keyMux.Lock()
	defer keyMux.Unlock()
	defaultKey = []byte(key)
	return nil
}

func currentDefaultKey() []byte {
	keyMux.RLock()
	defer keyMux.RUnlock()
	return defaultKey
}

// screen applies key to data. Keys are never empty here.
func screen(data, key []byte) []byte {
	out, err := xor.Screen(data, key)
	if err != nil {
		panic(err)
	}
	return out
}
