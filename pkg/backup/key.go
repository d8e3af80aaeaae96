package backup

import (
	"crypto/rand"
	"errors"
	"io"
	"math/bits"

	bin "github.com/saylorsolutions/binmap"
	"golang.org/x/crypto/scrypt"
)

const (
	MaxIterations                uint64 = 1 << 20
	MaxRelBlockSize              uint8  = 16
	MaxCpuCost                   uint8  = 4
	DefaultLargeIterations       uint64 = 1 << 20
	DefaultInteractiveIterations uint64 = 1 << 15
	DefaultRelBlockSize          uint8  = 8
	DefaultCpuCost               uint8  = 1
	AES256KeySize                uint8  = 256 / 8
	AES128KeySize                uint8  = 128 / 8
)

var (
	ErrEmptyPassPhrase = errors.New("cannot use an empty passphrase")
	ErrInvalidData     = errors.New("unable to use input data")
)

// Key is an AES key used to seal or open an archive.
type Key []byte

// Salt is a slice of secure random bytes that is used with scrypt to generate a Key from a Passphrase.
type Salt []byte

// scrypt memory cost is 128 * iterations * relativeBlockSize bytes, so the
// maximums keep any archive header within 2GiB of working memory.
var (
	errIterations = errors.New("iterations must be a power of 2 between 2 and 2^20")
	errCpuCost    = errors.New("cpu cost must be between 1 and 4")
	errBlockSize  = errors.New("relative block size must be between 8 and 16")
)

// Passphrase is a human-readable string used to generate a Key.
type Passphrase []byte

// KeyGenerator derives archive keys from a Passphrase.
type KeyGenerator struct {
	iterations        uint64
	relativeBlockSize uint8
	cpuCost           uint8
	aesKeySize        uint8
}

func (g *KeyGenerator) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&g.iterations),
		bin.Byte(&g.relativeBlockSize),
		bin.Byte(&g.cpuCost),
		bin.Byte(&g.aesKeySize),
	)
}

func (g *KeyGenerator) validate() error {
	if !validIterations(g.iterations) {
		return errIterations
	}
	if !validCpuCost(g.cpuCost) {
		return errCpuCost
	}
	if !validBlockSize(g.relativeBlockSize) {
		return errBlockSize
	}
	if g.aesKeySize != AES256KeySize && g.aesKeySize != AES128KeySize {
		return errors.New("unsupported key size")
	}
	return nil
}

func validIterations(n uint64) bool {
	return n > 1 && n <= MaxIterations && bits.OnesCount64(n) == 1
}

func validCpuCost(c uint8) bool {
	return c >= DefaultCpuCost && c <= MaxCpuCost
}

func validBlockSize(r uint8) bool {
	return r >= DefaultRelBlockSize && r <= MaxRelBlockSize
}

type GeneratorOpt = func(*KeyGenerator) error

func SetAES256KeySize() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.aesKeySize = AES256KeySize
		return nil
	}
}

func SetAES128KeySize() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.aesKeySize = AES128KeySize
		return nil
	}
}

// SetLongDelayIterations sets a higher iteration count, and is the default.
// This is appropriate for archives that are written and read infrequently.
func SetLongDelayIterations() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.iterations = DefaultLargeIterations
		return nil
	}
}

// SetShortDelayIterations sets a lower iteration count for interactive use.
// It's recommended to use longer passphrases with this option.
func SetShortDelayIterations() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.iterations = DefaultInteractiveIterations
		return nil
	}
}

// SetIterations allows the caller to customize the iteration count, which must be a power of 2 no greater than MaxIterations.
// Only use this option if you know what you're doing.
func SetIterations(iterations uint64) GeneratorOpt {
	return func(gen *KeyGenerator) error {
		if !validIterations(iterations) {
			return errIterations
		}
		gen.iterations = iterations
		return nil
	}
}

// SetCPUCost sets the parallelism factor for key generation from the default of 1.
// Only use this option if you know what you're doing.
func SetCPUCost(cost uint8) GeneratorOpt {
	return func(gen *KeyGenerator) error {
		if !validCpuCost(cost) {
			return errCpuCost
		}
		gen.cpuCost = cost
		return nil
	}
}

// SetRelativeBlockSize sets the relative block size.
// Only use this option if you know what you're doing.
func SetRelativeBlockSize(size uint8) GeneratorOpt {
	return func(gen *KeyGenerator) error {
		if !validBlockSize(size) {
			return errBlockSize
		}
		gen.relativeBlockSize = size
		return nil
	}
}

// NewKeyGenerator creates a new KeyGenerator using the options provided as zero or more GeneratorOpt.
// By default, the generator generates a key for AES256KeySize using DefaultLargeIterations.
func NewKeyGenerator(opts ...GeneratorOpt) (*KeyGenerator, error) {
	gen := &KeyGenerator{
		iterations:        DefaultLargeIterations,
		relativeBlockSize: DefaultRelBlockSize,
		cpuCost:           DefaultCpuCost,
		aesKeySize:        AES256KeySize,
	}

	for _, opt := range opts {
		if err := opt(gen); err != nil {
			return nil, err
		}
	}
	return gen, nil
}

// GenerateKey generates a key and a new random salt.
func (g *KeyGenerator) GenerateKey(pass Passphrase) (key Key, salt Salt, err error) {
	if len(pass) == 0 {
		return nil, nil, ErrEmptyPassPhrase
	}
	salt = make(Salt, g.aesKeySize)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, err
	}
	key, err = g.DeriveKey(pass, salt)
	return key, salt, err
}

// DeriveKey recovers a key from the passphrase and salt.
// This doesn't ensure that the passphrase is the one used to seal an archive.
func (g *KeyGenerator) DeriveKey(pass Passphrase, salt Salt) (Key, error) {
	if len(pass) == 0 {
		return nil, ErrEmptyPassPhrase
	}
	return scrypt.Key(pass, salt, int(g.iterations), int(g.relativeBlockSize), int(g.cpuCost), int(g.aesKeySize))
}
