package securestore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/saylorsolutions/binmap"
)

const (
	// FormatVersion is the version byte written into every record.
	FormatVersion uint8 = 2

	trailerLen    = 7
	deviceHashLen = 4
)

var (
	ErrTruncated       = errors.New("record is too short")
	ErrVersionMismatch = errors.New("unsupported record version")
)

// trailer is the metadata appended after the ciphertext of each record.
type trailer struct {
	dataType   uint8
	version    uint8
	lockLevel  uint8
	hash       uint32
	deviceHash uint32
}

func (t *trailer) locked() bool {
	return LockLevel(t.lockLevel) != LockNone
}

func (t *trailer) mapper() bin.Mapper {
	fields := bin.MapSequence(
		bin.Byte(&t.dataType),
		bin.Byte(&t.version),
		bin.Byte(&t.lockLevel),
		bin.Int(&t.hash),
	)
	if !t.locked() {
		return fields
	}
	return bin.MapSequence(bin.Int(&t.deviceHash), fields)
}

func (t *trailer) size() int {
	if t.locked() {
		return trailerLen + deviceHashLen
	}
	return trailerLen
}

// frame is a decoded record, with its ciphertext still screened.
type frame struct {
	cipher []byte
	trailer
}

func (f *frame) encode() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, len(f.cipher)+f.size()))
	buf.Write(f.cipher)
	if err := f.mapper().Write(buf, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to write record trailer: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeFrame parses a record from the end. The lock level byte decides whether a device hash precedes the fixed trailer.
func decodeFrame(data []byte) (*frame, error) {
	if len(data) < trailerLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}
	f := new(frame)
	f.lockLevel = data[len(data)-trailerLen+2]
	start := len(data) - f.size()
	if start < 0 {
		return nil, fmt.Errorf("%w: %d bytes for a locked record", ErrTruncated, len(data))
	}
	if err := f.mapper().Read(bytes.NewReader(data[start:]), binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to read record trailer: %w", err)
	}
	if f.version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersionMismatch, f.version)
	}
	f.cipher = data[:start]
	return f, nil
}
