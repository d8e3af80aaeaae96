package backup

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
	bin "github.com/saylorsolutions/binmap"
)

const (
	archiveMagic   uint32 = 0x534c424b
	archiveVersion uint8  = 1
)

var ErrMissingRecord = errors.New("no record to export")

// RawSource provides stored records by key, e.g. a *securestore.Store.
type RawSource interface {
	GetRaw(key string) string
}

// RawSink accepts stored records by key, e.g. a *securestore.Store.
type RawSink interface {
	SetRaw(key, stored string) error
}

// Entry is a single exported record.
type Entry struct {
	Key    string `json:"key"`
	Record string `json:"record"`
}

type header struct {
	magic   uint32
	version uint8
	gen     KeyGenerator
}

func (h *header) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&h.magic),
		bin.Byte(&h.version),
		h.gen.mapper(),
	)
}

// Export writes the records for keys from src into an archive sealed with pass.
// If gen is nil, then a KeyGenerator with default settings is used.
func Export(w io.Writer, src RawSource, keys []string, pass Passphrase, gen *KeyGenerator) (int, error) {
	if gen == nil {
		var err error
		gen, err = NewKeyGenerator()
		if err != nil {
			return 0, err
		}
	}
	if err := gen.validate(); err != nil {
		return 0, err
	}
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		record := src.GetRaw(key)
		if len(record) == 0 {
			return 0, fmt.Errorf("%w: '%s'", ErrMissingRecord, key)
		}
		entries = append(entries, Entry{Key: key, Record: record})
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return 0, err
	}

	key, salt, err := gen.GenerateKey(pass)
	if err != nil {
		return 0, err
	}
	defer memguard.WipeBytes(key)

	var head bytes.Buffer
	h := header{magic: archiveMagic, version: archiveVersion, gen: *gen}
	if err := h.mapper().Write(&head, binary.BigEndian); err != nil {
		return 0, err
	}
	head.Write(salt)
	sealed, err := Lock(key, payload, head.Bytes())
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(head.Bytes()); err != nil {
		return 0, err
	}
	if _, err := w.Write(sealed); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Import reads an archive sealed with pass, and writes each record to dst as is.
func Import(r io.Reader, dst RawSink, pass Passphrase) (int, error) {
	entries, err := ReadArchive(r, pass)
	if err != nil {
		return 0, err
	}
	for i, entry := range entries {
		if err := dst.SetRaw(entry.Key, entry.Record); err != nil {
			return i, fmt.Errorf("failed to import '%s': %w", entry.Key, err)
		}
	}
	return len(entries), nil
}

// ReadArchive opens an archive sealed with pass and returns its entries.
func ReadArchive(r io.Reader, pass Passphrase) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewReader(data)
	var h header
	if err := h.mapper().Read(buf, binary.BigEndian); err != nil {
		return nil, fmt.Errorf("%w: failed to read archive header: %v", ErrInvalidData, err)
	}
	if h.magic != archiveMagic {
		return nil, fmt.Errorf("%w: not a backup archive", ErrInvalidData)
	}
	if h.version != archiveVersion {
		return nil, fmt.Errorf("%w: unsupported archive version %d", ErrInvalidData, h.version)
	}
	if err := h.gen.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	salt := make(Salt, h.gen.aesKeySize)
	if _, err := io.ReadFull(buf, salt); err != nil {
		return nil, fmt.Errorf("%w: failed to read salt: %v", ErrInvalidData, err)
	}
	headLen := len(data) - buf.Len()

	key, err := h.gen.DeriveKey(pass, salt)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(key)
	payload, err := Unlock(key, data[headLen:], data[:headLen])
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return entries, nil
}
