package prefs

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/saylorsolutions/savelock/pkg/xor"
)

var _ Prefs = (*File)(nil)

// File is a Prefs backed by a single JSON document on disk.
// Changes are held in memory and only written when Flush is called.
type File struct {
	path      string
	screenKey []byte
	values    map[string]string
	dirty     bool
}

// FileOpt configures a File in OpenFile.
type FileOpt = func(f *File) error

// ScreenedWith makes the file XOR screened on disk with the given key, so the document isn't plain JSON.
func ScreenedWith(key []byte) FileOpt {
	return func(f *File) error {
		if len(key) == 0 {
			return xor.ErrEmptyKey
		}
		f.screenKey = key
		return nil
	}
}

// OpenFile loads the preference file at path.
// A missing file is treated as an empty mapping and created on the first Flush.
func OpenFile(path string, opts ...FileOpt) (*File, error) {
	f := &File{
		path:   path,
		values: map[string]string{},
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	in, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open preference file '%s': %w", f.path, err)
	}
	defer func() {
		_ = in.Close()
	}()

	var src io.Reader = bufio.NewReader(in)
	if len(f.screenKey) > 0 {
		src, err = xor.NewReader(src, f.screenKey)
		if err != nil {
			return err
		}
	}
	if err := json.NewDecoder(src).Decode(&f.values); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode preference file '%s': %w", f.path, err)
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	return nil
}

func (f *File) GetString(key, def string) string {
	if val, ok := f.values[key]; ok {
		return val
	}
	return def
}

func (f *File) SetString(key, value string) error {
	f.values[key] = value
	f.dirty = true
	return nil
}

func (f *File) HasKey(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f *File) DeleteKey(key string) error {
	if _, ok := f.values[key]; ok {
		delete(f.values, key)
		f.dirty = true
	}
	return nil
}

func (f *File) DeleteAll() error {
	f.values = map[string]string{}
	f.dirty = true
	return nil
}

// Flush writes the whole mapping to a temporary file next to the target, then renames it into place.
func (f *File) Flush() (err error) {
	if !f.dirty {
		return nil
	}
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary preference file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	var out io.Writer = tmp
	if len(f.screenKey) > 0 {
		out, err = xor.NewWriter(tmp, f.screenKey)
		if err != nil {
			return err
		}
	}
	if err = json.NewEncoder(out).Encode(f.values); err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync preference file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close preference file: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace preference file '%s': %w", f.path, err)
	}
	f.dirty = false
	return nil
}
