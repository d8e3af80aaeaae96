/*
Package device supplies the identifiers used to lock saves to the machine that wrote them.

An identifier is opaque input to a checksum, so any stable string works.
Platform identifiers may change in rare cases, which is why stores allow overriding them and reading foreign saves.
*/
package device

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoDeviceID = errors.New("no device identifier available")
)

// Source produces a stable device identifier.
type Source interface {
	DeviceID() (string, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() (string, error)

func (f SourceFunc) DeviceID() (string, error) {
	return f()
}

// Static always returns the given identifier, e.g. an account email.
func Static(id string) Source {
	return SourceFunc(func() (string, error) {
		if len(id) == 0 {
			return "", ErrNoDeviceID
		}
		return id, nil
	})
}

// InstallID returns an identifier persisted at path, generating a random UUID and writing it there on first use.
// It survives restarts but not reinstalls, so it's a fallback for platforms without a reliable machine identifier.
func InstallID(path string) Source {
	return SourceFunc(func() (string, error) {
		data, err := os.ReadFile(path) //nolint:gosec // Caller chooses the location.
		if err == nil {
			if id := strings.TrimSpace(string(data)); len(id) > 0 {
				return id, nil
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to read install id '%s': %w", path, err)
		}

		id := uuid.NewString()
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return "", fmt.Errorf("failed to create install id directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(id+"\n"), 0600); err != nil {
			return "", fmt.Errorf("failed to write install id '%s': %w", path, err)
		}
		return id, nil
	})
}

// Chain tries each source in order and returns the first identifier produced.
func Chain(sources ...Source) Source {
	return SourceFunc(func() (string, error) {
		var errs []error
		for _, src := range sources {
			id, err := src.DeviceID()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if len(id) > 0 {
				return id, nil
			}
		}
		if len(errs) == 0 {
			return "", ErrNoDeviceID
		}
		return "", errors.Join(append([]error{ErrNoDeviceID}, errs...)...)
	})
}

var machineIDPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

// MachineID reads the OS machine identifier, falling back to host information when none is present.
func MachineID() Source {
	return SourceFunc(func() (string, error) {
		for _, path := range machineIDPaths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if id := strings.TrimSpace(string(data)); len(id) > 0 {
				return id, nil
			}
		}
		return hostID()
	})
}
