package device

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	id, err := Static("player@example.com").DeviceID()
	require.NoError(t, err)
	assert.Equal(t, "player@example.com", id)

	_, err = Static("").DeviceID()
	assert.ErrorIs(t, err, ErrNoDeviceID)
}

func TestInstallID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "install-id")
	first, err := InstallID(path).DeviceID()
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := InstallID(path).DeviceID()
	require.NoError(t, err)
	assert.Equal(t, first, second, "Identifier must be stable once written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first+"\n", string(data))
}

func TestChain(t *testing.T) {
	failing := SourceFunc(func() (string, error) {
		return "", errors.New("unavailable")
	})
	empty := SourceFunc(func() (string, error) {
		return "", nil
	})

	id, err := Chain(failing, empty, Static("fallback")).DeviceID()
	require.NoError(t, err)
	assert.Equal(t, "fallback", id)

	_, err = Chain(failing).DeviceID()
	assert.ErrorIs(t, err, ErrNoDeviceID)

	_, err = Chain().DeviceID()
	assert.ErrorIs(t, err, ErrNoDeviceID)
}

func TestMachineID(t *testing.T) {
	id, err := MachineID().DeviceID()
	if err != nil {
		t.Skip("No machine identifier in this environment:", err)
	}
	assert.NotEmpty(t, id)
	again, err := MachineID().DeviceID()
	require.NoError(t, err)
	assert.Equal(t, id, again)
}
