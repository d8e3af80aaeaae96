package securestore

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/saylorsolutions/savelock/pkg/device"
	"github.com/saylorsolutions/savelock/pkg/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detections struct {
	altered int
	foreign int
}

func (d *detections) options() []Option {
	return []Option{
		OnAlterationDetected(func() { d.altered++ }),
		OnPossibleForeignSaveDetected(func() { d.foreign++ }),
	}
}

func testStore(t *testing.T, opts ...Option) (*Store, *prefs.Memory) {
	mem := prefs.NewMemory()
	return testStoreWith(t, mem, opts...), mem
}

func testStoreWith(t *testing.T, p prefs.Prefs, opts ...Option) *Store {
	opts = append([]Option{WithDeviceID("device-a")}, opts...)
	s, err := New(p, opts...)
	require.NoError(t, err)
	return s
}

func roundTrip[T any](t *testing.T, s *Store, codec Codec[T], value, def T) {
	t.Helper()
	require.NoError(t, Set(s, codec, "round-trip", value))
	assert.Equal(t, value, Get(s, codec, "round-trip", def))
	assert.Equal(t, codec.Type(), RawType(s.GetRaw("round-trip")))
}

func TestStore_RoundTrip(t *testing.T) {
	values := map[string]func(t *testing.T, s *Store){
		"Int": func(t *testing.T, s *Store) {
			roundTrip(t, s, IntCodec, -42, 0)
		},
		"UInt": func(t *testing.T, s *Store) {
			roundTrip(t, s, UIntCodec, 4_000_000_000, 0)
		},
		"Long": func(t *testing.T, s *Store) {
			roundTrip(t, s, LongCodec, -1<<40, 0)
		},
		"Float": func(t *testing.T, s *Store) {
			roundTrip(t, s, FloatCodec, 3.25, 0)
		},
		"Double": func(t *testing.T, s *Store) {
			roundTrip(t, s, DoubleCodec, 1.0/3.0, 0)
		},
		"Bool": func(t *testing.T, s *Store) {
			roundTrip(t, s, BoolCodec, true, false)
		},
		"String": func(t *testing.T, s *Store) {
			roundTrip(t, s, StringCodec, "player one: ünïcode", "")
		},
		"Empty string": func(t *testing.T, s *Store) {
			roundTrip(t, s, StringCodec, "", "default")
		},
		"Bytes": func(t *testing.T, s *Store) {
			roundTrip(t, s, ByteArrayCodec, []byte{0, 1, 2, 0xFF}, nil)
		},
		"Vector2": func(t *testing.T, s *Store) {
			roundTrip(t, s, Vector2Codec, Vector2Value{X: 1, Y: -2}, Vector2Value{})
		},
		"Vector3": func(t *testing.T, s *Store) {
			roundTrip(t, s, Vector3Codec, Vector3Value{X: 1, Y: 2, Z: 3.5}, Vector3Value{})
		},
		"Quaternion": func(t *testing.T, s *Store) {
			roundTrip(t, s, QuaternionCodec, QuaternionValue{X: 0, Y: 0.7071, Z: 0, W: 0.7071}, QuaternionValue{})
		},
		"Color": func(t *testing.T, s *Store) {
			roundTrip(t, s, ColorCodec, ColorValue{R: 255, G: 10, B: 20, A: 128}, ColorValue{})
		},
		"Rect": func(t *testing.T, s *Store) {
			roundTrip(t, s, RectCodec, RectValue{X: 10, Y: 20, Width: 640, Height: 480}, RectValue{})
		},
	}
	configs := map[string][]Option{
		"None":                  {WithLockLevel(LockNone)},
		"Soft":                  {WithLockLevel(LockSoft)},
		"Strict":                {WithLockLevel(LockStrict)},
		"Strict emergency":      {WithLockLevel(LockStrict), WithEmergencyMode()},
		"Soft foreign":          {WithLockLevel(LockSoft), WithReadForeignSaves()},
		"Strict foreign":        {WithLockLevel(LockStrict), WithReadForeignSaves()},
		"None emergency":        {WithEmergencyMode()},
		"Custom secret":         {WithSecret("another secret"), WithLockLevel(LockSoft)},
		"Preserved legacy None": {WithPreserveLegacyEntries()},
	}
	for cfgName, opts := range configs {
		for valName, fn := range values {
			t.Run(cfgName+"/"+valName, func(t *testing.T) {
				var d detections
				s, _ := testStore(t, append(opts, d.options()...)...)
				fn(t, s)
				assert.Zero(t, d.altered)
				assert.Zero(t, d.foreign)
			})
		}
	}
}

func TestStore_TypedMethods(t *testing.T) {
	s, _ := testStore(t, WithLockLevel(LockSoft))
	require.NoError(t, s.SetInt("int", 1))
	require.NoError(t, s.SetUInt("uint", 2))
	require.NoError(t, s.SetLong("long", 3))
	require.NoError(t, s.SetFloat("float", 4.5))
	require.NoError(t, s.SetDouble("double", 5.5))
	require.NoError(t, s.SetBool("bool", true))
	require.NoError(t, s.SetString("string", "six"))
	require.NoError(t, s.SetByteArray("bytes", []byte("seven")))
	require.NoError(t, s.SetVector2("v2", Vector2Value{8, 8}))
	require.NoError(t, s.SetVector3("v3", Vector3Value{9, 9, 9}))
	require.NoError(t, s.SetQuaternion("quat", QuaternionValue{1, 0, 0, 0}))
	require.NoError(t, s.SetColor("color", ColorValue{1, 2, 3, 4}))
	require.NoError(t, s.SetRect("rect", RectValue{0, 0, 10, 10}))

	assert.Equal(t, int32(1), s.GetInt("int", 0))
	assert.Equal(t, uint32(2), s.GetUInt("uint", 0))
	assert.Equal(t, int64(3), s.GetLong("long", 0))
	assert.Equal(t, float32(4.5), s.GetFloat("float", 0))
	assert.Equal(t, 5.5, s.GetDouble("double", 0))
	assert.True(t, s.GetBool("bool", false))
	assert.Equal(t, "six", s.GetString("string", ""))
	assert.Equal(t, []byte("seven"), s.GetByteArray("bytes", nil))
	assert.Equal(t, Vector2Value{8, 8}, s.GetVector2("v2", Vector2Value{}))
	assert.Equal(t, Vector3Value{9, 9, 9}, s.GetVector3("v3", Vector3Value{}))
	assert.Equal(t, QuaternionValue{1, 0, 0, 0}, s.GetQuaternion("quat", QuaternionValue{}))
	assert.Equal(t, ColorValue{1, 2, 3, 4}, s.GetColor("color", ColorValue{}))
	assert.Equal(t, RectValue{0, 0, 10, 10}, s.GetRect("rect", RectValue{}))

	assert.Equal(t, int32(-1), s.GetInt("missing", -1))
}

func TestStore_NoPlainText(t *testing.T) {
	s, mem := testStore(t)
	require.NoError(t, s.SetString("player-name", "hunter2"))
	keys := mem.Keys()
	require.Len(t, keys, 1)
	assert.NotContains(t, keys[0], "player-name")
	assert.NotContains(t, mem.GetString(keys[0], ""), "hunter2")
	assert.True(t, s.Has("player-name"))
	assert.False(t, s.Has("other"))
}

func TestStore_ScoreExample(t *testing.T) {
	var d detections
	s, _ := testStore(t, d.options()...)
	require.NoError(t, s.SetInt("Score-1", 42))
	assert.Equal(t, int32(42), s.GetInt("Score-1", 0))

	stored := s.GetRaw("Score-1")
	replacement := "A"
	if stored[0] == 'A' {
		replacement = "B"
	}
	require.NoError(t, s.SetRaw("Score-1", replacement+stored[1:]))

	assert.Equal(t, int32(0), s.GetInt("Score-1", 0))
	assert.Equal(t, 1, d.altered)
	assert.Zero(t, d.foreign)
}

// corruptByte flips every bit of byte i in the decoded record.
func corruptByte(t *testing.T, stored string, i int) string {
	data, err := base64.StdEncoding.DecodeString(stored)
	require.NoError(t, err)
	data[i] ^= 0xFF
	return base64.StdEncoding.EncodeToString(data)
}

func TestStore_SingleByteTamper(t *testing.T) {
	levels := map[string]LockLevel{
		"None":   LockNone,
		"Soft":   LockSoft,
		"Strict": LockStrict,
	}
	for name, level := range levels {
		t.Run(name, func(t *testing.T) {
			s, _ := testStore(t, WithLockLevel(level))
			require.NoError(t, s.SetLong("gold", 123456789))
			original := s.GetRaw("gold")
			data, err := base64.StdEncoding.DecodeString(original)
			require.NoError(t, err)

			cipherLen := 8
			var targets []int
			for i := 0; i < cipherLen; i++ {
				targets = append(targets, i)
			}
			for i := len(data) - 4; i < len(data); i++ {
				targets = append(targets, i)
			}
			for _, i := range targets {
				var d detections
				s, _ := testStore(t, append(d.options(), WithLockLevel(level))...)
				require.NoError(t, s.SetRaw("gold", corruptByte(t, original, i)))
				assert.Equal(t, int64(-1), s.GetLong("gold", -1), "Byte %d", i)
				assert.Equal(t, 1, d.altered, "Byte %d", i)
			}
		})
	}
}

func TestStore_MalformedRecords(t *testing.T) {
	tests := map[string]string{
		"Empty":           "",
		"Bad base64":      "!!not base64!!",
		"Too short":       base64.StdEncoding.EncodeToString([]byte{5, 2, 0}),
		"Future version":  base64.StdEncoding.EncodeToString([]byte{0, 0, 0, 0, 5, 3, 0, 0, 0, 0, 0}),
		"Legacy segments": "a:b:c:d",
		"Legacy base64":   "!!!:00",
	}
	for name, stored := range tests {
		t.Run(name, func(t *testing.T) {
			var d detections
			s, _ := testStore(t, d.options()...)
			require.NoError(t, s.SetRaw("key", stored))
			assert.Equal(t, int32(7), s.GetInt("key", 7))
			assert.Equal(t, 1, d.altered)
		})
	}
}

func TestStore_VersionMismatch(t *testing.T) {
	var d detections
	s, _ := testStore(t, d.options()...)
	require.NoError(t, s.SetInt("level", 3))
	data, err := base64.StdEncoding.DecodeString(s.GetRaw("level"))
	require.NoError(t, err)
	data[len(data)-6] = FormatVersion + 1
	require.NoError(t, s.SetRaw("level", base64.StdEncoding.EncodeToString(data)))

	assert.Equal(t, int32(0), s.GetInt("level", 0))
	assert.Equal(t, 1, d.altered)
}

func TestStore_TypeMismatch(t *testing.T) {
	var d detections
	s, _ := testStore(t, d.options()...)
	require.NoError(t, s.SetInt("level", 3))
	assert.Equal(t, "none", s.GetString("level", "none"))
	assert.Zero(t, d.altered, "Reading the wrong type isn't tampering")
	assert.Equal(t, int32(3), s.GetInt("level", 0))
}

func TestStore_UnrecognizedTypeTag(t *testing.T) {
	tests := map[string]byte{
		"Zero":         byte(Unknown),
		"Between tags": 7,
		"Past the end": 99,
	}
	for name, tag := range tests {
		t.Run(name, func(t *testing.T) {
			var d detections
			s, _ := testStore(t, d.options()...)
			require.NoError(t, s.SetInt("level", 3))
			data, err := base64.StdEncoding.DecodeString(s.GetRaw("level"))
			require.NoError(t, err)
			data[len(data)-7] = tag
			require.NoError(t, s.SetRaw("level", base64.StdEncoding.EncodeToString(data)))

			assert.Equal(t, int32(-1), s.GetInt("level", -1))
			assert.Equal(t, 1, d.altered)
		})
	}
}

func TestDataType_known(t *testing.T) {
	for _, tag := range []DataType{Int, UInt, String, Float, Double, Long, Bool, ByteArray, Vector2, Vector3, Quaternion, Color, Rect} {
		assert.True(t, tag.known(), tag.String())
	}
	assert.False(t, Unknown.known())
	assert.False(t, DataType(70).known())
}

func TestStore_ForeignDevice(t *testing.T) {
	tests := map[string]struct {
		opts            []Option
		expected        int32
		expectedForeign int
	}{
		"Soft rejects": {
			opts:            []Option{WithLockLevel(LockSoft)},
			expected:        -1,
			expectedForeign: 1,
		},
		"Strict rejects": {
			opts:            []Option{WithLockLevel(LockStrict)},
			expected:        -1,
			expectedForeign: 1,
		},
		"Soft reads foreign": {
			opts:            []Option{WithLockLevel(LockSoft), WithReadForeignSaves()},
			expected:        100,
			expectedForeign: 1,
		},
		"Emergency": {
			opts:     []Option{WithLockLevel(LockStrict), WithEmergencyMode()},
			expected: 100,
		},
		"No lock": {
			opts:     []Option{WithLockLevel(LockNone)},
			expected: 100,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			writer, mem := testStore(t, WithLockLevel(LockSoft))
			require.NoError(t, writer.SetInt("coins", 100))

			var d detections
			opts := append([]Option{WithDeviceID("device-b")}, tc.opts...)
			reader := testStoreWith(t, mem, append(opts, d.options()...)...)
			assert.Equal(t, tc.expected, reader.GetInt("coins", -1))
			assert.Equal(t, tc.expected, reader.GetInt("coins", -1))
			assert.Equal(t, tc.expectedForeign, d.foreign, "Foreign saves are reported at most once")
			assert.Zero(t, d.altered)
		})
	}
}

func TestStore_DeviceChange(t *testing.T) {
	var d detections
	s, _ := testStore(t, append(d.options(), WithLockLevel(LockSoft))...)
	require.NoError(t, s.SetInt("coins", 100))
	assert.Equal(t, int32(100), s.GetInt("coins", 0))

	s.SetDeviceID("device-b")
	assert.Equal(t, int32(0), s.GetInt("coins", 0))
	assert.Equal(t, 1, d.foreign)

	s.SetDeviceID("device-a")
	assert.Equal(t, int32(100), s.GetInt("coins", 0))
}

func TestStore_StrictRejectsUnlocked(t *testing.T) {
	var d detections
	s, _ := testStore(t, append(d.options(), WithLockLevel(LockNone))...)
	require.NoError(t, s.SetInt("coins", 100))

	require.NoError(t, s.SetLockLevel(LockStrict))
	assert.Equal(t, int32(-1), s.GetInt("coins", -1))
	assert.Zero(t, d.altered)
	assert.Zero(t, d.foreign)

	s.SetReadForeignSaves(true)
	assert.Equal(t, int32(100), s.GetInt("coins", -1))
	s.SetReadForeignSaves(false)
	s.SetEmergencyMode(true)
	assert.Equal(t, int32(100), s.GetInt("coins", -1))

	s.SetEmergencyMode(false)
	require.NoError(t, s.SetLockLevel(LockSoft))
	assert.Equal(t, int32(100), s.GetInt("coins", -1), "Soft locks still read unlocked records")
}

func TestStore_PlainMigration(t *testing.T) {
	tests := map[string]struct {
		preserve bool
	}{
		"Migrate": {},
		"Preserve": {
			preserve: true,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var d detections
			s, mem := testStore(t, append(d.options(), WithPreserveLegacyEntries(tc.preserve))...)
			require.NoError(t, mem.SetString("Coins", "15"))
			require.NoError(t, mem.SetString("Spawn", "1.5|2|-3"))
			require.NoError(t, mem.SetString("Sound", "1"))
			assert.True(t, s.Has("Coins"))

			assert.Equal(t, int32(15), s.GetInt("Coins", 0))
			assert.Equal(t, Vector3Value{1.5, 2, -3}, s.GetVector3("Spawn", Vector3Value{}))
			assert.True(t, s.GetBool("Sound", false))

			assert.Equal(t, tc.preserve, mem.HasKey("Coins"))
			assert.Equal(t, tc.preserve, mem.HasKey("Spawn"))
			assert.Equal(t, Int, RawType(s.GetRaw("Coins")), "Migrated values are written as records")
			assert.Equal(t, int32(15), s.GetInt("Coins", 0))
			assert.Zero(t, d.altered)

			require.NoError(t, s.SetInt("Coins", 20))
			assert.Equal(t, int32(20), s.GetInt("Coins", 0))
			if tc.preserve {
				assert.Equal(t, "20", mem.GetString("Coins", ""), "Preserved entries follow updates")
			} else {
				assert.False(t, mem.HasKey("Coins"), "Plain entries aren't created for new values")
			}
		})
	}
}

func TestStore_PlainMigration_Unparseable(t *testing.T) {
	var d detections
	s, mem := testStore(t, d.options()...)
	require.NoError(t, mem.SetString("Coins", "lots"))
	assert.Equal(t, int32(-1), s.GetInt("Coins", -1))
	assert.True(t, mem.HasKey("Coins"), "Unreadable entries are left alone")
	assert.Zero(t, d.altered)
}

func TestStore_LegacyRecords(t *testing.T) {
	type legacyCase struct {
		stored          func(t *testing.T, s *Store) string
		opts            []Option
		expected        int32
		expectedAltered int
		expectedForeign int
		upgraded        bool
	}
	legacy := func(deviceID string) func(t *testing.T, s *Store) string {
		return func(t *testing.T, s *Store) string {
			stored, err := s.FormatLegacyRecord("42", deviceID)
			require.NoError(t, err)
			return stored
		}
	}
	tests := map[string]legacyCase{
		"Unlocked": {
			stored:   legacy(""),
			expected: 42,
			upgraded: true,
		},
		"Locked to this device": {
			stored:   legacy("device-a"),
			opts:     []Option{WithLockLevel(LockStrict)},
			expected: 42,
			upgraded: true,
		},
		"Unlocked under soft lock": {
			stored:   legacy(""),
			opts:     []Option{WithLockLevel(LockSoft)},
			expected: 42,
			upgraded: true,
		},
		"Unlocked under strict lock": {
			stored:   legacy(""),
			opts:     []Option{WithLockLevel(LockStrict)},
			expected: -1,
		},
		"Foreign": {
			stored:          legacy("device-b"),
			opts:            []Option{WithLockLevel(LockSoft)},
			expected:        -1,
			expectedForeign: 1,
		},
		"Foreign read anyway": {
			stored:          legacy("device-b"),
			opts:            []Option{WithLockLevel(LockSoft), WithReadForeignSaves()},
			expected:        42,
			expectedForeign: 1,
			upgraded:        true,
		},
		"Foreign emergency": {
			stored:   legacy("device-b"),
			opts:     []Option{WithLockLevel(LockStrict), WithEmergencyMode()},
			expected: 42,
			upgraded: true,
		},
		"Bad checksum": {
			stored: func(t *testing.T, s *Store) string {
				parts := strings.Split(legacy("")(t, s), legacyDelimiter)
				return parts[0] + legacyDelimiter + "FFFF"
			},
			expected:        -1,
			expectedAltered: 1,
		},
		"Edited fingerprint": {
			stored: func(t *testing.T, s *Store) string {
				parts := strings.Split(legacy("device-b")(t, s), legacyDelimiter)
				fingerprint, err := s.FormatLegacyRecord("", "device-a")
				require.NoError(t, err)
				return strings.Join([]string{parts[0], parts[1], strings.Split(fingerprint, legacyDelimiter)[2]}, legacyDelimiter)
			},
			opts:            []Option{WithLockLevel(LockSoft)},
			expected:        -1,
			expectedAltered: 1,
		},
		"Not a number": {
			stored: func(t *testing.T, s *Store) string {
				stored, err := s.FormatLegacyRecord("forty-two", "")
				require.NoError(t, err)
				return stored
			},
			expected:        -1,
			expectedAltered: 1,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var d detections
			s, _ := testStore(t, append(d.options(), tc.opts...)...)
			require.NoError(t, s.SetRaw("score", tc.stored(t, s)))

			assert.Equal(t, tc.expected, s.GetInt("score", -1))
			assert.Equal(t, tc.expectedAltered, d.altered)
			assert.Equal(t, tc.expectedForeign, d.foreign)
			if tc.upgraded {
				assert.NotContains(t, s.GetRaw("score"), legacyDelimiter)
				assert.Equal(t, Int, RawType(s.GetRaw("score")))
				assert.Equal(t, tc.expected, s.GetInt("score", -1))
			} else {
				assert.Contains(t, s.GetRaw("score"), legacyDelimiter)
			}
		})
	}
}

func TestStore_Idempotence(t *testing.T) {
	var d detections
	s, _ := testStore(t, d.options()...)
	require.NoError(t, s.SetString("name", "ada"))
	for i := 0; i < 3; i++ {
		assert.Equal(t, "ada", s.GetString("name", ""))
	}

	require.NoError(t, s.SetRaw("name", corruptByte(t, s.GetRaw("name"), 0)))
	for i := 0; i < 3; i++ {
		assert.Equal(t, "", s.GetString("name", ""))
	}
	assert.Equal(t, 1, d.altered, "Alteration is reported once")

	s.ResetDetection()
	assert.Equal(t, "", s.GetString("name", ""))
	assert.Equal(t, 2, d.altered, "Reporting resumes after a reset")
}

func TestStore_DifferentSecret(t *testing.T) {
	writer, mem := testStore(t, WithSecret("one"))
	require.NoError(t, writer.SetInt("coins", 5))
	reader := testStoreWith(t, mem, WithSecret("two"))
	assert.False(t, reader.Has("coins"))
	assert.Equal(t, int32(0), reader.GetInt("coins", 0))

	require.NoError(t, reader.SetSecret("one"))
	assert.Equal(t, int32(5), reader.GetInt("coins", 0))
}

func TestStore_Delete(t *testing.T) {
	s, mem := testStore(t)
	require.NoError(t, mem.SetString("coins", "1"))
	require.NoError(t, s.SetInt("coins", 5))
	require.NoError(t, s.Delete("coins"))
	assert.False(t, s.Has("coins"))
	assert.Empty(t, mem.Keys())

	require.NoError(t, s.SetInt("coins", 5))
	require.NoError(t, s.DeleteAll())
	assert.False(t, s.Has("coins"))
}

func TestStore_DeletePreserved(t *testing.T) {
	s, mem := testStore(t, WithPreserveLegacyEntries())
	require.NoError(t, mem.SetString("coins", "1"))
	require.NoError(t, s.SetInt("coins", 5))
	require.NoError(t, s.Delete("coins"))
	assert.Equal(t, "5", mem.GetString("coins", ""))
}

type failingPrefs struct {
	*prefs.Memory
}

var errBackend = errors.New("disk full")

func (f failingPrefs) SetString(string, string) error {
	return errBackend
}

func (f failingPrefs) Flush() error {
	return errBackend
}

func TestStore_PersistenceErrors(t *testing.T) {
	s := testStoreWith(t, failingPrefs{prefs.NewMemory()})
	err := s.SetInt("coins", 5)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, errBackend)
	assert.ErrorIs(t, s.Save(), ErrPersistence)
	assert.ErrorIs(t, s.SetRaw("coins", "x"), ErrPersistence)
}

func TestNew_Options(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilPrefs)

	_, err = New(prefs.NewMemory(), WithSecret(""))
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = New(prefs.NewMemory(), WithLockLevel(LockLevel(9)))
	assert.ErrorIs(t, err, ErrInvalidLockLevel)

	_, err = New(prefs.NewMemory(), WithLogger(nil))
	assert.Error(t, err)

	s, err := New(prefs.NewMemory(), WithLockLevel(LockStrict))
	require.NoError(t, err)
	assert.Equal(t, LockStrict, s.LockLevel())
}

func TestStore_DeviceSource(t *testing.T) {
	calls := 0
	src := device.SourceFunc(func() (string, error) {
		calls++
		return "from-source", nil
	})
	s, err := New(prefs.NewMemory(), WithDeviceSource(src), WithLockLevel(LockSoft))
	require.NoError(t, err)
	require.NoError(t, s.ForceDeviceIDInit())
	require.NoError(t, s.ForceDeviceIDInit())
	assert.Equal(t, "from-source", s.DeviceID())
	assert.Equal(t, 1, calls)

	require.NoError(t, s.SetInt("coins", 1))
	assert.Equal(t, int32(1), s.GetInt("coins", 0))
}

func TestStore_DeviceSourceFailure(t *testing.T) {
	src := device.SourceFunc(func() (string, error) {
		return "", device.ErrNoDeviceID
	})
	s, err := New(prefs.NewMemory(), WithDeviceSource(src), WithLockLevel(LockStrict))
	require.NoError(t, err)
	require.NoError(t, s.SetInt("coins", 1))
	assert.Equal(t, int32(1), s.GetInt("coins", 0))
	assert.Empty(t, s.DeviceID())
}

func TestParseLockLevel(t *testing.T) {
	for _, level := range []LockLevel{LockNone, LockSoft, LockStrict} {
		parsed, err := ParseLockLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
	}
	_, err := ParseLockLevel("very")
	assert.ErrorIs(t, err, ErrInvalidLockLevel)
}
