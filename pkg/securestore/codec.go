package securestore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidLength = errors.New("invalid encoded length")
	ErrInvalidLegacy = errors.New("invalid legacy value")
)

// legacySeparator joins the components of multi-value types in legacy text values.
const legacySeparator = "|"

// Codec converts values of one supported type to and from the bytes stored in a record.
// Legacy methods handle the text form used by plain preference entries and the colon delimited format.
type Codec[T any] interface {
	Type() DataType
	// Size is the encoded length in bytes, or -1 for variable length types.
	Size() int
	Encode(v T) []byte
	Decode(data []byte) (T, error)
	ParseLegacy(text string) (T, error)
	FormatLegacy(v T) string
}

type funcCodec[T any] struct {
	typ    DataType
	size   int
	enc    func(v T) []byte
	dec    func(data []byte) T
	parse  func(text string) (T, error)
	format func(v T) string
}

func (c funcCodec[T]) Type() DataType {
	return c.typ
}

func (c funcCodec[T]) Size() int {
	return c.size
}

func (c funcCodec[T]) Encode(v T) []byte {
	return c.enc(v)
}

func (c funcCodec[T]) Decode(data []byte) (T, error) {
	if c.size >= 0 && len(data) != c.size {
		var zero T
		return zero, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrInvalidLength, c.typ, c.size, len(data))
	}
	return c.dec(data), nil
}

func (c funcCodec[T]) ParseLegacy(text string) (T, error) {
	v, err := c.parse(text)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrInvalidLegacy, c.typ, err)
	}
	return v, nil
}

func (c funcCodec[T]) FormatLegacy(v T) string {
	return c.format(v)
}

var (
	IntCodec Codec[int32] = funcCodec[int32]{
		typ:  Int,
		size: 4,
		enc: func(v int32) []byte {
			return binary.LittleEndian.AppendUint32(nil, uint32(v))
		},
		dec: func(data []byte) int32 {
			return int32(binary.LittleEndian.Uint32(data))
		},
		parse: func(text string) (int32, error) {
			v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
			return int32(v), err
		},
		format: func(v int32) string {
			return strconv.FormatInt(int64(v), 10)
		},
	}
	UIntCodec Codec[uint32] = funcCodec[uint32]{
		typ:  UInt,
		size: 4,
		enc: func(v uint32) []byte {
			return binary.LittleEndian.AppendUint32(nil, v)
		},
		dec: binary.LittleEndian.Uint32,
		parse: func(text string) (uint32, error) {
			v, err := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
			return uint32(v), err
		},
		format: func(v uint32) string {
			return strconv.FormatUint(uint64(v), 10)
		},
	}
	LongCodec Codec[int64] = funcCodec[int64]{
		typ:  Long,
		size: 8,
		enc: func(v int64) []byte {
			return binary.LittleEndian.AppendUint64(nil, uint64(v))
		},
		dec: func(data []byte) int64 {
			return int64(binary.LittleEndian.Uint64(data))
		},
		parse: func(text string) (int64, error) {
			return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		},
		format: func(v int64) string {
			return strconv.FormatInt(v, 10)
		},
	}
	FloatCodec Codec[float32] = funcCodec[float32]{
		typ:  Float,
		size: 4,
		enc: func(v float32) []byte {
			return putFloats(v)
		},
		dec: func(data []byte) float32 {
			return floatsAt(data, 1)[0]
		},
		parse:  parseFloat,
		format: formatFloat,
	}
	DoubleCodec Codec[float64] = funcCodec[float64]{
		typ:  Double,
		size: 8,
		enc: func(v float64) []byte {
			return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))
		},
		dec: func(data []byte) float64 {
			return math.Float64frombits(binary.LittleEndian.Uint64(data))
		},
		parse: func(text string) (float64, error) {
			return strconv.ParseFloat(strings.TrimSpace(text), 64)
		},
		format: func(v float64) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		},
	}
	BoolCodec Codec[bool] = funcCodec[bool]{
		typ:  Bool,
		size: 1,
		enc: func(v bool) []byte {
			if v {
				return []byte{1}
			}
			return []byte{0}
		},
		dec: func(data []byte) bool {
			return data[0] != 0
		},
		parse: func(text string) (bool, error) {
			v, err := strconv.Atoi(strings.TrimSpace(text))
			return v == 1, err
		},
		format: func(v bool) string {
			if v {
				return "1"
			}
			return "0"
		},
	}
	StringCodec Codec[string] = funcCodec[string]{
		typ:  String,
		size: -1,
		enc: func(v string) []byte {
			return []byte(v)
		},
		dec: func(data []byte) string {
			return string(data)
		},
		parse: func(text string) (string, error) {
			return text, nil
		},
		format: func(v string) string {
			return v
		},
	}
	ByteArrayCodec Codec[[]byte] = funcCodec[[]byte]{
		typ:  ByteArray,
		size: -1,
		enc: func(v []byte) []byte {
			return append([]byte{}, v...)
		},
		dec: func(data []byte) []byte {
			return append([]byte{}, data...)
		},
		parse: func(text string) ([]byte, error) {
			return []byte(text), nil
		},
		format: func(v []byte) string {
			return string(v)
		},
	}
	Vector2Codec Codec[Vector2Value] = funcCodec[Vector2Value]{
		typ:  Vector2,
		size: 8,
		enc: func(v Vector2Value) []byte {
			return putFloats(v.X, v.Y)
		},
		dec: func(data []byte) Vector2Value {
			f := floatsAt(data, 2)
			return Vector2Value{X: f[0], Y: f[1]}
		},
		parse: func(text string) (Vector2Value, error) {
			f, err := parseFloats(text, 2)
			if err != nil {
				return Vector2Value{}, err
			}
			return Vector2Value{X: f[0], Y: f[1]}, nil
		},
		format: func(v Vector2Value) string {
			return formatFloats(v.X, v.Y)
		},
	}
	Vector3Codec Codec[Vector3Value] = funcCodec[Vector3Value]{
		typ:  Vector3,
		size: 12,
		enc: func(v Vector3Value) []byte {
			return putFloats(v.X, v.Y, v.Z)
		},
		dec: func(data []byte) Vector3Value {
			f := floatsAt(data, 3)
			return Vector3Value{X: f[0], Y: f[1], Z: f[2]}
		},
		parse: func(text string) (Vector3Value, error) {
			f, err := parseFloats(text, 3)
			if err != nil {
				return Vector3Value{}, err
			}
			return Vector3Value{X: f[0], Y: f[1], Z: f[2]}, nil
		},
		format: func(v Vector3Value) string {
			return formatFloats(v.X, v.Y, v.Z)
		},
	}
	QuaternionCodec Codec[QuaternionValue] = funcCodec[QuaternionValue]{
		typ:  Quaternion,
		size: 16,
		enc: func(v QuaternionValue) []byte {
			return putFloats(v.X, v.Y, v.Z, v.W)
		},
		dec: func(data []byte) QuaternionValue {
			f := floatsAt(data, 4)
			return QuaternionValue{X: f[0], Y: f[1], Z: f[2], W: f[3]}
		},
		parse: func(text string) (QuaternionValue, error) {
			f, err := parseFloats(text, 4)
			if err != nil {
				return QuaternionValue{}, err
			}
			return QuaternionValue{X: f[0], Y: f[1], Z: f[2], W: f[3]}, nil
		},
		format: func(v QuaternionValue) string {
			return formatFloats(v.X, v.Y, v.Z, v.W)
		},
	}
	ColorCodec Codec[ColorValue] = funcCodec[ColorValue]{
		typ:  Color,
		size: 4,
		enc: func(v ColorValue) []byte {
			return binary.LittleEndian.AppendUint32(nil, v.packed())
		},
		dec: func(data []byte) ColorValue {
			return unpackColor(binary.LittleEndian.Uint32(data))
		},
		parse: func(text string) (ColorValue, error) {
			v, err := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
			return unpackColor(uint32(v)), err
		},
		format: func(v ColorValue) string {
			return strconv.FormatUint(uint64(v.packed()), 10)
		},
	}
	RectCodec Codec[RectValue] = funcCodec[RectValue]{
		typ:  Rect,
		size: 16,
		enc: func(v RectValue) []byte {
			return putFloats(v.X, v.Y, v.Width, v.Height)
		},
		dec: func(data []byte) RectValue {
			f := floatsAt(data, 4)
			return RectValue{X: f[0], Y: f[1], Width: f[2], Height: f[3]}
		},
		parse: func(text string) (RectValue, error) {
			f, err := parseFloats(text, 4)
			if err != nil {
				return RectValue{}, err
			}
			return RectValue{X: f[0], Y: f[1], Width: f[2], Height: f[3]}, nil
		},
		format: func(v RectValue) string {
			return formatFloats(v.X, v.Y, v.Width, v.Height)
		},
	}
)

func putFloats(vals ...float32) []byte {
	buf := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

func floatsAt(data []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}

func parseFloat(text string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	return float32(v), err
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func parseFloats(text string, n int) ([]float32, error) {
	parts := strings.Split(text, legacySeparator)
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}
	out := make([]float32, n)
	for i, part := range parts {
		v, err := parseFloat(part)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func formatFloats(vals ...float32) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, legacySeparator)
}
