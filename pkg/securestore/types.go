package securestore

import "fmt"

// DataType tags the kind of value held in a record.
type DataType byte

const (
	Unknown    DataType = 0
	Int        DataType = 5
	UInt       DataType = 10
	String     DataType = 15
	Float      DataType = 20
	Double     DataType = 25
	Long       DataType = 30
	Bool       DataType = 35
	ByteArray  DataType = 40
	Vector2    DataType = 45
	Vector3    DataType = 50
	Quaternion DataType = 55
	Color      DataType = 60
	Rect       DataType = 65
)

func (t DataType) String() string {
	switch t {
	case Int:
		return "int"
	case UInt:
		return "uint"
	case String:
		return "string"
	case Float:
		return "float"
	case Double:
		return "double"
	case Long:
		return "long"
	case Bool:
		return "bool"
	case ByteArray:
		return "bytes"
	case Vector2:
		return "vector2"
	case Vector3:
		return "vector3"
	case Quaternion:
		return "quaternion"
	case Color:
		return "color"
	case Rect:
		return "rect"
	default:
		return "unknown"
	}
}

// known reports whether t is a tag this package writes.
func (t DataType) known() bool {
	return t >= Int && t <= Rect && t%5 == 0
}

// LockLevel controls how strictly records are bound to the device that wrote them.
type LockLevel byte

const (
	// LockNone reads both locked and unlocked records, and writes unlocked records.
	LockNone LockLevel = iota
	// LockSoft writes locked records and checks locked records on read, while still reading unlocked ones.
	// Useful when locking is introduced after release.
	LockSoft
	// LockStrict writes locked records and only reads records locked to this device.
	LockStrict
)

func (l LockLevel) String() string {
	switch l {
	case LockNone:
		return "none"
	case LockSoft:
		return "soft"
	case LockStrict:
		return "strict"
	default:
		return fmt.Sprintf("LockLevel(%d)", byte(l))
	}
}

func (l LockLevel) valid() bool {
	return l <= LockStrict
}

// ParseLockLevel parses the names returned by LockLevel.String.
func ParseLockLevel(s string) (LockLevel, error) {
	switch s {
	case "none", "":
		return LockNone, nil
	case "soft":
		return LockSoft, nil
	case "strict":
		return LockStrict, nil
	default:
		return LockNone, fmt.Errorf("%w: '%s'", ErrInvalidLockLevel, s)
	}
}

type Vector2Value struct {
	X, Y float32
}

type Vector3Value struct {
	X, Y, Z float32
}

type QuaternionValue struct {
	X, Y, Z, W float32
}

// ColorValue is a 32-bit RGBA color.
type ColorValue struct {
	R, G, B, A uint8
}

func (c ColorValue) packed() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func unpackColor(v uint32) ColorValue {
	return ColorValue{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

type RectValue struct {
	X, Y, Width, Height float32
}
