package checksum

import (
	"encoding/binary"
	"math/bits"
)

const (
	prime1 uint32 = 2654435761
	prime2 uint32 = 2246822519
	prime3 uint32 = 3266489917
	prime4 uint32 = 668265263
	prime5 uint32 = 374761393

	stripeLen = 16
)

// Sum32 calculates the xxHash32 of data with the given seed.
func Sum32(data []byte, seed uint32) uint32 {
	var (
		h32 uint32
		n   = len(data)
		p   = data
	)

	if n >= stripeLen {
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed
		v4 := seed - prime1

		for len(p) >= stripeLen {
			v1 = round(v1, binary.LittleEndian.Uint32(p[0:4]))
			v2 = round(v2, binary.LittleEndian.Uint32(p[4:8]))
			v3 = round(v3, binary.LittleEndian.Uint32(p[8:12]))
			v4 = round(v4, binary.LittleEndian.Uint32(p[12:16]))
			p = p[stripeLen:]
		}
		h32 = bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) + bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)
	} else {
		h32 = seed + prime5
	}

	h32 += uint32(n)

	for len(p) >= 4 {
		h32 += binary.LittleEndian.Uint32(p[0:4]) * prime3
		h32 = bits.RotateLeft32(h32, 17) * prime4
		p = p[4:]
	}
	for _, b := range p {
		h32 += uint32(b) * prime5
		h32 = bits.RotateLeft32(h32, 11) * prime1
	}

	return avalanche(h32)
}

func round(acc, input uint32) uint32 {
	acc += input * prime2
	acc = bits.RotateLeft32(acc, 13)
	return acc * prime1
}

func avalanche(h32 uint32) uint32 {
	h32 ^= h32 >> 15
	h32 *= prime2
	h32 ^= h32 >> 13
	h32 *= prime3
	h32 ^= h32 >> 16
	return h32
}
