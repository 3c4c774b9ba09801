package effect

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// twoPi is the full circle in radians.
const twoPi = 2 * math.Pi

// variationQuantum quantizes the stored variation value to 1/16 turns
// before hashing, so slider jitter below that resolution does not change
// the derived layout.
const variationQuantum = 16

// hash64 folds the given words through FNV-1a.
func hash64(parts ...uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], p)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// hashWords folds a string plus words through FNV-1a.
func hashWords(s string, parts ...uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	var buf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], p)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// angleFromHash maps a hash value onto [0, 2π).
func angleFromHash(h uint64) float64 {
	const resolution = 1 << 20
	return float64(h%resolution) / resolution * twoPi
}

// VariationOffset derives the variation angle for a seed base and a
// variation value. The variation is quantized before hashing.
func VariationOffset(seedBase int64, variation float64) float64 {
	q := int64(math.Round(variation * variationQuantum))
	return angleFromHash(hash64(uint64(seedBase), uint64(q)))
}

// PerturbForMonitor folds a monitor identity into a variation offset,
// yielding related-but-distinct content per monitor without changing the
// stored seed. The device rectangle participates so mirrored monitors
// with distinct ids still differ from cloned ones.
func PerturbForMonitor(offset float64, monitorID string, rect [4]int) float64 {
	h := hashWords(monitorID,
		uint64(int64(rect[0])), uint64(int64(rect[1])),
		uint64(int64(rect[2])), uint64(int64(rect[3])))
	return math.Mod(offset+angleFromHash(h), twoPi)
}

// streamSeed derives the RNG stream seed for one Initialize call.
// The canvas size participates so a resize produces a fresh layout.
func streamSeed(seed int64, offset float64, w, h float64) int64 {
	v := hash64(
		uint64(seed),
		uint64(int64(math.Round(offset*1e6))),
		math.Float64bits(w),
		math.Float64bits(h),
	)
	return int64(v)
}
