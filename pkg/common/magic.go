package common

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// FindMagic searches for a fixed-shift multiplier for a slider on sq.
// It returns false if no multiplier was found within tries attempts.
func FindMagic(sq int, bishop bool, rng *frand.RNG, tries int) (uint64, bool) {
	var mask = relevantOccupancy(sq, bishop)
	var n = 1 << PopCount(mask)
	var occupancies = make([]uint64, n)
	var attacks = make([]uint64, n)
	for i := range occupancies {
		occupancies[i] = occupancySubset(mask, i)
		attacks[i] = sliderAttacksSlow(sq, occupancies[i], bishop)
	}

	var shift = uint(let(bishop, bishopShift, rookShift))
	var used = make([]uint64, 1<<(64-shift))
	var epoch = make([]int, len(used))

	for try := 1; try <= tries; try++ {
		var magic = sparseRandom(rng)
		if PopCount((mask*magic)&0xFF00000000000000) < 6 {
			continue
		}
		var ok = true
		for i := 0; i < n && ok; i++ {
			var index = (occupancies[i] * magic) >> shift
			if epoch[index] != try {
				epoch[index] = try
				used[index] = attacks[i]
			} else if used[index] != attacks[i] {
				ok = false
			}
		}
		if ok {
			return magic, true
		}
	}
	return 0, false
}

// ValidateMagic reports whether magic maps every relevant occupancy of sq
// without a destructive collision.
func ValidateMagic(sq int, bishop bool, magic uint64) bool {
	var mask = relevantOccupancy(sq, bishop)
	var shift = uint(let(bishop, bishopShift, rookShift))
	var seen = make(map[uint64]uint64)
	for i := 0; i < 1<<PopCount(mask); i++ {
		var occ = occupancySubset(mask, i)
		var attacks = sliderAttacksSlow(sq, occ, bishop)
		var index = (occ * magic) >> shift
		if prev, found := seen[index]; found && prev != attacks {
			return false
		}
		seen[index] = attacks
	}
	return true
}

// BuiltinMagic returns the multiplier compiled into the attack tables.
func BuiltinMagic(sq int, bishop bool) uint64 {
	if bishop {
		return bishopMult[sq]
	}
	return rookMult[sq]
}

func sliderAttacksSlow(sq int, occ uint64, bishop bool) uint64 {
	if bishop {
		return slideAttacks(sq, occ, bishopDirections[:])
	}
	return slideAttacks(sq, occ, rookDirections[:])
}

func randomUint64(rng *frand.RNG) uint64 {
	return binary.LittleEndian.Uint64(rng.Bytes(8))
}

// few set bits make good magic candidates
func sparseRandom(rng *frand.RNG) uint64 {
	return randomUint64(rng) & randomUint64(rng) & randomUint64(rng)
}

// NewSeededRNG returns a deterministic generator for the given seed text.
func NewSeededRNG(seed string) *frand.RNG {
	var key [32]byte
	copy(key[:], seed)
	return frand.NewCustom(key[:], 1024, 12)
}
