package common

import "math/bits"

const (
	FileAMask uint64 = 0x0101010101010101 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
	FileHMask
)

const (
	Rank1Mask uint64 = 0xFF << (8 * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
	Rank8Mask
)

const edgesMask = FileAMask | FileHMask | Rank1Mask | Rank8Mask

var (
	FileMask = [8]uint64{FileAMask, FileBMask, FileCMask, FileDMask, FileEMask, FileFMask, FileGMask, FileHMask}
	RankMask = [8]uint64{Rank1Mask, Rank2Mask, Rank3Mask, Rank4Mask, Rank5Mask, Rank6Mask, Rank7Mask, Rank8Mask}
)

var (
	SquareMask       [64]uint64
	KnightAttacks    [64]uint64
	KingAttacks      [64]uint64
	whitePawnAttacks [64]uint64
	blackPawnAttacks [64]uint64
	betweenMask      [64][64]uint64
	rookMask         [64]uint64
	bishopMask       [64]uint64
	rookAttacks      [64][1 << (64 - rookShift)]uint64
	bishopAttacks    [64][1 << (64 - bishopShift)]uint64
)

// Fixed-shift magics: every square of a slider type uses the same index width.
const (
	rookShift   = 52
	bishopShift = 55
)

var (
	rookDirections   = [...]func(uint64) uint64{Up, Right, Down, Left}
	bishopDirections = [...]func(uint64) uint64{UpRight, UpLeft, DownRight, DownLeft}
)

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

func MoreThanOne(b uint64) bool {
	return b&(b-1) != 0
}

func Up(b uint64) uint64 {
	return b << 8
}

func Down(b uint64) uint64 {
	return b >> 8
}

func Right(b uint64) uint64 {
	return (b &^ FileHMask) << 1
}

func Left(b uint64) uint64 {
	return (b &^ FileAMask) >> 1
}

func UpRight(b uint64) uint64 {
	return Up(Right(b))
}

func UpLeft(b uint64) uint64 {
	return Up(Left(b))
}

func DownRight(b uint64) uint64 {
	return Down(Right(b))
}

func DownLeft(b uint64) uint64 {
	return Down(Left(b))
}

// BitboardString lists the squares of b, e.g. "(a1,e4)".
func BitboardString(b uint64) string {
	var s = ""
	for x := b; x != 0; x &= x - 1 {
		if s != "" {
			s += ","
		}
		s += SquareName(FirstOne(x))
	}
	return "(" + s + ")"
}

func PawnAttacks(from int, side bool) uint64 {
	if side {
		return whitePawnAttacks[from]
	}
	return blackPawnAttacks[from]
}

// https://www.chessprogramming.org/Magic_Bitboards
func BishopAttacks(from int, occ uint64) uint64 {
	return bishopAttacks[from][((bishopMask[from]&occ)*bishopMult[from])>>bishopShift]
}

func RookAttacks(from int, occ uint64) uint64 {
	return rookAttacks[from][((rookMask[from]&occ)*rookMult[from])>>rookShift]
}

func QueenAttacks(from int, occ uint64) uint64 {
	return BishopAttacks(from, occ) | RookAttacks(from, occ)
}

// occupancySubset returns the index-th subset of mask, enumerating subsets in
// the order of the bits of index.
func occupancySubset(mask uint64, index int) uint64 {
	var result uint64
	for i := 0; mask != 0; i++ {
		var lowest = mask & -mask
		mask &= mask - 1
		if index&(1<<i) != 0 {
			result |= lowest
		}
	}
	return result
}

func slideAttacks(sq int, occ uint64, directions []func(uint64) uint64) uint64 {
	var result uint64
	for _, shift := range directions {
		for x := shift(SquareMask[sq]); x != 0; x = shift(x) {
			result |= x
			if x&occ != 0 {
				break
			}
		}
	}
	return result
}

func relevantOccupancy(sq int, bishop bool) uint64 {
	if bishop {
		return slideAttacks(sq, 0, bishopDirections[:]) &^ edgesMask
	}
	var rankRay = RankMask[Rank(sq)] &^ (FileAMask | FileHMask)
	var fileRay = FileMask[File(sq)] &^ (Rank1Mask | Rank8Mask)
	return (rankRay | fileRay) &^ SquareMask[sq]
}

func initAttacks() {
	for sq := 0; sq < 64; sq++ {
		SquareMask[sq] = uint64(1) << uint(sq)
	}
	for sq := 0; sq < 64; sq++ {
		var b = SquareMask[sq]

		whitePawnAttacks[sq] = UpLeft(b) | UpRight(b)
		blackPawnAttacks[sq] = DownLeft(b) | DownRight(b)

		KnightAttacks[sq] = Up(UpLeft(b)) | Up(UpRight(b)) |
			Left(UpLeft(b)) | Right(UpRight(b)) |
			Left(DownLeft(b)) | Right(DownRight(b)) |
			Down(DownLeft(b)) | Down(DownRight(b))

		KingAttacks[sq] = Up(b) | Down(b) | Left(b) | Right(b) |
			UpLeft(b) | UpRight(b) | DownLeft(b) | DownRight(b)

		rookMask[sq] = relevantOccupancy(sq, false)
		for i := 0; i < 1<<PopCount(rookMask[sq]); i++ {
			var occ = occupancySubset(rookMask[sq], i)
			rookAttacks[sq][(occ*rookMult[sq])>>rookShift] = slideAttacks(sq, occ, rookDirections[:])
		}

		bishopMask[sq] = relevantOccupancy(sq, true)
		for i := 0; i < 1<<PopCount(bishopMask[sq]); i++ {
			var occ = occupancySubset(bishopMask[sq], i)
			bishopAttacks[sq][(occ*bishopMult[sq])>>bishopShift] = slideAttacks(sq, occ, bishopDirections[:])
		}
	}

	for s1 := 0; s1 < 64; s1++ {
		for s2 := 0; s2 < 64; s2++ {
			if s1 == s2 || QueenAttacks(s1, 0)&SquareMask[s2] == 0 {
				continue
			}
			var delta = (s2 - s1) / SquareDistance(s1, s2)
			for s := s1 + delta; s != s2; s += delta {
				betweenMask[s1][s2] |= SquareMask[s]
			}
		}
	}
}
