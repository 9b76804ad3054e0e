package common

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [2 * (King + 1) * 64]uint64
)

const zobristSeed = "lazycounter zobrist"

func initKeys() {
	var rng = NewSeededRNG(zobristSeed)
	sideKey = randomUint64(rng)
	for i := range enpassantKey {
		enpassantKey[i] = randomUint64(rng)
	}
	for i := range pieceSquareKey {
		pieceSquareKey[i] = randomUint64(rng)
	}

	var castle [4]uint64
	for i := range castle {
		castle[i] = randomUint64(rng)
	}
	for i := range castlingKey {
		for j := range castle {
			if i&(1<<j) != 0 {
				castlingKey[i] ^= castle[j]
			}
		}
	}
}

func PieceSquareKey(piece int, side bool, square int) uint64 {
	return pieceSquareKey[(let(side, 0, King+1)+piece)*64+square]
}

// computeKey hashes the position from scratch.
func (p *Position) computeKey() uint64 {
	var result uint64
	if p.WhiteMove {
		result ^= sideKey
	}
	result ^= castlingKey[p.CastleRights]
	if p.EpSquare != SquareNone {
		result ^= enpassantKey[File(p.EpSquare)]
	}
	for x := p.White | p.Black; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		result ^= PieceSquareKey(p.WhatPiece(sq), p.White&SquareMask[sq] != 0, sq)
	}
	return result
}
