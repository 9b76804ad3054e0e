package common

import (
	"testing"
)

func TestSliderAttacks(t *testing.T) {
	var rng = NewSeededRNG("slider attacks")
	for i := 0; i < 2000; i++ {
		var occ = sparseRandom(rng) | sparseRandom(rng)
		for sq := 0; sq < 64; sq++ {
			if got, want := RookAttacks(sq, occ), slideAttacks(sq, occ, rookDirections[:]); got != want {
				t.Fatal("rook", SquareName(sq), BitboardString(occ), BitboardString(got), BitboardString(want))
			}
			if got, want := BishopAttacks(sq, occ), slideAttacks(sq, occ, bishopDirections[:]); got != want {
				t.Fatal("bishop", SquareName(sq), BitboardString(occ), BitboardString(got), BitboardString(want))
			}
		}
	}
}

func TestLeaperAttacks(t *testing.T) {
	var tests = []struct {
		name  string
		got   uint64
		count int
	}{
		{"knight a1", KnightAttacks[SquareA1], 2},
		{"knight d4", KnightAttacks[SquareD4], 8},
		{"king h8", KingAttacks[SquareH8], 3},
		{"king e4", KingAttacks[SquareE4], 8},
		{"white pawn a2", PawnAttacks(SquareA2, true), 1},
		{"black pawn e7", PawnAttacks(SquareE7, false), 2},
	}
	for _, test := range tests {
		if PopCount(test.got) != test.count {
			t.Error(test.name, BitboardString(test.got))
		}
	}
}

func TestBetweenMask(t *testing.T) {
	if betweenMask[SquareA1][SquareH8] != SquareMask[SquareB2]|SquareMask[SquareC3]|SquareMask[SquareD4]|
		SquareMask[SquareE5]|SquareMask[SquareF6]|SquareMask[SquareG7] {
		t.Error(BitboardString(betweenMask[SquareA1][SquareH8]))
	}
	if betweenMask[SquareE1][SquareE2] != 0 || betweenMask[SquareA1][SquareB3] != 0 {
		t.Error("non-empty between mask")
	}
	if betweenMask[SquareH1][SquareE1] != SquareMask[SquareF1]|SquareMask[SquareG1] {
		t.Error(BitboardString(betweenMask[SquareH1][SquareE1]))
	}
}

func TestSquareNames(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		var parsed, err = ParseSquare(SquareName(sq))
		if err != nil || parsed != sq {
			t.Error(sq, parsed, err)
		}
	}
	if _, err := ParseSquare("i1"); err == nil {
		t.Error("i1 parsed")
	}
	if FlipSquare(SquareA1) != SquareA8 || FlipSquare(SquareE2) != SquareE7 {
		t.Error("flip")
	}
}
