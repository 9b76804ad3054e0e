package common

import (
	"errors"
	"testing"
)

var testFENs = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	"8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1",
	"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		var q, err2 = NewPositionFromFEN(p.String())
		if err2 != nil {
			t.Fatal(p.String(), err2)
		}
		if p != q {
			t.Error(fen, p.String(), q.String())
		}
	}
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	if p.String() != InitialPositionFen {
		t.Error(p.String())
	}
}

func TestInvalidFEN(t *testing.T) {
	var tests = []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1",
		"rnbqkbnr/pppxpppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1",
		"4k2R/8/8/8/8/8/8/4K3 w - - 0 1",
		"k7/9/8/8/8/8/8/K7 w - - 0 1",
		"k7/8/8/8/8/8/8/K6 w - - 0 1",
		"k7/8/8/8/8/8/8/K7/8 w - - 0 1",
		"k7/8/8/8/8/8/K7 w - - 0 1",
		"k7/ppppppppp/8/8/8/8/8/K7 w - - 0 1",
		"P6k/8/8/8/8/8/8/K7 w - - 0 1",
		"k7/8/8/8/8/8/8/K6p w - - 0 1",
		"k7/8/8/8/8/8/8/K7 w - - -5 1",
		"k7/8/8/8/8/8/8/K7 w - - x 1",
	}
	for _, fen := range tests {
		var _, err = NewPositionFromFEN(fen)
		if !errors.Is(err, ErrInvalidFEN) {
			t.Error(fen, err)
		}
	}

	// trailing garbage in the move counter is ignored
	var accepted = []string{
		"4k3/8/8/8/8/8/8/4K2R w - - 0 1x",
		"4k3/8/8/8/8/8/8/4K2R w - -",
	}
	for _, fen := range accepted {
		if _, err := NewPositionFromFEN(fen); err != nil {
			t.Error(fen, err)
		}
	}
}

func TestCastleRightsSanitized(t *testing.T) {
	var p, err = NewPositionFromFEN("4k3/8/8/8/8/8/8/4K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if p.CastleRights != WhiteKingSide {
		t.Error(p.CastleRights)
	}
}

func TestMakeUnmake(t *testing.T) {
	var buffer [MaxMoves]OrderedMove
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		var before = p
		for _, om := range p.GenerateMoves(buffer[:]) {
			var undo = p.MakeMove(om.Move)
			if p.Key != p.computeKey() {
				t.Error(fen, om.Move, "incremental key mismatch")
			}
			if p.Checkers != p.computeCheckers() {
				t.Error(fen, om.Move, "checkers mismatch")
			}
			if p.White&p.Black != 0 {
				t.Error(fen, om.Move, "colour sets overlap")
			}
			p.UnmakeMove(undo)
			if p != before {
				t.Error(fen, om.Move, p.String())
			}
		}
	}
}

func TestMakeUnmakeDeep(t *testing.T) {
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		walkKeys(t, &p, 3)
	}
}

func walkKeys(t *testing.T, p *Position, depth int) {
	if depth == 0 {
		return
	}
	var buffer [MaxMoves]OrderedMove
	for _, om := range p.GenerateMoves(buffer[:]) {
		var before = *p
		var undo, ok = p.TryMove(om.Move)
		if !ok {
			if *p != before {
				t.Fatal("rejected move changed position", om.Move)
			}
			continue
		}
		if p.Key != p.computeKey() {
			t.Fatal(before.String(), om.Move, "key mismatch")
		}
		walkKeys(t, p, depth-1)
		p.UnmakeMove(undo)
		if *p != before {
			t.Fatal(before.String(), om.Move, "unmake mismatch")
		}
	}
}

func TestNullMove(t *testing.T) {
	var p, err = NewPositionFromFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	if err != nil {
		t.Fatal(err)
	}
	var before = p
	var undo = p.MakeNullMove()
	if p.WhiteMove || p.EpSquare != SquareNone {
		t.Error(p.String())
	}
	if p.Key != p.computeKey() {
		t.Error("null move key mismatch")
	}
	p.UnmakeNullMove(undo)
	if p != before {
		t.Error(p.String())
	}
}

func TestEnPassantAndCastle(t *testing.T) {
	var p, err = NewPositionFromFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	if err != nil {
		t.Fatal(err)
	}
	var child, ok = p.MakeMoveLAN("e5f6")
	if !ok {
		t.Fatal("en passant not found")
	}
	if child.WhatPiece(SquareF5) != Empty || child.WhatPiece(SquareF6) != Pawn {
		t.Error(child.String())
	}

	p, err = NewPositionFromFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	child, ok = p.MakeMoveLAN("e1g1")
	if !ok {
		t.Fatal("castle not found")
	}
	if child.String() != "4k3/8/8/8/8/8/8/5RK1 b - - 1 1" {
		t.Error(child.String())
	}
}

func TestMirrorPosition(t *testing.T) {
	for _, fen := range testFENs {
		var p, _ = NewPositionFromFEN(fen)
		var m = MirrorPosition(&p)
		var mm = MirrorPosition(&m)
		if p != mm {
			t.Error(fen, mm.String())
		}
		if Perft(&p, 2) != Perft(&m, 2) {
			t.Error(fen, "mirror perft mismatch")
		}
	}
}
