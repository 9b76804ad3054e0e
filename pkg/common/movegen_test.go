package common

import (
	"sort"
	"strings"
	"testing"

	"github.com/notnil/chess"
)

func legalMoveNames(p *Position) []string {
	var result []string
	for _, m := range p.GenerateLegalMoves() {
		result = append(result, m.String())
	}
	sort.Strings(result)
	return result
}

func oracleMoveNames(t *testing.T, fen string) []string {
	var opt, err = chess.FEN(fen)
	if err != nil {
		t.Fatal(fen, err)
	}
	var game = chess.NewGame(opt)
	var result []string
	for _, m := range game.ValidMoves() {
		result = append(result, m.String())
	}
	sort.Strings(result)
	return result
}

func TestLegalMovesMatchOracle(t *testing.T) {
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		checkAgainstOracle(t, &p)
		for _, m := range p.GenerateLegalMoves() {
			var undo = p.MakeMove(m)
			checkAgainstOracle(t, &p)
			p.UnmakeMove(undo)
		}
	}
}

func checkAgainstOracle(t *testing.T, p *Position) {
	var fen = p.String()
	var got = strings.Join(legalMoveNames(p), " ")
	var want = strings.Join(oracleMoveNames(t, fen), " ")
	if got != want {
		t.Errorf("%v\ngot  %v\nwant %v", fen, got, want)
	}
}

func TestGenerateCaptures(t *testing.T) {
	var buffer [MaxMoves]OrderedMove
	for _, fen := range testFENs {
		var p, _ = NewPositionFromFEN(fen)
		var all = make(map[Move]bool)
		for _, om := range p.GenerateMoves(buffer[:]) {
			all[om.Move] = true
		}
		for _, om := range p.GenerateCaptures(buffer[:]) {
			var m = om.Move
			if !all[m] {
				t.Error(fen, m, "not pseudo-legal")
			}
			if !m.IsCapture() && m.Promotion() != Queen {
				t.Error(fen, m, "quiet move in captures")
			}
		}
		for m := range all {
			if m.IsCapture() && (m.Promotion() == Empty || m.Promotion() == Queen) {
				var found = false
				for _, om := range p.GenerateCaptures(buffer[:]) {
					found = found || om.Move == m
				}
				if !found {
					t.Error(fen, m, "capture missing")
				}
			}
		}
	}
}

func TestGenerateQuietChecks(t *testing.T) {
	var p, err = NewPositionFromFEN("3k4/8/8/8/8/8/8/R3K3 w Q - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var buffer [MaxMoves]OrderedMove
	var names []string
	for _, om := range p.GenerateQuietChecks(buffer[:]) {
		names = append(names, om.Move.String())
	}
	sort.Strings(names)
	if strings.Join(names, " ") != "a1a8 a1d1 e1c1" {
		t.Error(names)
	}
}

func TestCheckEvasions(t *testing.T) {
	// double check: only king moves
	var p, err = NewPositionFromFEN("4k3/8/8/8/1b6/8/4r3/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsCheck() || !MoreThanOne(p.Checkers) {
		t.Fatal("expected double check")
	}
	for _, m := range p.GenerateLegalMoves() {
		if m.MovingPiece() != King {
			t.Error(m)
		}
	}
}

func TestIsPseudoLegal(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var m, ok = p.ParseMoveLAN("e2e4")
	if !ok || !p.IsPseudoLegal(m) {
		t.Error("e2e4")
	}
	if p.IsPseudoLegal(MoveEmpty) {
		t.Error("empty move")
	}
	var other, _ = NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var castle, _ = other.ParseMoveLAN("e1g1")
	if p.IsPseudoLegal(castle) {
		t.Error("castle in initial position")
	}
}
