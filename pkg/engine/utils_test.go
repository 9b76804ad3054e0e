package engine

import (
	"testing"

	. "github.com/lazycounter/lazycounter/pkg/common"
)

func parseTestMove(t *testing.T, fen, lan string) Move {
	t.Helper()
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	var m, ok = p.ParseMoveLAN(lan)
	if !ok {
		t.Fatal(fen, lan)
	}
	return m
}

func TestMoveMatchesBoard(t *testing.T) {
	var tests = []struct {
		name    string
		fromFEN string
		lan     string
		board   string
		want    bool
	}{
		{"same position", InitialPositionFen, "e2e4", InitialPositionFen, true},
		{"same move elsewhere", InitialPositionFen, "g1f3",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1", true},
		{"wrong piece", "4k3/8/8/8/8/8/8/4K1B1 w - - 0 1", "g1h2", InitialPositionFen, false},
		{"empty from square", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a2", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", false},
		{"own piece on destination", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a2", "4k3/8/8/8/8/8/P7/R3K3 w - - 0 1", false},
		{"wrong capture", "4k3/8/8/3n4/8/8/8/3RK3 w - - 0 1", "d1d5", "4k3/8/8/3b4/8/8/8/3RK3 w - - 0 1", false},
		{"capture of empty square", "4k3/8/8/3n4/8/8/8/3RK3 w - - 0 1", "d1d5", "4k3/8/8/8/8/8/8/3RK3 w - - 0 1", false},
		{"quiet onto enemy piece", "4k3/8/8/8/8/8/8/3RK3 w - - 0 1", "d1d5", "4k3/8/8/3n4/8/8/8/3RK3 w - - 0 1", false},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", true},
		{"bogus en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", "4k3/8/8/3pP3/8/8/8/4K3 w - - 0 1", false},
		{"other side to move", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", "e7e5",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1", false},
	}
	for _, test := range tests {
		var m = parseTestMove(t, test.fromFEN, test.lan)
		var p, err = NewPositionFromFEN(test.board)
		if err != nil {
			t.Fatal(err)
		}
		if got := moveMatchesBoard(&p, m); got != test.want {
			t.Error(test.name, got)
		}
	}
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	if moveMatchesBoard(&p, MoveEmpty) {
		t.Error("empty move")
	}
}
