package engine

import (
	"testing"

	. "github.com/lazycounter/lazycounter/pkg/common"
)

func TestMoveIteratorOrder(t *testing.T) {
	var p, _ = NewPositionFromFEN("4k3/8/8/3p4/4P3/8/8/R3K3 w - - 0 1")
	var parse = func(lan string) Move {
		var m, ok = p.ParseMoveLAN(lan)
		if !ok {
			t.Fatal(lan)
		}
		return m
	}
	var history historyService
	var buffer [MaxMoves]OrderedMove
	var mi = moveIterator{
		position:  &p,
		buffer:    buffer[:],
		history:   &history,
		transMove: parse("a1a2"),
		killer1:   parse("e1d1"),
		killer2:   parse("e1f1"),
	}
	mi.Init()
	mi.Reset()

	var want = []string{"a1a2", "e4d5", "e1d1", "e1f1"}
	for _, lan := range want {
		if got := mi.Next(); got.String() != lan {
			t.Fatal("want", lan, "got", got)
		}
	}
	var rest = 0
	for mi.Next() != MoveEmpty {
		rest++
	}
	if total := len(p.GenerateLegalMoves()); rest+len(want) != total {
		t.Error(rest+len(want), total)
	}
}

func TestMoveIteratorHistory(t *testing.T) {
	var p, _ = NewPositionFromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	var good, _ = p.ParseMoveLAN("a1a7")
	var bad, _ = p.ParseMoveLAN("a1a2")
	var history historyService
	history.Update(p.WhiteMove, []Move{bad, good}, good, 8)
	if history.ReadTotal(p.WhiteMove, good) <= 0 || history.ReadTotal(p.WhiteMove, bad) >= 0 {
		t.Fatal(history.ReadTotal(p.WhiteMove, good), history.ReadTotal(p.WhiteMove, bad))
	}

	var buffer [MaxMoves]OrderedMove
	var mi = moveIterator{position: &p, buffer: buffer[:], history: &history}
	mi.Init()
	mi.Reset()
	if first := mi.Next(); first != good {
		t.Error(first)
	}
	var last Move
	for m := mi.Next(); m != MoveEmpty; m = mi.Next() {
		last = m
	}
	if last != bad {
		t.Error(last)
	}
}

func TestMoveIteratorQS(t *testing.T) {
	var tests = []struct {
		fen     string
		seeSkip bool
		want    []string
	}{
		{"1r4k1/P3n3/8/3r4/2P1R3/8/8/4K3 w - - 0 1", false, []string{"a7b8q", "a7a8q", "c4d5", "e4e7"}},
		// losing rook capture skipped
		{"4k3/8/2p5/3p4/8/8/8/3RK3 w - - 0 1", true, nil},
		{"4k3/8/2p5/3p4/8/8/8/3RK3 w - - 0 1", false, []string{"d1d5"}},
	}
	for _, test := range tests {
		var p, _ = NewPositionFromFEN(test.fen)
		var buffer [MaxMoves]OrderedMove
		var mi = moveIteratorQS{position: &p, buffer: buffer[:], seeSkip: test.seeSkip}
		mi.Init()
		mi.Reset()
		var got []string
		for m := mi.Next(); m != MoveEmpty; m = mi.Next() {
			got = append(got, m.String())
		}
		if len(got) != len(test.want) {
			t.Error(test.fen, got)
			continue
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Error(test.fen, got)
				break
			}
		}
	}
}

func TestMoveIteratorForeignTransMove(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var foreign = []Move{
		parseTestMove(t, "4k3/8/8/8/8/8/8/4K1B1 w - - 0 1", "g1h2"),
		parseTestMove(t, "4k3/8/8/3n4/8/8/8/3RK3 w - - 0 1", "d1d5"),
		parseTestMove(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6"),
	}
	for _, transMove := range foreign {
		var history historyService
		var buffer [MaxMoves]OrderedMove
		var mi = moveIterator{position: &p, buffer: buffer[:], history: &history, transMove: transMove}
		mi.Init()
		mi.Reset()
		var count = 0
		for m := mi.Next(); m != MoveEmpty; m = mi.Next() {
			if m == transMove {
				t.Error("foreign move yielded", m)
			}
			count++
		}
		if count != 20 {
			t.Error(count)
		}
	}
}
