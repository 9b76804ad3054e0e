package arena

import (
	"context"
	"math"
	"testing"

	"github.com/lazycounter/lazycounter/pkg/engine"
	pst "github.com/lazycounter/lazycounter/pkg/eval/pst"
)

func newTestEngine() IEngine {
	var options = engine.NewMainOptions(func() interface{} { return pst.NewEvaluationService() })
	options.Hash = 4
	return engine.NewEngine(options)
}

func TestPlayGame(t *testing.T) {
	var tests = []struct {
		opening        string
		engineAIsWhite bool
		result         int
		comment        string
	}{
		{"7k/8/6K1/8/8/8/8/R7 w - - 0 1", true, gameResultWhiteWins, "checkmate"},
		{"7K/8/6k1/8/8/8/8/r7 b - - 0 1", false, gameResultBlackWins, "checkmate"},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", true, gameResultDraw, "stalemate"},
		{"7k/8/6K1/8/8/8/8/N7 w - - 0 1", true, gameResultDraw, "low material"},
		{"7k/8/6K1/8/8/8/8/R7 w - - 100 80", true, gameResultDraw, "50 moves"},
	}
	var engineA, engineB = newTestEngine(), newTestEngine()
	for _, test := range tests {
		var res, err = playGame(context.Background(), engineA, engineB,
			TimeControl{FixedNodes: 5000},
			gameInfo{opening: test.opening, engineAIsWhite: test.engineAIsWhite})
		if err != nil {
			t.Fatal(err)
		}
		if res.result != test.result || res.comment != test.comment {
			t.Error(test.opening, res.result, res.comment)
		}
	}
}

func TestRun(t *testing.T) {
	var score, err = Run(context.Background(), Config{
		Concurrency: 2,
		TimeControl: TimeControl{FixedNodes: 5000},
		Openings:    []string{"7k/8/6K1/8/8/8/8/R7 w - - 0 1"},
		NewEngineA:  newTestEngine,
		NewEngineB:  newTestEngine,
	})
	if err != nil {
		t.Fatal(err)
	}
	// the side to move mates at once, so each engine wins with white
	if score != (Score{Wins: 1, Losses: 1}) {
		t.Error(score)
	}
}

func TestRunBadConfig(t *testing.T) {
	if _, err := Run(context.Background(), Config{NewEngineA: newTestEngine, NewEngineB: newTestEngine}); err == nil {
		t.Error("expected time control error")
	}
	if _, err := Run(context.Background(), Config{TimeControl: TimeControl{FixedNodes: 1}}); err == nil {
		t.Error("expected factory error")
	}
}

func TestComputeStat(t *testing.T) {
	var even = computeStat(Score{Wins: 10, Losses: 10, Draws: 5})
	if even.winningFraction != 0.5 || math.Abs(even.eloDifference) > 1e-9 || even.los != 0.5 {
		t.Error(even)
	}
	var better = computeStat(Score{Wins: 30, Losses: 10, Draws: 10})
	if better.eloDifference <= 0 || better.los <= 0.5 {
		t.Error(better)
	}
	if empty := computeStat(Score{}); empty.winningFraction != 0.5 {
		t.Error(empty)
	}
}

func TestGameResultString(t *testing.T) {
	for v, want := range map[int]string{
		gameResultDraw:      "1/2-1/2",
		gameResultWhiteWins: "1-0",
		gameResultBlackWins: "0-1",
		-1:                  "",
	} {
		if got := gameResultString(v); got != want {
			t.Error(v, got)
		}
	}
}
