package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/lazycounter/lazycounter/internal/arena"
	"github.com/lazycounter/lazycounter/internal/evalbuilder"
	"github.com/lazycounter/lazycounter/internal/utils"
	"github.com/lazycounter/lazycounter/pkg/common"
	"github.com/lazycounter/lazycounter/pkg/engine"
)

type application struct {
	flags cliFlags
	out   io.Writer
	in    io.Reader
}

func (app *application) commands(ctx context.Context) *CommandHandler {
	var ch = NewCommandHandler()
	ch.Add("search", func() error { return app.search(ctx) })
	ch.Add("perft", app.perft)
	ch.Add("bench", func() error { return app.bench(ctx) })
	ch.Add("magics", app.magics)
	ch.Add("arena", func() error { return app.arena(ctx) })
	ch.Add("play", func() error { return app.play(ctx) })
	return ch
}

func (app *application) newEngine(evalName string) (*engine.Engine, error) {
	var builder, err = evalbuilder.Get(evalName)
	if err != nil {
		return nil, err
	}
	var options = engine.NewMainOptions(builder)
	options.Hash = app.flags.hash
	options.Threads = app.flags.threads
	var eng = engine.NewEngine(options)
	if err := eng.Prepare(); err != nil {
		return nil, err
	}
	return eng, nil
}

func (app *application) position() (common.Position, error) {
	var fen = app.flags.fen
	if fen == "" {
		fen = common.InitialPositionFen
	}
	return common.NewPositionFromFEN(fen)
}

func (app *application) limits() common.LimitsType {
	var limits = common.LimitsType{
		Depth:    app.flags.depth,
		MoveTime: app.flags.moveTime,
		Nodes:    app.flags.nodes,
	}
	if limits.Depth == 0 && limits.MoveTime == 0 && limits.Nodes == 0 {
		limits.Infinite = true
	}
	return limits
}

func (app *application) search(ctx context.Context) error {
	var p, err = app.position()
	if err != nil {
		return err
	}
	eng, err := app.newEngine(app.flags.eval)
	if err != nil {
		return err
	}
	var si = eng.Search(ctx, common.SearchParams{
		Positions: []common.Position{p},
		Limits:    app.limits(),
		Progress: func(si common.SearchInfo) {
			fmt.Fprintln(app.out, searchInfoToString(si))
		},
	})
	if si.Outcome != common.OutcomeNone {
		fmt.Fprintln(app.out, "outcome", si.Outcome)
		return nil
	}
	fmt.Fprintln(app.out, searchInfoToString(si))
	fmt.Fprintln(app.out, "bestmove", si.BestMove())
	return nil
}

func searchInfoToString(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var nps = si.Nodes * 1000 / (si.Time.Milliseconds() + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v hashfull %v",
		si.Nodes, si.Time.Milliseconds(), nps, si.Hashfull)
	if len(si.MainLine) != 0 {
		sb.WriteString(" pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func (app *application) perft() error {
	var p, err = app.position()
	if err != nil {
		return err
	}
	var depth = max(1, app.flags.depth)
	var start = time.Now()
	var entries = common.PerftDivide(&p, depth)
	for _, entry := range entries {
		fmt.Fprintf(app.out, "%v: %v\n", entry.Move, entry.Nodes)
	}
	var total = lo.SumBy(entries, func(e common.PerftEntry) int64 { return e.Nodes })
	fmt.Fprintln(app.out, "nodes", total)
	log.Info().
		Int("depth", depth).
		Int64("nodes", total).
		Dur("time", time.Since(start)).
		Msg("perft-finished")
	return nil
}

var benchFENs = []string{
	common.InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"2r3k1/pp3ppp/2n1b3/3p4/3P4/2NB1N2/PP3PPP/4R1K1 w - - 0 20",
	"8/k7/3p4/p2P1p2/P2P1P2/8/8/K7 w - - 0 1",
}

// bench searches a fixed set of positions to a fixed depth. Node counts
// are reproducible with one thread.
func (app *application) bench(ctx context.Context) error {
	var eng, err = app.newEngine(app.flags.eval)
	if err != nil {
		return err
	}
	var depth = app.flags.depth
	if depth == 0 {
		depth = 8
	}
	var start = time.Now()
	var nodes int64
	for _, fen := range benchFENs {
		var p, err = common.NewPositionFromFEN(fen)
		if err != nil {
			return err
		}
		eng.Clear()
		var si = eng.Search(ctx, common.SearchParams{
			Positions: []common.Position{p},
			Limits:    common.LimitsType{Depth: depth},
		})
		nodes += si.Nodes
		fmt.Fprintf(app.out, "%v bestmove %v nodes %v\n", fen, si.BestMove(), si.Nodes)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	var elapsed = time.Since(start)
	fmt.Fprintln(app.out, "Time", elapsed)
	fmt.Fprintln(app.out, "Nodes", nodes)
	fmt.Fprintln(app.out, "kNPS", nodes/(elapsed.Milliseconds()+1))
	return nil
}

// magics searches magic multipliers for every square and prints them as
// Go array literals.
func (app *application) magics() error {
	var rng = common.NewSeededRNG(app.flags.seed)
	for _, bishop := range []bool{false, true} {
		var kind = "rook"
		if bishop {
			kind = "bishop"
		}
		var start = time.Now()
		var sb = &strings.Builder{}
		fmt.Fprintf(sb, "var %vMagics = [64]uint64{\n", kind)
		for sq := 0; sq < 64; sq++ {
			var magic, found = common.FindMagic(sq, bishop, rng, app.flags.tries)
			if !found {
				return fmt.Errorf("no %v magic found for %v", kind, common.SquareName(sq))
			}
			fmt.Fprintf(sb, "\t0x%016x, // %v\n", magic, common.SquareName(sq))
		}
		sb.WriteString("}\n")
		fmt.Fprint(app.out, sb.String())
		log.Info().Str("kind", kind).Dur("time", time.Since(start)).Msg("magics-found")
	}
	return nil
}

func (app *application) arena(ctx context.Context) error {
	var newEngine = func(evalName string) (func() arena.IEngine, error) {
		if _, err := evalbuilder.Get(evalName); err != nil {
			return nil, err
		}
		return func() arena.IEngine {
			var eng, err = app.newEngine(evalName)
			if err != nil {
				panic(err)
			}
			return eng
		}, nil
	}
	engineA, err := newEngine(app.flags.eval)
	if err != nil {
		return err
	}
	engineB, err := newEngine(app.flags.evalB)
	if err != nil {
		return err
	}
	var tc = arena.TimeControl{FixedNodes: app.flags.gameNodes}
	if app.flags.moveTime != 0 {
		tc = arena.TimeControl{FixedTime: time.Duration(app.flags.moveTime) * time.Millisecond}
	}
	score, err := arena.Run(ctx, arena.Config{
		Concurrency: app.flags.concurrency,
		TimeControl: tc,
		NewEngineA:  engineA,
		NewEngineB:  engineB,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Score: %v - %v - %v\n", score.Wins, score.Losses, score.Draws)
	return nil
}

func (app *application) play(ctx context.Context) error {
	var eng, err = app.newEngine(app.flags.eval)
	if err != nil {
		return err
	}
	var limits = app.limits()
	if limits.Infinite {
		limits = common.LimitsType{MoveTime: 3000}
	}
	return utils.PlayCli(ctx, eng, limits, app.in, app.out)
}
