package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	. "github.com/lazycounter/lazycounter/pkg/common"
)

var errSearchTimeout = errors.New("search timeout")

// lazySmp runs one iterative deepening loop per thread over the shared
// transposition table. Helpers see the root moves in a shuffled order.
func lazySmp(ctx context.Context, e *Engine, ml []Move, maxDepth int) error {
	var g, gctx = errgroup.WithContext(ctx)
	var stopped = e.stopped
	var stopOnError = context.AfterFunc(gctx, func() {
		stopped.Store(true)
	})
	defer stopOnError()

	for i, t := range e.threads {
		var rootMoves = cloneMoves(ml)
		if i > 0 && len(rootMoves) > 2 {
			// keep the hash move first
			var rest = rootMoves[1:]
			frand.Shuffle(len(rest), func(a, b int) {
				rest[a], rest[b] = rest[b], rest[a]
			})
		}
		g.Go(func() error {
			return t.iterativeDeepening(rootMoves, maxDepth)
		})
	}
	return g.Wait()
}

func (t *thread) iterativeDeepening(ml []Move, maxDepth int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if r != errSearchTimeout {
				err = fmt.Errorf("search thread %v: %v", t.id, r)
			}
		}
		t.flushNodes()
		log.Debug().
			Int("thread", t.id).
			Int("depth", t.result.depth).
			Int64("nodes", t.nodes).
			Msg("search-thread-finished")
	}()

	var prevScore = 0
	for depth := 1; depth <= maxDepth; depth++ {
		var score = t.aspirationWindow(ml, depth, prevScore)
		t.result = mainLine{
			depth: depth,
			score: score,
			moves: t.stack[0].pv.toSlice(),
		}
		t.engine.onIterationComplete(t, t.result)
		prevScore = score
		if t.engine.stopped.Load() {
			break
		}
	}
	return nil
}

// bestThreadResult picks the deepest completed iteration, preferring the
// thread that searched more nodes.
func bestThreadResult(threads []*thread) mainLine {
	var results = lo.Map(threads, func(t *thread, _ int) mainLine {
		var result = t.result
		result.nodes = t.nodes
		return result
	})
	return lo.MaxBy(results, func(a, b mainLine) bool {
		return a.depth > b.depth ||
			a.depth == b.depth && a.nodes > b.nodes
	})
}
