package engine

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	. "github.com/lazycounter/lazycounter/pkg/common"
)

type Engine struct {
	Options     Options
	transTable  *transTable
	timeManager *timeManager
	historyKeys map[uint64]int
	threads     []*thread
	progress    func(SearchInfo)
	mainLine    mainLine
	start       time.Time
	nodes       atomic.Int64
	stopped     *atomic.Bool // fresh per search
	canStop     atomic.Bool
	mu          sync.Mutex
}

type Evaluator interface {
	Evaluate(p *Position) int
}

type thread struct {
	engine        *Engine
	id            int
	position      Position
	history       historyService
	evaluator     Evaluator
	nodes         int64
	reportedNodes int64
	stopCheckMask int64
	result        mainLine
	stack         [stackSize]struct {
		moveList       [MaxMoves]OrderedMove
		quietsSearched [MaxMoves]Move
		pv             pv
		undo           Undo
		key            uint64
		rule50         int
		lastMove       Move
		staticEval     int
		killer1        Move
		killer2        Move
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves []Move
	score int
	depth int
	nodes int64
}

func NewEngine(options Options) *Engine {
	return &Engine{
		Options: options,
	}
}

// Prepare allocates the transposition table and the search threads for the
// current options. It is called by Search.
func (e *Engine) Prepare() error {
	if e.transTable == nil || e.transTable.requested != e.Options.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		var tt, err = newTransTable(e.Options.Hash)
		if err != nil {
			return err
		}
		e.transTable = tt
	}
	var threads = max(1, e.Options.Threads)
	if len(e.threads) != threads {
		e.threads = make([]*thread, threads)
		for i := range e.threads {
			e.threads[i] = &thread{
				engine:    e,
				id:        i,
				evaluator: e.buildEvaluator(),
			}
		}
	}
	for _, t := range e.threads {
		t.stopCheckMask = e.Options.stopCheckMask()
	}
	return nil
}

// Search runs until ctx is cancelled or a limit is reached. The last
// element of Positions is the root; earlier ones are the game history.
func (e *Engine) Search(ctx context.Context, searchParams SearchParams) SearchInfo {
	e.start = time.Now()
	var p = searchParams.Positions[len(searchParams.Positions)-1]
	var limits = searchParams.Limits
	var logger = log.With().Str("search", uuid.NewString()).Logger()

	if err := e.Prepare(); err != nil {
		logger.Error().Err(err).Msg("search-prepare-failed")
		return e.fallbackResult(&p)
	}

	var searchCtx, tm = newTimeManager(ctx, e.start, limits, &p)
	e.timeManager = tm
	defer tm.Close()

	var stopped = &atomic.Bool{}
	e.stopped = stopped
	e.canStop.Store(false)
	e.nodes.Store(0)
	var stopOnCancel = context.AfterFunc(searchCtx, func() {
		stopped.Store(true)
	})
	defer stopOnCancel()

	e.transTable.IncDate()
	e.historyKeys = getHistoryKeys(searchParams.Positions)
	e.progress = searchParams.Progress
	e.mainLine = mainLine{}
	for _, t := range e.threads {
		t.position = p
		t.nodes = 0
		t.reportedNodes = 0
		t.result = mainLine{}
		t.history.Clear()
		t.clearKillers()
	}

	var ml = e.genRootMoves(&p)
	if len(ml) == 0 {
		var result = e.currentSearchResult()
		if p.IsCheck() {
			result.Outcome = OutcomeCheckmate
		} else {
			result.Outcome = OutcomeStalemate
		}
		logger.Info().Stringer("outcome", result.Outcome).Msg("search-no-legal-moves")
		return result
	}
	e.mainLine = mainLine{moves: []Move{ml[0]}}
	if len(ml) == 1 && tm.hasClock() && !limits.Infinite &&
		limits.Depth == 0 && limits.Nodes == 0 {
		return e.currentSearchResult()
	}

	var maxDepth = maxHeight
	if limits.Depth > 0 {
		maxDepth = min(limits.Depth, maxHeight)
	}

	logger.Info().
		Int("threads", len(e.threads)).
		Int("hash", e.transTable.Size()).
		Int("moves", len(ml)).
		Msg("search-started")

	if err := lazySmp(searchCtx, e, ml, maxDepth); err != nil {
		logger.Error().Err(err).Msg("search-thread-failed")
	}

	if best := bestThreadResult(e.threads); len(best.moves) != 0 {
		e.mainLine = best
	}
	var result = e.currentSearchResult()
	logger.Info().
		Int("depth", result.Depth).
		Int64("nodes", result.Nodes).
		Dur("time", result.Time).
		Stringer("bestmove", result.BestMove()).
		Msg("search-finished")
	return result
}

func getHistoryKeys(positions []Position) map[uint64]int {
	var result = make(map[uint64]int)
	for i := len(positions) - 1; i >= 0; i-- {
		var p = &positions[i]
		result[p.Key]++
		if p.Rule50 == 0 {
			break
		}
	}
	return result
}

// Clear forgets everything learned in previous searches.
func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	for _, t := range e.threads {
		t.history.Clear()
		t.clearKillers()
	}
}

func (e *Engine) currentSearchResult() SearchInfo {
	var result = SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    newUciScore(e.mainLine.score),
		Nodes:    e.nodes.Load(),
		Time:     time.Since(e.start),
	}
	if e.transTable != nil {
		result.Hashfull = e.transTable.Hashfull()
	}
	return result
}

func (e *Engine) fallbackResult(p *Position) SearchInfo {
	var result = SearchInfo{Time: time.Since(e.start)}
	var ml = p.GenerateLegalMoves()
	if len(ml) != 0 {
		result.MainLine = ml[:1]
	} else if p.IsCheck() {
		result.Outcome = OutcomeCheckmate
	} else {
		result.Outcome = OutcomeStalemate
	}
	return result
}

func (e *Engine) onIterationComplete(t *thread, line mainLine) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t.flushNodes()
	e.canStop.Store(true)
	if line.depth > e.mainLine.depth {
		e.mainLine = line
		e.timeManager.OnIterationComplete(line)
		if e.progress != nil && e.nodes.Load() >= int64(e.Options.ProgressMinNodes) {
			e.progress(e.currentSearchResult())
		}
	}
}

// genRootMoves returns the legal moves, hash move first, then in the order
// of the move iterator.
func (e *Engine) genRootMoves(p *Position) []Move {
	var t = e.threads[0]
	var _, _, _, transMove, _ = e.transTable.Read(p.Key)

	var mi = moveIterator{
		position:  p,
		buffer:    t.stack[0].moveList[:],
		history:   &t.history,
		transMove: transMove,
	}
	mi.Init()

	var result []Move
	var child = *p
	for mi.Reset(); ; {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		if undo, ok := child.TryMove(move); ok {
			child.UnmakeMove(undo)
			result = append(result, move)
		}
	}
	return result
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child != nil && child.size > 0 {
		var n = min(child.size, len(pv.items)-1)
		copy(pv.items[1:], child.items[:n])
		pv.size += n
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}

func (e *Engine) buildEvaluator() Evaluator {
	if e.Options.EvalBuilder == nil {
		panic(errors.New("eval builder not set"))
	}
	if ev, ok := e.Options.EvalBuilder().(Evaluator); ok {
		return ev
	}
	panic(errors.New("bad eval builder"))
}
