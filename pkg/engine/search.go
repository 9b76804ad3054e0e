package engine

import (
	. "github.com/lazycounter/lazycounter/pkg/common"
)

func (t *thread) aspirationWindow(ml []Move, depth, prevScore int) int {
	if t.engine.Options.AspirationWindows &&
		depth >= 5 && !(prevScore <= valueLoss || prevScore >= valueWin) {
		const Window = 25
		var alpha = max(-valueInfinity, prevScore-Window)
		var beta = min(valueInfinity, prevScore+Window)
		var score = t.searchRoot(ml, alpha, beta, depth)
		if score > alpha && score < beta {
			return score
		}
		if score >= beta {
			beta = valueInfinity
		}
		if score <= alpha {
			alpha = -valueInfinity
		}
		score = t.searchRoot(ml, alpha, beta, depth)
		if score > alpha && score < beta {
			return score
		}
	}
	return t.searchRoot(ml, -valueInfinity, valueInfinity, depth)
}

// searchRoot searches the legal root moves in the order of ml and moves
// every improving move to the front.
func (t *thread) searchRoot(ml []Move, alpha, beta, depth int) int {
	const height = 0
	t.clearPV(height)
	var options = &t.engine.Options
	var position = &t.position
	var best = -valueInfinity
	var bestMove Move
	var oldAlpha = alpha

	for i, move := range ml {
		if !t.makeMove(move, height) {
			continue
		}
		var newDepth = depth - 1
		if options.CheckExtension && position.IsCheck() && depth >= 3 {
			newDepth++
		}
		var score int
		if i == 0 {
			score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
		} else {
			score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth, height+1)
			if score > alpha {
				score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
			}
		}
		t.unmakeMove(height)

		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			moveToBegin(ml, i)
			if alpha >= beta {
				break
			}
		}
	}

	var bound = boundUpper
	if best >= beta {
		bound = boundLower
	} else if best > oldAlpha {
		bound = boundExact
	}
	if bound != boundUpper {
		t.engine.transTable.Update(position.Key, depth, valueToTT(best, height), bound, bestMove)
	}
	return best
}

// main search method
func (t *thread) alphaBeta(alpha, beta, depth, height int) int {
	if depth <= 0 {
		return t.quiescence(alpha, beta, height, 0)
	}
	t.clearPV(height)

	var pvNode = beta != alpha+1
	var position = &t.position
	var isCheck = position.IsCheck()

	if height >= maxHeight {
		return t.evaluate()
	}
	if t.isRepeat(height) || isDraw(position) {
		return valueDraw
	}
	// mate distance pruning
	if winIn(height+1) <= alpha {
		return alpha
	}
	if lossIn(height+2) >= beta && !isCheck {
		return beta
	}

	// transposition table
	var tt = t.engine.transTable.Probe(position.Key, depth, alpha, beta, height)
	var ttMove = tt.move
	if ttMove != MoveEmpty && !moveMatchesBoard(position, ttMove) {
		ttMove = MoveEmpty
	}
	if tt.kind == probeCutoff && !pvNode {
		if tt.score >= beta && ttMove != MoveEmpty && !isCaptureOrPromotion(ttMove) {
			t.updateKiller(ttMove, height)
		}
		return tt.score
	}

	var staticEval = t.evaluate()
	t.stack[height].staticEval = staticEval

	var options = &t.engine.Options
	if height+2 <= maxHeight {
		t.stack[height+2].killer1 = MoveEmpty
		t.stack[height+2].killer2 = MoveEmpty
	}

	// null-move pruning
	if !pvNode && !isCheck && t.nullMoveAllowed(depth, beta, staticEval, tt) {
		var reduction = options.NullMoveReduction +
			depth/max(1, options.NullMoveDepthDivisor) +
			min(2, (staticEval-beta)/200)
		t.makeMove(MoveEmpty, height)
		var score = -t.alphaBeta(-beta, -(beta - 1), depth-reduction, height+1)
		t.unmakeMove(height)
		if score >= beta {
			if score >= valueWin {
				score = beta
			}
			return score
		}
	}

	var killer1 = t.stack[height].killer1
	var killer2 = t.stack[height].killer2
	var mi = moveIterator{
		position:  position,
		buffer:    t.stack[height].moveList[:],
		history:   &t.history,
		transMove: ttMove,
		killer1:   killer1,
		killer2:   killer2,
	}
	mi.Init()

	var movesSearched = 0
	var hasLegalMove = false
	var quietsSearched = t.stack[height].quietsSearched[:0]
	var bestMove Move
	var best = -valueInfinity
	var oldAlpha = alpha

	for mi.Reset(); ; {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		var isNoisy = isCaptureOrPromotion(move)

		if !t.makeMove(move, height) {
			continue
		}
		hasLegalMove = true
		movesSearched++

		var givesCheck = position.IsCheck()
		var extension, reduction int

		if options.CheckExtension && givesCheck && depth >= 3 {
			extension = 1
		}

		if options.Lmr && depth >= 3 && movesSearched > 1 &&
			!isNoisy && !isCheck && !givesCheck {
			reduction = options.lmr(depth, movesSearched)
			if move == killer1 || move == killer2 {
				reduction--
			}
			if pvNode {
				reduction -= 2
			}
			reduction = max(0, min(depth-2, reduction))
		}

		if !isNoisy {
			quietsSearched = append(quietsSearched, move)
		}

		var newDepth = depth - 1 + extension

		var score = alpha + 1
		// LMR
		if reduction > 0 {
			score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth-reduction, height+1)
		}
		// PVS
		if score > alpha && pvNode && movesSearched > 1 && newDepth > 0 {
			score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth, height+1)
		}
		// full search
		if score > alpha {
			score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
		}

		t.unmakeMove(height)

		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}

	if !hasLegalMove {
		if !isCheck {
			return valueDraw
		}
		return lossIn(height)
	}

	if alpha > oldAlpha && bestMove != MoveEmpty && !isCaptureOrPromotion(bestMove) {
		t.history.Update(position.WhiteMove, quietsSearched, bestMove, depth)
		t.updateKiller(bestMove, height)
	}

	var ttBound = 0
	if best > oldAlpha {
		ttBound |= boundLower
	}
	if best < beta {
		ttBound |= boundUpper
	}
	t.engine.transTable.Update(position.Key, depth, valueToTT(best, height), ttBound, bestMove)

	return best
}

// nullMoveAllowed reports whether passing may prove a fail high. Positions
// without heavy pieces and with at most one minor are prone to zugzwang.
func (t *thread) nullMoveAllowed(depth, beta, staticEval int, tt probeResult) bool {
	var options = &t.engine.Options
	var position = &t.position
	return options.NullMovePruning &&
		!position.IsCheck() &&
		depth >= options.NullMoveMinDepth &&
		position.LastMove != MoveEmpty &&
		beta < valueWin &&
		!(tt.kind != probeMiss && tt.score < beta && (tt.bound&boundUpper) != 0) &&
		!isLateEndgame(position, position.WhiteMove) &&
		staticEval >= beta
}

func (t *thread) quiescence(alpha, beta, height, qply int) int {
	t.clearPV(height)
	var position = &t.position
	if isDraw(position) {
		return valueDraw
	}
	if height >= maxHeight {
		return t.evaluate()
	}
	if t.isRepeat(height) {
		return valueDraw
	}

	var tt = t.engine.transTable.Probe(position.Key, 0, alpha, beta, height)
	if tt.kind == probeCutoff {
		return tt.score
	}

	var options = &t.engine.Options
	var isCheck = position.IsCheck()
	if qply >= options.QuiescenceMaxDepth {
		return t.evaluate()
	}

	var best = -valueInfinity
	if !isCheck {
		var eval = t.evaluate()
		best = eval
		if eval > alpha {
			alpha = eval
			if alpha >= beta {
				return alpha
			}
		}
	}

	var mi = moveIteratorQS{
		position: position,
		buffer:   t.stack[height].moveList[:],
		checks:   options.QuiescenceChecks && qply == 0,
		seeSkip:  options.QuiescenceSEE && !isCheck,
	}
	mi.Init()

	var hasLegalMove = false
	for mi.Reset(); ; {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		if !t.makeMove(move, height) {
			continue
		}
		hasLegalMove = true
		var score = -t.quiescence(-beta, -alpha, height+1, qply+1)
		t.unmakeMove(height)
		best = max(best, score)
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}
	if isCheck && !hasLegalMove {
		return lossIn(height)
	}
	return best
}

func (t *thread) evaluate() int {
	return t.evaluator.Evaluate(&t.position)
}

// incNodes counts a visited node and polls the stop flag every
// StopCheckInterval nodes.
func (t *thread) incNodes() {
	t.nodes++
	if t.nodes&t.stopCheckMask == 0 {
		var e = t.engine
		e.timeManager.OnNodesChanged(t.flushNodes())
		if e.stopped.Load() && e.canStop.Load() {
			panic(errSearchTimeout)
		}
	}
}

// flushNodes adds the nodes counted since the last flush to the engine total
// and returns the new total.
func (t *thread) flushNodes() int64 {
	var total = t.engine.nodes.Add(t.nodes - t.reportedNodes)
	t.reportedNodes = t.nodes
	return total
}

func (t *thread) isRepeat(height int) bool {
	var p = &t.position

	if p.Rule50 == 0 || p.LastMove == MoveEmpty {
		return false
	}
	for i := height - 1; i >= 0; i-- {
		var s = &t.stack[i]
		if s.key == p.Key {
			return true
		}
		if s.rule50 == 0 || s.lastMove == MoveEmpty {
			return false
		}
	}

	return t.engine.historyKeys[p.Key] >= 2
}

// makeMove plays move (or a null move for MoveEmpty) from the node at height.
// It returns false and leaves the position unchanged if move is illegal.
func (t *thread) makeMove(move Move, height int) bool {
	var p = &t.position
	var s = &t.stack[height]
	s.key = p.Key
	s.rule50 = p.Rule50
	s.lastMove = p.LastMove
	if move == MoveEmpty {
		s.undo = p.MakeNullMove()
	} else {
		var undo, ok = p.TryMove(move)
		if !ok {
			return false
		}
		s.undo = undo
	}
	t.incNodes()
	return true
}

func (t *thread) unmakeMove(height int) {
	var undo = t.stack[height].undo
	if undo.Move == MoveEmpty {
		t.position.UnmakeNullMove(undo)
	} else {
		t.position.UnmakeMove(undo)
	}
}

func (t *thread) clearPV(height int) {
	t.stack[height].pv.clear()
}

func (t *thread) assignPV(height int, move Move) {
	var child *pv
	if height+1 < stackSize {
		child = &t.stack[height+1].pv
	}
	t.stack[height].pv.assign(move, child)
}
