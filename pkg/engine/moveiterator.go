package engine

import . "github.com/lazycounter/lazycounter/pkg/common"

const (
	sortKeyTransMove = 200000
	sortKeyNoisy     = 100000
	sortKeyKiller1   = 50001
	sortKeyKiller2   = 50000
)

// moveIteratorQS yields captures and queen promotions, optionally quiet
// checks, or every move when in check.
type moveIteratorQS struct {
	position *Position
	buffer   []OrderedMove
	checks   bool
	seeSkip  bool
	count    int
	index    int
}

func (mi *moveIteratorQS) Init() {
	var p = mi.position
	if p.IsCheck() {
		mi.count = len(p.GenerateMoves(mi.buffer))
	} else {
		mi.count = len(p.GenerateCaptures(mi.buffer))
		if mi.checks {
			mi.count += len(p.GenerateQuietChecks(mi.buffer[mi.count:]))
		}
	}

	for i := 0; i < mi.count; i++ {
		var m = mi.buffer[i].Move
		var score int
		if isCaptureOrPromotion(m) {
			score = sortKeyNoisy + mvvlva(m)
		}
		mi.buffer[i].Key = int32(score)
	}

	sortMoves(mi.buffer[:mi.count])
}

func (mi *moveIteratorQS) Reset() {
	mi.index = 0
}

func (mi *moveIteratorQS) Next() Move {
	for mi.index < mi.count {
		var m = mi.buffer[mi.index].Move
		mi.index++
		if mi.seeSkip && m.IsCapture() && !m.IsPromotion() && !seeGEZero(mi.position, m) {
			continue
		}
		return m
	}
	return MoveEmpty
}

// moveIterator orders the hash move first, then captures by MVV/LVA,
// killers and quiet moves by history.
type moveIterator struct {
	position  *Position
	buffer    []OrderedMove
	history   *historyService
	transMove Move
	killer1   Move
	killer2   Move
	count     int
	index     int
}

func (mi *moveIterator) Init() {
	mi.count = len(mi.position.GenerateMoves(mi.buffer))

	var side = mi.position.WhiteMove
	for i := 0; i < mi.count; i++ {
		var m = mi.buffer[i].Move
		var score int
		if m == mi.transMove {
			score = sortKeyTransMove
		} else if isCaptureOrPromotion(m) {
			score = sortKeyNoisy + mvvlva(m)
		} else if m == mi.killer1 {
			score = sortKeyKiller1
		} else if m == mi.killer2 {
			score = sortKeyKiller2
		} else {
			score = mi.history.ReadTotal(side, m)
		}
		mi.buffer[i].Key = int32(score)
	}
}

func (mi *moveIterator) Reset() {
	mi.index = 0
}

func (mi *moveIterator) Next() Move {
	if mi.index >= mi.count {
		return MoveEmpty
	}
	// the first move often cuts off, so sort lazily
	const SortMovesIndex = 1
	if mi.index <= SortMovesIndex {
		if mi.index == SortMovesIndex {
			sortMoves(mi.buffer[mi.index:mi.count])
		} else {
			moveToTop(mi.buffer[mi.index:mi.count])
		}
	}
	var m = mi.buffer[mi.index].Move
	mi.index++
	return m
}

var sortPieceValues = [...]int{Empty: 0, Pawn: 1, Knight: 2, Bishop: 3, Rook: 4, Queen: 5, King: 6}

func mvvlva(move Move) int {
	return 8*(sortPieceValues[move.CapturedPiece()]+
		sortPieceValues[move.Promotion()]) -
		sortPieceValues[move.MovingPiece()]
}

// sortMoves is a stable insertion sort by descending key.
func sortMoves(moves []OrderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}

func moveToTop(ml []OrderedMove) {
	var bestIndex = 0
	for i := 1; i < len(ml); i++ {
		if ml[i].Key > ml[bestIndex].Key {
			bestIndex = i
		}
	}
	if bestIndex != 0 {
		ml[0], ml[bestIndex] = ml[bestIndex], ml[0]
	}
}
