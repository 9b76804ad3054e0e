package engine

import . "github.com/lazycounter/lazycounter/pkg/common"

const historyMax = 1 << 14

// historyService scores quiet moves by side, from and to squares.
type historyService struct {
	mainHistory [2 * 64 * 64]int16
}

func (h *historyService) ReadTotal(side bool, m Move) int {
	return int(h.mainHistory[sideFromToIndex(side, m)])
}

// Update rewards bestMove and penalizes the quiet moves tried before it.
func (h *historyService) Update(side bool, quietsSearched []Move, bestMove Move, depth int) {
	var bonus = min(depth*depth, 400)
	for _, m := range quietsSearched {
		var good = m == bestMove
		updateHistory(&h.mainHistory[sideFromToIndex(side, m)], bonus, good)
		if good {
			break
		}
	}
}

func (h *historyService) Clear() {
	for i := range h.mainHistory {
		h.mainHistory[i] = 0
	}
}

// Exponential moving average
func updateHistory(v *int16, bonus int, good bool) {
	var newVal int
	if good {
		newVal = historyMax
	} else {
		newVal = -historyMax
	}
	*v += int16((newVal - int(*v)) * bonus / 512)
}

func sideFromToIndex(side bool, move Move) int {
	var result = (move.From() << 6) | move.To()
	if side {
		result |= 1 << 12
	}
	return result
}

func (t *thread) updateKiller(move Move, height int) {
	if t.stack[height].killer1 != move {
		t.stack[height].killer2 = t.stack[height].killer1
		t.stack[height].killer1 = move
	}
}

func (t *thread) clearKillers() {
	for i := range t.stack {
		t.stack[i].killer1 = MoveEmpty
		t.stack[i].killer2 = MoveEmpty
	}
}
