package engine

import (
	. "github.com/lazycounter/lazycounter/pkg/common"
)

const (
	stackSize     = 128
	maxHeight     = stackSize - 1
	valueDraw     = 0
	valueMate     = 30000
	valueInfinity = valueMate + 1
	valueWin      = valueMate - 2*maxHeight
	valueLoss     = -valueWin
)

func winIn(height int) int {
	return valueMate - height
}

func lossIn(height int) int {
	return -valueMate + height
}

// Mate scores are stored relative to the node, not to the root.
func valueToTT(v, height int) int {
	if v >= valueWin {
		return v + height
	}
	if v <= valueLoss {
		return v - height
	}
	return v
}

func valueFromTT(v, height int) int {
	if v >= valueWin {
		return v - height
	}
	if v <= valueLoss {
		return v + height
	}
	return v
}

func newUciScore(v int) UciScore {
	if v >= valueWin {
		return UciScore{Mate: (valueMate - v + 1) / 2}
	} else if v <= valueLoss {
		return UciScore{Mate: (-valueMate - v) / 2}
	} else {
		return UciScore{Centipawns: v}
	}
}

// isLateEndgame reports positions where passing may be the best move.
func isLateEndgame(p *Position, side bool) bool {
	//sample: 8/8/6p1/1p2pk1p/1Pp1p2P/2PbP1P1/3N1P2/4K3 w - - 12 58
	var ownPieces = p.PiecesByColor(side)
	return ((p.Rooks|p.Queens)&ownPieces) == 0 &&
		!MoreThanOne((p.Knights|p.Bishops)&ownPieces)
}

func isCaptureOrPromotion(move Move) bool {
	return move.CapturedPiece() != Empty ||
		move.Promotion() != Empty
}

func isDraw(p *Position) bool {
	if p.Rule50 >= 100 {
		return true
	}
	return isInsufficientMaterial(p)
}

// Bare kings or a single minor piece.
func isInsufficientMaterial(p *Position) bool {
	return (p.Pawns|p.Rooks|p.Queens) == 0 &&
		!MoreThanOne(p.Knights|p.Bishops)
}

// moveMatchesBoard is a cheap filter for hash moves taken from another position.
func moveMatchesBoard(p *Position, m Move) bool {
	if m == MoveEmpty {
		return false
	}
	var own = p.PiecesByColor(p.WhiteMove)
	var from, to = m.From(), m.To()
	if own&SquareMask[from] == 0 || p.WhatPiece(from) != m.MovingPiece() {
		return false
	}
	if m.IsEnPassant() {
		return to == p.EpSquare
	}
	return own&SquareMask[to] == 0 && p.WhatPiece(to) == m.CapturedPiece()
}

func moveToBegin(ml []Move, index int) {
	if index <= 0 {
		return
	}
	var item = ml[index]
	copy(ml[1:index+1], ml[:index])
	ml[0] = item
}

func cloneMoves(ml []Move) []Move {
	var result = make([]Move, len(ml))
	copy(result, ml)
	return result
}
