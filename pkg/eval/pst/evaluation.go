// Package eval scores a position by material and piece-square tables.
package eval

import (
	. "github.com/lazycounter/lazycounter/pkg/common"
)

var pieceValues = [King + 1]int{Empty: 0, Pawn: 100, Knight: 325, Bishop: 325, Rook: 550, Queen: 1000}

const (
	minorPhase = 1
	rookPhase  = 2
	queenPhase = 4
	totalPhase = 2 * (4*minorPhase + 2*rookPhase + queenPhase)
)

type EvaluationService struct {
	middle [2][King + 1][64]int
	end    [2][King + 1][64]int
}

func NewEvaluationService() *EvaluationService {
	var es = &EvaluationService{}
	es.init()
	return es
}

// Tables are written as seen from white with rank 8 in the first row.
func (e *EvaluationService) init() {
	var tables = [King + 1]*[64]int{
		Pawn:   &pawnTable,
		Knight: &knightTable,
		Bishop: &bishopTable,
		Rook:   &rookTable,
		Queen:  &queenTable,
		King:   &kingTable,
	}
	for piece := Pawn; piece <= King; piece++ {
		for sq := 0; sq < 64; sq++ {
			var white = pieceValues[piece] + tables[piece][FlipSquare(sq)]
			var black = pieceValues[piece] + tables[piece][sq]
			e.middle[SideWhite][piece][sq] = white
			e.middle[SideBlack][piece][sq] = black
			e.end[SideWhite][piece][sq] = white
			e.end[SideBlack][piece][sq] = black
		}
	}
	for sq := 0; sq < 64; sq++ {
		e.end[SideWhite][King][sq] = kingEndgameTable[FlipSquare(sq)]
		e.end[SideBlack][King][sq] = kingEndgameTable[sq]
	}
}

func (e *EvaluationService) Evaluate(p *Position) int {
	var mg, eg int
	for x := p.White; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var piece = p.WhatPiece(sq)
		mg += e.middle[SideWhite][piece][sq]
		eg += e.end[SideWhite][piece][sq]
	}
	for x := p.Black; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var piece = p.WhatPiece(sq)
		mg -= e.middle[SideBlack][piece][sq]
		eg -= e.end[SideBlack][piece][sq]
	}

	var phase = minorPhase*PopCount(p.Knights|p.Bishops) +
		rookPhase*PopCount(p.Rooks) +
		queenPhase*PopCount(p.Queens)
	if phase > totalPhase {
		phase = totalPhase
	}
	var result = (mg*phase + eg*(totalPhase-phase)) / totalPhase

	if !p.WhiteMove {
		result = -result
	}
	return result
}

var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenTable = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingTable = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndgameTable = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}
