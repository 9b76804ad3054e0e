package engine

import (
	. "github.com/lazycounter/lazycounter/pkg/common"
)

var pieceValuesSEE = [PIECE_NB]int{Pawn: 1, Knight: 4, Bishop: 4, Rook: 6, Queen: 12, King: 120}

func seeGEZero(p *Position, move Move) bool {
	return SeeGE(p, move, 0)
}

// SeeGE reports whether the exchange started by move on its destination
// square wins at least threshold (in pawns of pieceValuesSEE).
// https://www.chessprogramming.org/Static_Exchange_Evaluation
func SeeGE(pos *Position, move Move, threshold int) bool {
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var promotionPiece = move.Promotion()

	var nextVictim = movingPiece
	if promotionPiece != Empty {
		nextVictim = promotionPiece
	}

	var balance = pieceValuesSEE[move.CapturedPiece()]
	if promotionPiece != Empty {
		balance += pieceValuesSEE[promotionPiece] - pieceValuesSEE[Pawn]
	}
	balance -= threshold
	if balance < 0 {
		return false
	}

	balance -= pieceValuesSEE[nextVictim]
	if balance >= 0 {
		return true
	}

	var occupied = pos.AllPieces()&^SquareMask[from] | SquareMask[to]
	if move.IsEnPassant() {
		if pos.WhiteMove {
			occupied &^= SquareMask[to-8]
		} else {
			occupied &^= SquareMask[to+8]
		}
	}

	var attackers = pos.AttackersTo(to, occupied) & occupied

	var bishops = pos.Bishops | pos.Queens
	var rooks = pos.Rooks | pos.Queens

	var side = !pos.WhiteMove

	for {
		var myAttackers = attackers & pos.PiecesByColor(side)
		if myAttackers == 0 {
			break
		}

		var attackerType, attackerFrom = getLeastValuableAttacker(pos, myAttackers)

		occupied &^= SquareMask[attackerFrom]

		// x-rays
		if attackerType == Pawn || attackerType == Bishop || attackerType == Queen {
			attackers |= BishopAttacks(to, occupied) & bishops
		}
		if attackerType == Rook || attackerType == Queen {
			attackers |= RookAttacks(to, occupied) & rooks
		}

		attackers &= occupied

		side = !side

		balance = -balance - 1 - pieceValuesSEE[attackerType]
		if balance >= 0 {
			if attackerType == King &&
				(attackers&pos.PiecesByColor(side)) != 0 {
				side = !side
			}
			break
		}
	}

	return side != pos.WhiteMove
}

func getLeastValuableAttacker(p *Position, attackers uint64) (attacker, from int) {
	for _, piece := range [...]struct {
		kind int
		set  uint64
	}{{Pawn, p.Pawns}, {Knight, p.Knights}, {Bishop, p.Bishops}, {Rook, p.Rooks}, {Queen, p.Queens}, {King, p.Kings}} {
		if piece.set&attackers != 0 {
			return piece.kind, FirstOne(piece.set & attackers)
		}
	}
	return Empty, SquareNone
}
