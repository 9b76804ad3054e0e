package common

import "fmt"

var castleMask [64]int

func init() {
	initAttacks()
	initKeys()
	for i := range castleMask {
		castleMask[i] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}

// Undo holds what MakeMove cannot recompute when taking the move back.
type Undo struct {
	Move         Move
	castleRights int
	rule50       int
	fullMove     int
	epSquare     int
	key          uint64
	checkers     uint64
	lastMove     Move
}

func (p *Position) saveUndo(move Move) Undo {
	return Undo{
		Move:         move,
		castleRights: p.CastleRights,
		rule50:       p.Rule50,
		fullMove:     p.FullMove,
		epSquare:     p.EpSquare,
		key:          p.Key,
		checkers:     p.Checkers,
		lastMove:     p.LastMove,
	}
}

func (p *Position) restoreUndo(u *Undo) {
	p.CastleRights = u.castleRights
	p.Rule50 = u.rule50
	p.FullMove = u.fullMove
	p.EpSquare = u.epSquare
	p.Key = u.key
	p.Checkers = u.checkers
	p.LastMove = u.lastMove
}

// MakeMove plays a pseudo-legal move in place. The move may leave the mover's
// king attacked; use TryMove when that has not been ruled out.
func (p *Position) MakeMove(move Move) Undo {
	var undo = p.saveUndo(move)
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()
	var side = p.WhiteMove

	p.Key ^= sideKey
	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[File(p.EpSquare)]
		p.EpSquare = SquareNone
	}

	var castleRights = p.CastleRights & castleMask[from] & castleMask[to]
	p.Key ^= castlingKey[castleRights^p.CastleRights]
	p.CastleRights = castleRights

	if movingPiece == Pawn || capturedPiece != Empty {
		p.Rule50 = 0
	} else {
		p.Rule50++
	}

	if capturedPiece != Empty {
		xorPiece(p, capturedPiece, !side, captureSquare(move, side))
	}

	if promotion := move.Promotion(); promotion != Empty {
		xorPiece(p, Pawn, side, from)
		xorPiece(p, promotion, side, to)
	} else {
		movePiece(p, movingPiece, side, from, to)
	}

	if move.IsDoublePawnPush() {
		p.EpSquare = (from + to) / 2
		p.Key ^= enpassantKey[File(p.EpSquare)]
	} else if move.IsCastle() {
		var rookFrom, rookTo = castleRookSquares(to)
		movePiece(p, Rook, side, rookFrom, rookTo)
	}

	if !side {
		p.FullMove++
	}
	p.WhiteMove = !side
	p.Checkers = p.computeCheckers()
	p.LastMove = move
	return undo
}

// UnmakeMove restores the position from before the MakeMove that returned u.
func (p *Position) UnmakeMove(u Undo) {
	var move = u.Move
	var from = move.From()
	var to = move.To()
	p.WhiteMove = !p.WhiteMove
	var side = p.WhiteMove

	if move.IsCastle() {
		var rookFrom, rookTo = castleRookSquares(to)
		movePiece(p, Rook, side, rookTo, rookFrom)
	}

	if promotion := move.Promotion(); promotion != Empty {
		xorPiece(p, promotion, side, to)
		xorPiece(p, Pawn, side, from)
	} else {
		movePiece(p, move.MovingPiece(), side, to, from)
	}

	if capturedPiece := move.CapturedPiece(); capturedPiece != Empty {
		xorPiece(p, capturedPiece, !side, captureSquare(move, side))
	}

	p.restoreUndo(&u)
}

// TryMove plays move only if it does not leave the mover in check.
func (p *Position) TryMove(move Move) (Undo, bool) {
	var undo = p.MakeMove(move)
	if !p.isLegal() {
		p.UnmakeMove(undo)
		return Undo{}, false
	}
	return undo, true
}

func (p *Position) MakeNullMove() Undo {
	var undo = p.saveUndo(MoveEmpty)
	p.Key ^= sideKey
	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[File(p.EpSquare)]
		p.EpSquare = SquareNone
	}
	p.Rule50++
	if !p.WhiteMove {
		p.FullMove++
	}
	p.WhiteMove = !p.WhiteMove
	p.Checkers = 0
	p.LastMove = MoveEmpty
	return undo
}

func (p *Position) UnmakeNullMove(u Undo) {
	p.WhiteMove = !p.WhiteMove
	p.restoreUndo(&u)
}

func captureSquare(move Move, side bool) int {
	if move.IsEnPassant() {
		return move.To() + let(side, -8, 8)
	}
	return move.To()
}

func castleRookSquares(kingTo int) (from, to int) {
	switch kingTo {
	case SquareG1:
		return SquareH1, SquareF1
	case SquareC1:
		return SquareA1, SquareD1
	case SquareG8:
		return SquareH8, SquareF8
	case SquareC8:
		return SquareA8, SquareD8
	}
	panic(fmt.Errorf("bad castle destination %s", SquareName(kingTo)))
}

func (p *Position) pieceSet(piece int) *uint64 {
	switch piece {
	case Pawn:
		return &p.Pawns
	case Knight:
		return &p.Knights
	case Bishop:
		return &p.Bishops
	case Rook:
		return &p.Rooks
	case Queen:
		return &p.Queens
	case King:
		return &p.Kings
	}
	panic(fmt.Errorf("bad piece %d", piece))
}

func xorPiece(p *Position, piece int, side bool, square int) {
	var b = SquareMask[square]
	if side {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	*p.pieceSet(piece) ^= b
	p.Key ^= PieceSquareKey(piece, side, square)
}

func movePiece(p *Position, piece int, side bool, from, to int) {
	var b = SquareMask[from] | SquareMask[to]
	if side {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	*p.pieceSet(piece) ^= b
	p.Key ^= PieceSquareKey(piece, side, from) ^ PieceSquareKey(piece, side, to)
}

func (p *Position) WhatPiece(sq int) int {
	var bb = SquareMask[sq]
	switch {
	case (p.White|p.Black)&bb == 0:
		return Empty
	case p.Pawns&bb != 0:
		return Pawn
	case p.Knights&bb != 0:
		return Knight
	case p.Bishops&bb != 0:
		return Bishop
	case p.Rooks&bb != 0:
		return Rook
	case p.Queens&bb != 0:
		return Queen
	case p.Kings&bb != 0:
		return King
	}
	panic(fmt.Errorf("wrong piece on %s", SquareName(sq)))
}

func (p *Position) PiecesByColor(side bool) uint64 {
	if side {
		return p.White
	}
	return p.Black
}

func (p *Position) AllPieces() uint64 {
	return p.White | p.Black
}

func (p *Position) KingSquare(side bool) int {
	return FirstOne(p.Kings & p.PiecesByColor(side))
}

// IsSquareAttacked reports whether any piece of bySide attacks sq.
func (p *Position) IsSquareAttacked(sq int, bySide bool) bool {
	var enemy = p.PiecesByColor(bySide)
	if PawnAttacks(sq, !bySide)&p.Pawns&enemy != 0 {
		return true
	}
	if KnightAttacks[sq]&p.Knights&enemy != 0 {
		return true
	}
	if KingAttacks[sq]&p.Kings&enemy != 0 {
		return true
	}
	var allPieces = p.White | p.Black
	if BishopAttacks(sq, allPieces)&(p.Bishops|p.Queens)&enemy != 0 {
		return true
	}
	return RookAttacks(sq, allPieces)&(p.Rooks|p.Queens)&enemy != 0
}

func (p *Position) attackersTo(sq int, occ uint64) uint64 {
	return (blackPawnAttacks[sq] & p.Pawns & p.White) |
		(whitePawnAttacks[sq] & p.Pawns & p.Black) |
		(KnightAttacks[sq] & p.Knights) |
		(BishopAttacks(sq, occ) & (p.Bishops | p.Queens)) |
		(RookAttacks(sq, occ) & (p.Rooks | p.Queens)) |
		(KingAttacks[sq] & p.Kings)
}

func (p *Position) AttackersTo(sq int, occ uint64) uint64 {
	return p.attackersTo(sq, occ)
}

func (p *Position) computeCheckers() uint64 {
	var own = p.PiecesByColor(p.WhiteMove)
	return p.attackersTo(p.KingSquare(p.WhiteMove), p.White|p.Black) &^ own
}

// isLegal reports whether the side that just moved left its king safe.
func (p *Position) isLegal() bool {
	return !p.IsSquareAttacked(p.KingSquare(!p.WhiteMove), p.WhiteMove)
}

func (p *Position) InCheck(side bool) bool {
	if side == p.WhiteMove {
		return p.Checkers != 0
	}
	return p.IsSquareAttacked(p.KingSquare(side), !side)
}

func (p *Position) IsCheck() bool {
	return p.Checkers != 0
}

// MirrorPosition swaps colours and flips the board vertically.
func MirrorPosition(p *Position) Position {
	var result = Position{
		WhiteMove:    !p.WhiteMove,
		CastleRights: (p.CastleRights >> 2) | ((p.CastleRights & 3) << 2),
		Rule50:       p.Rule50,
		FullMove:     p.FullMove,
		EpSquare:     SquareNone,
	}
	if p.EpSquare != SquareNone {
		result.EpSquare = FlipSquare(p.EpSquare)
	}
	for x := p.White | p.Black; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		xorPiece(&result, p.WhatPiece(sq), p.Black&SquareMask[sq] != 0, FlipSquare(sq))
	}
	result.Key = result.computeKey()
	result.Checkers = result.computeCheckers()
	return result
}
