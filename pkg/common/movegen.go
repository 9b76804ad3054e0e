package common

const (
	f1g1Mask = (uint64(1) << SquareF1) | (uint64(1) << SquareG1)
	b1d1Mask = (uint64(1) << SquareB1) | (uint64(1) << SquareC1) | (uint64(1) << SquareD1)
	f8g8Mask = (uint64(1) << SquareF8) | (uint64(1) << SquareG8)
	b8d8Mask = (uint64(1) << SquareB8) | (uint64(1) << SquareC8) | (uint64(1) << SquareD8)
)

var (
	whiteKingSideCastle  = makeMove(SquareE1, SquareG1, King, Empty) | FlagCastle
	whiteQueenSideCastle = makeMove(SquareE1, SquareC1, King, Empty) | FlagCastle
	blackKingSideCastle  = makeMove(SquareE8, SquareG8, King, Empty) | FlagCastle
	blackQueenSideCastle = makeMove(SquareE8, SquareC8, King, Empty) | FlagCastle
)

type moveList struct {
	items []OrderedMove
	count int
}

func (ml *moveList) add(m Move) {
	ml.items[ml.count] = OrderedMove{Move: m}
	ml.count++
}

func (ml *moveList) addPromotions(m Move, underpromotions bool) {
	ml.add(m.withPromotion(Queen))
	if underpromotions {
		ml.add(m.withPromotion(Rook))
		ml.add(m.withPromotion(Bishop))
		ml.add(m.withPromotion(Knight))
	}
}

// GenerateMoves writes all pseudo-legal moves into buffer. Order depends only
// on the position.
func (p *Position) GenerateMoves(buffer []OrderedMove) []OrderedMove {
	var ml = moveList{items: buffer}
	p.generate(&ml, true)
	return buffer[:ml.count]
}

// GenerateCaptures writes captures, en passant and queen promotions.
func (p *Position) GenerateCaptures(buffer []OrderedMove) []OrderedMove {
	var ml = moveList{items: buffer}
	p.generate(&ml, false)
	return buffer[:ml.count]
}

// GenerateQuietChecks writes quiet moves that give check.
func (p *Position) GenerateQuietChecks(buffer []OrderedMove) []OrderedMove {
	var all [MaxMoves]OrderedMove
	var count = 0
	for _, om := range p.GenerateMoves(all[:]) {
		var m = om.Move
		if m.IsCapture() || m.IsPromotion() {
			continue
		}
		var child = *p
		child.MakeMove(m)
		if child.Checkers != 0 {
			buffer[count] = OrderedMove{Move: m}
			count++
		}
	}
	return buffer[:count]
}

func (p *Position) GenerateLegalMoves() []Move {
	var buffer [MaxMoves]OrderedMove
	var child = *p
	var result []Move
	for _, om := range p.GenerateMoves(buffer[:]) {
		if undo, ok := child.TryMove(om.Move); ok {
			child.UnmakeMove(undo)
			result = append(result, om.Move)
		}
	}
	return result
}

// IsPseudoLegal reports whether m is one of the moves generated for p.
func (p *Position) IsPseudoLegal(m Move) bool {
	if m == MoveEmpty {
		return false
	}
	var buffer [MaxMoves]OrderedMove
	for _, om := range p.GenerateMoves(buffer[:]) {
		if om.Move == m {
			return true
		}
	}
	return false
}

func (p *Position) generate(ml *moveList, quiets bool) {
	var side = p.WhiteMove
	var own = p.PiecesByColor(side)
	var opp = p.PiecesByColor(!side)
	var allPieces = own | opp
	var kingSq = FirstOne(p.Kings & own)

	var evasions = ^uint64(0)
	if p.Checkers != 0 {
		if MoreThanOne(p.Checkers) {
			evasions = 0
		} else {
			evasions = p.Checkers | betweenMask[FirstOne(p.Checkers)][kingSq]
		}
	}

	var target = opp
	if quiets {
		target = ^own
	}
	target &= evasions

	p.generatePawnMoves(ml, quiets, evasions)

	for fromBB := p.Knights & own; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		p.addPieceMoves(ml, from, Knight, KnightAttacks[from]&target)
	}
	for fromBB := p.Bishops & own; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		p.addPieceMoves(ml, from, Bishop, BishopAttacks(from, allPieces)&target)
	}
	for fromBB := p.Rooks & own; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		p.addPieceMoves(ml, from, Rook, RookAttacks(from, allPieces)&target)
	}
	for fromBB := p.Queens & own; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		p.addPieceMoves(ml, from, Queen, QueenAttacks(from, allPieces)&target)
	}

	var kingTarget = opp
	if quiets {
		kingTarget = ^own
	}
	p.addPieceMoves(ml, kingSq, King, KingAttacks[kingSq]&kingTarget)

	if quiets && p.Checkers == 0 {
		p.generateCastles(ml, allPieces)
	}
}

func (p *Position) addPieceMoves(ml *moveList, from, piece int, toBB uint64) {
	for ; toBB != 0; toBB &= toBB - 1 {
		var to = FirstOne(toBB)
		ml.add(makeMove(from, to, piece, p.WhatPiece(to)))
	}
}

func (p *Position) generateCastles(ml *moveList, allPieces uint64) {
	if p.WhiteMove {
		if p.CastleRights&WhiteKingSide != 0 &&
			allPieces&f1g1Mask == 0 &&
			!p.IsSquareAttacked(SquareF1, false) {
			ml.add(whiteKingSideCastle)
		}
		if p.CastleRights&WhiteQueenSide != 0 &&
			allPieces&b1d1Mask == 0 &&
			!p.IsSquareAttacked(SquareD1, false) {
			ml.add(whiteQueenSideCastle)
		}
	} else {
		if p.CastleRights&BlackKingSide != 0 &&
			allPieces&f8g8Mask == 0 &&
			!p.IsSquareAttacked(SquareF8, true) {
			ml.add(blackKingSideCastle)
		}
		if p.CastleRights&BlackQueenSide != 0 &&
			allPieces&b8d8Mask == 0 &&
			!p.IsSquareAttacked(SquareD8, true) {
			ml.add(blackQueenSideCastle)
		}
	}
}

func (p *Position) generatePawnMoves(ml *moveList, quiets bool, evasions uint64) {
	var side = p.WhiteMove
	var own = p.PiecesByColor(side)
	var opp = p.PiecesByColor(!side)
	var pawns = p.Pawns & own
	var empty = ^(own | opp)

	var forward, leftDelta, rightDelta int
	var single, double, capLeft, capRight, promotionRank uint64
	if side {
		forward, leftDelta, rightDelta = 8, 7, 9
		single = Up(pawns) & empty
		double = Up(single&Rank3Mask) & empty
		capLeft = UpLeft(pawns) & opp
		capRight = UpRight(pawns) & opp
		promotionRank = Rank8Mask
	} else {
		forward, leftDelta, rightDelta = -8, -9, -7
		single = Down(pawns) & empty
		double = Down(single&Rank6Mask) & empty
		capLeft = DownLeft(pawns) & opp
		capRight = DownRight(pawns) & opp
		promotionRank = Rank1Mask
	}
	single &= evasions
	double &= evasions
	capLeft &= evasions
	capRight &= evasions

	if p.EpSquare != SquareNone {
		for fromBB := PawnAttacks(p.EpSquare, !side) & pawns; fromBB != 0; fromBB &= fromBB - 1 {
			ml.add(makeMove(FirstOne(fromBB), p.EpSquare, Pawn, Pawn) | FlagEnPassant)
		}
	}

	for _, captures := range [...]struct {
		targets uint64
		delta   int
	}{{capLeft, leftDelta}, {capRight, rightDelta}} {
		for toBB := captures.targets; toBB != 0; toBB &= toBB - 1 {
			var to = FirstOne(toBB)
			var m = makeMove(to-captures.delta, to, Pawn, p.WhatPiece(to))
			if SquareMask[to]&promotionRank != 0 {
				ml.addPromotions(m, quiets)
			} else {
				ml.add(m)
			}
		}
	}

	for toBB := single & promotionRank; toBB != 0; toBB &= toBB - 1 {
		var to = FirstOne(toBB)
		ml.addPromotions(makeMove(to-forward, to, Pawn, Empty), quiets)
	}

	if !quiets {
		return
	}

	for toBB := single &^ promotionRank; toBB != 0; toBB &= toBB - 1 {
		var to = FirstOne(toBB)
		ml.add(makeMove(to-forward, to, Pawn, Empty))
	}
	for toBB := double; toBB != 0; toBB &= toBB - 1 {
		var to = FirstOne(toBB)
		ml.add(makeMove(to-2*forward, to, Pawn, Empty) | FlagDoublePawnPush)
	}
}
