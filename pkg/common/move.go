package common

import "strings"

// Move packs from(6) to(6) moving(3) captured(3) promotion(3) and flags.
type Move int32

const MoveEmpty = Move(0)

const (
	FlagDoublePawnPush Move = 1 << (21 + iota)
	FlagEnPassant
	FlagCastle
)

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from | (to << 6) | (movingPiece << 12) | (capturedPiece << 15))
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

func (m Move) MovingPiece() int {
	return int((m >> 12) & 7)
}

func (m Move) CapturedPiece() int {
	return int((m >> 15) & 7)
}

func (m Move) Promotion() int {
	return int((m >> 18) & 7)
}

func (m Move) withPromotion(piece int) Move {
	return m | Move(piece<<18)
}

func (m Move) IsCapture() bool {
	return m.CapturedPiece() != Empty
}

func (m Move) IsPromotion() bool {
	return m.Promotion() != Empty
}

func (m Move) IsEnPassant() bool {
	return m&FlagEnPassant != 0
}

func (m Move) IsCastle() bool {
	return m&FlagCastle != 0
}

func (m Move) IsDoublePawnPush() bool {
	return m&FlagDoublePawnPush != 0
}

// String returns coordinate notation, e.g. "e7e8q".
func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

// ParseMoveLAN finds the legal move with the given coordinate notation.
func (p *Position) ParseMoveLAN(lan string) (Move, bool) {
	for _, mv := range p.GenerateLegalMoves() {
		if strings.EqualFold(mv.String(), lan) {
			return mv, true
		}
	}
	return MoveEmpty, false
}

// MakeMoveLAN returns the position after the legal move lan.
func (p *Position) MakeMoveLAN(lan string) (Position, bool) {
	var mv, ok = p.ParseMoveLAN(lan)
	if !ok {
		return Position{}, false
	}
	var child = *p
	child.MakeMove(mv)
	return child, true
}
