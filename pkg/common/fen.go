package common

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func NewPositionFromFEN(fen string) (Position, error) {
	var tokens = strings.Fields(fen)
	if len(tokens) < 4 {
		return Position{}, fmt.Errorf("parse fen failed %v: %w", fen, ErrInvalidFEN)
	}

	var p = Position{EpSquare: SquareNone, FullMove: 1}

	var rank, file = Rank8, FileA
	for _, ch := range tokens[0] {
		switch {
		case ch == '/':
			if file != FileH+1 || rank == Rank1 {
				return Position{}, fmt.Errorf("parse fen failed %v: bad rank: %w", fen, ErrInvalidFEN)
			}
			rank--
			file = FileA
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
			if file > FileH+1 {
				return Position{}, fmt.Errorf("parse fen failed %v: bad rank: %w", fen, ErrInvalidFEN)
			}
		default:
			var piece = strings.IndexRune("pnbrqk", unicode.ToLower(ch))
			if piece < 0 || file > FileH {
				return Position{}, fmt.Errorf("parse fen failed %v: %w", fen, ErrInvalidFEN)
			}
			piece += Pawn
			if piece == Pawn && (rank == Rank1 || rank == Rank8) {
				return Position{}, fmt.Errorf("parse fen failed %v: pawn on last rank: %w", fen, ErrInvalidFEN)
			}
			xorPiece(&p, piece, unicode.IsUpper(ch), MakeSquare(file, rank))
			file++
		}
	}
	if rank != Rank1 || file != FileH+1 {
		return Position{}, fmt.Errorf("parse fen failed %v: bad board: %w", fen, ErrInvalidFEN)
	}

	switch tokens[1] {
	case "w":
		p.WhiteMove = true
	case "b":
		p.WhiteMove = false
	default:
		return Position{}, fmt.Errorf("parse fen failed %v: %w", fen, ErrInvalidFEN)
	}

	for _, ch := range tokens[2] {
		switch ch {
		case 'K':
			p.CastleRights |= WhiteKingSide
		case 'Q':
			p.CastleRights |= WhiteQueenSide
		case 'k':
			p.CastleRights |= BlackKingSide
		case 'q':
			p.CastleRights |= BlackQueenSide
		}
	}

	var ep, err = ParseSquare(tokens[3])
	if err != nil {
		return Position{}, fmt.Errorf("parse fen failed %v: %w", fen, ErrInvalidFEN)
	}
	if ep != SquareNone {
		var epRank, pawnSq = Rank6, ep - 8
		if !p.WhiteMove {
			epRank, pawnSq = Rank3, ep+8
		}
		if Rank(ep) != epRank {
			return Position{}, fmt.Errorf("parse fen failed %v: bad en passant square: %w", fen, ErrInvalidFEN)
		}
		// A pushed pawn must stand behind the square; otherwise the field is ignored.
		if p.Pawns&p.PiecesByColor(!p.WhiteMove)&SquareMask[pawnSq] != 0 {
			p.EpSquare = ep
		}
	}

	if len(tokens) > 4 {
		var rule50, err = strconv.Atoi(tokens[4])
		if err != nil || rule50 < 0 {
			return Position{}, fmt.Errorf("parse fen failed %v: bad halfmove clock: %w", fen, ErrInvalidFEN)
		}
		p.Rule50 = rule50
	}
	if len(tokens) > 5 {
		if n, err := strconv.Atoi(tokens[5]); err == nil && n > 0 {
			p.FullMove = n
		}
	}

	p.CastleRights &= p.castleRightsFromPlacement()

	if PopCount(p.Kings&p.White) != 1 || PopCount(p.Kings&p.Black) != 1 {
		return Position{}, fmt.Errorf("parse fen failed %v: %w", fen, ErrInvalidFEN)
	}
	p.Key = p.computeKey()
	p.Checkers = p.computeCheckers()
	if !p.isLegal() {
		return Position{}, fmt.Errorf("parse fen failed %v: side not to move is in check: %w", fen, ErrInvalidFEN)
	}
	return p, nil
}

// String returns the position in FEN.
func (p *Position) String() string {
	var sb strings.Builder

	for rank := Rank8; rank >= Rank1; rank-- {
		var emptyCount = 0
		for file := FileA; file <= FileH; file++ {
			var sq = MakeSquare(file, rank)
			var piece = p.WhatPiece(sq)
			if piece == Empty {
				emptyCount++
				continue
			}
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(pieceToChar(piece, p.White&SquareMask[sq] != 0))
		}
		if emptyCount != 0 {
			sb.WriteString(strconv.Itoa(emptyCount))
		}
		if rank != Rank1 {
			sb.WriteByte('/')
		}
	}

	if p.WhiteMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights == 0 {
		sb.WriteString("-")
	}
	for i, ch := range "KQkq" {
		if p.CastleRights&(1<<i) != 0 {
			sb.WriteRune(ch)
		}
	}

	fmt.Fprintf(&sb, " %v %v %v", SquareName(p.EpSquare), p.Rule50, p.FullMove)
	return sb.String()
}

// castleRightsFromPlacement drops rights whose king or rook is not at home.
func (p *Position) castleRightsFromPlacement() int {
	var result = 0
	var whiteRooks = p.Rooks & p.White
	var blackRooks = p.Rooks & p.Black
	if p.Kings&p.White&SquareMask[SquareE1] != 0 {
		if whiteRooks&SquareMask[SquareH1] != 0 {
			result |= WhiteKingSide
		}
		if whiteRooks&SquareMask[SquareA1] != 0 {
			result |= WhiteQueenSide
		}
	}
	if p.Kings&p.Black&SquareMask[SquareE8] != 0 {
		if blackRooks&SquareMask[SquareH8] != 0 {
			result |= BlackKingSide
		}
		if blackRooks&SquareMask[SquareA8] != 0 {
			result |= BlackQueenSide
		}
	}
	return result
}

func pieceToChar(piece int, side bool) byte {
	var ch = "pnbrqk"[piece-Pawn]
	if side {
		ch -= 'a' - 'A'
	}
	return ch
}
