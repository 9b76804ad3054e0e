// Package utils holds an interactive console game against the engine.
package utils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lazycounter/lazycounter/pkg/common"
)

type IEngine interface {
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

// PlayCli reads moves in coordinate notation and answers with the engine
// move until "quit" or the end of input.
func PlayCli(ctx context.Context, engine IEngine, limits common.LimitsType, in io.Reader, out io.Writer) error {
	var game = newGame()
	game.Print(out)
	var scanner = bufio.NewScanner(in)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "quit" {
			break
		}
		if !game.MakeMoveLAN(commandLine) {
			fmt.Fprintln(out, "bad move")
			continue
		}
		game.Print(out)
		var si = engine.Search(ctx, common.SearchParams{
			Positions: game.positions,
			Limits:    limits,
		})
		if si.Outcome != common.OutcomeNone {
			fmt.Fprintln(out, si.Outcome)
			return nil
		}
		var bestMove = si.BestMove()
		fmt.Fprintln(out, bestMove.String())
		if !game.MakeMoveLAN(bestMove.String()) {
			return fmt.Errorf("bad move %v", bestMove)
		}
		game.Print(out)
	}
	return scanner.Err()
}

type game struct {
	positions []common.Position
}

func newGame() *game {
	var pos, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	return &game{
		positions: []common.Position{pos},
	}
}

func (g *game) current() *common.Position {
	return &g.positions[len(g.positions)-1]
}

func (g *game) Print(out io.Writer) {
	var curPos = g.current()
	var sb strings.Builder
	for i := 0; i < 64; i++ {
		var sq = common.FlipSquare(i)
		var piece = curPos.WhatPiece(sq)
		var side = curPos.White&common.SquareMask[sq] != 0
		sb.WriteString(pieceString(piece, side, isDarkSquare(sq)))
		if common.File(sq) == common.FileH {
			sb.WriteString("\n")
		}
	}
	fmt.Fprint(out, sb.String())
}

func (g *game) MakeMoveLAN(smove string) bool {
	var child, ok = g.current().MakeMoveLAN(smove)
	if !ok {
		return false
	}
	g.positions = append(g.positions, child)
	return true
}

func isDarkSquare(sq int) bool {
	return (common.File(sq)+common.Rank(sq))%2 == 0
}

const (
	whiteKing   = "♔"
	whiteQueen  = "♕"
	whiteRook   = "♖"
	whiteBishop = "♗"
	whiteKnight = "♘"
	whitePawn   = "♙"
	blackKing   = "♚"
	blackQueen  = "♛"
	blackRook   = "♜"
	blackBishop = "♝"
	blackKnight = "♞"
	blackPawn   = "♟"
)

const (
	fgBlack   = 30
	bgWhite   = 47
	bgHiWhite = 107
)

var chessSymbols = [2][7]string{
	{" ", whitePawn, whiteKnight, whiteBishop, whiteRook, whiteQueen, whiteKing},
	{" ", blackPawn, blackKnight, blackBishop, blackRook, blackQueen, blackKing},
}

func pieceString(piece int, side, darkSquare bool) string {
	var s string
	if side {
		s = chessSymbols[0][piece]
	} else {
		s = chessSymbols[1][piece]
	}
	s += " "
	var bgColor = bgHiWhite
	if darkSquare {
		bgColor = bgWhite
	}
	const escape = "\x1b"
	const reset = 0
	return fmt.Sprintf("%s[%s;%sm%s%s[%dm",
		escape, strconv.Itoa(fgBlack), strconv.Itoa(bgColor), s, escape, reset)
}
