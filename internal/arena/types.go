// Package arena plays matches between two engine configurations.
package arena

import (
	"context"
	"time"

	"github.com/lazycounter/lazycounter/pkg/common"
)

const (
	gameResultDraw = iota
	gameResultWhiteWins
	gameResultBlackWins
)

type IEngine interface {
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

type TimeControl struct {
	FixedNodes int
	FixedTime  time.Duration
}

type Config struct {
	Concurrency int
	TimeControl TimeControl
	// Openings are start positions. Every opening is played twice with
	// colours reversed.
	Openings   []string
	NewEngineA func() IEngine
	NewEngineB func() IEngine
}

type gameInfo struct {
	opening        string
	engineAIsWhite bool
	gameNumber     int
}

type gameResult struct {
	gameInfo  gameInfo
	positions []common.Position
	comment   string
	result    int
}

// Score counts results from the point of view of engine A.
type Score struct {
	Wins, Losses, Draws int
}

func (s Score) Games() int {
	return s.Wins + s.Losses + s.Draws
}

var DefaultOpenings = []string{
	common.InitialPositionFen,
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
	"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
	"rnbqkb1r/pppppppp/5n2/8/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 1 2",
	"rnbqkbnr/ppp1pppp/8/3p4/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 2",
	"rnbqkbnr/pppppppp/8/8/2P5/8/PP1PPPPP/RNBQKBNR b KQkq - 0 1",
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"rnbqkbnr/pppp1ppp/4p3/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
}
