package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lazycounter/lazycounter/pkg/common"
)

func playGame(
	ctx context.Context,
	engineA, engineB IEngine,
	tc TimeControl,
	info gameInfo,
) (gameResult, error) {

	log.Debug().Int("game", info.gameNumber).Msg("game-started")

	engineA.Clear()
	engineB.Clear()

	var startingPos, err = common.NewPositionFromFEN(info.opening)
	if err != nil {
		return gameResult{}, err
	}

	var positions = []common.Position{startingPos}
	var keys = make(map[uint64]int)

	var finish = func(comment string, result int) (gameResult, error) {
		return gameResult{gameInfo: info, positions: positions, comment: comment, result: result}, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}
		var curPosition = &positions[len(positions)-1]
		var ml = curPosition.GenerateLegalMoves()

		if len(ml) == 0 {
			if curPosition.IsCheck() {
				if curPosition.WhiteMove {
					return finish("checkmate", gameResultBlackWins)
				}
				return finish("checkmate", gameResultWhiteWins)
			}
			return finish("stalemate", gameResultDraw)
		}
		if curPosition.Rule50 >= 100 {
			return finish("50 moves", gameResultDraw)
		}
		if isLowMaterial(curPosition) {
			return finish("low material", gameResultDraw)
		}
		keys[curPosition.Key] += 1
		if keys[curPosition.Key] == 3 {
			return finish("3 fold repetition", gameResultDraw)
		}

		var eng IEngine
		if curPosition.WhiteMove == info.engineAIsWhite {
			eng = engineA
		} else {
			eng = engineB
		}
		var limits common.LimitsType
		if tc.FixedNodes != 0 {
			limits.Nodes = tc.FixedNodes
		} else {
			limits.MoveTime = int(tc.FixedTime / time.Millisecond)
		}
		var searchResult = eng.Search(ctx, common.SearchParams{
			Positions: positions,
			Limits:    limits,
		})
		var bestMove = searchResult.BestMove()
		if !containsMove(ml, bestMove) {
			return gameResult{}, fmt.Errorf("game %v: bad move %v in %v",
				info.gameNumber, bestMove, curPosition.String())
		}
		var child = *curPosition
		child.MakeMove(bestMove)
		positions = append(positions, child)
	}
}

func isLowMaterial(p *common.Position) bool {
	return (p.Pawns|p.Rooks|p.Queens) == 0 &&
		!common.MoreThanOne(p.Knights|p.Bishops)
}

func containsMove(ml []common.Move, move common.Move) bool {
	for _, m := range ml {
		if m == move {
			return true
		}
	}
	return false
}
