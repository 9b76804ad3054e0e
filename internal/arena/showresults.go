package arena

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

func showResults(gameResults <-chan gameResult) Score {
	var score Score
	for gameResult := range gameResults {
		if gameResult.result == gameResultDraw {
			score.Draws++
		} else if gameResult.result == gameResultWhiteWins && gameResult.gameInfo.engineAIsWhite ||
			gameResult.result == gameResultBlackWins && !gameResult.gameInfo.engineAIsWhite {
			score.Wins++
		} else {
			score.Losses++
		}
		var stat = computeStat(score)
		log.Info().
			Int("game", gameResult.gameInfo.gameNumber).
			Str("result", gameResultString(gameResult.result)).
			Str("comment", gameResult.comment).
			Int("plies", len(gameResult.positions)-1).
			Str("score", fmt.Sprintf("%v - %v - %v", score.Wins, score.Losses, score.Draws)).
			Float64("fraction", stat.winningFraction).
			Float64("elo", stat.eloDifference).
			Float64("los", stat.los).
			Msg("game-finished")
	}
	return score
}

type gameStatistics struct {
	winningFraction float64
	eloDifference   float64
	los             float64
}

// https://www.chessprogramming.org/Match_Statistics
func computeStat(s Score) gameStatistics {
	var games = s.Games()
	if games == 0 {
		return gameStatistics{winningFraction: 0.5, los: 0.5}
	}
	var winningFraction = (float64(s.Wins) + 0.5*float64(s.Draws)) / float64(games)
	var eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	var los = 0.5
	if decisive := s.Wins + s.Losses; decisive != 0 {
		los = 0.5 + 0.5*math.Erf(float64(s.Wins-s.Losses)/math.Sqrt(2*float64(decisive)))
	}
	return gameStatistics{
		winningFraction: winningFraction,
		eloDifference:   eloDifference,
		los:             los,
	}
}

func gameResultString(v int) string {
	switch v {
	case gameResultWhiteWins:
		return "1-0"
	case gameResultBlackWins:
		return "0-1"
	case gameResultDraw:
		return "1/2-1/2"
	}
	return ""
}
