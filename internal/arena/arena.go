package arena

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Run plays every opening twice and returns the score of engine A.
func Run(ctx context.Context, config Config) (Score, error) {
	if config.NewEngineA == nil || config.NewEngineB == nil {
		return Score{}, errors.New("arena: engine factory not set")
	}
	if config.TimeControl.FixedNodes == 0 && config.TimeControl.FixedTime == 0 {
		return Score{}, errors.New("arena: bad time control")
	}
	var concurrency = max(1, config.Concurrency)
	var openings = config.Openings
	if len(openings) == 0 {
		openings = DefaultOpenings
	}

	log.Info().
		Int("numcpu", runtime.NumCPU()).
		Int("concurrency", concurrency).
		Int("nodes", config.TimeControl.FixedNodes).
		Dur("movetime", config.TimeControl.FixedTime).
		Msg("arena-started")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)
	var score Score

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, openings, gameInfos)
	})

	g.Go(func() error {
		score = showResults(gameResults)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, config, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	var err = g.Wait()
	log.Info().
		Int("wins", score.Wins).
		Int("losses", score.Losses).
		Int("draws", score.Draws).
		Msg("arena-finished")
	return score, err
}

func loadOpenings(ctx context.Context, openings []string, gameInfos chan<- gameInfo) error {
	for i, fen := range openings {
		for _, engineAIsWhite := range []bool{true, false} {
			var info = gameInfo{opening: fen, engineAIsWhite: engineAIsWhite, gameNumber: 1 + 2*i}
			if !engineAIsWhite {
				info.gameNumber++
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- info:
			}
		}
	}
	return nil
}

func playGames(
	ctx context.Context,
	config Config,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	var engineA = config.NewEngineA()
	var engineB = config.NewEngineB()
	for info := range gameInfos {
		var res, err = playGame(ctx, engineA, engineB, config.TimeControl, info)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}
