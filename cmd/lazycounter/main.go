package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

/*
lazycounter is a command line front end for the search engine.

	lazycounter [flags] search|perft|bench|magics|arena|play
*/

const name = "lazycounter"

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

type cliFlags struct {
	logLevel    string
	hash        int
	threads     int
	eval        string
	evalB       string
	fen         string
	depth       int
	moveTime    int
	nodes       int
	seed        string
	tries       int
	concurrency int
	gameNodes   int
}

func main() {
	var flags cliFlags
	flag.StringVar(&flags.logLevel, "loglevel", "info", "log level (debug, info, warn, error)")
	flag.IntVar(&flags.hash, "hash", 16, "transposition table size in megabytes")
	flag.IntVar(&flags.threads, "threads", 1, "number of search threads")
	flag.StringVar(&flags.eval, "eval", "", "evaluation function (pst, material)")
	flag.StringVar(&flags.evalB, "evalb", "material", "evaluation function of the arena opponent")
	flag.StringVar(&flags.fen, "fen", "", "position to search, start position when empty")
	flag.IntVar(&flags.depth, "depth", 0, "search depth limit")
	flag.IntVar(&flags.moveTime, "movetime", 0, "search time limit in milliseconds")
	flag.IntVar(&flags.nodes, "nodes", 0, "search node limit")
	flag.StringVar(&flags.seed, "seed", name, "seed of the magic number search")
	flag.IntVar(&flags.tries, "tries", 100_000_000, "candidates tried per square by magics")
	flag.IntVar(&flags.concurrency, "concurrency", runtime.NumCPU(), "games played in parallel by arena")
	flag.IntVar(&flags.gameNodes, "gamenodes", 20_000, "nodes per move in arena games")
	flag.Parse()

	var level, err = zerolog.ParseLevel(flags.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	log.Debug().
		Str("name", name).
		Str("version", versionName).
		Str("builddate", buildDate).
		Str("gitrevision", gitRevision).
		Str("runtime", runtime.Version()).
		Int("numcpu", runtime.NumCPU()).
		Msg("started")

	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var commandName = flag.Arg(0)
	if commandName == "" {
		commandName = "search"
	}
	var app = &application{flags: flags, out: os.Stdout, in: os.Stdin}
	err = app.commands(ctx).Execute(commandName)
	stop()
	if err != nil {
		log.Error().Err(err).Str("command", commandName).Msg("command-failed")
		os.Exit(1)
	}
}
