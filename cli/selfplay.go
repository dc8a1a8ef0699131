package cli

import (
	"context"
	"flag"
	"time"

	"gomoku/engine"
	"gomoku/meta"
	"gomoku/searcher"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type SelfPlay struct {
	iterations int
	duration   time.Duration
	goroutines int
	seed       uint64
}

func (*SelfPlay) Name() string     { return "selfplay" }
func (*SelfPlay) Synopsis() string { return "Play one game between two engines" }
func (*SelfPlay) Usage() string {
	return `selfplay [flags]
`
}

func (c *SelfPlay) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.iterations, "iterations", meta.ITERATIONS, "episodes per move")
	flags.DurationVar(&c.duration, "duration", 0, "search time per move, replaces -iterations")
	flags.IntVar(&c.goroutines, "goroutines", meta.GO_ROUTINES, "root parallel searches per move")
	flags.Uint64Var(&c.seed, "seed", meta.SEED, "seed of the first engine")
}

func (c *SelfPlay) Execute(ctx context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.iterations < 0 || c.goroutines < 1 {
		log.Error().Msg("-iterations must not be negative and -goroutines at least 1")
		return subcommands.ExitUsageError
	}

	var e engine.Engine = engine.NewLocal(c.newMCTS(c.seed), c.newMCTS(c.seed+1))
	result := e.Run()

	log.Info().Msgf("game over in %d moves after %s, score %d: %v", result.Plies, result.Duration, result.Score, result.Moves)
	return subcommands.ExitSuccess
}

func (c *SelfPlay) newMCTS(seed uint64) *searcher.MCTS {
	return searcher.NewMCTS(
		searcher.WithIterations(c.iterations),
		searcher.WithDuration(c.duration),
		searcher.WithGoroutines(c.goroutines),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)
}
