package cli

import (
	"context"
	"flag"
	"time"

	"gomoku/game"
	"gomoku/meta"
	"gomoku/searcher"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// Bench measures search throughput from the empty board
type Bench struct {
	duration   time.Duration
	goroutines int
	seed       uint64
}

func (*Bench) Name() string     { return "bench" }
func (*Bench) Synopsis() string { return "Measure episodes per second from the empty board" }
func (*Bench) Usage() string {
	return `bench [flags]
`
}

func (c *Bench) SetFlags(flags *flag.FlagSet) {
	flags.DurationVar(&c.duration, "duration", meta.BENCH_DURATION*time.Second, "time to search")
	flags.IntVar(&c.goroutines, "goroutines", meta.GO_ROUTINES, "root parallel searches")
	flags.Uint64Var(&c.seed, "seed", meta.SEED, "search seed")
}

func (c *Bench) Execute(ctx context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.duration <= 0 || c.goroutines < 1 {
		log.Error().Msg("-duration must be positive and -goroutines at least 1")
		return subcommands.ExitUsageError
	}

	m := searcher.NewMCTS(
		searcher.WithDuration(c.duration),
		searcher.WithGoroutines(c.goroutines),
		searcher.WithSeed(c.seed),
		searcher.WithMetrics(),
	)
	move := m.MakeMove(game.NewBoard(), nil)

	metrics := m.Metrics()
	rate := float64(metrics.Episodes) / metrics.Duration.Seconds()
	log.Info().Msgf("%d episodes in %s, %.0f episodes per second, chose %s", metrics.Episodes, metrics.Duration, rate, move)
	return subcommands.ExitSuccess
}
