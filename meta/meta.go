// meta/meta.go
package meta

// GO_ROUTINES defines the number of root parallel searches per move.
const GO_ROUTINES = 1

// ITERATIONS defines the number of episodes per move.
const ITERATIONS = 10000

// SEED defines the seed of the first engine, the second uses SEED+1.
const SEED = 1

// BENCH_DURATION defines how long the benchmark searches, in seconds.
const BENCH_DURATION = 10
