// meta/meta.go
package meta

// MaxMoves caps the agent decisions in one benchmark game.
const MaxMoves = 100000

// NumGames is the default number of benchmark games per agent.
const NumGames = 10

// Seed is the default seed of the first benchmark game.
const Seed = 1

// Agent is the default agent for hints, the move service and benchmarks.
const Agent = "improved"

// OutputDir is where benchmark results are written.
const OutputDir = "results"

// Addr is the default listen address of the move service.
const Addr = ":8080"

// LogLevel is the default zerolog level.
const LogLevel = "info"
