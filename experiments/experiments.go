package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"twenty48/agent"
	"twenty48/engine"
	"twenty48/experiments/metrics"
	"twenty48/meta"
)

// Config describes a benchmark: NumGames games for every agent, game i of
// each agent seeded with Seed+i so all agents see the same spawn streams.
type Config struct {
	Name      string
	Agents    []agent.Kind
	NumGames  int
	Seed      uint64
	MaxMoves  int
	OutputDir string // no files are written when empty
	Metrics   bool   // collect search metrics for the move records
}

type Result struct {
	Dir         string // where the records were written, if anywhere
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
	Summaries   []Summary
}

func Run(config Config) (Result, error) {
	if config.NumGames <= 0 {
		return Result{}, fmt.Errorf("number of games must be positive, got %d", config.NumGames)
	}
	if len(config.Agents) == 0 {
		return Result{}, fmt.Errorf("no agents to benchmark")
	}
	if config.MaxMoves <= 0 {
		config.MaxMoves = meta.MaxMoves
	}
	if config.Name == "" {
		config.Name = "benchmark"
	}

	setup := metrics.Setup{
		Name:      config.Name,
		NumGames:  config.NumGames,
		Seed:      config.Seed,
		MaxMoves:  config.MaxMoves,
		StartTime: time.Now(),
	}
	for _, kind := range config.Agents {
		setup.Agents = append(setup.Agents, kind.String())
	}

	log.Info().Msgf("starting %s experiment...", config.Name)

	count := 0
	result := Result{}
	for ai, kind := range config.Agents {
		log.Info().Msgf("starting agent %d of %d: %s...", ai+1, len(config.Agents), kind)

		for i := 0; i < config.NumGames; i++ {
			seed := config.Seed + uint64(i)
			gameMetric, moveMetrics, err := runGame(kind, seed, config)
			if err != nil {
				return Result{}, err
			}
			count++
			result.GameRecords = append(result.GameRecords, metrics.GameRecord{
				ID:         count,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.MoveRecords = append(result.MoveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed %s game %d of %d with score %d and max tile %d",
				kind, i+1, config.NumGames, gameMetric.Score, gameMetric.MaxTile)
		}
	}

	setup.EndTime = time.Now()
	setup.Duration = setup.EndTime.Sub(setup.StartTime)
	result.Summaries = Summarize(result.GameRecords)

	log.Info().Msgf("completed %s experiment in %s", config.Name, setup.Duration)

	if config.OutputDir == "" {
		return result, nil
	}
	dir, err := store(config, setup, result)
	if err != nil {
		return Result{}, err
	}
	result.Dir = dir
	return result, nil
}

func runGame(kind agent.Kind, seed uint64, config Config) (metrics.GameMetric, []metrics.MoveMetric, error) {
	options := []agent.Option{agent.WithSeed(seed)}
	if config.Metrics {
		options = append(options, agent.WithMetrics())
	}
	a, err := agent.New(kind, options...)
	if err != nil {
		return metrics.GameMetric{}, nil, fmt.Errorf("failed to create agent: %w", err)
	}

	e := engine.NewLocal(a, seed)
	e.MaxMoves = config.MaxMoves
	gameMetric, moveMetrics := e.Run()
	gameMetric.Agent = kind.String()
	return gameMetric, moveMetrics, nil
}

func store(config Config, setup metrics.Setup, result Result) (string, error) {
	writer, err := metrics.NewWriter(config.OutputDir, config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteSetup(setup); err != nil {
		return "", fmt.Errorf("failed to store setup: %w", err)
	}
	log.Info().Msg("stored setup")

	if err := writer.WriteGameRecords(result.GameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.MoveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
