package engine

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"twenty48/agent"
	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/meta"
)

var ErrGameOver = errors.New("game over")

// Engine plays one game at a time: it applies moves, spawns tiles and keeps
// track of the fours spawned so the score can be reported.
type Engine struct {
	State    game.State
	Agent    agent.Agent // nil for manual play
	MaxMoves int         // Run gives up after this many agent decisions

	seed  uint64
	rng   *rand.Rand
	moves int
}

// NewLocal starts a game with two spawned tiles. The seed drives every spawn.
func NewLocal(a agent.Agent, seed uint64) *Engine {
	e := &Engine{
		Agent:    a,
		MaxMoves: meta.MaxMoves,
	}
	e.Reset(seed)
	return e
}

// Reset starts a new game with the given seed.
func (e *Engine) Reset(seed uint64) {
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))
	e.State = game.State{}
	e.moves = 0
	e.spawn()
	e.spawn()
}

// Load continues from a saved state. Spawns keep using the current generator.
func (e *Engine) Load(s game.State) {
	e.State = s
	e.moves = 0
}

func (e *Engine) Seed() uint64 {
	return e.seed
}

// Moves counts the moves that changed the board since the last Reset or Load.
func (e *Engine) Moves() int {
	return e.moves
}

func (e *Engine) Score() int {
	return e.State.Score()
}

func (e *Engine) Dead() bool {
	return game.IsTerminal(e.State.Board)
}

// spawn puts a 2 (or a 4, one time in ten) on a uniformly chosen empty cell.
func (e *Engine) spawn() {
	open := e.State.Board.EmptySquares()
	if open == 0 {
		return
	}
	rank := 1
	if e.rng.Float64() >= game.ProbTwo {
		rank = 2
		e.State.FoursSpawned++
	}
	e.State.Board = game.Spawn(e.State.Board, rank, e.rng.Intn(open))
}

// Play applies d and spawns a tile if the board changed. A move that changes
// nothing is not an error.
func (e *Engine) Play(d game.Direction) (bool, error) {
	if e.Dead() {
		return false, ErrGameOver
	}
	moved := game.Apply(e.State.Board, d)
	if moved == e.State.Board {
		return false, nil
	}
	e.State.Board = moved
	e.spawn()
	e.moves++
	return true, nil
}

// Step asks the agent for a move and plays it.
func (e *Engine) Step() (metrics.MoveMetric, error) {
	if e.Dead() {
		return metrics.MoveMetric{}, ErrGameOver
	}

	var d game.Direction
	var search metrics.SearchMetric
	if instrumented, ok := e.Agent.(agent.Instrumented); ok {
		d, search = instrumented.NextMoveWithMetrics(e.State.Board)
	} else {
		d = e.Agent.NextMove(e.State.Board)
	}

	moved, err := e.Play(d)
	return metrics.MoveMetric{
		Direction:    d.String(),
		Moved:        moved,
		Score:        e.Score(),
		SearchMetric: search,
	}, err
}

// Run lets the agent play until the board is dead or MaxMoves decisions have
// been made.
func (e *Engine) Run() (metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		Seed:      e.seed,
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Uint64("seed", e.seed).Msg("starting game")

	for step := 1; !e.Dead() && step <= e.MaxMoves; step++ {
		moveMetric, err := e.Step()
		if err != nil {
			break
		}
		moveMetric.Step = step
		moveMetrics = append(moveMetrics, moveMetric)

		log.Debug().
			Int("step", step).
			Str("dir", moveMetric.Direction).
			Bool("moved", moveMetric.Moved).
			Int("score", moveMetric.Score).
			Msg("move")
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Score = e.Score()
	gameMetric.MaxTile = e.State.Board.MaxTile()
	gameMetric.Moves = e.moves
	gameMetric.FoursSpawned = e.State.FoursSpawned
	if seconds := gameMetric.Duration.Seconds(); seconds > 0 {
		gameMetric.MovesPerSecond = float64(e.moves) / seconds
	}

	if !e.Dead() {
		log.Warn().Msgf("stopped after %d decisions with the game still running", e.MaxMoves)
	}
	log.Info().
		Uint64("seed", e.seed).
		Int("score", gameMetric.Score).
		Int("maxTile", gameMetric.MaxTile).
		Int("moves", gameMetric.Moves).
		Float64("movesPerSecond", gameMetric.MovesPerSecond).
		Msg("game over")

	return gameMetric, moveMetrics
}
