package searcher

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"twenty48/experiments/metrics"
	"twenty48/game"
)

type Option func(e *Expectimax)

var _ Searcher = (*Expectimax)(nil)

// Expectimax searches every legal root move in its own goroutine, alternating
// player moves and random spawns below it. It keeps no state between calls
// and is safe for concurrent use.
type Expectimax struct {
	evaluate     Evaluator
	tune         Tuner
	memoCapacity int
	newCollector func() metrics.Collector
	fallback     func() game.Direction
}

func WithEvaluator(evaluate Evaluator) Option {
	return func(e *Expectimax) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

func WithTuner(tune Tuner) Option {
	return func(e *Expectimax) {
		if tune != nil {
			e.tune = tune
		}
	}
}

func WithMemoCapacity(capacity int) Option {
	return func(e *Expectimax) {
		if capacity >= 0 {
			e.memoCapacity = capacity
		}
	}
}

// WithMetrics collects a SearchMetric for every call to Search.
func WithMetrics() Option {
	return func(e *Expectimax) {
		e.newCollector = metrics.NewCollector
	}
}

// WithFallback replaces the random default move used when no root move
// scores above 0.
func WithFallback(fallback func() game.Direction) Option {
	return func(e *Expectimax) {
		if fallback != nil {
			e.fallback = fallback
		}
	}
}

func NewExpectimax(options ...Option) *Expectimax {
	e := &Expectimax{ // Default values
		evaluate:     game.BasicHeuristic(),
		tune:         BasicTuning,
		memoCapacity: DefaultMemoCapacity(),
		newCollector: metrics.NewDummyCollector,
		fallback:     randomDirection,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func randomDirection() game.Direction {
	return game.Direction(frand.Intn(len(game.Directions)))
}

func (e *Expectimax) FindBestMove(b game.Board) game.Direction {
	d, _ := e.Search(b)
	return d
}

// Search returns the legal direction with the strictly greatest expected
// score, keeping the first of equal maxima, along with the search statistics.
// A dead board gets the fallback direction.
func (e *Expectimax) Search(b game.Board) (game.Direction, metrics.SearchMetric) {
	d, _, metric := e.search(b)
	return d, metric
}

// Rank is FindBestMove that also returns the score of every root move.
func (e *Expectimax) Rank(b game.Board) (game.Direction, [4]float64) {
	d, scores, _ := e.search(b)
	return d, scores
}

func (e *Expectimax) search(b game.Board) (game.Direction, [4]float64, metrics.SearchMetric) {
	tuning := e.tune(b)
	collector := e.newCollector()
	collector.Start(tuning.DepthLimit, tuning.ProbThreshold, tuning.CacheLimit)

	scores, legal := e.evaluateMoves(b, tuning, collector)

	best := 0.0
	bestMove := e.fallback()
	found := false
	for _, d := range game.Directions {
		if !legal[d] {
			continue
		}
		if !found || scores[d] > best {
			best = scores[d]
			bestMove = d
			found = true
		}
	}

	metric := collector.Complete()
	log.Debug().
		Str("move", bestMove.String()).
		Float64("score", best).
		Int("depthLimit", tuning.DepthLimit).
		Float64("probThreshold", tuning.ProbThreshold).
		Msg("search-done")
	return bestMove, scores, metric
}

// EvaluateMoves returns the expected score of every root move, 0 for moves
// that leave the board unchanged.
func (e *Expectimax) EvaluateMoves(b game.Board) [4]float64 {
	scores, _ := e.evaluateMoves(b, e.tune(b), metrics.NewDummyCollector())
	return scores
}

func (e *Expectimax) evaluateMoves(b game.Board, tuning Tuning, collector metrics.Collector) (scores [4]float64, legal [4]bool) {
	g := errgroup.Group{}
	for _, d := range game.Directions {
		d := d
		moved := b.Shift(d)
		if moved == b {
			continue
		}
		legal[d] = true
		g.Go(func() (err error) {
			// A failed task keeps its score at 0 and does not stop the others.
			defer func() {
				if r := recover(); r != nil {
					collector.AddFailure()
					err = fmt.Errorf("search %s: %v", d, r)
				}
			}()
			s := newSearch(tuning, e.evaluate, e.memoCapacity)
			scores[d] = s.scoreChanceNode(moved, 1.0, 0)
			collector.AddTask(s.taskStats())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Uint64("board", uint64(b)).Msg("search task failed, scoring it as 0")
	}
	return scores, legal
}
