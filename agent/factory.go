package agent

import (
	"fmt"

	"twenty48/game"
	"twenty48/searcher"
)

type Option func(c *config)

type config struct {
	seed         uint64
	metrics      bool
	memoCapacity int
}

// WithSeed seeds the random number generator of the random and greedy agents.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithMetrics makes expectimax agents collect a SearchMetric per move.
func WithMetrics() Option {
	return func(c *config) {
		c.metrics = true
	}
}

func WithMemoCapacity(capacity int) Option {
	return func(c *config) {
		c.memoCapacity = capacity
	}
}

// New builds an agent of the given kind. Random and greedy agents own a
// random number generator and must not be shared between goroutines.
func New(kind Kind, options ...Option) (Agent, error) {
	c := &config{ // Default values
		seed:         1,
		memoCapacity: -1,
	}
	for _, option := range options {
		option(c)
	}

	switch kind {
	case Random:
		return NewRandom(c.seed), nil
	case Greedy:
		return NewGreedy(c.seed), nil
	case Expectimax:
		return newExpectimax(kind, c,
			searcher.WithEvaluator(game.BasicHeuristic()),
			searcher.WithTuner(searcher.BasicTuning),
		), nil
	case ImprovedExpectimax:
		return newExpectimax(kind, c,
			searcher.WithEvaluator(game.ImprovedHeuristic()),
			searcher.WithTuner(searcher.ImprovedTuning),
		), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}
