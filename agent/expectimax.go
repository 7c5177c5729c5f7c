package agent

import (
	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/searcher"
)

// ExpectimaxAgent delegates to a searcher. It is safe for concurrent use.
type ExpectimaxAgent struct {
	kind   Kind
	search *searcher.Expectimax
}

func newExpectimax(kind Kind, c *config, options ...searcher.Option) *ExpectimaxAgent {
	if c.metrics {
		options = append(options, searcher.WithMetrics())
	}
	if c.memoCapacity >= 0 {
		options = append(options, searcher.WithMemoCapacity(c.memoCapacity))
	}
	return &ExpectimaxAgent{
		kind:   kind,
		search: searcher.NewExpectimax(options...),
	}
}

func (a *ExpectimaxAgent) Kind() Kind {
	return a.kind
}

func (a *ExpectimaxAgent) NextMove(b game.Board) game.Direction {
	return a.search.FindBestMove(b)
}

func (a *ExpectimaxAgent) NextMoveWithMetrics(b game.Board) (game.Direction, metrics.SearchMetric) {
	return a.search.Search(b)
}

// Scores returns the expected score of every move from b, 0 for moves that
// change nothing.
func (a *ExpectimaxAgent) Scores(b game.Board) [4]float64 {
	return a.search.EvaluateMoves(b)
}

// NextMoveWithScores is NextMove that also returns the score of every move.
func (a *ExpectimaxAgent) NextMoveWithScores(b game.Board) (game.Direction, [4]float64) {
	return a.search.Rank(b)
}
