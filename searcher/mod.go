package searcher

import "twenty48/game"

// Evaluator scores the boards where the search stops expanding.
type Evaluator interface {
	Evaluate(b game.Board) float64
}

// EvaluatorFunc adapts a plain scoring function.
type EvaluatorFunc func(b game.Board) float64

func (f EvaluatorFunc) Evaluate(b game.Board) float64 {
	return f(b)
}

// Searcher picks a move for a board.
type Searcher interface {
	FindBestMove(b game.Board) game.Direction
}
