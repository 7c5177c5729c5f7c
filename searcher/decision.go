package searcher

import (
	"twenty48/experiments/metrics"
	"twenty48/game"
)

// search is the state of one root task. It is never shared between goroutines.
type search struct {
	Tuning
	evaluate Evaluator
	memo     *memo
	stats    metrics.TaskStats
}

func newSearch(t Tuning, evaluate Evaluator, memoCapacity int) *search {
	return &search{
		Tuning:   t,
		evaluate: evaluate,
		memo:     newMemo(t.CacheLimit, memoCapacity),
	}
}

// scoreMoveNode is the player's turn: the best of the legal moves, or 0 when
// there is none. Improbable or deep nodes are scored by the heuristic instead.
func (s *search) scoreMoveNode(b game.Board, cprob float64, depth int) float64 {
	if cprob < s.ProbThreshold || depth >= s.DepthLimit {
		s.stats.Cutoffs++
		return s.evaluate.Evaluate(b)
	}
	if score, ok := s.memo.get(b, depth); ok {
		return score
	}
	s.stats.MoveNodes++

	best := 0.0
	for _, d := range game.Directions {
		moved := b.Shift(d)
		if moved == b {
			continue
		}
		if score := s.scoreChanceNode(moved, cprob, depth+1); score > best {
			best = score
		}
	}

	s.memo.put(b, depth, best)
	return best
}

func (s *search) taskStats() metrics.TaskStats {
	stats := s.stats
	stats.CacheLookups = s.memo.lookups
	stats.CacheHits = s.memo.hits
	return stats
}
