package searcher

import "twenty48/game"

// Tuning bounds one top-level search. Move nodes at depth < CacheLimit use the
// memo; a CacheLimit of 0 or less turns it off.
type Tuning struct {
	DepthLimit    int
	ProbThreshold float64
	CacheLimit    int
}

// Tuner picks the tuning from the board about to be searched.
type Tuner func(b game.Board) Tuning

const basicScoreThreshold = 1 << 12

// BasicTuning searches shallowly until the score reaches 4096, then goes to
// depth 6 with the memo on for the top four levels.
func BasicTuning(b game.Board) Tuning {
	if b.Score(0) < basicScoreThreshold {
		return Tuning{DepthLimit: 2, ProbThreshold: 1e-4, CacheLimit: -1}
	}
	return Tuning{DepthLimit: 6, ProbThreshold: 1e-4, CacheLimit: 4}
}

// ImprovedTuning deepens the search as more distinct ranks appear.
func ImprovedTuning(b game.Board) Tuning {
	distinct := b.CountDistinctTiles()
	t := Tuning{
		DepthLimit:    max(3, distinct-2),
		ProbThreshold: 1e-4,
		CacheLimit:    6,
	}
	if distinct < 7 {
		t.ProbThreshold = 1e-3
	}
	return t
}

// FixedTuning always returns t.
func FixedTuning(t Tuning) Tuner {
	return func(game.Board) Tuning { return t }
}
