package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicRow(t *testing.T) {
	t.Run("empty row", func(t *testing.T) {
		// 4 empty cells, max tile at the left end
		require.Equal(t, 60000.0, basicRow(0x0000))
	})

	t.Run("strictly increasing row", func(t *testing.T) {
		// three neighbours one rank apart, max at the right end, monotonic
		require.Equal(t, 3000.0+20000+10000, basicRow(0x1234))
	})

	t.Run("max tile in the middle", func(t *testing.T) {
		require.Equal(t, 0.0, basicRow(0x1515))
	})
}

func TestImprovedRow(t *testing.T) {
	t.Run("empty row", func(t *testing.T) {
		require.Equal(t, ScoreLostPenalty+4*ScoreEmptyWeight, improvedRow(0x0000))
	})

	t.Run("merge runs", func(t *testing.T) {
		// [1,1,1,0]: one run of three equal tiles counts 3 merges
		got := improvedRow(0x1110)
		want := ScoreLostPenalty + ScoreEmptyWeight + 3*ScoreMergesWeight - 3*ScoreSumWeight
		require.InDelta(t, want, got, 1e-9)
	})

	t.Run("monotonicity takes the smaller side", func(t *testing.T) {
		// [2,1,0,0] decreases only, so the increasing side is 0 and there is no penalty
		got := improvedRow(0x2100)
		want := ScoreLostPenalty + 2*ScoreEmptyWeight - ScoreSumWeight*(11.313708498984761+1)
		require.InDelta(t, want, got, 1e-6)
	})
}

func TestHeuristicEvaluate(t *testing.T) {
	t.Run("sums rows and columns", func(t *testing.T) {
		h := NewHeuristic("count", 1, func(r Row) float64 { return float64(countEmpty(r)) })

		require.Equal(t, 33.0, h.Evaluate(0), "Eight empty lines of four plus the baseline")
		require.Equal(t, 31.0, h.Evaluate(Board(0).Insert(true, 3)), "One tile removes a cell from a row and a column")
	})

	t.Run("basic heuristic stays positive", func(t *testing.T) {
		h := BasicHeuristic()
		for _, b := range randomBoards(500) {
			require.Greater(t, h.Evaluate(b), 0.0)
		}
		require.Equal(t, "basic", h.Name())
	})

	t.Run("heuristics are built once", func(t *testing.T) {
		require.Same(t, BasicHeuristic(), BasicHeuristic())
		require.Same(t, ImprovedHeuristic(), ImprovedHeuristic())
	})

	t.Run("improved prefers an open board to a cluttered one", func(t *testing.T) {
		h := ImprovedHeuristic()
		open := FromTiles([4][4]int{{3, 2, 1, 0}})
		cluttered := FromTiles([4][4]int{
			{1, 3, 1, 3},
			{3, 1, 3, 1},
			{1, 3, 1, 3},
			{3, 1, 3, 1},
		})
		require.Greater(t, h.Evaluate(open), h.Evaluate(cluttered))
	})
}
