package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func randomBoards(n int) []Board {
	r := rand.New(rand.NewSource(7))
	boards := make([]Board, n)
	for i := range boards {
		// Bias toward empty cells so shifts actually move tiles
		var b Board
		for c := 0; c < Cells; c++ {
			rank := 0
			if r.Intn(3) > 0 {
				rank = r.Intn(12) + 1
			}
			b = b<<4 | Board(rank)
		}
		boards[i] = b
	}
	return boards
}

// simulateRow is a plain slide-and-merge over a rank slice, independent of the
// table construction code.
func simulateRow(tiles [4]int) [4]int {
	var packed []int
	for _, t := range tiles {
		if t != 0 {
			packed = append(packed, t)
		}
	}
	var out [4]int
	n := 0
	for i := 0; i < len(packed); i++ {
		if i+1 < len(packed) && packed[i] == packed[i+1] && packed[i] != MaxRank {
			out[n] = packed[i] + 1
			i++
		} else {
			out[n] = packed[i]
		}
		n++
	}
	return out
}

// hasPairAlong reports whether two equal non-empty tiles sit next to each other
// along the axis d moves on, ignoring gaps.
func hasPairAlong(b Board, d Direction) bool {
	if d == Up || d == Down {
		b = b.Transpose()
	}
	for _, row := range TilesFromBoard(b) {
		prev := 0
		for _, rank := range row {
			if rank == 0 {
				continue
			}
			if rank == prev {
				return true
			}
			prev = rank
		}
	}
	return false
}

func TestTables(t *testing.T) {
	t.Run("left table matches a direct simulation for every row", func(t *testing.T) {
		for x := 0; x < tableSize; x++ {
			r := Row(x)
			want := rowFromTiles(simulateRow(TilesFromRow(r)))
			if leftTable[r] != want {
				require.Equal(t, want, leftTable[r], "row %04x", x)
			}
		}
	})

	t.Run("right table mirrors the left table", func(t *testing.T) {
		for x := 0; x < tableSize; x++ {
			r := Row(x)
			tiles := TilesFromRow(r)
			reversed := [4]int{tiles[3], tiles[2], tiles[1], tiles[0]}
			merged := simulateRow(reversed)
			want := rowFromTiles([4]int{merged[3], merged[2], merged[1], merged[0]})
			if rightTable[r] != want {
				require.Equal(t, want, rightTable[r], "row %04x", x)
			}
		}
	})

	t.Run("empty count table", func(t *testing.T) {
		require.Equal(t, uint8(4), emptyTable[0x0000])
		require.Equal(t, uint8(0), emptyTable[0x1234])
		require.Equal(t, uint8(2), emptyTable[0x1020])
	})

	t.Run("rank 15 tiles do not merge", func(t *testing.T) {
		require.Equal(t, Row(0xFF00), leftTable[0xF0F0])
	})
}

func TestShift(t *testing.T) {
	t.Run("merging [2,2,4,4] left", func(t *testing.T) {
		b := FromTiles([4][4]int{{1, 1, 2, 2}})
		got := b.Shift(Left)

		require.Equal(t, [4]int{2, 3, 0, 0}, TilesFromBoard(got)[0], "Pairs should merge once each")
		require.Equal(t, 8, b.Score(0), "Each 4 already counts as one merge")
		require.Equal(t, 20, got.Score(0))
		require.Equal(t, 12, got.Score(0)-b.Score(0), "The new 4 and 8 add 4 and 16, the two old 4s are gone")
	})

	t.Run("each direction on a single tile", func(t *testing.T) {
		b := FromTiles([4][4]int{{}, {0, 1, 0, 0}})

		require.Equal(t, FromTiles([4][4]int{{}, {1, 0, 0, 0}}), b.Shift(Left))
		require.Equal(t, FromTiles([4][4]int{{}, {0, 0, 0, 1}}), b.Shift(Right))
		require.Equal(t, FromTiles([4][4]int{{}, {}, {}, {0, 1, 0, 0}}), b.Shift(Down))
		require.Equal(t, FromTiles([4][4]int{{0, 1, 0, 0}}), b.Shift(Up))
	})

	t.Run("column merge up", func(t *testing.T) {
		b := FromTiles([4][4]int{{3, 0, 0, 0}, {3, 0, 0, 0}, {1, 0, 0, 0}, {1, 0, 0, 0}})
		got := b.Shift(Up)

		require.Equal(t, FromTiles([4][4]int{{4, 0, 0, 0}, {2, 0, 0, 0}}), got)
	})

	t.Run("second shift is a no-op unless the first left a new pair", func(t *testing.T) {
		checked := 0
		for _, b := range randomBoards(2000) {
			for _, d := range Directions {
				once := b.Shift(d)
				if hasPairAlong(once, d) {
					continue
				}
				checked++
				require.Equal(t, once, once.Shift(d), "board %016x direction %s", uint64(b), d)
			}
		}
		require.Greater(t, checked, 4000)
	})

	t.Run("a merge can leave a new pair behind", func(t *testing.T) {
		b := FromTiles([4][4]int{{3, 0, 3, 4}})
		once := b.Shift(Left)
		twice := once.Shift(Left)

		require.Equal(t, [4]int{4, 4, 0, 0}, TilesFromBoard(once)[0])
		require.Equal(t, [4]int{5, 0, 0, 0}, TilesFromBoard(twice)[0])
	})

	t.Run("sliding without merges is idempotent", func(t *testing.T) {
		// Distinct ranks never merge
		b := FromTiles([4][4]int{{0, 1, 0, 2}, {3, 0, 4, 0}, {0, 0, 0, 5}, {6, 7, 0, 8}})
		for _, d := range Directions {
			once := b.Shift(d)
			require.Equal(t, once, once.Shift(d), "direction %s", d)
		}
	})

	t.Run("unknown direction leaves the board alone", func(t *testing.T) {
		b := FromTiles([4][4]int{{0, 1}})
		require.Equal(t, b, b.Shift(Direction(9)))
	})
}

func TestTranspose(t *testing.T) {
	t.Run("matches the matrix transpose", func(t *testing.T) {
		grid := [4][4]int{
			{1, 2, 3, 4},
			{5, 6, 7, 8},
			{9, 10, 11, 12},
			{13, 14, 15, 0},
		}
		var want [4][4]int
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				want[c][r] = grid[r][c]
			}
		}

		require.Equal(t, want, TilesFromBoard(FromTiles(grid).Transpose()))
	})

	t.Run("is an involution", func(t *testing.T) {
		for _, b := range randomBoards(2000) {
			require.Equal(t, b, b.Transpose().Transpose())
		}
		require.Equal(t, Board(0xFFFFFFFFFFFFFFFF), Board(0xFFFFFFFFFFFFFFFF).Transpose().Transpose())
	})
}

func TestInsert(t *testing.T) {
	t.Run("fills the index-th empty cell from the low end", func(t *testing.T) {
		b := Board(0x1)

		require.Equal(t, Board(0x11), b.Insert(true, 0), "First empty cell is the second nibble")
		require.Equal(t, Board(0x201), b.Insert(false, 1), "A 4 is rank 2")
		require.Equal(t, Board(0x1)|Board(1)<<60, b.Insert(true, 14), "Last empty cell is the top left")
	})

	t.Run("empty board", func(t *testing.T) {
		require.Equal(t, Board(0x2), Board(0).Insert(false, 0))
		require.Equal(t, 15, Board(0).Insert(true, 5).EmptySquares())
	})
}

func TestCounts(t *testing.T) {
	t.Run("empty plus non-empty is sixteen", func(t *testing.T) {
		for _, b := range randomBoards(2000) {
			require.Equal(t, Cells, b.EmptySquares()+b.NonEmptySquares())
		}
	})

	t.Run("empty board", func(t *testing.T) {
		require.Equal(t, 16, Board(0).EmptySquares())
		require.Equal(t, 0, Board(0).NonEmptySquares())
		require.False(t, Board(0).Dead(), "Empty board is not dead")
	})

	t.Run("distinct tiles and max rank", func(t *testing.T) {
		b := FromTiles([4][4]int{{1, 1, 2, 0}, {5, 0, 0, 0}})

		require.Equal(t, 3, b.CountDistinctTiles())
		require.Equal(t, 5, b.MaxRank())
		require.Equal(t, 32, b.MaxTile())
		require.Equal(t, 0, Board(0).CountDistinctTiles())
		require.Equal(t, 0, Board(0).MaxTile())
	})
}

func TestDead(t *testing.T) {
	t.Run("checkerboard without equal neighbours", func(t *testing.T) {
		b := FromTiles([4][4]int{
			{1, 2, 1, 2},
			{2, 1, 2, 1},
			{1, 2, 1, 2},
			{2, 1, 2, 1},
		})
		require.True(t, b.Dead(), "No shift can change the board")
	})

	t.Run("full board with one merge available", func(t *testing.T) {
		b := FromTiles([4][4]int{
			{1, 2, 1, 2},
			{2, 1, 2, 1},
			{1, 2, 1, 2},
			{2, 1, 2, 2},
		})
		require.False(t, b.Dead())
	})

	t.Run("agrees with the four shifts", func(t *testing.T) {
		for _, b := range randomBoards(2000) {
			noop := true
			for _, d := range Directions {
				noop = noop && b.Shift(d) == b
			}
			require.Equal(t, noop, b.Dead())
		}
	})
}

func TestScore(t *testing.T) {
	t.Run("one merge of two 2s adds exactly 4", func(t *testing.T) {
		b := Board(0).Insert(true, 0).Insert(true, 1)
		before := b.Score(0)
		after := b.Shift(Right).Score(0)

		require.Equal(t, 0, before)
		require.Equal(t, 4, after-before)
	})

	t.Run("spawned 4s are taken back out", func(t *testing.T) {
		b := Board(0).Insert(false, 0)

		require.Equal(t, 4, b.Score(0))
		require.Equal(t, 0, b.Score(1))
		require.Equal(t, 0, EvaluateScore(b, 1))
	})
}

func TestRowViews(t *testing.T) {
	b := Board(0x123456789ABCDEF0)

	require.Equal(t, [4]Row{0x1234, 0x5678, 0x9ABC, 0xDEF0}, RowsFromBoard(b))
	require.Equal(t, [4]int{1, 2, 3, 4}, TilesFromRow(0x1234))
	require.Equal(t, b, FromTiles(TilesFromBoard(b)))
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		require.Equal(t, d, got)

		got, err = ParseDirection(d.String()[:1])
		require.NoError(t, err)
		require.Equal(t, d, got)
	}

	_, err := ParseDirection("sideways")
	require.ErrorIs(t, err, ErrBadDirection)
}

func BenchmarkShift(b *testing.B) {
	board := FromTiles([4][4]int{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 0},
	})
	for i := 0; i < b.N; i++ {
		for _, d := range Directions {
			board.Shift(d)
		}
	}
}
