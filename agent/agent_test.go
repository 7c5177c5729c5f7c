package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"twenty48/game"
)

func TestKind(t *testing.T) {
	t.Run("names round trip", func(t *testing.T) {
		for _, k := range Kinds {
			got, err := ParseKind(k.String())
			require.NoError(t, err)
			require.Equal(t, k, got)
		}
	})

	t.Run("parsing ignores case and spaces", func(t *testing.T) {
		got, err := ParseKind(" Improved ")
		require.NoError(t, err)
		require.Equal(t, ImprovedExpectimax, got)
	})

	t.Run("unknown names", func(t *testing.T) {
		_, err := ParseKind("minimax")
		require.ErrorIs(t, err, ErrUnknownKind)

		_, err = ParseKinds([]string{"greedy", "oracle"})
		require.ErrorIs(t, err, ErrUnknownKind)

		_, err = New(Kind(42))
		require.ErrorIs(t, err, ErrUnknownKind)
		require.Equal(t, "Kind(42)", Kind(42).String())
	})

	t.Run("text encoding", func(t *testing.T) {
		var k Kind
		require.NoError(t, k.UnmarshalText([]byte("greedy")))
		require.Equal(t, Greedy, k)

		text, err := Expectimax.MarshalText()
		require.NoError(t, err)
		require.Equal(t, "expectimax", string(text))
	})
}

func TestNew(t *testing.T) {
	for _, k := range Kinds {
		a, err := New(k, WithSeed(3), WithMetrics(), WithMemoCapacity(16))
		require.NoError(t, err)
		require.NotNil(t, a)

		_, instrumented := a.(Instrumented)
		require.Equal(t, k == Expectimax || k == ImprovedExpectimax, instrumented, "kind %s", k)
	}
}

func TestRandomAgent(t *testing.T) {
	t.Run("same seed same moves", func(t *testing.T) {
		a, b := NewRandom(9), NewRandom(9)
		for i := 0; i < 50; i++ {
			require.Equal(t, a.NextMove(0), b.NextMove(0))
		}
	})

	t.Run("covers every direction", func(t *testing.T) {
		a := NewRandom(1)
		seen := map[game.Direction]bool{}
		for i := 0; i < 200; i++ {
			d := a.NextMove(0)
			require.GreaterOrEqual(t, int(d), 0)
			require.Less(t, int(d), 4)
			seen[d] = true
		}
		require.Len(t, seen, 4)
	})
}

func TestGreedyAgent(t *testing.T) {
	t.Run("prefers the merge", func(t *testing.T) {
		// Left and Right merge the pair, Down and Up do not
		b := game.FromTiles([4][4]int{{1, 1, 0, 0}})
		require.Equal(t, game.Left, NewGreedy(1).NextMove(b))
	})

	t.Run("a merge beats moves that only slide", func(t *testing.T) {
		// Up is illegal, Down slides, Left and Right merge; Right merges too but Left comes first
		b := game.FromTiles([4][4]int{{2, 2, 0, 1}})
		require.Equal(t, game.Left, NewGreedy(1).NextMove(b))
	})

	t.Run("equal counts play randomly even with illegal moves", func(t *testing.T) {
		// A lone 2 in the top left: Left and Up change nothing, every move leaves 15 empty cells
		b := game.FromTiles([4][4]int{{1}})
		g, r := NewGreedy(5), NewRandom(5)
		seen := map[game.Direction]bool{}
		for i := 0; i < 200; i++ {
			d := g.NextMove(b)
			require.Equal(t, r.NextMove(b), d)
			seen[d] = true
		}
		require.True(t, seen[game.Left] || seen[game.Up], "Random play may pick an illegal move")
		require.Len(t, seen, 4)
	})

	t.Run("all tied plays randomly", func(t *testing.T) {
		dead := game.FromTiles([4][4]int{
			{1, 2, 1, 2},
			{2, 1, 2, 1},
			{1, 2, 1, 2},
			{2, 1, 2, 1},
		})
		g, r := NewGreedy(5), NewRandom(5)
		for i := 0; i < 20; i++ {
			require.Equal(t, r.NextMove(dead), g.NextMove(dead))
		}
	})
}

func TestExpectimaxAgent(t *testing.T) {
	a, err := New(ImprovedExpectimax, WithMetrics())
	require.NoError(t, err)
	ea := a.(*ExpectimaxAgent)
	require.Equal(t, ImprovedExpectimax, ea.Kind())

	b := game.FromTiles([4][4]int{
		{1, 2, 1, 0},
		{2, 1, 2, 0},
		{1, 2, 1, 0},
		{2, 1, 2, 0},
	})
	d, metric := ea.NextMoveWithMetrics(b)
	require.Equal(t, game.Right, d)
	require.Equal(t, 1, metric.Tasks)
	require.Equal(t, 3, metric.DepthLimit, "Two distinct ranks keep the minimum depth")

	scores := ea.Scores(b)
	require.Positive(t, scores[game.Right])
	require.Zero(t, scores[game.Left])
}
