package searcher

import (
	"github.com/pbnjay/memory"

	"twenty48/game"
)

const (
	maxMemoCapacity = 200000
	memoEntryBytes  = 48
	// Each root task may reserve this fraction of physical memory up front.
	memoMemoryShare = 256
)

// DefaultMemoCapacity sizes the initial memo map from the machine's memory.
func DefaultMemoCapacity() int {
	total := memory.TotalMemory()
	if total == 0 {
		return maxMemoCapacity
	}
	capacity := total / memoMemoryShare / memoEntryBytes
	if capacity > maxMemoCapacity {
		return maxMemoCapacity
	}
	return int(capacity)
}

// memo maps exact board values to move-node scores for one root task. Boards
// are not folded by symmetry.
type memo struct {
	limit   int
	entries map[game.Board]float64
	lookups int64
	hits    int64
}

func newMemo(limit, capacity int) *memo {
	m := &memo{limit: limit}
	if limit > 0 {
		m.entries = make(map[game.Board]float64, capacity)
	}
	return m
}

func (m *memo) get(b game.Board, depth int) (float64, bool) {
	if depth >= m.limit {
		return 0, false
	}
	m.lookups++
	score, ok := m.entries[b]
	if ok {
		m.hits++
	}
	return score, ok
}

func (m *memo) put(b game.Board, depth int, score float64) {
	if depth >= m.limit {
		return
	}
	m.entries[b] = score
}
