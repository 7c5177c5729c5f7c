package game

import (
	"math"
	"sync"
)

// Heuristic scores a board as a baseline plus a per-row table looked up for the
// four rows and the four columns.
type Heuristic struct {
	name     string
	baseline float64
	table    [tableSize]float64
}

// NewHeuristic tabulates rowScore over every row pattern.
func NewHeuristic(name string, baseline float64, rowScore func(Row) float64) *Heuristic {
	h := &Heuristic{name: name, baseline: baseline}
	for x := 0; x < tableSize; x++ {
		h.table[x] = rowScore(Row(x))
	}
	return h
}

func (h *Heuristic) Name() string {
	return h.name
}

// Evaluate scores a board; higher is better.
func (h *Heuristic) Evaluate(b Board) float64 {
	t := b.Transpose()
	return h.baseline +
		h.table[b&RowMask] +
		h.table[(b>>16)&RowMask] +
		h.table[(b>>32)&RowMask] +
		h.table[(b>>48)&RowMask] +
		h.table[t&RowMask] +
		h.table[(t>>16)&RowMask] +
		h.table[(t>>32)&RowMask] +
		h.table[(t>>48)&RowMask]
}

const basicBaseline = 100000

var (
	BasicHeuristic = sync.OnceValue(func() *Heuristic {
		return NewHeuristic("basic", basicBaseline, basicRow)
	})
	ImprovedHeuristic = sync.OnceValue(func() *Heuristic {
		return NewHeuristic("improved", 0, improvedRow)
	})
)

// basicRow rewards empty cells, neighbours one rank apart, strictly monotonic
// rows and the largest tile sitting at an edge.
func basicRow(r Row) float64 {
	tile := TilesFromRow(r)
	heur := 0.0
	maxi := 0
	for i := 0; i < 4; i++ {
		if tile[i] > tile[maxi] {
			maxi = i
		}
		if tile[i] == 0 {
			heur += 10000
		}
		if i > 0 && abs(tile[i]-tile[i-1]) == 1 {
			heur += 1000
		}
	}
	if maxi == 0 || maxi == 3 {
		heur += 20000
	}
	increasing := tile[0] < tile[1] && tile[1] < tile[2] && tile[2] < tile[3]
	decreasing := tile[0] > tile[1] && tile[1] > tile[2] && tile[2] > tile[3]
	if increasing || decreasing {
		heur += 10000
	}
	return heur
}

// Weights of the improved heuristic. They were tuned empirically and are kept
// exactly as found.
const (
	ScoreLostPenalty        = 200000.0
	ScoreMonotonicityPower  = 4.0
	ScoreMonotonicityWeight = 47.0
	ScoreSumPower           = 3.5
	ScoreSumWeight          = 11.0
	ScoreMergesWeight       = 700.0
	ScoreEmptyWeight        = 270.0
)

func improvedRow(r Row) float64 {
	tile := TilesFromRow(r)

	sum := 0.0
	empty := 0
	merges := 0
	prev := 0
	counter := 0
	for _, rank := range tile {
		sum += math.Pow(float64(rank), ScoreSumPower)
		if rank == 0 {
			empty++
			continue
		}
		if prev == rank {
			counter++
		} else if counter > 0 {
			merges += 1 + counter
			counter = 0
		}
		prev = rank
	}
	if counter > 0 {
		merges += 1 + counter
	}

	monoLeft, monoRight := 0.0, 0.0
	for i := 1; i < 4; i++ {
		a := math.Pow(float64(tile[i-1]), ScoreMonotonicityPower)
		b := math.Pow(float64(tile[i]), ScoreMonotonicityPower)
		if tile[i-1] > tile[i] {
			monoLeft += a - b
		} else {
			monoRight += b - a
		}
	}

	return ScoreLostPenalty +
		ScoreEmptyWeight*float64(empty) +
		ScoreMergesWeight*float64(merges) -
		ScoreMonotonicityWeight*math.Min(monoLeft, monoRight) -
		ScoreSumWeight*sum
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
