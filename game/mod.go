package game

import "errors"

var ErrBadDirection = errors.New("unknown direction")

// Spawn odds for a new tile.
const (
	ProbTwo  = 0.9
	ProbFour = 1 - ProbTwo
)

// State is everything a host needs to persist a game: the raw board and the
// number of 4 tiles spawned so far.
type State struct {
	Board        Board `json:"board,string" yaml:"board"`
	FoursSpawned int   `json:"foursSpawned" yaml:"foursSpawned"`
}

func (s State) Score() int {
	return s.Board.Score(s.FoursSpawned)
}

// Apply returns the board after moving in direction d.
func Apply(b Board, d Direction) Board {
	return b.Shift(d)
}

// Spawn places a tile of the given rank (1 for a 2, 2 for a 4) in the index-th
// empty cell. The caller picks both at random.
func Spawn(b Board, rank int, index int) Board {
	return b.Insert(rank == 1, index)
}

func IsTerminal(b Board) bool {
	return b.Dead()
}

func EvaluateScore(b Board, foursSpawned int) int {
	return b.Score(foursSpawned)
}
