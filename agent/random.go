package agent

import (
	"golang.org/x/exp/rand"

	"twenty48/game"
)

// RandomAgent ignores the board and may pick a move that changes nothing.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) NextMove(game.Board) game.Direction {
	return game.Direction(a.rng.Intn(len(game.Directions)))
}
