package agent

import "twenty48/game"

// GreedyAgent picks the move that leaves the most empty cells. When all four
// moves leave the same count, legal or not, it plays randomly. Otherwise moves
// that change nothing rank below any legal move.
type GreedyAgent struct {
	random *RandomAgent
}

func NewGreedy(seed uint64) *GreedyAgent {
	return &GreedyAgent{random: NewRandom(seed)}
}

func (a *GreedyAgent) NextMove(b game.Board) game.Direction {
	var empty [4]int
	var legal [4]bool
	for _, d := range game.Directions {
		moved := b.Shift(d)
		empty[d] = moved.EmptySquares()
		legal[d] = moved != b
	}

	if empty[0] == empty[1] && empty[1] == empty[2] && empty[2] == empty[3] {
		return a.random.NextMove(b)
	}

	var scores [4]int
	for _, d := range game.Directions {
		scores[d] = empty[d]
		if !legal[d] {
			scores[d] = -1
		}
	}
	best := game.Left
	for _, d := range game.Directions[1:] {
		if scores[d] > scores[best] {
			best = d
		}
	}
	return best
}
