package searcher

import "twenty48/game"

// scoreChanceNode is nature's turn: the expected score over every empty cell
// receiving a 2 or a 4.
func (s *search) scoreChanceNode(b game.Board, cprob float64, depth int) float64 {
	open := b.EmptySquares()
	if open == 0 {
		return s.evaluate.Evaluate(b)
	}
	s.stats.ChanceNodes++

	cprob /= float64(open)
	total := 0.0
	tmp := b
	for tile := game.Board(1); tile != 0; tile <<= 4 {
		if tmp&0xF == 0 {
			total += s.scoreMoveNode(b|tile, cprob*game.ProbTwo, depth) * game.ProbTwo
			total += s.scoreMoveNode(b|tile<<1, cprob*game.ProbFour, depth) * game.ProbFour
		}
		tmp >>= 4
	}
	return total / float64(open)
}
