package game

const tableSize = 1 << 16

// Lookup tables over every row pattern. They are filled once by init and only
// read afterwards, so concurrent searches share them without locking.
var (
	leftTable  [tableSize]Row
	rightTable [tableSize]Row
	scoreTable [tableSize]int
	emptyTable [tableSize]uint8
)

func init() {
	for x := 0; x < tableSize; x++ {
		r := Row(x)
		leftTable[r] = slideRowLeft(r)
		rightTable[r] = reverseRow(slideRowLeft(reverseRow(r)))
		scoreTable[r] = rowScore(r)
		emptyTable[r] = countEmpty(r)
	}
}

func reverseRow(r Row) Row {
	return (r >> 12) | ((r >> 4) & 0x00F0) | ((r << 4) & 0x0F00) | (r << 12)
}

// slideRowLeft moves tiles toward the leftmost cell, merging each equal pair
// once. Rank 15 tiles never merge.
func slideRowLeft(r Row) Row {
	x := TilesFromRow(r)
	for i := 0; i < 3; i++ {
		j := i + 1
		for j < 4 && x[j] == 0 {
			j++
		}
		if j == 4 {
			break
		}
		if x[i] == 0 {
			x[i], x[j] = x[j], 0
			i--
		} else if x[i] == x[j] && x[i] != MaxRank {
			x[i]++
			x[j] = 0
		}
	}
	return rowFromTiles(x)
}

func rowScore(r Row) int {
	score := 0
	for _, rank := range TilesFromRow(r) {
		if rank >= 2 {
			score += (rank - 1) * (1 << rank)
		}
	}
	return score
}

func countEmpty(r Row) uint8 {
	var n uint8
	for _, rank := range TilesFromRow(r) {
		if rank == 0 {
			n++
		}
	}
	return n
}
