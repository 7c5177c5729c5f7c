package game

import (
	"fmt"
	"math/bits"
	"strings"
)

// Board packs a 4x4 grid into 16 four-bit ranks. The top row sits in the most
// significant 16 bits and the leftmost column in the most significant nibble of
// each row. Rank 0 is an empty cell, rank v a tile of value 2^v.
type Board uint64

// Row is one row of a board, or one column after a transpose.
type Row uint16

const (
	RowMask Board = 0xFFFF
	ColMask Board = 0x000F000F000F000F

	MaxRank = 0xF
	Cells   = 16
)

type Direction int

const (
	Left Direction = iota
	Right
	Down
	Up
)

// Directions lists every move in the order the search tries them.
var Directions = [...]Direction{Left, Right, Down, Up}

var directionNames = [...]string{"left", "right", "down", "up"}

func (d Direction) String() string {
	if d < Left || d > Up {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts full names and their first letter.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadDirection, s)
}

// Transpose mirrors the grid along its main diagonal.
func (b Board) Transpose() Board {
	a1 := b & 0xF0F00F0FF0F00F0F
	a2 := b & 0x0000F0F00000F0F0
	a3 := b & 0x0F0F00000F0F0000
	a := a1 | (a2 << 12) | (a3 >> 12)
	b1 := a & 0xFF00FF0000FF00FF
	b2 := a & 0x00FF00FF00000000
	b3 := a & 0x00000000FF00FF00
	return b1 | (b2 >> 24) | (b3 << 24)
}

func shiftRows(b Board, table *[tableSize]Row) Board {
	return Board(table[b&RowMask]) |
		Board(table[(b>>16)&RowMask])<<16 |
		Board(table[(b>>32)&RowMask])<<32 |
		Board(table[(b>>48)&RowMask])<<48
}

// Shift slides and merges every tile toward d. A result equal to b means the
// move is illegal.
func (b Board) Shift(d Direction) Board {
	switch d {
	case Left:
		return shiftRows(b, &leftTable)
	case Right:
		return shiftRows(b, &rightTable)
	case Down:
		return shiftRows(b.Transpose(), &rightTable).Transpose()
	case Up:
		return shiftRows(b.Transpose(), &leftTable).Transpose()
	}
	return b
}

// Insert places a 2 (rank 1) or a 4 (rank 2) in the index-th empty cell,
// counting from the least significant nibble. index must be below
// EmptySquares; the result is undefined otherwise.
func (b Board) Insert(isTwo bool, index int) Board {
	tmp := b
	tile := Board(2)
	if isTwo {
		tile = 1
	}
	for {
		for tmp&0xF != 0 {
			tmp >>= 4
			tile <<= 4
		}
		if index == 0 {
			break
		}
		index--
		tmp >>= 4
		tile <<= 4
	}
	return b | tile
}

func (b Board) EmptySquares() int {
	return int(emptyTable[b&RowMask]) +
		int(emptyTable[(b>>16)&RowMask]) +
		int(emptyTable[(b>>32)&RowMask]) +
		int(emptyTable[(b>>48)&RowMask])
}

// NonEmptySquares counts occupied cells without the lookup tables.
func (b Board) NonEmptySquares() int {
	x := uint64(b)
	x |= (x >> 2) & 0x3333333333333333
	x |= x >> 1
	return bits.OnesCount64(x & 0x1111111111111111)
}

// Score is the sum of all merges made so far. Spawned 4s are not merges, so each
// one is taken back out.
func (b Board) Score(foursSpawned int) int {
	return scoreTable[b&RowMask] +
		scoreTable[(b>>16)&RowMask] +
		scoreTable[(b>>32)&RowMask] +
		scoreTable[(b>>48)&RowMask] -
		4*foursSpawned
}

// Dead reports whether no direction changes the board.
func (b Board) Dead() bool {
	return shiftRows(b, &leftTable) == b &&
		shiftRows(b, &rightTable) == b &&
		b.Shift(Down) == b &&
		b.Shift(Up) == b
}

// CountDistinctTiles counts the distinct non-empty ranks on the board.
func (b Board) CountDistinctTiles() int {
	var seen uint16
	for b != 0 {
		seen |= 1 << (b & 0xF)
		b >>= 4
	}
	return bits.OnesCount16(seen >> 1)
}

func (b Board) MaxRank() int {
	best := 0
	for b != 0 {
		if r := int(b & 0xF); r > best {
			best = r
		}
		b >>= 4
	}
	return best
}

// MaxTile is the value of the largest tile, 0 for an empty board.
func (b Board) MaxTile() int {
	if r := b.MaxRank(); r > 0 {
		return 1 << r
	}
	return 0
}

// TilesFromRow splits a row into ranks, leftmost first.
func TilesFromRow(r Row) [4]int {
	return [4]int{
		int(r>>12) & 0xF,
		int(r>>8) & 0xF,
		int(r>>4) & 0xF,
		int(r) & 0xF,
	}
}

func rowFromTiles(t [4]int) Row {
	return Row(t[0]&0xF)<<12 | Row(t[1]&0xF)<<8 | Row(t[2]&0xF)<<4 | Row(t[3]&0xF)
}

// RowsFromBoard splits a board into rows, top first.
func RowsFromBoard(b Board) [4]Row {
	return [4]Row{
		Row(b >> 48),
		Row(b >> 32),
		Row(b >> 16),
		Row(b),
	}
}

// TilesFromBoard returns the rank grid indexed [row][column] from the top left.
func TilesFromBoard(b Board) [4][4]int {
	var grid [4][4]int
	for i, r := range RowsFromBoard(b) {
		grid[i] = TilesFromRow(r)
	}
	return grid
}

// FromTiles packs a rank grid indexed [row][column] from the top left.
func FromTiles(grid [4][4]int) Board {
	var b Board
	for _, t := range grid {
		b = b<<16 | Board(rowFromTiles(t))
	}
	return b
}

func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("+------+------+------+------+\n")
	for _, row := range TilesFromBoard(b) {
		for _, rank := range row {
			if rank == 0 {
				sb.WriteString("|      ")
			} else {
				fmt.Fprintf(&sb, "|%6d", 1<<rank)
			}
		}
		sb.WriteString("|\n+------+------+------+------+\n")
	}
	return sb.String()
}
