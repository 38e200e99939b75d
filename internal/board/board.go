// internal/board/board.go
//
// Immutable 12x12 letter board.
// A Board is a value: Place/Remove/RemoveAt return a new Board and leave the
// receiver untouched.
// Alongside the cell letters the board tracks which die sits where.
package board

import "errors"

// Size is the width and height of the board.
const Size = 12

var (
	ErrOutOfBounds = errors.New("board: cell out of bounds")
	ErrOccupied    = errors.New("board: cell occupied")
	ErrEmptyLetter = errors.New("board: empty letter")
)

// Coord addresses a single cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// In reports whether c lies on the board.
func (c Coord) In() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

type cell struct {
	letter string
	die    int
}

// Board is the grid plus the die -> coordinate mapping.
// The zero value is an empty board.
type Board struct {
	cells  [Size][Size]cell
	placed map[int]Coord
}

// Empty returns a board with nothing placed.
func Empty() Board { return Board{} }

func (b Board) clone() Board {
	out := b // cells array copied by value
	out.placed = make(map[int]Coord, len(b.placed)+1)
	for k, v := range b.placed {
		out.placed[k] = v
	}
	return out
}

// Place puts die (showing letter) on cell at. A die already on the board is
// moved: its previous cell is cleared.
func (b Board) Place(die int, letter string, at Coord) (Board, error) {
	if !at.In() {
		return b, ErrOutOfBounds
	}
	if letter == "" {
		return b, ErrEmptyLetter
	}
	if c := b.cells[at.Row][at.Col]; c.letter != "" {
		if c.die == die {
			return b, nil
		}
		return b, ErrOccupied
	}
	out := b.clone()
	if prev, ok := out.placed[die]; ok {
		out.cells[prev.Row][prev.Col] = cell{}
	}
	out.cells[at.Row][at.Col] = cell{letter: letter, die: die}
	out.placed[die] = at
	return out, nil
}

// RemoveAt clears cell at and reports which die was there.
func (b Board) RemoveAt(at Coord) (Board, int, bool) {
	die, ok := b.DieAt(at)
	if !ok {
		return b, 0, false
	}
	return b.Remove(die), die, true
}

// Remove takes die off the board. Removing an unplaced die is a no-op.
func (b Board) Remove(die int) Board {
	at, ok := b.placed[die]
	if !ok {
		return b
	}
	out := b.clone()
	out.cells[at.Row][at.Col] = cell{}
	delete(out.placed, die)
	return out
}

// At returns the letter on cell at, if any.
func (b Board) At(at Coord) (string, bool) {
	if !at.In() {
		return "", false
	}
	l := b.cells[at.Row][at.Col].letter
	return l, l != ""
}

// DieAt returns the die occupying cell at, if any.
func (b Board) DieAt(at Coord) (int, bool) {
	if !at.In() {
		return 0, false
	}
	c := b.cells[at.Row][at.Col]
	return c.die, c.letter != ""
}

// Position returns where die is placed, if it is.
func (b Board) Position(die int) (Coord, bool) {
	at, ok := b.placed[die]
	return at, ok
}

// Placements returns a copy of the die -> coordinate mapping.
func (b Board) Placements() map[int]Coord {
	out := make(map[int]Coord, len(b.placed))
	for k, v := range b.placed {
		out[k] = v
	}
	return out
}

// Len is the number of placed dice.
func (b Board) Len() int { return len(b.placed) }

// Rows renders the grid as letters, "" for empty cells.
func (b Board) Rows() [][]string {
	out := make([][]string, Size)
	for r := range out {
		out[r] = make([]string, Size)
		for c := range out[r] {
			out[r][c] = b.cells[r][c].letter
		}
	}
	return out
}
