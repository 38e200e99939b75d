package board

// Direction of a word on the board.
type Direction string

const (
	Across Direction = "across"
	Down   Direction = "down"
)

// Word is a maximal run of two or more adjacent letters.
type Word struct {
	Text  string    `json:"text"`
	Start Coord     `json:"start"`
	Dir   Direction `json:"dir"`
	Cells []Coord   `json:"cells"`
}

// Words returns every across and down word, ordered by start cell
// (row-major), across before down for the same start.
func (b Board) Words() []Word {
	var out []Word
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c].letter == "" {
				continue
			}
			if c == 0 || b.cells[r][c-1].letter == "" {
				if w, ok := b.run(Coord{r, c}, 0, 1, Across); ok {
					out = append(out, w)
				}
			}
			if r == 0 || b.cells[r-1][c].letter == "" {
				if w, ok := b.run(Coord{r, c}, 1, 0, Down); ok {
					out = append(out, w)
				}
			}
		}
	}
	return out
}

func (b Board) run(start Coord, dr, dc int, dir Direction) (Word, bool) {
	w := Word{Start: start, Dir: dir}
	for at := start; at.In() && b.cells[at.Row][at.Col].letter != ""; at = (Coord{at.Row + dr, at.Col + dc}) {
		w.Text += b.cells[at.Row][at.Col].letter
		w.Cells = append(w.Cells, at)
	}
	return w, len(w.Cells) >= 2
}

// Connected reports whether all placed letters form a single orthogonally
// connected group. An empty board is connected.
func (b Board) Connected() bool {
	if len(b.placed) == 0 {
		return true
	}
	var start Coord
	for _, at := range b.placed {
		start = at
		break
	}
	var seen [Size][Size]bool
	stack := []Coord{start}
	seen[start.Row][start.Col] = true
	n := 0
	for len(stack) > 0 {
		at := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		for _, d := range [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			next := Coord{at.Row + d.Row, at.Col + d.Col}
			if !next.In() || seen[next.Row][next.Col] || b.cells[next.Row][next.Col].letter == "" {
				continue
			}
			seen[next.Row][next.Col] = true
			stack = append(stack, next)
		}
	}
	return n == len(b.placed)
}
