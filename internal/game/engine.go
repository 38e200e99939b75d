// internal/game/engine.go
//
// Core game engine for a single word-grid session.
// Responsibilities:
//   - Create games in free mode (random dice) or daily mode (date-seeded dice).
//   - Place, move and remove dice on the board.
//   - Reroll (free mode only) and reset.
//   - Judge the board: words, dictionary validity, connectivity, score.
//
// Notes:
//   - Dice come from the dice package, dictionary lookups from words.
//   - The board is an immutable value; each action swaps g.Board.
package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/dicegrid/internal/board"
	"github.com/robalobadob/dicegrid/internal/dice"
	"github.com/robalobadob/dicegrid/internal/words"
)

var (
	ErrFinished         = errors.New("game finished")
	ErrInvalidDie       = errors.New("invalid die")
	ErrRerollNotAllowed = errors.New("reroll not allowed in daily mode")
	ErrEmptyCell        = errors.New("no die on that cell")
	ErrInvalidMode      = errors.New("invalid mode")
)

// NewFree starts a free-play game with a random roll.
func NewFree() *Game {
	return newGame(ModeFree, "", dice.RandomRoll())
}

// NewDaily starts the daily puzzle for date (YYYY-MM-DD).
func NewDaily(date string) *Game {
	return newGame(ModeDaily, date, dice.SeededRoll(date))
}

// New dispatches on mode; seed is only used for daily games.
func New(mode Mode, seed string) (*Game, error) {
	switch mode {
	case ModeFree:
		return NewFree(), nil
	case ModeDaily:
		return NewDaily(seed), nil
	}
	return nil, ErrInvalidMode
}

func newGame(mode Mode, seed string, rolled []string) *Game {
	return &Game{
		ID:      uuid.NewString(),
		Mode:    mode,
		Seed:    seed,
		Dice:    rolled,
		Board:   board.Empty(),
		Started: time.Now(),
	}
}

// Clone returns a deep copy; boards are values so only Dice needs copying.
func (g *Game) Clone() *Game {
	out := *g
	out.Dice = append([]string(nil), g.Dice...)
	return &out
}

// Place puts die on cell at, moving it if it is already on the board.
func (g *Game) Place(die int, at board.Coord) error {
	if g.Finished {
		return ErrFinished
	}
	if die < 0 || die >= len(g.Dice) {
		return ErrInvalidDie
	}
	next, err := g.Board.Place(die, g.Dice[die], at)
	if err != nil {
		return err
	}
	g.Board = next
	return nil
}

// RemoveAt takes whatever die sits on cell at back off the board.
func (g *Game) RemoveAt(at board.Coord) (int, error) {
	if g.Finished {
		return 0, ErrFinished
	}
	next, die, ok := g.Board.RemoveAt(at)
	if !ok {
		return 0, ErrEmptyCell
	}
	g.Board = next
	return die, nil
}

// Reroll draws fresh dice and clears the board. Free mode only.
func (g *Game) Reroll() error {
	if g.Finished {
		return ErrFinished
	}
	if g.Mode != ModeFree {
		return ErrRerollNotAllowed
	}
	g.Dice = dice.RandomRoll()
	g.Board = board.Empty()
	g.Rerolls++
	return nil
}

// Reset clears the board and keeps the dice.
func (g *Game) Reset() error {
	if g.Finished {
		return ErrFinished
	}
	g.Board = board.Empty()
	return nil
}

// Evaluate judges the current board without changing the game.
//
// Score counts the cells covered by at least one valid word.
// Solved requires every die placed, one connected group, at least one
// word, and every word in the dictionary.
func (g *Game) Evaluate() Evaluation {
	found := g.Board.Words()
	ev := Evaluation{
		Words:     make([]WordCheck, 0, len(found)),
		Connected: g.Board.Connected(),
		AllPlaced: g.Board.Len() == len(g.Dice),
	}
	scored := map[board.Coord]bool{}
	allValid := true
	for _, w := range found {
		ok := words.IsWord(w.Text)
		ev.Words = append(ev.Words, WordCheck{Word: w, Valid: ok})
		if !ok {
			allValid = false
			continue
		}
		for _, c := range w.Cells {
			scored[c] = true
		}
	}
	ev.Score = len(scored)
	ev.Solved = ev.AllPlaced && ev.Connected && len(found) > 0 && allValid
	return ev
}

// Submit evaluates the board and finishes the game when it is solved.
func (g *Game) Submit() (Evaluation, error) {
	if g.Finished {
		return g.Evaluate(), ErrFinished
	}
	ev := g.Evaluate()
	if ev.Solved {
		g.Finished, g.Solved = true, true
	}
	return ev, nil
}

// State reports a coarse string representation of the game.
func (g *Game) State() string {
	if g.Finished {
		return "solved"
	}
	return "playing"
}
