// internal/game/types.go
//
// Core type definitions for the word-grid game engine.
// Defines:
//   - Mode: free play or the daily puzzle.
//   - Game: state for a single in-progress or finished game.
//   - Evaluation: the judged state of a board.

package game

import (
	"time"

	"github.com/robalobadob/dicegrid/internal/board"
)

// Mode selects how dice are produced.
//   - "free":  random dice, rerolls allowed.
//   - "daily": dice seeded from the date, same for every player.
type Mode string

const (
	ModeFree  Mode = "free"
	ModeDaily Mode = "daily"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeFree || m == ModeDaily }

// Game holds the state of a single session.
type Game struct {
	ID       string      // Unique game identifier (UUIDv4).
	Mode     Mode        // free or daily.
	Seed     string      // Date key for daily games, empty otherwise.
	Dice     []string    // Letter shown by each die, index = die id.
	Board    board.Board // Replaced, never mutated, on every action.
	Rerolls  int         // Number of rerolls taken (free mode).
	Started  time.Time   // When the game was created.
	Finished bool        // True once a solved board was submitted.
	Solved   bool
}

// WordCheck is one word found on the board and whether the dictionary knows it.
type WordCheck struct {
	board.Word
	Valid bool `json:"valid"`
}

// Evaluation summarizes a board.
type Evaluation struct {
	Words     []WordCheck `json:"words"`
	Connected bool        `json:"connected"`
	AllPlaced bool        `json:"allPlaced"`
	Score     int         `json:"score"`
	Solved    bool        `json:"solved"`
}
