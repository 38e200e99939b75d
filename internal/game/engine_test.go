package game

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/dicegrid/internal/board"
	"github.com/robalobadob/dicegrid/internal/dice"
	"github.com/robalobadob/dicegrid/internal/words"
)

func TestMain(m *testing.M) {
	if err := words.Init(""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// solvedLayout spells CAT, TOP, PEN, NET, TOE and EL with twelve dice.
var solvedLayout = []struct {
	letter string
	at     board.Coord
}{
	{"C", board.Coord{Row: 0, Col: 0}},
	{"A", board.Coord{Row: 0, Col: 1}},
	{"T", board.Coord{Row: 0, Col: 2}},
	{"O", board.Coord{Row: 1, Col: 2}},
	{"P", board.Coord{Row: 2, Col: 2}},
	{"E", board.Coord{Row: 2, Col: 3}},
	{"N", board.Coord{Row: 2, Col: 4}},
	{"E", board.Coord{Row: 3, Col: 4}},
	{"T", board.Coord{Row: 4, Col: 4}},
	{"O", board.Coord{Row: 4, Col: 5}},
	{"E", board.Coord{Row: 4, Col: 6}},
	{"L", board.Coord{Row: 5, Col: 6}},
}

func solvableGame(t *testing.T) *Game {
	t.Helper()
	letters := make([]string, len(solvedLayout))
	for i, p := range solvedLayout {
		letters[i] = p.letter
	}
	return newGame(ModeFree, "", letters)
}

func placeAll(t *testing.T, g *Game) {
	t.Helper()
	for i, p := range solvedLayout {
		require.NoError(t, g.Place(i, p.at))
	}
}

func TestNewDaily_UsesSeededDice(t *testing.T) {
	g := NewDaily("2024-06-01")
	assert.Equal(t, ModeDaily, g.Mode)
	assert.Equal(t, "2024-06-01", g.Seed)
	assert.Equal(t, dice.SeededRoll("2024-06-01"), g.Dice)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, 0, g.Board.Len())
}

func TestNew_Modes(t *testing.T) {
	g, err := New(ModeFree, "ignored")
	require.NoError(t, err)
	assert.Equal(t, ModeFree, g.Mode)
	assert.Empty(t, g.Seed)
	assert.Len(t, g.Dice, dice.Count)

	_, err = New("bogus", "")
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.False(t, Mode("bogus").Valid())
}

func TestPlace_Validation(t *testing.T) {
	g := NewFree()
	assert.ErrorIs(t, g.Place(-1, board.Coord{}), ErrInvalidDie)
	assert.ErrorIs(t, g.Place(dice.Count, board.Coord{}), ErrInvalidDie)
	assert.ErrorIs(t, g.Place(0, board.Coord{Row: 12}), board.ErrOutOfBounds)

	require.NoError(t, g.Place(0, board.Coord{}))
	assert.ErrorIs(t, g.Place(1, board.Coord{}), board.ErrOccupied)

	l, ok := g.Board.At(board.Coord{})
	require.True(t, ok)
	assert.Equal(t, g.Dice[0], l)
}

func TestRemoveAt(t *testing.T) {
	g := NewFree()
	require.NoError(t, g.Place(3, board.Coord{Row: 2, Col: 2}))

	die, err := g.RemoveAt(board.Coord{Row: 2, Col: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, die)

	_, err = g.RemoveAt(board.Coord{Row: 2, Col: 2})
	assert.ErrorIs(t, err, ErrEmptyCell)
}

func TestReroll(t *testing.T) {
	g := NewFree()
	require.NoError(t, g.Place(0, board.Coord{}))
	require.NoError(t, g.Reroll())
	assert.Equal(t, 1, g.Rerolls)
	assert.Equal(t, 0, g.Board.Len())
	assert.Len(t, g.Dice, dice.Count)

	d := NewDaily("2024-06-01")
	assert.ErrorIs(t, d.Reroll(), ErrRerollNotAllowed)
	assert.Equal(t, dice.SeededRoll("2024-06-01"), d.Dice)
}

func TestReset_KeepsDice(t *testing.T) {
	g := NewDaily("2024-06-01")
	before := append([]string(nil), g.Dice...)
	require.NoError(t, g.Place(0, board.Coord{}))
	require.NoError(t, g.Reset())
	assert.Equal(t, 0, g.Board.Len())
	assert.Equal(t, before, g.Dice)
}

func TestEvaluate_Partial(t *testing.T) {
	g := solvableGame(t)
	// C A T only
	for i := 0; i < 3; i++ {
		require.NoError(t, g.Place(i, solvedLayout[i].at))
	}
	ev := g.Evaluate()
	require.Len(t, ev.Words, 1)
	assert.Equal(t, "CAT", ev.Words[0].Text)
	assert.True(t, ev.Words[0].Valid)
	assert.True(t, ev.Connected)
	assert.False(t, ev.AllPlaced)
	assert.Equal(t, 3, ev.Score)
	assert.False(t, ev.Solved)
}

func TestEvaluate_InvalidWord(t *testing.T) {
	g := newGame(ModeFree, "", []string{"X", "Q"})
	require.NoError(t, g.Place(0, board.Coord{}))
	require.NoError(t, g.Place(1, board.Coord{Col: 1}))
	ev := g.Evaluate()
	require.Len(t, ev.Words, 1)
	assert.False(t, ev.Words[0].Valid)
	assert.Equal(t, 0, ev.Score)
	assert.True(t, ev.AllPlaced)
	assert.False(t, ev.Solved)
}

func TestSubmit_Solved(t *testing.T) {
	g := solvableGame(t)
	placeAll(t, g)

	ev, err := g.Submit()
	require.NoError(t, err)
	assert.True(t, ev.Solved, "%+v", ev)
	assert.Equal(t, 12, ev.Score)
	assert.Len(t, ev.Words, 6)
	assert.True(t, g.Finished)
	assert.Equal(t, "solved", g.State())

	assert.ErrorIs(t, g.Place(0, board.Coord{Row: 9, Col: 9}), ErrFinished)
	assert.ErrorIs(t, g.Reset(), ErrFinished)
	_, err = g.Submit()
	assert.ErrorIs(t, err, ErrFinished)
}

func TestSubmit_Disconnected(t *testing.T) {
	g := solvableGame(t)
	placeAll(t, g)
	// move L away: EL disappears and the group splits
	require.NoError(t, g.Place(11, board.Coord{Row: 11, Col: 11}))

	ev, err := g.Submit()
	require.NoError(t, err)
	assert.False(t, ev.Connected)
	assert.False(t, ev.Solved)
	assert.False(t, g.Finished)
	assert.Equal(t, "playing", g.State())
}

func TestClone_Independent(t *testing.T) {
	g := NewFree()
	c := g.Clone()
	require.NoError(t, c.Place(0, board.Coord{}))
	c.Dice[1] = "?"
	assert.Equal(t, 0, g.Board.Len())
	assert.NotEqual(t, "?", g.Dice[1])
}
