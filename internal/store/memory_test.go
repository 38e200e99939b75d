package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/dicegrid/internal/board"
	"github.com/robalobadob/dicegrid/internal/game"
)

func TestMemory_SaveGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	g := game.NewDaily("2024-06-01")
	require.NoError(t, st.Save(ctx, g))

	got, err := st.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Dice, got.Dice)

	// mutating the copy does not touch the stored game
	require.NoError(t, got.Place(0, board.Coord{}))
	again, _ := st.Get(ctx, g.ID)
	assert.Equal(t, 0, again.Board.Len())

	_, err = st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Update(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	g := game.NewFree()
	require.NoError(t, st.Save(ctx, g))

	out, err := st.Update(ctx, g.ID, func(g *game.Game) error {
		return g.Place(0, board.Coord{Row: 1, Col: 1})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Board.Len())

	boom := errors.New("boom")
	out, err = st.Update(ctx, g.ID, func(g *game.Game) error {
		_ = g.Reset()
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, out.Board.Len(), "failed update must not be stored")

	_, err = st.Update(ctx, "missing", func(*game.Game) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	g := game.NewFree()
	require.NoError(t, st.Save(ctx, g))

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(die int) {
			defer wg.Done()
			_, err := st.Update(ctx, g.ID, func(g *game.Game) error {
				return g.Place(die, board.Coord{Row: die, Col: die})
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := st.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Board.Len())
}
