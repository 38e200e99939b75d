package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Embedded(t *testing.T) {
	require.NoError(t, Init(""))
	assert.Greater(t, Stats(), 100)

	assert.True(t, IsWord("cat"))
	assert.True(t, IsWord("CAT"))
	assert.True(t, IsWord("Top"))
	assert.False(t, IsWord("xqzt"))
	assert.False(t, IsWord(""))
	assert.False(t, IsWord("a"), "single letters never count")
}

func TestNormalize(t *testing.T) {
	got := normalize([]string{"  Hello ", "a", "it's", "", "ok", "abc1", "ZEBRA"})
	assert.Equal(t, []string{"hello", "ok", "zebra"}, got)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dice\ngrid\nx\n"), 0o644))

	set, err := load(path)
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "dice")
	assert.Contains(t, set, "grid")
}

func TestLoad_Errors(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0o644))
	_, err = load(path)
	assert.ErrorIs(t, err, ErrEmptyDictionary)
}
