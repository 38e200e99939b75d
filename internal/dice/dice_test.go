package dice

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededRoll_Golden(t *testing.T) {
	cases := map[string][]string{
		"2024-06-01": {"K", "L", "C", "B", "K", "E", "H", "F", "A", "W", "G", "I"},
		"2024-06-02": {"K", "L", "T", "B", "V", "O", "R", "R", "O", "P", "D", "N"},
		"2024-01-06": {"K", "B", "T", "C", "F", "U", "R", "D", "A", "H", "G", "N"},
		"":           {"K", "B", "S", "C", "G", "E", "N", "R", "O", "T", "L", "I"},
	}
	for seed, want := range cases {
		assert.Equal(t, want, SeededRoll(seed), "seed %q", seed)
	}
}

func TestSeededRoll_Deterministic(t *testing.T) {
	for _, seed := range []string{"", "2024-06-01", "hello world", "ünïcødé"} {
		assert.Equal(t, SeededRoll(seed), SeededRoll(seed), "seed %q", seed)
	}
}

func TestSeededRoll_AdjacentDatesDiffer(t *testing.T) {
	assert.NotEqual(t, SeededRoll("2024-06-01"), SeededRoll("2024-06-02"))
}

func TestRolls_LengthAndMembership(t *testing.T) {
	check := func(t *testing.T, got []string) {
		t.Helper()
		require.Len(t, got, Count)
		for i, letter := range got {
			require.Len(t, letter, 1)
			assert.True(t, strings.Contains(Default.Face(i), letter),
				"die %d shows %q, not in %q", i, letter, Default.Face(i))
		}
	}

	for _, seed := range []string{"", "2024-06-01", "2030-12-31", "x"} {
		check(t, SeededRoll(seed))
	}
	for i := 0; i < 200; i++ {
		check(t, RandomRoll())
	}
}

func TestSeededRoll_FreshSlice(t *testing.T) {
	a := SeededRoll("2024-06-01")
	a[0] = "?"
	assert.Equal(t, "K", SeededRoll("2024-06-01")[0])
}

func TestRandomRoll_CoversFaces(t *testing.T) {
	// Die 5 has faces EAOIUU; enough rolls should show every distinct face.
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[RandomRoll()[5]] = true
	}
	for _, f := range "EAOIU" {
		assert.True(t, seen[string(f)], "face %q never rolled", f)
	}
}

func TestNewCatalog_RejectsEmpty(t *testing.T) {
	_, err := NewCatalog()
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewCatalog("ABC", "", "DEF")
	require.ErrorIs(t, err, ErrEmptyFace)
	assert.Contains(t, err.Error(), "face-set 1")

	assert.Panics(t, func() { MustCatalog("A", "") })
}

func TestCatalog_UsesActualFaceLength(t *testing.T) {
	// SHA-256("2024-06-01") starts 3b 95 1b: 59%1=0, 149%2=1, 27%5=2.
	c := MustCatalog("A", "BC", "DEFGH")
	assert.Equal(t, []string{"A", "C", "F"}, c.Seeded("2024-06-01"))
}

func TestCatalog_WrapsDigestPastThirtyTwoDice(t *testing.T) {
	faces := make([]string, 40)
	for i := range faces {
		faces[i] = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	}
	got := MustCatalog(faces...).Seeded("wrap")
	require.Len(t, got, 40)
	for i := 32; i < 40; i++ {
		assert.Equal(t, got[i-32], got[i])
	}
}

func TestCatalog_CopiesInput(t *testing.T) {
	faces := []string{"AB", "CD"}
	c := MustCatalog(faces...)
	faces[0] = "ZZ"
	assert.Equal(t, "AB", c.Face(0))

	out := c.Faces()
	out[1] = "ZZ"
	assert.Equal(t, "CD", c.Face(1))
	assert.Equal(t, 2, c.Len())
}

func TestRolls_Concurrent(t *testing.T) {
	want := SeededRoll("2024-06-01")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, want, SeededRoll("2024-06-01"))
				assert.Len(t, RandomRoll(), Count)
			}
		}()
	}
	wg.Wait()
}
