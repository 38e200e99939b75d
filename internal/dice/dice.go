// internal/dice/dice.go
//
// Letter dice for the word-grid game.
// Responsibilities:
//   - Hold the die face catalog (twelve face-sets, one per die).
//   - RandomRoll: free-play rolls drawn from crypto/rand.
//   - SeededRoll: deterministic rolls derived from SHA-256(seed), used by the
//     daily puzzle so every player on a given date sees the same letters.
//
// Notes:
//   - Faces are indexed by byte; face-sets are expected to be ASCII letters.
//   - A digest byte is 0..255, so a face-set longer than 256 faces only ever
//     lands on its first 256 faces when seeded. The default catalog tops out at 6.
package dice

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
)

// Count is the number of dice in a standard game.
const Count = 12

var (
	ErrEmptyCatalog = errors.New("dice: catalog has no face-sets")
	ErrEmptyFace    = errors.New("dice: empty face-set")
)

// Catalog is an ordered list of face-sets; die i shows one letter of Catalog[i].
// A Catalog is never mutated after construction.
type Catalog struct {
	faces []string
}

// Default is the catalog the game ships with.
var Default = MustCatalog(
	"BNSZXK",
	"YMBLML",
	"MTTCSC",
	"CDCJTB",
	"PFGKPV",
	"EAOIUU",
	"HRNRNH",
	"LWRLDF",
	"AOEAOE",
	"PHTWHT",
	"RDGGLR",
	"NOIYNI",
)

// NewCatalog validates and copies the given face-sets.
// Empty face-sets are rejected here so rolls never divide by zero.
func NewCatalog(faces ...string) (Catalog, error) {
	if len(faces) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	for i, f := range faces {
		if f == "" {
			return Catalog{}, fmt.Errorf("face-set %d: %w", i, ErrEmptyFace)
		}
	}
	return Catalog{faces: append([]string(nil), faces...)}, nil
}

// MustCatalog is NewCatalog for package-level definitions; it panics on error.
func MustCatalog(faces ...string) Catalog {
	c, err := NewCatalog(faces...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of dice in the catalog.
func (c Catalog) Len() int { return len(c.faces) }

// Faces returns a copy of the face-sets.
func (c Catalog) Faces() []string { return append([]string(nil), c.faces...) }

// Face returns the face-set for die i.
func (c Catalog) Face(i int) string { return c.faces[i] }

// Random picks one face per die uniformly at random.
func (c Catalog) Random() []string {
	out := make([]string, len(c.faces))
	for i, f := range c.faces {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(f))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic(fmt.Errorf("dice: read entropy: %w", err))
		}
		idx := n.Int64()
		out[i] = f[idx : idx+1]
	}
	return out
}

// Seeded derives one face per die from the SHA-256 digest of seed.
// Die i uses digest byte i mod 32, reduced modulo the length of its face-set.
func (c Catalog) Seeded(seed string) []string {
	sum := sha256.Sum256([]byte(seed))
	out := make([]string, len(c.faces))
	for i, f := range c.faces {
		b := int(sum[i%len(sum)])
		idx := b % len(f)
		out[i] = f[idx : idx+1]
	}
	return out
}

// RandomRoll rolls the default catalog at random.
func RandomRoll() []string { return Default.Random() }

// SeededRoll rolls the default catalog deterministically from seed.
// Any string is a valid seed, including "".
func SeededRoll(seed string) []string { return Default.Seeded(seed) }
