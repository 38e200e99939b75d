// internal/words/words.go
//
// Dictionary used to judge the words a player spells on the board.
//
// Initialization behavior (Init):
//   1. If a path is given (WORDS_FILE in config), load one word per line from that file.
//   2. Otherwise fall back to the embedded assets/words.txt.
//
// Constraints:
//   • Words are at least 2 alphabetic letters (a–z); other lines are skipped.
//   • Lists are normalized to lowercase.
//   • Initialization runs once (sync.Once).
package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/dicegrid/assets"
)

// MinLen is the shortest word the board accepts.
const MinLen = 2

var ErrEmptyDictionary = errors.New("words: dictionary is empty")

var (
	initOnce   sync.Once
	dictionary map[string]struct{}
	initialErr error
)

// Init loads the dictionary exactly once, from path when set.
// Later calls return the first result regardless of path.
func Init(path string) error {
	initOnce.Do(func() {
		dictionary, initialErr = load(path)
	})
	return initialErr
}

func load(path string) (map[string]struct{}, error) {
	var list []string
	var err error
	if path != "" {
		list, err = readWordFile(path)
	} else {
		list, err = assets.WordList()
	}
	if err != nil {
		return nil, fmt.Errorf("words: load: %w", err)
	}
	set := toSet(normalize(list))
	if len(set) == 0 {
		return nil, ErrEmptyDictionary
	}
	return set, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// normalize lowercases, trims and keeps only valid words.
func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, line := range list {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) >= MinLen && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// IsWord reports whether w is in the dictionary (case-insensitive).
// Init must have been called; before that nothing is a word.
func IsWord(w string) bool {
	_, ok := dictionary[strings.ToLower(w)]
	return ok
}

// Stats returns the number of loaded words.
func Stats() int {
	return len(dictionary)
}
