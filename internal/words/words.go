// internal/words/words.go
//
// Vocabulary management and hidden-word selection.
//
// Responsibilities:
//   - Load the vocabulary from an env-provided file or fall back to the embedded list.
//   - Normalize entries (trim, lowercase, alphabetic only, de-duplicated, order kept).
//   - Supply hidden words through the Source interface so the engine never touches
//     randomness directly.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt   (optional; one word per line)
//
// An empty vocabulary is a startup failure (ErrEmptyVocabulary); callers are
// expected to treat it as fatal.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/endgame/assets"
)

// ErrEmptyVocabulary is returned when no usable word survives normalization.
var ErrEmptyVocabulary = errors.New("words: vocabulary is empty")

// Source supplies the hidden word for a new round.
type Source interface {
	PickWord() string
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() string

// PickWord calls f.
func (f SourceFunc) PickWord() string { return f() }

// Fixed returns a Source that always yields word. Handy for tests and replays.
func Fixed(word string) Source {
	w := strings.ToLower(strings.TrimSpace(word))
	return SourceFunc(func() string { return w })
}

// Vocabulary is an immutable, non-empty ordered list of candidate words.
type Vocabulary struct {
	words []string
	set   map[string]struct{}
}

// NewVocabulary normalizes list and returns ErrEmptyVocabulary if nothing is left.
func NewVocabulary(list []string) (*Vocabulary, error) {
	v := &Vocabulary{set: make(map[string]struct{}, len(list))}
	for _, raw := range list {
		w := strings.TrimSpace(strings.ToLower(raw))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := v.set[w]; dup {
			continue
		}
		v.set[w] = struct{}{}
		v.words = append(v.words, w)
	}
	if len(v.words) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return v, nil
}

// Load builds the vocabulary from WORDS_FILE when set, else from the embedded list.
func Load() (*Vocabulary, error) {
	if path := os.Getenv("WORDS_FILE"); path != "" {
		list, err := readWordFile(path)
		if err != nil {
			return nil, fmt.Errorf("words: read %s: %w", path, err)
		}
		return NewVocabulary(list)
	}
	list, err := assets.WordList()
	if err != nil {
		return nil, fmt.Errorf("words: embedded list: %w", err)
	}
	return NewVocabulary(list)
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
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

// Len returns the number of words.
func (v *Vocabulary) Len() int { return len(v.words) }

// At returns the i-th word.
func (v *Vocabulary) At(i int) string { return v.words[i] }

// Contains reports whether w is part of the vocabulary.
func (v *Vocabulary) Contains(w string) bool {
	_, ok := v.set[w]
	return ok
}

// Words returns a copy of the ordered word list.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// RandomSource picks uniformly from a vocabulary using crypto/rand.
type RandomSource struct {
	vocab *Vocabulary
}

// NewRandomSource returns a Source over v.
func NewRandomSource(v *Vocabulary) *RandomSource {
	return &RandomSource{vocab: v}
}

// PickWord returns a uniformly random word.
func (s *RandomSource) PickWord() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(s.vocab.Len())))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is gone.
		panic(fmt.Sprintf("words: read random: %v", err))
	}
	return s.vocab.At(int(n.Int64()))
}
