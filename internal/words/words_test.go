package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestNewVocabularyNormalizes(t *testing.T) {
	is := is.New(t)
	v, err := NewVocabulary([]string{" Cat ", "dog", "cat", "two words", "r2d2", "", "OWL"})
	is.NoErr(err)
	is.Equal(v.Words(), []string{"cat", "dog", "owl"})
	is.True(v.Contains("owl"))
	is.True(!v.Contains("r2d2"))
}

func TestNewVocabularyEmpty(t *testing.T) {
	is := is.New(t)
	_, err := NewVocabulary([]string{"", "123"})
	is.True(errors.Is(err, ErrEmptyVocabulary))
}

func TestLoadEmbedded(t *testing.T) {
	is := is.New(t)
	t.Setenv("WORDS_FILE", "")
	v, err := Load()
	is.NoErr(err)
	is.True(v.Len() > 100)
}

func TestLoadFromFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "words.txt")
	is.NoErr(os.WriteFile(path, []byte("# comment\nalpha\n\nBeta\n"), 0o644))
	t.Setenv("WORDS_FILE", path)

	v, err := Load()
	is.NoErr(err)
	is.Equal(v.Words(), []string{"alpha", "beta"})
}

func TestRandomSourcePicksFromVocabulary(t *testing.T) {
	is := is.New(t)
	v, err := NewVocabulary([]string{"cat", "dog"})
	is.NoErr(err)
	src := NewRandomSource(v)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		w := src.PickWord()
		is.True(v.Contains(w))
		seen[w] = true
	}
	is.Equal(len(seen), 2)
}

func TestFixed(t *testing.T) {
	is := is.New(t)
	is.Equal(Fixed(" CAT ").PickWord(), "cat")
}

func TestDailySource(t *testing.T) {
	is := is.New(t)
	v, err := NewVocabulary([]string{"cat", "dog", "owl", "bee", "ant"})
	is.NoErr(err)

	day := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	src := NewDailySource(v, "salt")
	src.now = func() time.Time { return day }
	first := src.PickWord()
	is.True(v.Contains(first))
	is.Equal(src.Date(), "2026-10-18")

	src.now = func() time.Time { return day.Add(10 * time.Hour) }
	is.Equal(src.PickWord(), first)

	is.Equal(src.WordOn("2026-10-18"), first)
	is.Equal(NewDailySource(v, "salt").WordOn("2026-10-18"), first) // stable across instances

	// a different salt or day moves the index somewhere in range
	for _, key := range []string{"2026-10-19", "2027-01-01"} {
		is.True(v.Contains(NewDailySource(v, "other").WordOn(key)))
	}
}
