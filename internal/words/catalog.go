// internal/words/catalog.go
//
// Life catalog: the ordered list of languages that fall, one per wrong guess.
//
// The catalog length minus one is the number of wrong guesses a round tolerates;
// the final entry is the baseline that is never lost. Entries are read from the
// embedded languages.yaml, or from CATALOG_FILE when set.

package words

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/endgame/assets"
)

// ErrEmptyCatalog is returned when the catalog has no entries.
var ErrEmptyCatalog = errors.New("words: life catalog is empty")

// Entry is one life: a display label and its color pair.
type Entry struct {
	Name            string `yaml:"name" json:"name"`
	BackgroundColor string `yaml:"backgroundColor" json:"backgroundColor"`
	Color           string `yaml:"color" json:"color"`
}

// Catalog is an immutable ordered list of entries.
type Catalog struct {
	entries []Entry
}

// NewCatalog copies entries into a Catalog.
func NewCatalog(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Catalog{entries: append([]Entry(nil), entries...)}, nil
}

// ParseCatalog decodes a YAML sequence of entries.
func ParseCatalog(data []byte) (*Catalog, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("words: parse catalog: %w", err)
	}
	return NewCatalog(entries)
}

// LoadCatalog reads CATALOG_FILE when set, else the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	if path := os.Getenv("CATALOG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("words: read %s: %w", path, err)
		}
		return ParseCatalog(data)
	}
	data, err := assets.Catalog()
	if err != nil {
		return nil, fmt.Errorf("words: embedded catalog: %w", err)
	}
	return ParseCatalog(data)
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns a copy of the entries in order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Entry returns the entry at i.
func (c *Catalog) Entry(i int) Entry { return c.entries[i] }

// MaxWrongGuesses is the wrong-guess count at which a round is lost.
func (c *Catalog) MaxWrongGuesses() int { return len(c.entries) - 1 }

var farewellTemplates = []string{
	"Farewell, %s",
	"Adios, %s",
	"R.I.P., %s",
	"We'll miss you, %s",
	"Oh no, not %s!",
	"%s bites the dust",
	"Gone but not forgotten, %s",
	"The end of %s as we know it",
	"Off into the sunset, %s",
	"%s, it's been real",
	"%s, your watch has ended",
	"%s has left the building",
}

// FarewellMessage returns the message shown after the wrong guess with zero-based
// index i, naming the language that guess cost. i must be in [0, Len()-1).
func (c *Catalog) FarewellMessage(i int) string {
	if i < 0 || i >= c.MaxWrongGuesses() {
		panic(fmt.Sprintf("words: farewell index %d out of range [0, %d)", i, c.MaxWrongGuesses()))
	}
	return fmt.Sprintf(farewellTemplates[i%len(farewellTemplates)], c.entries[i].Name)
}
