// Package assets embeds the static game data: the vocabulary and the life catalog.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt languages.yaml
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded vocabulary, one entry per non-comment line.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// Catalog returns the raw YAML of the embedded life catalog.
func Catalog() ([]byte, error) {
	return FS.ReadFile("languages.yaml")
}
