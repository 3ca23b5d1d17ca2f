package words

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestLoadCatalogEmbedded(t *testing.T) {
	is := is.New(t)
	t.Setenv("CATALOG_FILE", "")
	c, err := LoadCatalog()
	is.NoErr(err)
	is.Equal(c.Len(), 9)
	is.Equal(c.MaxWrongGuesses(), 8)
	is.Equal(c.Entry(0), Entry{Name: "HTML", BackgroundColor: "#E2680F", Color: "#F9F4DA"})
	is.Equal(c.Entry(8).Name, "Assembly")
}

func TestParseCatalog(t *testing.T) {
	is := is.New(t)
	c, err := ParseCatalog([]byte("- name: Go\n  backgroundColor: \"#00ADD8\"\n  color: \"#FFFFFF\"\n- name: C\n"))
	is.NoErr(err)
	is.Equal(c.Len(), 2)
	is.Equal(c.Entry(0).BackgroundColor, "#00ADD8")

	_, err = ParseCatalog([]byte("[]"))
	is.True(errors.Is(err, ErrEmptyCatalog))

	_, err = ParseCatalog([]byte("name: [unterminated"))
	is.True(err != nil)
}

func TestFarewellMessage(t *testing.T) {
	is := is.New(t)
	c, err := LoadCatalog()
	is.NoErr(err)

	is.Equal(c.FarewellMessage(0), "Farewell, HTML")
	is.Equal(c.FarewellMessage(0), c.FarewellMessage(0))
	is.Equal(c.FarewellMessage(7), "The end of Ruby as we know it")
}

func TestFarewellMessageOutOfRange(t *testing.T) {
	c, err := LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{-1, 8, 9} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("FarewellMessage(%d) did not panic", i)
				}
			}()
			_ = c.FarewellMessage(i)
		}()
	}
}
