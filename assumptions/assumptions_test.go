package assumptions_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/assumptions"
	"github.com/db47h/nexus/characters"
	"github.com/db47h/nexus/set"
	"github.com/db47h/nexus/taxa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = `#NEXUS
BEGIN TAXA; DIMENSIONS NTAX=3; TAXLABELS fish frog snake; END;
BEGIN CHARACTERS;
	DIMENSIONS NCHAR=6;
	CHARLABELS a b c d e f;
	MATRIX
		fish  010101
		frog  000111
		snake 111000
	;
END;
`

func read(t *testing.T, input string) (*assumptions.Block, *characters.Block, error) {
	t.Helper()
	tx := taxa.New()
	a := assumptions.New(tx)
	c := characters.New(tx, characters.WithLinker(a))
	r := nexus.NewReader()
	r.Add(tx)
	r.Add(c)
	r.Add(a)
	return a, c, r.ReadFile("test.nex", strings.NewReader(input))
}

func TestBlock_Read(t *testing.T) {
	a, c, err := read(t, header+`BEGIN ASSUMPTIONS;
	CHARSET coding = 1-6\3;
	CHARSET * named = b d-f;
	TAXSET outgroup = fish snake;
	TAXSET * all = ALL;
	EXSET * noisy = 2 5;
	EXSET other = 6;
	WTSET whatever = 1;
END;`)
	require.NoError(t, err)
	assert.Same(t, c, a.Characters())

	assert.Equal(t, 2, a.NumCharSets())
	assert.Equal(t, []string{"coding", "named"}, a.CharSetNames())
	s, ok := a.CharSet("coding")
	assert.True(t, ok)
	assert.Equal(t, set.IndexSet{0, 3}, s)
	s, _ = a.CharSet("named")
	assert.Equal(t, set.IndexSet{1, 3, 4, 5}, s)
	assert.Equal(t, "named", a.DefaultCharSet())

	assert.Equal(t, 2, a.NumTaxSets())
	assert.Equal(t, []string{"all", "outgroup"}, a.TaxSetNames())
	s, _ = a.TaxSet("outgroup")
	assert.Equal(t, set.IndexSet{0, 2}, s)
	assert.Equal(t, "all", a.DefaultTaxSet())

	assert.Equal(t, 2, a.NumExSets())
	assert.Equal(t, []string{"noisy", "other"}, a.ExSetNames())
	assert.Equal(t, "noisy", a.DefaultExSet())
	s, _ = a.ExSet("other")
	assert.Equal(t, set.IndexSet{5}, s)

	// the default exset has been applied
	assert.Equal(t, 4, c.NumActiveChar())
	assert.False(t, c.IsActiveChar(1))
	assert.False(t, c.IsActiveChar(4))

	n, err := a.ApplyExset("other")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, c.NumActiveChar())

	_, err = a.ApplyExset("nope")
	assert.True(t, errors.Is(err, nexus.ErrUnresolvedLabel))

	a.Reset()
	assert.Equal(t, 0, a.NumCharSets())
	assert.Equal(t, "", a.DefaultExSet())
	assert.Same(t, c, a.Characters())
}

func TestBlock_errors(t *testing.T) {
	data := []struct {
		name  string
		input string
		err   error
	}{
		{"no_characters", "#NEXUS\nBEGIN ASSUMPTIONS; CHARSET x = 1; END;", nexus.ErrFormatOrder},
		{"range", header + "BEGIN ASSUMPTIONS; CHARSET x = 7; END;", nexus.ErrRange},
		{"taxset_range", header + "BEGIN ASSUMPTIONS; TAXSET x = 4; END;", nexus.ErrRange},
		{"no_equals", header + "BEGIN ASSUMPTIONS; EXSET x 1; END;", nexus.ErrSyntax},
		{"comma", header + "BEGIN ASSUMPTIONS; CHARSET x = 1, 2; END;", nexus.ErrSyntax},
		{"bad_name", header + "BEGIN ASSUMPTIONS; CHARSET = 1; END;", nexus.ErrSyntax},
		{"unknown_label", header + "BEGIN ASSUMPTIONS; TAXSET x = toad; END;", nexus.ErrUnresolvedLabel},
		{"eof", header + "BEGIN ASSUMPTIONS; TAXSET x = fish", nexus.ErrUnexpectedEOF},
	}
	for _, td := range data {
		t.Run(td.name, func(t *testing.T) {
			_, _, err := read(t, td.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, td.err), "got %v", err)
		})
	}
}

func TestBlock_ApplyExset_unlinked(t *testing.T) {
	tx := taxa.New()
	a := assumptions.New(tx)
	r := nexus.NewReader()
	r.Add(tx)
	r.Add(a)
	require.NoError(t, r.ReadFile("", strings.NewReader(`#NEXUS
BEGIN TAXA; DIMENSIONS NTAX=2; TAXLABELS x y; END;
BEGIN ASSUMPTIONS; TAXSET t = y; END;`)))
	s, ok := a.TaxSet("t")
	assert.True(t, ok)
	assert.Equal(t, set.IndexSet{1}, s)
	assert.Nil(t, a.Characters())
	assert.Equal(t, 2, a.TaxonLabelToNumber("y"))
}
