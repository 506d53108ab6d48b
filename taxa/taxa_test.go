package taxa_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/taxa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, input string) (*taxa.Block, error) {
	t.Helper()
	b := taxa.New()
	r := nexus.NewReader()
	r.Add(b)
	return b, r.ReadFile("test.nex", strings.NewReader(input))
}

func TestBlock_Read(t *testing.T) {
	b, err := read(t, `#NEXUS
BEGIN TAXA;
	[ignored comment]
	DIMENSIONS NTAX=3;
	TAXLABELS fish frog 'the snake';
	TITLE whatever;
END;`)
	require.NoError(t, err)
	assert.False(t, b.Empty())
	assert.Equal(t, 3, b.NTax())
	assert.Equal(t, []string{"fish", "frog", "the snake"}, b.TaxonLabels())
	assert.Equal(t, 9, b.MaxTaxonLabelLength())

	i, err := b.FindTaxon("frog")
	assert.NoError(t, err)
	assert.Equal(t, 1, i)
	_, err = b.FindTaxon("Frog")
	assert.True(t, errors.Is(err, nexus.ErrNoSuchTaxon))
	assert.Equal(t, 3, b.TaxonLabelToNumber("the snake"))
	assert.Equal(t, 0, b.TaxonLabelToNumber("toad"))
	assert.True(t, b.IsAlreadyDefined("fish"))
}

func TestBlock_errors(t *testing.T) {
	data := []struct {
		name  string
		input string
		err   error
	}{
		{"no_ntax", "BEGIN TAXA; TAXLABELS a b; END;", nexus.ErrFormatOrder},
		{"zero_ntax", "BEGIN TAXA; DIMENSIONS NTAX=0; END;", nexus.ErrRange},
		{"short", "BEGIN TAXA; DIMENSIONS NTAX=3; TAXLABELS a b; END;", nexus.ErrLabel},
		{"long", "BEGIN TAXA; DIMENSIONS NTAX=2; TAXLABELS a b c; END;", nexus.ErrSyntax},
		{"duplicate", "BEGIN TAXA; DIMENSIONS NTAX=2; TAXLABELS a a; END;", nexus.ErrLabel},
		{"no_ntax_keyword", "BEGIN TAXA; DIMENSIONS NCHAR=2; END;", nexus.ErrSyntax},
		{"eof", "BEGIN TAXA; DIMENSIONS NTAX=2;", nexus.ErrUnexpectedEOF},
	}
	for _, td := range data {
		t.Run(td.name, func(t *testing.T) {
			_, err := read(t, "#NEXUS\n"+td.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, td.err), "got %v", err)
		})
	}
}

func TestBlock_AddTaxonLabel(t *testing.T) {
	b := taxa.New()
	assert.True(t, b.Empty())
	b.AddTaxonLabel("a")
	b.AddTaxonLabel("b")
	assert.False(t, b.Empty())
	assert.Equal(t, 2, b.NumTaxonLabels())
	assert.Equal(t, 2, b.NTax())
	b.ChangeTaxonLabel(0, "c")
	assert.Equal(t, "c", b.TaxonLabel(0))
	b.Reset()
	assert.Equal(t, 0, b.NumTaxonLabels())
	assert.True(t, b.Empty())
}
