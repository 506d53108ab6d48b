package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/nexus/characters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sample = `#NEXUS
BEGIN TAXA; DIMENSIONS NTAX=2; TAXLABELS fish 'the frog'; END;
BEGIN CHARACTERS;
	DIMENSIONS NCHAR=4;
	FORMAT DATATYPE=DNA GAP=-;
	MATRIX
		fish       ACGT
		'the frog' A(CG)-?
	;
END;
BEGIN ASSUMPTIONS;
	EXSET * bad = 4;
	CHARSET first = 1-3;
END;
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestDump_yaml(t *testing.T) {
	dir := t.TempDir()
	name := write(t, dir, "sample.nex", sample)
	out, _, err := run(t, "dump", name)
	require.NoError(t, err)

	var sum fileSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	assert.Equal(t, name, sum.File)
	assert.Equal(t, []string{"fish", "the frog"}, sum.Taxa)
	assert.Nil(t, sum.Data)
	require.NotNil(t, sum.Characters)
	assert.Equal(t, matrixSummary{
		DataType: characters.DNA.String(),
		NTax:     2,
		NChar:    4,
		Excluded: "4",
		Matrix: []row{
			{Taxon: "fish", States: "ACGT"},
			{Taxon: "the frog", States: "A(CG)-?"},
		},
	}, *sum.Characters)
}

func TestDump_text(t *testing.T) {
	dir := t.TempDir()
	cfg := write(t, dir, "nexusdump.toml", "[output]\nformat = \"text\"\ncarets = true\n")
	good := write(t, dir, "good.nex", sample)
	bad := write(t, dir, "bad.nex", "#NEXUS\nBEGIN TAXA;\n\tDIMENSIONS NTAX=x;\nEND;\n")

	out, errOut, err := run(t, "--config", cfg, "dump", good, bad)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 files had errors", err.Error())

	assert.Contains(t, out, "file "+good+"\ntaxa fish 'the frog'\nCHARACTERS "+characters.DNA.String()+" ntax=2 nchar=4\n")
	assert.Contains(t, out, "  excluded 4\n")
	assert.Contains(t, out, "  fish        ACGT\n")
	assert.Contains(t, out, "  'the frog'  A(CG)-?\n")
	assert.Contains(t, out, "file "+bad+"\n")

	assert.Contains(t, errOut, bad+":3:18: syntax error: ")
	assert.Contains(t, errOut, "|\tDIMENSIONS NTAX=x;\n|\t                ^\n")
}

func TestDump_config(t *testing.T) {
	dir := t.TempDir()
	cfg := write(t, dir, "nexusdump.yaml", "reader:\n  disabled_blocks: [characters]\nlog:\n  level: error\n")
	name := write(t, dir, "sample.nex", sample)

	// ASSUMPTIONS has no characters block to refer to
	out, _, err := run(t, "--config", cfg, "dump", name)
	require.Error(t, err)
	var sum fileSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	assert.Nil(t, sum.Characters)
	assert.Equal(t, []string{"fish", "the frog"}, sum.Taxa)

	cfg = write(t, dir, "bad.toml", "[log]\nlevel = \"loud\"\n")
	_, _, err = run(t, "--config", cfg, "dump", name)
	assert.Error(t, err)

	_, _, err = run(t, "dump", filepath.Join(dir, "missing.nex"))
	assert.Error(t, err)
}

func TestDump_verbose(t *testing.T) {
	name := write(t, t.TempDir(), "sample.nex", sample)
	_, errOut, err := run(t, "-v", "dump", name)
	require.NoError(t, err)
	assert.Contains(t, errOut, "run_id=")
	assert.Contains(t, errOut, `msg="entering block"`)
	assert.Contains(t, errOut, "component=nexus block=CHARACTERS")
	assert.Equal(t, 1, strings.Count(errOut, `msg="reading file"`))
}

func TestSets(t *testing.T) {
	dir := t.TempDir()
	name := write(t, dir, "sample.nex", sample)
	cfg := write(t, dir, "nexusdump.toml", "[output]\nformat = \"text\"\n")
	out, _, err := run(t, "--config", cfg, "sets", name)
	require.NoError(t, err)
	assert.Equal(t, `BEGIN ASSUMPTIONS;
	CHARSET first = 1-3;
	EXSET * bad = 4;
END;
`, out)

	out, _, err = run(t, "sets", name)
	require.NoError(t, err)
	var sum setsSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	assert.Equal(t, []namedSet{{Name: "first", Set: "1-3"}}, sum.CharSets)
	assert.Equal(t, []namedSet{{Name: "bad", Default: true, Set: "4"}}, sum.ExSets)
	assert.Empty(t, sum.TaxSets)
}
