package nexus_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/taxa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder records hook calls as strings.
type recorder struct {
	nexus.NopHooks
	events []string
	errs   []*nexus.Error
}

func (h *recorder) add(s ...string) { h.events = append(h.events, strings.Join(s, " ")) }

func (h *recorder) ExecuteStarting() { h.add("start") }
func (h *recorder) ExecuteStopping() { h.add("stop") }
func (h *recorder) EnteringBlock(id string) { h.add("enter", id) }
func (h *recorder) ExitingBlock(id string) { h.add("exit", id) }
func (h *recorder) SkippingBlock(name string) { h.add("skip", name) }
func (h *recorder) SkippingDisabledBlock(name string) { h.add("disabled", name) }
func (h *recorder) SkippingCommand(name string) { h.add("skipcmd", name) }
func (h *recorder) OutputComment(text string) { h.add("comment", text) }
func (h *recorder) DebugReportBlock(b nexus.Block) { h.add("report", b.ID()) }
func (h *recorder) Error(err *nexus.Error) { h.errs = append(h.errs, err) }

func newReader(opts ...nexus.Option) (*nexus.Reader, *taxa.Block, *recorder) {
	h := new(recorder)
	r := nexus.NewReader(append([]nexus.Option{nexus.WithHooks(h)}, opts...)...)
	tx := taxa.New()
	r.Add(tx)
	return r, tx, h
}

func TestReader_hooks(t *testing.T) {
	r, tx, h := newReader()
	err := r.ReadFile("test.nex", strings.NewReader(`#NEXUS
[!intro]
BEGIN TAXA;
	DIMENSIONS NTAX=2;
	UNKNOWN foo 'bar;';
	TAXLABELS a b;
END;
BEGIN TREES;
	TREE t = (a,b);
ENDBLOCK;
[&SHOWALL]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"start",
		"comment intro",
		"enter TAXA",
		"skipcmd UNKNOWN",
		"exit TAXA",
		"skip TREES",
		"report TAXA",
		"stop",
	}, h.events)
	assert.Empty(t, h.errs)
	assert.Equal(t, []string{"a", "b"}, tx.TaxonLabels())
}

func TestReader_leave(t *testing.T) {
	r, tx, h := newReader()
	err := r.ReadFile("test.nex", strings.NewReader("#NEXUS\n[&LEAVE]\nBEGIN TAXA; this is not read"))
	require.NoError(t, err)
	assert.True(t, tx.Empty())
	assert.Equal(t, []string{"start", "stop"}, h.events)
}

func TestReader_disabled(t *testing.T) {
	r, tx, h := newReader()
	tx.SetEnabled(false)
	err := r.ReadFile("test.nex", strings.NewReader("#NEXUS\nbegin taxa; dimensions ntax=1; taxlabels x; end;"))
	require.NoError(t, err)
	assert.True(t, tx.Empty())
	assert.Equal(t, []string{"start", "disabled taxa", "stop"}, h.events)
}

func TestReader_errors(t *testing.T) {
	data := []struct {
		name  string
		input string
		err   error
		pos   string
	}{
		{"no_header", "BEGIN TAXA;", nexus.ErrFormat, "test.nex:1:1"},
		{"empty", "", nexus.ErrFormat, "test.nex:1:1"},
		{"eof_skipping", "#NEXUS\nBEGIN TREES; TREE", nexus.ErrUnexpectedEOF, "test.nex:2:18"},
		{"eof_after_begin", "#NEXUS\nBEGIN", nexus.ErrUnexpectedEOF, "test.nex:2:6"},
		{"ntax", "#NEXUS\nBEGIN TAXA;\nDIMENSIONS NTAX=0;", nexus.ErrRange, "test.nex:3:17"},
		{"lex", "#NEXUS\nBEGIN TAXA; [unterminated", nexus.ErrLex, "test.nex:2:13"},
	}
	for _, td := range data {
		t.Run(td.name, func(t *testing.T) {
			r, tx, h := newReader()
			err := r.ReadFile("test.nex", strings.NewReader(td.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, td.err), "got %v", err)
			var e *nexus.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, td.pos, e.Pos.String())
			require.Len(t, h.errs, 1)
			assert.Same(t, e, h.errs[0])
			assert.True(t, tx.Empty())
		})
	}
}

func TestReader_ContinueOnError(t *testing.T) {
	const input = `#NEXUS
BEGIN TAXA; DIMENSIONS NTAX=0; TAXLABELS x; END;
BEGIN TAXA; DIMENSIONS NTAX=2; TAXLABELS a b; END;
`
	r, tx, _ := newReader()
	err := r.ReadFile("test.nex", strings.NewReader(input))
	assert.True(t, errors.Is(err, nexus.ErrRange), "got %v", err)
	assert.Equal(t, 0, tx.NTax())

	r, tx, h := newReader(nexus.ContinueOnError(true))
	err = r.ReadFile("test.nex", strings.NewReader(input))
	assert.True(t, errors.Is(err, nexus.ErrRange), "got %v", err)
	assert.Len(t, h.errs, 1)
	assert.Equal(t, 2, tx.NTax())
	assert.Equal(t, []string{"a", "b"}, tx.TaxonLabels())

	r, tx, h = newReader(nexus.ContinueOnError(true))
	err = r.ReadFile("test.nex", strings.NewReader(`#NEXUS
BEGIN TAXA; DIMENSIONS NTAX=0; END;
BEGIN TAXA; TAXLABELS x; END;
BEGIN TAXA; DIMENSIONS NTAX=1; TAXLABELS y; END;
`))
	assert.True(t, errors.Is(err, nexus.ErrRange), "got %v", err)
	assert.True(t, errors.Is(err, nexus.ErrFormatOrder), "got %v", err)
	assert.Len(t, h.errs, 2)
	assert.Equal(t, []string{"y"}, tx.TaxonLabels())
}

func TestReader_blocks(t *testing.T) {
	r := nexus.NewReader()
	tx := taxa.New()
	other := taxa.New()
	r.Add(tx)
	r.Add(other)
	assert.Len(t, r.Blocks(), 2)
	assert.Same(t, tx, r.Block("taxa"))
	assert.Nil(t, r.Block("CHARACTERS"))

	assert.True(t, r.Detach(tx))
	assert.False(t, r.Detach(tx))
	assert.Same(t, other, r.Block("TAXA"))
	assert.Len(t, r.Blocks(), 1)

	// the first enabled block with a matching id reads the block
	tx2 := taxa.New()
	r.Add(tx2)
	other.SetEnabled(false)
	require.NoError(t, r.ReadFile("", strings.NewReader("#NEXUS BEGIN TAXA; DIMENSIONS NTAX=1; TAXLABELS z; END;")))
	assert.True(t, other.Empty())
	assert.Equal(t, []string{"z"}, tx2.TaxonLabels())
}

func TestReader_logger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r, _, _ := newReader(nexus.WithLogger(l))
	err := r.ReadFile("test.nex", strings.NewReader("#NEXUS\nBEGIN TAXA; DIMENSIONS NTAX=1; TAXLABELS x; END;\nBEGIN FOO; END;"))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "component=nexus")
	assert.Contains(t, out, `msg="entering block"`)
	assert.Contains(t, out, "block=TAXA")
	assert.Contains(t, out, `msg="skipping unknown block" component=nexus block=FOO`)
}
