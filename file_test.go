package nexus_test

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/nexus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This example shows how one could use File.Line to display nicely formatted
// error messages. For the example's sake, every number in the input is
// reported as an error.
//
func ExampleFile_Line() {
	input := "Hello 世界 1\ndéjà vu 2"
	f := nexus.NewFile("INPUT", strings.NewReader(input))
	t := nexus.NewTokenizer(f, nil)
	for {
		tok, err := t.Scan()
		if err != nil || tok.EOF {
			break
		}
		if _, err = strconv.Atoi(tok.Text); err == nil {
			reportError(f, tok.Pos, "unexpected number "+tok.Text)
		}
	}

	// The following output will display correctly only with monospaced fonts
	// and a UTF-8 locale.

	// Output:
	// INPUT:1:14: error unexpected number 1
	// |Hello 世界 1
	// |           ^
	// INPUT:2:11: error unexpected number 2
	// |déjà vu 2
	// |        ^
}

// reportError reports an error in the form:
//
//	file:line:col: error description
//	|source line where the error occurred
//	|        ^
func reportError(f *nexus.File, pos nexus.Position, msg string) {
	fmt.Printf("%s: error %s\n", pos, msg)
	l, err := f.Line(nexus.Pos(pos.Offset))
	if err != nil {
		return
	}
	b := pos.Column - 1
	if b > len(l) {
		b = len(l)
	}
	fmt.Printf("|%s\n", l)
	fmt.Printf("|%s^\n", nexus.CaretPad(l[:b]))
}

func TestFile(t *testing.T) {
	f := nexus.NewFile("test", strings.NewReader("ab\r\ncd\ref"))
	assert.Equal(t, "test", f.Name())
	tk := nexus.NewTokenizer(f, nil)
	for {
		tok, err := tk.Scan()
		require.NoError(t, err)
		if tok.EOF {
			break
		}
	}
	assert.Equal(t, 3, f.Lines())
	assert.Equal(t, nexus.Pos(4), f.LinePos(2))
	assert.Equal(t, nexus.Pos(7), f.LinePos(3))
	assert.Equal(t, nexus.Pos(-1), f.LinePos(4))
	assert.Equal(t, nexus.Position{Filename: "test", Offset: 5, Line: 2, Column: 2}, f.Position(5))
	assert.Equal(t, "test", f.Position(-1).String())
	assert.Equal(t, "-", nexus.Position{}.String())

	for _, td := range []struct {
		pos  nexus.Pos
		line string
	}{
		{1, "ab"},
		{5, "cd"},
		{8, "ef"},
	} {
		l, err := f.Line(td.pos)
		require.NoError(t, err)
		assert.Equal(t, td.line, string(l))
	}

	assert.Equal(t, nexus.ErrLine, f.AddLine(2))

	nf := nexus.NewFile("", struct{ io.Reader }{strings.NewReader("x")})
	_, err := nf.Line(0)
	assert.True(t, errors.Is(err, nexus.ErrNoSeek))
}

func TestCaretPad(t *testing.T) {
	assert.Equal(t, "     ", nexus.CaretPad([]byte("abc é")))
	assert.Equal(t, "\t    ", nexus.CaretPad([]byte("\t世界")))
	assert.Equal(t, "", nexus.CaretPad(nil))
}
