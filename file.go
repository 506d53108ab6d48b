// Copyright 2017-2018 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package nexus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Pos represents a byte offset within a File.
//
type Pos int

// IsValid returns true if p is a valid position (i.e. p >= 0).
//
func (p Pos) IsValid() bool {
	return p >= 0
}

// Common errors.
var (
	ErrSeek   = errors.New("wrong file position after seek")
	ErrNoSeek = errors.New("io.Reader does not support Seek")
	ErrLine   = errors.New("invalid line number")
)

// Position describes an arbitrary source position including the file, byte
// offset, line, and column location.
//
type Position struct {
	Filename string
	Offset   int // 0-based byte offset
	Line     int // 1-based line number
	Column   int // 1-based column number (byte index)
}

// IsValid reports whether the position carries line information.
//
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// A File represents a NEXUS source file. It wraps an io.Reader and keeps the
// table of line start offsets needed to turn a Pos into a line:column based
// Position.
//
// Line starts are registered by the Tokenizer while it reads, so a Position
// can only be computed for offsets that have already been read.
//
type File struct {
	name string
	io.Reader
	lines []Pos // 0-based line/Pos information
}

// NewFile returns a new File.
//
func NewFile(name string, r io.Reader) *File {
	return &File{
		name:   name,
		Reader: r,
		lines:  []Pos{0},
	}
}

// Name returns the file name.
//
func (f *File) Name() string {
	return f.name
}

// Lines returns the number of lines seen so far.
//
func (f *File) Lines() int {
	return len(f.lines)
}

// AddLine registers the start of a new line at offset pos. Offsets must be
// added in increasing order, AddLine returns ErrLine otherwise.
//
func (f *File) AddLine(pos Pos) error {
	if l := len(f.lines); l > 0 && f.lines[l-1] >= pos {
		return ErrLine
	}
	f.lines = append(f.lines, pos)
	return nil
}

// Position returns the Position for a given pos. The returned column is a
// byte offset, not a rune offset. An invalid pos yields a Position with only
// the file name set.
//
func (f *File) Position(pos Pos) Position {
	if !pos.IsValid() {
		return Position{Filename: f.name}
	}
	i, j := 0, len(f.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(f.lines[h] > pos) {
			i = h + 1
		} else {
			j = h
		}
	}
	return Position{f.name, int(pos), i, int(pos - f.lines[i-1] + 1)}
}

// LinePos returns the file offset of the given line.
//
func (f *File) LinePos(line int) Pos {
	if line < 1 || line > len(f.lines) {
		return -1
	}
	return f.lines[line-1]
}

// Line returns the text of the line containing pos, without its line
// terminator. The underlying reader must implement io.Seeker; the current read
// offset is restored before returning.
//
func (f *File) Line(pos Pos) (l []byte, err error) {
	lp := f.LinePos(f.Position(pos).Line)
	if !lp.IsValid() {
		return nil, ErrLine
	}
	rs, ok := f.Reader.(io.ReadSeeker)
	if !ok {
		return nil, ErrNoSeek
	}
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	defer func() {
		p, serr := rs.Seek(cur, io.SeekStart)
		if err == nil && serr != nil {
			err = serr
		} else if err == nil && p != cur {
			err = ErrSeek
		}
	}()
	fp, err := rs.Seek(int64(lp), io.SeekStart)
	if err != nil {
		return nil, err
	}
	if fp != int64(lp) {
		return nil, ErrSeek
	}

	r := bufio.NewReader(rs)
	for {
		buf, pref, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		l = append(l, buf...)
		if !pref {
			break
		}
	}
	// ReadLine only handles LF and CRLF; a lone CR also ends a NEXUS line.
	if i := bytes.IndexByte(l, '\r'); i >= 0 {
		l = l[:i]
	}
	return l, nil
}

// CaretPad returns the blanks that align a caret with the end of l, a prefix
// of a line returned by Line, supposing rendering with a UTF-8 locale and
// monospaced font. Tabs are kept as is. East Asian wide and fullwidth runes
// take two cells; ambiguous ones are counted as narrow.
//
func CaretPad(l []byte) string {
	var sb strings.Builder
	for i := 0; i < len(l); {
		r, s := utf8.DecodeRune(l[i:])
		i += s
		switch {
		case r == '\t':
			sb.WriteByte('\t')
		case !unicode.IsGraphic(r):
		case isWide(r):
			sb.WriteString("  ")
		default:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return true
	}
	return false
}
