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
	"io"
	"unicode/utf8"
)

// EOF is the rune returned by the Tokenizer's internal reader once the end of
// input has been reached.
//
const EOF rune = -1

// Undo buffer constants. The Tokenizer never backs up more than one rune, the
// extra room keeps the ring logic identical for EOF handling.
//
const (
	undoSize = 4
	undoMask = undoSize - 1
)

type undo struct {
	p Pos
	r rune
}

// reader streams runes from a File with a small undo buffer. It normalizes
// CR, LF and CRLF line terminators into a single '\n' and registers every line
// start with the File.
//
// Invalid UTF-8 bytes are decoded as Latin-1.
//
type reader struct {
	buf    [4 << 10]byte  // byte buffer
	undo   [undoSize]undo // undo buffer
	f      *File
	offs   int    // offset of first byte in buffer
	r, w   int    // read/write indices
	ur, uh int    // undo buffer read pos and head
	ioErr  error  // if not nil, IO error @w
	err    *Error // first decoding or I/O error
}

func (s *reader) init(f *File) {
	s.f = f
	s.uh = 1
	// sentinel values
	s.buf[0] = utf8.RuneSelf
	for i := range s.undo {
		s.undo[i] = undo{-1, utf8.RuneSelf}
	}
}

// next returns the next rune in the input stream, or EOF. Once an error has
// been recorded, next keeps returning EOF.
//
func (s *reader) next() rune {
	// read from undo buffer
	u := (s.ur + 1) & undoMask
	if u != s.uh {
		s.ur = u
		return s.undo[s.ur].r
	}
again:
	if s.err != nil {
		return EOF
	}
	for s.r+utf8.UTFMax > s.w && !utf8.FullRune(s.buf[s.r:s.w]) && s.ioErr == nil {
		s.fill()
	}

	pos := Pos(s.offs + s.r)

	// Common case: ASCII
	// Invariant: s.buf[s.w] == utf8.RuneSelf
	if b := s.buf[s.r]; b < utf8.RuneSelf {
		s.r++
		switch b {
		case 0:
			s.fail(pos, "invalid NUL character")
			return EOF
		case '\r':
			if s.r == s.w && s.ioErr == nil {
				s.fill()
			}
			if s.buf[s.r] == '\n' {
				s.r++
			}
			b = '\n'
			fallthrough
		case '\n':
			_ = s.f.AddLine(Pos(s.offs + s.r))
		}
		s.pushUndo(pos, rune(b))
		return rune(b)
	}

	// EOF
	if s.r == s.w {
		if s.undo[s.ur].r != EOF {
			s.pushUndo(pos, EOF)
		}
		if s.ioErr != io.EOF {
			s.fail(pos, "I/O error: "+s.ioErr.Error())
		}
		return EOF
	}

	// UTF8
	r, w := utf8.DecodeRune(s.buf[s.r:s.w])
	if r == utf8.RuneError && w == 1 {
		r = rune(s.buf[s.r])
	}
	s.r += w

	// BOM only allowed as first rune in the file
	const BOM = 0xfeff
	if r == BOM {
		if pos > 0 {
			s.fail(pos, "invalid BOM in the middle of the file")
			return EOF
		}
		goto again
	}

	s.pushUndo(pos, r)
	return r
}

func (s *reader) fail(p Pos, msg string) {
	if s.err == nil {
		s.err = &Error{Kind: ErrLex, Msg: msg, Pos: s.f.Position(p)}
	}
}

func (s *reader) pushUndo(p Pos, r rune) {
	s.ur = s.uh
	s.undo[s.uh] = undo{p, r}
	s.uh = (s.uh + 1) & undoMask
	s.undo[s.uh] = undo{-1, utf8.RuneSelf}
}

// backup reverts the last call to next. Backing up beyond the start of the
// input fails silently.
//
func (s *reader) backup() {
	if s.undo[s.ur].p == -1 {
		return
	}
	s.ur = (s.ur - 1) & undoMask
}

// pos returns the byte offset of the last rune returned by next, or -1 if no
// input has been read yet.
//
func (s *reader) pos() Pos {
	return s.undo[s.ur].p
}

// offset returns the byte offset of the next rune to be read.
//
func (s *reader) offset() Pos {
	u := (s.ur + 1) & undoMask
	if u != s.uh {
		return s.undo[u].p
	}
	return Pos(s.offs + s.r)
}

func (s *reader) fill() {
	// slide buffer contents
	if n := s.r; n > 0 {
		copy(s.buf[:], s.buf[n:s.w])
		s.offs += n
		s.w -= n
		s.r = 0
	}

	for i := 0; i < 100; i++ {
		n, err := s.f.Read(s.buf[s.w : len(s.buf)-1]) // -1 to leave space for sentinel
		s.w += n
		if n > 0 || err != nil {
			s.buf[s.w] = utf8.RuneSelf // sentinel
			if err != nil {
				s.ioErr = err
			}
			return
		}
	}

	s.ioErr = io.ErrNoProgress
}
