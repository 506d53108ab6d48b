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
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Punctuation is the set of NEXUS punctuation characters.
//
const Punctuation = "()[]{}/\\,;:=*'\"`+-<>"

var fold = cases.Fold()

// EqualFold reports whether a and b are equal under Unicode case folding.
//
func EqualFold(a, b string) bool {
	if a == b {
		return true
	}
	return fold.String(a) == fold.String(b)
}

// Request holds the one-shot lexing options for a single call to
// Tokenizer.Next. The zero value requests default NEXUS tokenization.
//
type Request struct {
	SaveCommandComments  bool // return [&...] comments as tokens
	Parenthetical        bool // read (...) as a single token
	CurlyBracketed       bool // read {...} as a single token
	DoubleQuoted         bool // read "..." as a single token, quotes stripped
	SingleChar           bool // stop after the first character
	NewlineIsToken       bool // return end of line as a token
	TildeIsPunctuation   bool // treat '~' as punctuation
	HyphenNotPunctuation bool // treat '-' as an ordinary character
	Special              rune // extra punctuation character, 0 for none
}

// IsPunct reports whether r is a punctuation character under req.
//
func (req Request) IsPunct(r rune) bool {
	switch {
	case r == '-':
		return !req.HyphenNotPunctuation
	case r == '~':
		return req.TildeIsPunctuation
	case req.Special != 0 && r == req.Special:
		return true
	}
	return r < utf8.RuneSelf && strings.IndexByte(Punctuation, byte(r)) >= 0
}

// IsWhitespace reports whether r is a NEXUS whitespace character.
//
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// Token is a single NEXUS token.
//
type Token struct {
	Text   string
	Pos    Position
	Punct  bool // single punctuation character
	Quoted bool // read as a single-quoted NEXUS word
	EOL    bool // newline returned under Request.NewlineIsToken
	EOF    bool
}

// Equals reports whether the token text equals s, ignoring case.
//
func (t Token) Equals(s string) bool {
	return EqualFold(t.Text, s)
}

// Is reports whether the token text equals s exactly.
//
func (t Token) Is(s string) bool {
	return t.Text == s
}

// Abbreviation reports whether the token is a valid abbreviation of s. The
// uppercase prefix of s is the shortest allowed abbreviation: "DIMensions"
// accepts "dim", "DIME" and "dimensions" but not "di". Comparison ignores
// case.
//
func (t Token) Abbreviation(s string) bool {
	min := 0
	for min < len(s) && s[min] >= 'A' && s[min] <= 'Z' {
		min++
	}
	n := len(t.Text)
	if n < min || n > len(s) {
		return false
	}
	return EqualFold(t.Text, s[:n])
}

// Begins reports whether the token text is a prefix of s, ignoring case.
//
func (t Token) Begins(s string) bool {
	n := len(t.Text)
	if n == 0 || n > len(s) {
		return false
	}
	return EqualFold(t.Text, s[:n])
}

// IsPunct reports whether the token is the punctuation character r.
//
func (t Token) IsPunct(r rune) bool {
	return t.Punct && len(t.Text) == 1 && rune(t.Text[0]) == r
}

// IsPlusMinus reports whether the token is a lone '+' or '-'.
//
func (t Token) IsPlusMinus() bool {
	return t.IsPunct('+') || t.IsPunct('-')
}

// IsWhitespace reports whether the token is a single whitespace character.
//
func (t Token) IsWhitespace() bool {
	return len(t.Text) == 1 && IsWhitespace(rune(t.Text[0]))
}

// StripWhitespace returns the token text with all blanks removed.
//
func (t Token) StripWhitespace() string {
	return strings.Map(func(r rune) rune {
		if IsWhitespace(r) {
			return -1
		}
		return r
	}, t.Text)
}

// BlanksToUnderscores returns the token text with spaces turned back into
// underscores.
//
func (t Token) BlanksToUnderscores() string {
	return strings.ReplaceAll(t.Text, " ", "_")
}

func (t Token) String() string {
	switch {
	case t.EOF:
		return "end of file"
	case t.EOL:
		return "end of line"
	}
	return strconv.Quote(t.Text)
}

// Tokenizer splits a NEXUS File into tokens.
//
// Lexing rules depend on the context the caller is in, so every call to Next
// takes a Request describing how the next token should be read. A Tokenizer is
// not safe for concurrent use.
//
type Tokenizer struct {
	rd    reader
	buf   []byte
	back  *Token
	hooks Hooks
}

// NewTokenizer returns a new Tokenizer reading from f. Output comments and
// skipped commands are reported to hooks, which may be nil.
//
func NewTokenizer(f *File, hooks Hooks) *Tokenizer {
	if hooks == nil {
		hooks = NopHooks{}
	}
	t := &Tokenizer{hooks: hooks}
	t.rd.init(f)
	return t
}

// File returns the File used as input for the Tokenizer.
//
func (t *Tokenizer) File() *File {
	return t.rd.f
}

// Hooks returns the hooks notified by the Tokenizer.
//
func (t *Tokenizer) Hooks() Hooks {
	return t.hooks
}

// Position returns the Position for pos.
//
func (t *Tokenizer) Position(pos Pos) Position {
	return t.rd.f.Position(pos)
}

// Unread pushes tok back. The next call to Next returns tok regardless of the
// request passed. Only one token can be pushed back.
//
func (t *Tokenizer) Unread(tok Token) {
	t.back = &tok
}

// SkippingCommand notifies the hooks that a block is skipping the command
// named by tok.
//
func (t *Tokenizer) SkippingCommand(tok Token) {
	t.hooks.SkippingCommand(tok.Text)
}

func (t *Tokenizer) errorf(kind error, p Pos, format string, args ...interface{}) *Error {
	return Errorf(kind, t.rd.f.Position(p), format, args...)
}

// next returns the next rune and its position.
//
func (t *Tokenizer) next() (rune, Pos) {
	r := t.rd.next()
	return r, t.rd.pos()
}

// Scan returns the next token read with default options.
//
func (t *Tokenizer) Scan() (Token, error) {
	return t.Next(Request{})
}

// Next returns the next token, read according to req.
//
// At end of input, Next returns a token with EOF set and a nil error. Lexical
// errors (unterminated comments or quotes, I/O errors) are returned as an
// *Error of kind ErrLex.
//
func (t *Tokenizer) Next(req Request) (Token, error) {
	if t.back != nil {
		tok := *t.back
		t.back = nil
		return tok, nil
	}

	t.buf = t.buf[:0]
	var tok Token
	start := Pos(-1)

	for {
		if req.SingleChar && len(t.buf) > 0 {
			break
		}
		r, p := t.next()
		if r == EOF {
			if t.rd.err != nil {
				return Token{}, t.rd.err
			}
			if len(t.buf) == 0 && !tok.Quoted {
				tok.EOF = true
				start = t.rd.offset()
			}
			break
		}
		if !start.IsValid() && !IsWhitespace(r) && r != '[' {
			start = p
		}

		switch {
		case r == '\n' && req.NewlineIsToken:
			if len(t.buf) > 0 {
				t.rd.backup()
			} else {
				tok.EOL = true
				t.buf = append(t.buf, '\n')
				start = p
			}
			return t.emit(tok, start), nil

		case IsWhitespace(r):
			if len(t.buf) > 0 {
				return t.emit(tok, start), nil
			}

		case r == '_':
			t.buf = append(t.buf, ' ')

		case r == '[':
			cmd, err := t.comment(p, req.SaveCommandComments && len(t.buf) == 0)
			if err != nil {
				return Token{}, err
			}
			if cmd {
				start = p
			}
			if len(t.buf) > 0 {
				return t.emit(tok, start), nil
			}

		case r == '(' && req.Parenthetical:
			if len(t.buf) > 0 {
				t.rd.backup()
				return t.emit(tok, start), nil
			}
			if err := t.nested(p, '(', ')'); err != nil {
				return Token{}, err
			}
			return t.emit(tok, start), nil

		case r == '{' && req.CurlyBracketed:
			if len(t.buf) > 0 {
				t.rd.backup()
				return t.emit(tok, start), nil
			}
			if err := t.nested(p, '{', '}'); err != nil {
				return Token{}, err
			}
			return t.emit(tok, start), nil

		case r == '"' && req.DoubleQuoted:
			if len(t.buf) > 0 {
				t.rd.backup()
				return t.emit(tok, start), nil
			}
			if err := t.doubleQuoted(p); err != nil {
				return Token{}, err
			}
			return t.emit(tok, start), nil

		case r == '\'':
			if len(t.buf) > 0 {
				// a quote inside a word must be doubled
				if n, _ := t.next(); n != '\'' {
					return Token{}, t.errorf(ErrLex, p, "expecting second single quote character")
				}
				t.buf = append(t.buf, '\'')
				continue
			}
			tok.Quoted = true
			if err := t.quoted(p); err != nil {
				return Token{}, err
			}
			return t.emit(tok, start), nil

		case req.IsPunct(r):
			if len(t.buf) > 0 {
				t.rd.backup()
				return t.emit(tok, start), nil
			}
			tok.Punct = true
			t.buf = utf8.AppendRune(t.buf, r)
			return t.emit(tok, start), nil

		default:
			t.buf = utf8.AppendRune(t.buf, r)
		}
	}
	return t.emit(tok, start), nil
}

func (t *Tokenizer) emit(tok Token, start Pos) Token {
	tok.Text = string(t.buf)
	tok.Pos = t.rd.f.Position(start)
	return tok
}

// comment reads the rest of a comment, the opening '[' having been read.
// Output comments are sent to the hooks. If save is true and the comment is a
// command comment, its text (including the leading '&') is appended to the
// token buffer and comment returns true.
//
func (t *Tokenizer) comment(open Pos, save bool) (bool, error) {
	r, _ := t.next()
	if r == EOF {
		return false, t.unterminated(open, "comment")
	}
	var out []byte
	printing, command := r == '!', r == '&' && save
	if command {
		t.buf = append(t.buf, '&')
	} else if !printing {
		t.rd.backup()
	}
	for level := 1; ; {
		r, _ = t.next()
		switch r {
		case EOF:
			return false, t.unterminated(open, "comment")
		case '[':
			level++
		case ']':
			level--
		}
		if level == 0 {
			break
		}
		switch {
		case printing:
			out = utf8.AppendRune(out, r)
		case command:
			t.buf = utf8.AppendRune(t.buf, r)
		}
	}
	if printing {
		t.hooks.OutputComment(string(out))
	}
	return command, nil
}

// nested reads a balanced group, delimiters included. The opening delimiter
// has already been read.
//
func (t *Tokenizer) nested(open Pos, left, right rune) error {
	t.buf = utf8.AppendRune(t.buf, left)
	for level := 1; level > 0; {
		r, _ := t.next()
		switch r {
		case EOF:
			return t.unterminated(open, string(left)+"...")
		case left:
			level++
		case right:
			level--
		}
		t.buf = utf8.AppendRune(t.buf, r)
	}
	return nil
}

func (t *Tokenizer) doubleQuoted(open Pos) error {
	for {
		r, _ := t.next()
		switch r {
		case EOF:
			return t.unterminated(open, "double-quoted string")
		case '"':
			return nil
		case '_':
			r = ' '
		}
		t.buf = utf8.AppendRune(t.buf, r)
	}
}

// quoted reads the rest of a single-quoted word. A doubled quote stands for a
// literal quote.
//
func (t *Tokenizer) quoted(open Pos) error {
	for {
		r, _ := t.next()
		switch r {
		case EOF:
			return t.unterminated(open, "quoted word")
		case '\'':
			if n, _ := t.next(); n != '\'' {
				if n != EOF {
					t.rd.backup()
				}
				return nil
			}
		case '_':
			r = ' '
		}
		t.buf = utf8.AppendRune(t.buf, r)
	}
}

func (t *Tokenizer) unterminated(open Pos, what string) error {
	if t.rd.err != nil {
		return t.rd.err
	}
	return t.errorf(ErrLex, open, "unterminated %s", what)
}

// PeekRune skips blanks and comments and returns the next significant rune
// without consuming it. If newlineIsToken is true, a newline is significant.
// At end of input, PeekRune returns EOF.
//
func (t *Tokenizer) PeekRune(newlineIsToken bool) (rune, error) {
	if t.back != nil {
		if t.back.EOF {
			return EOF, nil
		}
		r, _ := utf8.DecodeRuneInString(t.back.Text)
		return r, nil
	}
	for {
		r, p := t.next()
		switch {
		case r == EOF:
			if t.rd.err != nil {
				return EOF, t.rd.err
			}
			return EOF, nil
		case r == '\n' && newlineIsToken:
			t.rd.backup()
			return r, nil
		case IsWhitespace(r):
		case r == '[':
			if _, err := t.comment(p, false); err != nil {
				return EOF, err
			}
		default:
			t.rd.backup()
			return r, nil
		}
	}
}

// Expect reads the next token and checks that it equals s. The error message
// mentions what in the form "expecting s after what".
//
func (t *Tokenizer) Expect(s string, what string) (Token, error) {
	tok, err := t.Scan()
	if err != nil {
		return tok, err
	}
	if !tok.Equals(s) {
		return tok, Errorf(ErrSyntax, tok.Pos, "expecting %q %s, found %s instead", s, what, tok)
	}
	return tok, nil
}

// ReadInt reads the next token as a decimal integer.
//
func (t *Tokenizer) ReadInt(what string) (Token, int, error) {
	tok, err := t.Scan()
	if err != nil {
		return tok, 0, err
	}
	if tok.EOF {
		return tok, 0, Errorf(ErrUnexpectedEOF, tok.Pos, "unexpected end of file reading %s", what)
	}
	n, err := strconv.Atoi(tok.Text)
	if err != nil {
		return tok, 0, Errorf(ErrSyntax, tok.Pos, "%s must be an integer, found %s", what, tok)
	}
	return tok, n, nil
}

// SkipToSemicolon skips tokens up to and including the next ';'.
//
func (t *Tokenizer) SkipToSemicolon() error {
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		if tok.EOF {
			return Errorf(ErrUnexpectedEOF, tok.Pos, "unexpected end of file")
		}
		if tok.IsPunct(';') {
			return nil
		}
	}
}

// Quote returns s as a NEXUS word. Words holding blanks, underscores or
// punctuation are single-quoted, with embedded quotes doubled.
//
func Quote(s string) string {
	if s != "" && !strings.ContainsAny(s, Punctuation+" \t\n_") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
