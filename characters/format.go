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

package characters

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/discrete"
)

// DataType is the value of the FORMAT DATATYPE option.
//
type DataType int

// Supported data types.
//
const (
	Standard DataType = iota
	DNA
	RNA
	Nucleotide
	Protein
	Continuous
)

var dataTypeNames = [...]string{
	Standard:   "STANDARD",
	DNA:        "DNA",
	RNA:        "RNA",
	Nucleotide: "NUCLEOTIDE",
	Protein:    "PROTEIN",
	Continuous: "CONTINUOUS",
}

func (d DataType) String() string {
	if d < 0 || int(d) >= len(dataTypeNames) {
		return "DataType(" + strconv.Itoa(int(d)) + ")"
	}
	return dataTypeNames[d]
}

// ParseDataType returns the DataType named s, ignoring case.
//
func ParseDataType(s string) (DataType, bool) {
	for i, n := range dataTypeNames {
		if nexus.EqualFold(s, n) {
			return DataType(i), true
		}
	}
	return Standard, false
}

// Format holds the settings of the FORMAT command.
//
type Format struct {
	DataType    DataType
	RespectCase bool
	Missing     rune
	Gap         rune // 0 if unset
	MatchChar   rune // 0 if unset
	Symbols     string
	Equates     map[string]string
	Labels      bool
	Transpose   bool
	Interleave  bool
	Tokens      bool
}

func defaultFormat() Format {
	f := Format{
		Missing: '?',
		Labels:  true,
	}
	f.resetSymbols()
	return f
}

var nucleotideEquates = map[string]string{
	"R": "{AG}",
	"Y": "{CT}",
	"M": "{AC}",
	"K": "{GT}",
	"S": "{CG}",
	"W": "{AT}",
	"H": "{ACT}",
	"B": "{CGT}",
	"V": "{ACG}",
	"D": "{AGT}",
	"N": "{ACGT}",
	"X": "{ACGT}",
}

// resetSymbols restores the symbols and equates predefined for f.DataType.
//
func (f *Format) resetSymbols() {
	f.Equates = make(map[string]string)
	switch f.DataType {
	case DNA, Nucleotide:
		f.Symbols = "ACGT"
	case RNA:
		f.Symbols = "ACGU"
	case Protein:
		f.Symbols = "ACDEFGHIKLMNPQRSTVWY*"
		f.Equates["B"] = "{DN}"
		f.Equates["Z"] = "{EQ}"
		return
	case Continuous:
		f.Symbols = ""
		return
	default:
		f.Symbols = "01"
		return
	}
	for k, v := range nucleotideEquates {
		f.Equates[k] = v
	}
	if f.DataType == RNA {
		for k, v := range f.Equates {
			f.Equates[k] = strings.ReplaceAll(v, "T", "U")
		}
	}
}

// equals compares two symbols according to RESPECTCASE.
//
func (f *Format) equals(a, b string) bool {
	if f.RespectCase {
		return a == b
	}
	return nexus.EqualFold(a, b)
}

// SymbolIndex returns the position of r in the symbols list, or -1.
//
func (f *Format) SymbolIndex(r rune) int {
	i := 0
	for _, s := range f.Symbols {
		if s == r || f.equals(string(s), string(r)) {
			return i
		}
		i++
	}
	return -1
}

// Equate returns the expansion of the equate macro s.
//
func (f *Format) Equate(s string) (string, bool) {
	if v, ok := f.Equates[s]; ok {
		return v, true
	}
	if f.RespectCase {
		return "", false
	}
	for k, v := range f.Equates {
		if nexus.EqualFold(k, s) {
			return v, true
		}
	}
	return "", false
}

func (b *Block) readFormat(t *nexus.Tokenizer) error {
	f := &b.format
	var (
		optionSeen bool // any option other than DATATYPE
		symbolSeen bool // MISSING, GAP, MATCHCHAR or SYMBOLS
	)
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		switch {
		case tok.EOF:
			return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in FORMAT command")

		case tok.IsPunct(';'):
			if f.DataType == Continuous && !f.Tokens {
				return nexus.Errorf(nexus.ErrFormatOrder, tok.Pos, "TOKENS is required for continuous data")
			}
			return nil

		case tok.Equals("DATATYPE"):
			v, err := readValue(t, "DATATYPE")
			if err != nil {
				return err
			}
			dt, ok := ParseDataType(v.Text)
			if !ok {
				return nexus.Errorf(nexus.ErrSyntax, v.Pos, "%s is not a valid DATATYPE within a %s block", v, b.ID())
			}
			if optionSeen && dt != Standard {
				return nexus.Errorf(nexus.ErrFormatOrder, tok.Pos, "DATATYPE must be specified first in FORMAT command")
			}
			f.DataType = dt
			f.resetSymbols()
			if dt == Continuous {
				f.Tokens = true
			}

		case tok.Equals("RESPECTCASE"):
			if symbolSeen {
				return nexus.Errorf(nexus.ErrFormatOrder, tok.Pos, "RESPECTCASE must be specified before MISSING, GAP, SYMBOLS, and MATCHCHAR in FORMAT command")
			}
			optionSeen = true
			f.RespectCase = true

		case tok.Equals("MISSING"), tok.Equals("GAP"), tok.Equals("MATCHCHAR"):
			r, err := b.readFormatChar(t, tok)
			if err != nil {
				return err
			}
			switch {
			case tok.Equals("MISSING"):
				f.Missing = r
			case tok.Equals("GAP"):
				f.Gap = r
			default:
				f.MatchChar = r
			}
			optionSeen, symbolSeen = true, true

		case tok.Equals("SYMBOLS"):
			if err = b.readSymbols(t, tok); err != nil {
				return err
			}
			optionSeen, symbolSeen = true, true

		case tok.Equals("EQUATE"):
			if err = b.readEquate(t, tok); err != nil {
				return err
			}
			optionSeen = true

		case tok.Equals("LABELS"), tok.Equals("NOLABELS"):
			f.Labels = tok.Equals("LABELS")
			optionSeen = true

		case tok.Equals("TRANSPOSE"):
			f.Transpose = true
			optionSeen = true

		case tok.Equals("INTERLEAVE"):
			f.Interleave = true
			optionSeen = true

		case tok.Equals("TOKENS"), tok.Equals("NOTOKENS"):
			if tok.Equals("NOTOKENS") && f.DataType == Continuous {
				return nexus.Errorf(nexus.ErrFormatOrder, tok.Pos, "NOTOKENS is not allowed for continuous data")
			}
			f.Tokens = tok.Equals("TOKENS")
			optionSeen = true

		case tok.Equals("ITEMS"):
			v, err := readValue(t, "ITEMS")
			if err != nil {
				return err
			}
			if !v.Equals("STATES") {
				return nexus.Errorf(nexus.ErrSyntax, v.Pos, "ITEMS=%s is not supported, only ITEMS=STATES is", v.Text)
			}
			optionSeen = true

		case tok.Equals("STATESFORMAT"):
			v, err := readValue(t, "STATESFORMAT")
			if err != nil {
				return err
			}
			if !v.Equals("STATESPRESENT") {
				return nexus.Errorf(nexus.ErrSyntax, v.Pos, "STATESFORMAT=%s is not supported, only STATESFORMAT=STATESPRESENT is", v.Text)
			}
			optionSeen = true

		default:
			optionSeen = true
		}
	}
}

// readValue reads "= value".
//
func readValue(t *nexus.Tokenizer, name string) (nexus.Token, error) {
	if _, err := t.Expect("=", "after keyword "+name); err != nil {
		return nexus.Token{}, err
	}
	v, err := t.Scan()
	if err != nil {
		return v, err
	}
	if v.EOF {
		return v, nexus.Errorf(nexus.ErrUnexpectedEOF, v.Pos, "unexpected end of file reading value of %s", name)
	}
	return v, nil
}

// readFormatChar reads the value of MISSING, GAP or MATCHCHAR.
//
func (b *Block) readFormatChar(t *nexus.Tokenizer, kw nexus.Token) (rune, error) {
	name := strings.ToUpper(kw.Text)
	v, err := readValue(t, name)
	if err != nil {
		return 0, err
	}
	if utf8.RuneCountInString(v.Text) != 1 {
		return 0, nexus.Errorf(nexus.ErrSymbol, v.Pos, "%s symbol should be a single character, but %s was specified", name, v)
	}
	if v.Punct && !v.IsPlusMinus() {
		return 0, nexus.Errorf(nexus.ErrSymbol, v.Pos, "%s symbol specified cannot be a punctuation token (%s was specified)", name, v)
	}
	r, _ := utf8.DecodeRuneInString(v.Text)
	if nexus.IsWhitespace(r) {
		return 0, nexus.Errorf(nexus.ErrSymbol, v.Pos, "%s symbol specified cannot be a whitespace character", name)
	}
	return r, nil
}

func (b *Block) readSymbols(t *nexus.Tokenizer, kw nexus.Token) error {
	f := &b.format
	if f.DataType == Continuous {
		return nexus.Errorf(nexus.ErrSyntax, kw.Pos, "SYMBOLS subcommand not allowed for DATATYPE=CONTINUOUS")
	}
	if _, err := t.Expect("=", "after keyword SYMBOLS"); err != nil {
		return err
	}
	v, err := t.Next(nexus.Request{DoubleQuoted: true})
	if err != nil {
		return err
	}
	if v.EOF {
		return nexus.Errorf(nexus.ErrUnexpectedEOF, v.Pos, "unexpected end of file reading SYMBOLS list")
	}
	syms := v.StripWhitespace()

	base := f.Symbols
	if f.DataType == Standard {
		base = ""
	}
	if n := utf8.RuneCountInString(base) + utf8.RuneCountInString(syms); n > discrete.MaxStates {
		return nexus.Errorf(nexus.ErrCapacity, v.Pos, "too many symbols specified (%d), the maximum is %d", n, discrete.MaxStates)
	}
	seen := base
	for _, r := range syms {
		for _, s := range seen {
			if f.equals(string(r), string(s)) {
				return nexus.Errorf(nexus.ErrSymbol, v.Pos, "the character %c defined in SYMBOLS has already been predefined or defined twice", r)
			}
		}
		seen += string(r)
	}
	f.Symbols = seen
	return nil
}

func (b *Block) readEquate(t *nexus.Tokenizer, kw nexus.Token) error {
	f := &b.format
	if _, err := t.Expect("=", "after keyword EQUATE"); err != nil {
		return err
	}
	if _, err := t.Expect(`"`, "after keyword EQUATE and equals sign"); err != nil {
		return err
	}
	for {
		key, err := t.Scan()
		if err != nil {
			return err
		}
		switch {
		case key.EOF:
			return nexus.Errorf(nexus.ErrUnexpectedEOF, key.Pos, "unexpected end of file in EQUATE list")
		case key.IsPunct('"'):
			return nil
		}
		if utf8.RuneCountInString(key.Text) != 1 {
			return nexus.Errorf(nexus.ErrSymbol, key.Pos, "expecting single-character EQUATE symbol, found %s instead", key)
		}
		r, _ := utf8.DecodeRuneInString(key.Text)
		switch {
		case r == '^':
			return nexus.Errorf(nexus.ErrSymbol, key.Pos, "EQUATE symbol specified (^) is not allowed")
		case key.Punct && !key.IsPlusMinus():
			return nexus.Errorf(nexus.ErrSymbol, key.Pos, "EQUATE symbol specified (%s) is not allowed, must not be a punctuation character", key)
		case r == f.Missing, r == f.MatchChar, f.Gap != 0 && r == f.Gap:
			return nexus.Errorf(nexus.ErrSymbol, key.Pos, "EQUATE symbol specified (%s) is not allowed, must not be the missing, gap, or matchchar symbol", key)
		case f.SymbolIndex(r) >= 0:
			return nexus.Errorf(nexus.ErrSymbol, key.Pos, "EQUATE symbol specified (%s) is not allowed, must not be a state symbol", key)
		}
		if _, err = t.Expect("=", "in EQUATE definition"); err != nil {
			return err
		}
		v, err := t.Next(nexus.Request{Parenthetical: true, CurlyBracketed: true})
		if err != nil {
			return err
		}
		if v.EOF {
			return nexus.Errorf(nexus.ErrUnexpectedEOF, v.Pos, "unexpected end of file in EQUATE definition")
		}
		f.Equates[key.Text] = v.Text
	}
}
