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
	"unicode/utf8"

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/discrete"
)

// parseCell stores the cell read as tok for row i, original column k.
// Eliminated columns are read but not stored.
//
func (b *Block) parseCell(t *nexus.Tokenizer, tok nexus.Token, i, k int) error {
	j, ok := b.charPos.Current(k)
	if !ok {
		if b.format.Tokens && (tok.IsPunct('(') || tok.IsPunct('{')) {
			// consume the group
			return b.parseTokenGroup(t, tok, -1, -1)
		}
		return nil
	}
	text := tok.Text
	if !tok.Quoted {
		if v, ok := b.format.Equate(text); ok {
			text = v
		}
	}
	if text == "" {
		return nexus.Errorf(nexus.ErrSymbol, tok.Pos, "empty state specified for taxon %d, character %d", i+1, k+1)
	}
	if utf8.RuneCountInString(text) == 1 {
		r, _ := utf8.DecodeRuneInString(text)
		if done, err := b.parseSpecial(tok, r, i, j); done || err != nil {
			return err
		}
	}
	if b.format.Tokens {
		if tok.IsPunct('(') || tok.IsPunct('{') {
			return b.parseTokenGroup(t, tok, i, j)
		}
		s, err := b.tokenState(tok, text, j)
		if err != nil {
			return err
		}
		b.matrix.SetState(i, j, s)
		return nil
	}
	if utf8.RuneCountInString(text) == 1 {
		r, _ := utf8.DecodeRuneInString(text)
		s := b.format.SymbolIndex(r)
		if s < 0 {
			return nexus.Errorf(nexus.ErrSymbol, tok.Pos, "state specified (%s) for taxon %d, character %d, not found in list of valid symbols", tok, i+1, k+1)
		}
		b.matrix.SetState(i, j, s)
		return nil
	}
	return b.parseStateSet(tok, text, i, j)
}

// parseSpecial handles the missing, gap and match characters.
//
func (b *Block) parseSpecial(tok nexus.Token, r rune, i, j int) (bool, error) {
	f := &b.format
	switch {
	case r == f.Missing:
		b.matrix.SetMissing(i, j)
	case f.MatchChar != 0 && r == f.MatchChar:
		if i == 0 {
			return true, nexus.Errorf(nexus.ErrSymbol, tok.Pos, "match character cannot be used in the first row of the matrix")
		}
		b.matrix.CopyStatesFromFirstTaxon(i, j)
	case f.Gap != 0 && r == f.Gap:
		b.matrix.SetGap(i, j)
	default:
		return false, nil
	}
	return true, nil
}

func (b *Block) addState(tok nexus.Token, i, j, s int) error {
	d := b.matrix.Datum(i, j)
	if d.HasState(s) {
		return nil
	}
	if d.NumStates() >= discrete.MaxStates {
		return nexus.Errorf(nexus.ErrCapacity, tok.Pos, "too many states in cell (maximum is %d)", discrete.MaxStates)
	}
	d.AddState(s)
	return nil
}

// parseStateSet parses a set of symbols in parentheses (polymorphism) or
// braces (uncertainty). A '~' between two symbols stands for all symbols in
// between.
//
func (b *Block) parseStateSet(tok nexus.Token, text string, i, j int) error {
	var closer rune
	switch text[0] {
	case '(':
		closer = ')'
	case '{':
		closer = '}'
	default:
		return nexus.Errorf(nexus.ErrSymbol, tok.Pos, "invalid state specification %s", tok)
	}
	rs := []rune(text)
	if rs[len(rs)-1] != closer {
		return nexus.Errorf(nexus.ErrSymbol, tok.Pos, "invalid state specification %s", tok)
	}
	var inner []rune
	for _, r := range rs[1 : len(rs)-1] {
		if !nexus.IsWhitespace(r) {
			inner = append(inner, r)
		}
	}
	if len(inner) == 0 {
		return nexus.Errorf(nexus.ErrSymbol, tok.Pos, "empty state set %s", tok)
	}
	if inner[0] == '~' || inner[len(inner)-1] == '~' {
		return nexus.Errorf(nexus.ErrRange, tok.Pos, "%s does not represent a valid range of states", tok)
	}

	prev, tilde := -1, false
	for _, r := range inner {
		if r == '~' {
			if tilde {
				return nexus.Errorf(nexus.ErrRange, tok.Pos, "%s does not represent a valid range of states", tok)
			}
			tilde = true
			continue
		}
		s := b.format.SymbolIndex(r)
		if s < 0 {
			return nexus.Errorf(nexus.ErrSymbol, tok.Pos, "state specified (%c) for taxon %d not found in list of valid symbols", r, i+1)
		}
		first := s
		if tilde {
			if s <= prev {
				return nexus.Errorf(nexus.ErrRange, tok.Pos, "%s does not represent a valid range of states", tok)
			}
			first = prev + 1
			tilde = false
		}
		for ; first <= s; first++ {
			if err := b.addState(tok, i, j, first); err != nil {
				return err
			}
		}
		prev = s
	}
	if closer == ')' {
		b.matrix.SetPolymorphic(i, j, true)
	}
	return nil
}

// parseTokenGroup reads the state tokens of a polymorphic or uncertain cell
// in TOKENS mode, the opening delimiter being open. If j < 0, the tokens are
// read and discarded.
//
func (b *Block) parseTokenGroup(t *nexus.Tokenizer, open nexus.Token, i, j int) error {
	closer := ')'
	if open.IsPunct('{') {
		closer = '}'
	}
	prev, tilde := -1, false
	for {
		tok, err := t.Next(nexus.Request{TildeIsPunctuation: true})
		if err != nil {
			return err
		}
		switch {
		case tok.EOF:
			return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in MATRIX command")
		case tok.IsPunct(closer):
			if tilde {
				return nexus.Errorf(nexus.ErrRange, tok.Pos, "range of states still being specified when '%c' encountered", closer)
			}
			if closer == ')' && j >= 0 {
				b.matrix.SetPolymorphic(i, j, true)
			}
			return nil
		case tok.IsPunct('~'):
			if prev < 0 || tilde {
				return nexus.Errorf(nexus.ErrRange, tok.Pos, "tilde character ('~') cannot precede token indicating beginning of range")
			}
			tilde = true
			continue
		case tok.Punct:
			return nexus.Errorf(nexus.ErrSymbol, tok.Pos, "unexpected %s in state set", tok)
		}
		if j < 0 {
			// eliminated column: only check the structure
			prev = 0
			tilde = false
			continue
		}
		s, err := b.tokenState(tok, tok.Text, j)
		if err != nil {
			return err
		}
		first := s
		if tilde {
			if s <= prev {
				return nexus.Errorf(nexus.ErrRange, tok.Pos, "last state in specified range (%s) must be greater than the first", tok)
			}
			first = prev + 1
			tilde = false
		}
		for ; first <= s; first++ {
			if err = b.addState(tok, i, j, first); err != nil {
				return err
			}
		}
		prev = s
	}
}

// tokenState returns the state index of the state label text for character
// j. Characters without declared states learn new labels on first use.
//
func (b *Block) tokenState(tok nexus.Token, text string, j int) (int, error) {
	if text == "" {
		return 0, nexus.Errorf(nexus.ErrSymbol, tok.Pos, "empty state specified for character %d", b.OrigCharIndex(j)+1)
	}
	states := b.charStates[j]
	for k, s := range states {
		if b.format.equals(s, text) {
			return k, nil
		}
	}
	if b.fixed[j] {
		return 0, nexus.Errorf(nexus.ErrSymbol, tok.Pos, "character state %s not defined for character %d", tok, b.OrigCharIndex(j)+1)
	}
	if len(states) >= discrete.MaxStates {
		return 0, nexus.Errorf(nexus.ErrCapacity, tok.Pos, "too many states for character %d (maximum is %d)", b.OrigCharIndex(j)+1, discrete.MaxStates)
	}
	b.charStates[j] = append(states, text)
	return len(states), nil
}
