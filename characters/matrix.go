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
	"github.com/db47h/nexus"
	"github.com/db47h/nexus/discrete"
)

func (b *Block) readMatrix(t *nexus.Tokenizer, cmd nexus.Token) error {
	if b.ntax == 0 {
		return nexus.Errorf(nexus.ErrFormatOrder, cmd.Pos, "must precede %s block with a TAXA block or specify NEWTAXA and NTAX in the DIMENSIONS command", b.ID())
	}
	if b.ncharTotal == 0 {
		return nexus.Errorf(nexus.ErrFormatOrder, cmd.Pos, "NCHAR must be specified in the DIMENSIONS command before the MATRIX command")
	}
	if b.format.DataType == Continuous {
		return nexus.Errorf(nexus.ErrSyntax, cmd.Pos, "continuous character matrices are not supported")
	}
	if b.ntaxTotal == 0 {
		b.ntaxTotal = b.taxa.NumTaxonLabels()
	}
	if b.ntaxTotal < b.ntax {
		b.ntaxTotal = b.ntax
	}

	b.matrix = discrete.New(b.ntax, b.nchar)
	b.activeTaxon = make([]bool, b.ntax)
	for i := range b.activeTaxon {
		b.activeTaxon[i] = true
	}
	b.activeChar = make([]bool, b.nchar)
	for j := range b.activeChar {
		b.activeChar[j] = true
	}
	if b.charPos == nil {
		b.buildCharPos()
	}
	b.taxonPos = make(Index, b.ntaxTotal)
	for i := range b.taxonPos {
		b.taxonPos[i] = -1
	}

	var err error
	if b.format.Transpose {
		err = b.readTransposed(t)
	} else {
		err = b.readStd(t)
	}
	if err != nil {
		return err
	}
	if _, err = t.Expect(";", "to terminate the MATRIX command"); err != nil {
		return err
	}
	if b.linker != nil {
		b.linker.SetCallback(b)
	}
	return nil
}

// pageEnd tracks the width of an interleave page. The first line of a page
// sets the width; all other lines must match it.
//
type pageEnd struct {
	end   int
	known bool
}

func (p *pageEnd) check(k int, tok nexus.Token) error {
	if !p.known {
		p.end, p.known = k, true
		return nil
	}
	if k != p.end {
		return nexus.Errorf(nexus.ErrOrdering, tok.Pos, "each line within an interleave page must comprise the same number of characters")
	}
	return nil
}

// readStd reads a matrix with one row per taxon, possibly split in
// interleave pages.
//
func (b *Block) readStd(t *nexus.Tokenizer) error {
	for first, page := 0, 0; ; page++ {
		var pe pageEnd
		for i := 0; i < b.ntax; i++ {
			if err := b.readRowLabel(t, i, page); err != nil {
				return err
			}
			last := b.ncharTotal
			if pe.known {
				last = pe.end
			}
			k, tok, err := b.readLine(t, first, last, func(k int, tok nexus.Token) error {
				return b.parseCell(t, tok, i, k)
			})
			if err != nil {
				return err
			}
			if b.format.Interleave {
				if err = pe.check(k, tok); err != nil {
					return err
				}
			}
			if !b.format.Labels {
				n, err := b.readRepeat(t, i, first, k)
				if err != nil {
					return err
				}
				i += n - 1
			}
		}
		if !b.format.Interleave || pe.end >= b.ncharTotal {
			return nil
		}
		first = pe.end
	}
}

// readTransposed reads a matrix with one row per character.
//
func (b *Block) readTransposed(t *nexus.Tokenizer) error {
	b.transLabels = make([]string, b.ncharTotal)
	for first, page := 0, 0; ; page++ {
		var pe pageEnd
		for k := 0; k < b.ncharTotal; k++ {
			if err := b.readColumnLabel(t, k, page); err != nil {
				return err
			}
			last := b.ntax
			if pe.known {
				last = pe.end
			}
			i, tok, err := b.readLine(t, first, last, func(i int, tok nexus.Token) error {
				if b.taxonPos[i] == -1 {
					b.taxonPos[i] = i
				}
				return b.parseCell(t, tok, i, k)
			})
			if err != nil {
				return err
			}
			if b.format.Interleave {
				if err = pe.check(i, tok); err != nil {
					return err
				}
			}
		}
		b.newchar = false
		if !b.format.Interleave || pe.end >= b.ntax {
			return nil
		}
		first = pe.end
	}
}

// readLine reads cells first to last-1 of a matrix line, calling cell for
// each. In interleaved matrices, a newline ends the line early, except before
// its first cell. readLine returns the index following the last cell read and
// the token that ended the line.
//
func (b *Block) readLine(t *nexus.Tokenizer, first, last int, cell func(int, nexus.Token) error) (int, nexus.Token, error) {
	req := nexus.Request{NewlineIsToken: b.format.Interleave}
	if !b.format.Tokens {
		req.Parenthetical, req.CurlyBracketed, req.SingleChar = true, true, true
	}
	var tok nexus.Token
	k := first
	for ; k < last; k++ {
		var err error
		if tok, err = t.Next(req); err != nil {
			return k, tok, err
		}
		switch {
		case tok.EOL && k == first:
			k--
			continue
		case tok.EOL:
			return k, tok, nil
		case tok.EOF:
			return k, tok, nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in MATRIX command")
		case tok.IsPunct(';'):
			return k, tok, nexus.Errorf(nexus.ErrSyntax, tok.Pos, "unexpected ';' in MATRIX command: data missing for cell %d of line", k+1)
		}
		if err = cell(k, tok); err != nil {
			return k, tok, err
		}
	}
	return k, tok, nil
}

func (b *Block) readRowLabel(t *nexus.Tokenizer, i, page int) error {
	if !b.format.Labels {
		if page == 0 {
			b.taxonPos[i] = i
		}
		return nil
	}
	tok, err := t.Scan()
	if err != nil {
		return err
	}
	switch {
	case tok.EOF:
		return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in MATRIX command")
	case tok.Punct:
		return nexus.Errorf(nexus.ErrLabel, tok.Pos, "expecting taxon label, found %s", tok)
	}

	if page == 0 && b.newtaxa {
		if b.taxa.IsAlreadyDefined(tok.Text) {
			return nexus.Errorf(nexus.ErrLabel, tok.Pos, "data for this taxon (%s) has already been saved", tok.Text)
		}
		b.taxa.AddTaxonLabel(tok.Text)
		b.taxonPos[i] = i
		return nil
	}

	pos, err := b.taxa.FindTaxon(tok.Text)
	if err != nil || pos >= len(b.taxonPos) {
		return nexus.Errorf(nexus.ErrUnresolvedLabel, tok.Pos, "could not find taxon named %s among stored taxon labels", tok)
	}
	if page > 0 {
		if b.taxonPos[pos] != i {
			return nexus.Errorf(nexus.ErrOrdering, tok.Pos, "ordering of taxa must be identical to that in first interleave page")
		}
		return nil
	}
	if b.taxonPos[pos] != -1 {
		return nexus.Errorf(nexus.ErrLabel, tok.Pos, "data for this taxon (%s) has already been saved", tok.Text)
	}
	if pos != i {
		return nexus.Errorf(nexus.ErrOrdering, tok.Pos, "relative order of taxa must be the same in both the TAXA and %s blocks", b.ID())
	}
	b.taxonPos[pos] = i
	return nil
}

func (b *Block) readColumnLabel(t *nexus.Tokenizer, k, page int) error {
	if !b.format.Labels {
		return nil
	}
	tok, err := t.Scan()
	if err != nil {
		return err
	}
	switch {
	case tok.EOF:
		return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in MATRIX command")
	case tok.Punct:
		return nexus.Errorf(nexus.ErrLabel, tok.Pos, "expecting character label, found %s", tok)
	}

	if page > 0 {
		if tok.Text != b.transLabels[k] {
			return nexus.Errorf(nexus.ErrOrdering, tok.Pos, "ordering of characters must be identical to that in first interleave page")
		}
		return nil
	}
	b.transLabels[k] = tok.Text
	j, ok := b.charPos.Current(k)
	if !ok {
		return nil
	}
	if b.newchar {
		for _, l := range b.charLabels {
			if l == tok.Text {
				return nexus.Errorf(nexus.ErrLabel, tok.Pos, "data for this character (%s) has already been saved", tok.Text)
			}
		}
		b.charLabels = append(b.charLabels, tok.Text)
		return nil
	}
	for c, l := range b.charLabels {
		if l == tok.Text {
			if c != j {
				return nexus.Errorf(nexus.ErrOrdering, tok.Pos, "relative order of characters must be the same in the CHARLABELS command and the MATRIX")
			}
			return nil
		}
	}
	return nexus.Errorf(nexus.ErrUnresolvedLabel, tok.Pos, "could not find character named %s among stored character labels", tok)
}

// readRepeat reads an optional ": n" repeat count after row i and copies
// original columns [first, end) of the row into the next n-1 rows. It returns
// the number of rows covered by the line.
//
func (b *Block) readRepeat(t *nexus.Tokenizer, i, first, end int) (int, error) {
	r, err := t.PeekRune(b.format.Interleave)
	if err != nil || r != ':' {
		return 1, err
	}
	if _, err = t.Scan(); err != nil {
		return 1, err
	}
	tok, n, err := t.ReadInt("repeat count")
	if err != nil {
		return 1, err
	}
	if n < 1 || i+n > b.ntax {
		return 1, nexus.Errorf(nexus.ErrRange, tok.Pos, "invalid repeat count %d for row %d (NTAX=%d)", n, i+1, b.ntax)
	}
	lo, hi := -1, -1
	for k := first; k < end; k++ {
		if j, ok := b.charPos.Current(k); ok {
			if lo < 0 {
				lo = j
			}
			hi = j
		}
	}
	if lo >= 0 {
		b.matrix.DuplicateRow(i, n, lo, hi)
	}
	for r := i + 1; r < i+n; r++ {
		if b.taxonPos[r] == -1 {
			b.taxonPos[r] = r
		}
	}
	return n, nil
}
