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

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/set"
)

func itoa(i int) string { return strconv.Itoa(i) }

func (b *Block) readDimensions(t *nexus.Tokenizer) error {
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		switch {
		case tok.EOF:
			return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in DIMENSIONS command")
		case tok.IsPunct(';'):
			return nil
		case tok.Equals("NEWTAXA"):
			b.newtaxa = true
			b.taxa.Reset()
		case tok.Equals("NTAX"):
			n, err := readDimension(t, "NTAX")
			if err != nil {
				return err
			}
			b.ntax = n
			if b.newtaxa {
				b.ntaxTotal = n
				break
			}
			b.ntaxTotal = b.taxa.NumTaxonLabels()
			if b.ntaxTotal < n {
				return nexus.Errorf(nexus.ErrRange, tok.Pos, "NTAX in %s block must be less than or equal to NTAX in TAXA block", b.ID())
			}
		case tok.Equals("NCHAR"):
			n, err := readDimension(t, "NCHAR")
			if err != nil {
				return err
			}
			b.nchar, b.ncharTotal = n, n
		}
	}
}

func readDimension(t *nexus.Tokenizer, name string) (int, error) {
	if _, err := t.Expect("=", "after "+name); err != nil {
		return 0, err
	}
	tok, n, err := t.ReadInt(name)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nexus.Errorf(nexus.ErrRange, tok.Pos, "%s should be greater than zero (%d)", name, n)
	}
	return n, nil
}

func (b *Block) readEliminate(t *nexus.Tokenizer, cmd nexus.Token) error {
	if len(b.charLabels) > 0 || len(b.charStates) > 0 {
		return nexus.Errorf(nexus.ErrEliminateOrder, cmd.Pos, "the ELIMINATE command must appear before character (or character state) labels are specified")
	}
	if b.charPos != nil || b.eliminated != nil {
		return nexus.Errorf(nexus.ErrEliminateOrder, cmd.Pos, "only one ELIMINATE command is allowed, and it must appear before the MATRIX command")
	}
	if b.ncharTotal == 0 {
		return nexus.Errorf(nexus.ErrFormatOrder, cmd.Pos, "NCHAR must be specified before the ELIMINATE command")
	}
	s, semi, err := set.Read(t, b.ncharTotal, set.ResolverFunc(b.CharLabelToNumber))
	if err != nil {
		return err
	}
	if !semi {
		return nexus.Errorf(nexus.ErrSyntax, cmd.Pos, "ELIMINATE takes a single set terminated by a semicolon")
	}
	b.eliminated = s
	if b.eliminated == nil {
		b.eliminated = set.IndexSet{}
	}
	b.nchar = b.ncharTotal - s.Len()
	b.buildCharPos()
	return nil
}

func (b *Block) readTaxLabels(t *nexus.Tokenizer, cmd nexus.Token) error {
	if !b.newtaxa {
		return nexus.Errorf(nexus.ErrFormatOrder, cmd.Pos, "NEWTAXA must have been specified in DIMENSIONS command to use the TAXLABELS command in a %s block", b.ID())
	}
	if b.ntax == 0 {
		return nexus.Errorf(nexus.ErrFormatOrder, cmd.Pos, "NTAX must be specified before the TAXLABELS command")
	}
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		switch {
		case tok.EOF:
			return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in TAXLABELS command")
		case tok.IsPunct(';'):
			b.newtaxa = false
			return nil
		case tok.Punct:
			return nexus.Errorf(nexus.ErrLabel, tok.Pos, "expecting taxon label, found %s", tok)
		case b.taxa.NumTaxonLabels() >= b.ntaxTotal:
			return nexus.Errorf(nexus.ErrLabel, tok.Pos, "number of taxon labels exceeds NTAX specified in DIMENSIONS command")
		case b.taxa.IsAlreadyDefined(tok.Text):
			return nexus.Errorf(nexus.ErrLabel, tok.Pos, "taxon label %s defined more than once", tok)
		}
		b.taxa.AddTaxonLabel(tok.Text)
	}
}

// readCharLabels reads one label per original character, labels of
// eliminated characters being dropped. A list holding exactly one label per
// stored character labels the stored characters in order instead.
//
func (b *Block) readCharLabels(t *nexus.Tokenizer) error {
	if b.charPos == nil {
		b.buildCharPos()
	}
	var labels []nexus.Token
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		switch {
		case tok.EOF:
			return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in CHARLABELS command")
		case tok.Punct && !tok.IsPunct(';'):
			return nexus.Errorf(nexus.ErrLabel, tok.Pos, "expecting character label, found %s", tok)
		}
		if tok.IsPunct(';') {
			break
		}
		if len(labels) == b.ncharTotal {
			return nexus.Errorf(nexus.ErrLabel, tok.Pos, "number of character labels exceeds NCHAR specified in DIMENSIONS command")
		}
		labels = append(labels, tok)
	}

	compact := len(labels) == b.nchar
	b.charLabels = b.charLabels[:0]
	for k, tok := range labels {
		if !compact && b.IsEliminated(k) {
			continue
		}
		if err := b.addCharLabel(tok); err != nil {
			return err
		}
	}
	b.newchar = false
	return nil
}

func (b *Block) addCharLabel(tok nexus.Token) error {
	for _, l := range b.charLabels {
		if l == tok.Text {
			return nexus.Errorf(nexus.ErrLabel, tok.Pos, "character label %s defined more than once", tok)
		}
	}
	b.charLabels = append(b.charLabels, tok.Text)
	return nil
}

// charNumber parses a 1-based character number in a label command.
//
func (b *Block) charNumber(tok nexus.Token, min int, cmd string) (int, error) {
	n, err := strconv.Atoi(tok.Text)
	if err != nil || n < min || n > b.ncharTotal {
		return 0, nexus.Errorf(nexus.ErrLabel, tok.Pos, "invalid character number (%s) found in %s command (either out of range or not interpretable as an integer)", tok.Text, cmd)
	}
	return n, nil
}

// declareState appends a state label for original character orig.
//
func (b *Block) declareState(orig int, label string) {
	j, ok := b.charPos.Current(orig)
	if !ok {
		return
	}
	b.charStates[j] = append(b.charStates[j], label)
	b.fixed[j] = true
}

func (b *Block) readCharStateLabels(t *nexus.Tokenizer) error {
	b.charLabels = b.charLabels[:0]
	b.charStates = make(map[int][]string)
	b.fixed = make(map[int]bool)
	if b.charPos == nil {
		b.buildCharPos()
	}

	cur := 0
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		switch {
		case tok.EOF:
			return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in CHARSTATELABELS command")
		case tok.IsPunct(';'):
			b.newchar = false
			return nil
		}
		n, err := b.charNumber(tok, cur+1, "CHARSTATELABELS")
		if err != nil {
			return err
		}
		// characters skipped in the list get a blank label
		for cur++; cur < n; cur++ {
			if !b.IsEliminated(cur - 1) {
				b.charLabels = append(b.charLabels, " ")
			}
		}
		save := !b.IsEliminated(n - 1)

		if tok, err = t.Scan(); err != nil {
			return err
		}
		switch {
		case tok.EOF:
			return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in CHARSTATELABELS command")
		case tok.Punct:
			if save {
				b.charLabels = append(b.charLabels, " ")
			}
		default:
			if save {
				if err = b.addCharLabel(tok); err != nil {
					return err
				}
			}
			if tok, err = t.Scan(); err != nil {
				return err
			}
		}

		if tok.IsPunct('/') {
			if tok, err = b.readStateList(t, n-1, save); err != nil {
				return err
			}
		}

		switch {
		case tok.IsPunct(';'):
			b.newchar = false
			return nil
		case !tok.IsPunct(','):
			return nexus.Errorf(nexus.ErrSyntax, tok.Pos, "expecting a comma or semicolon here, but found %s instead", tok)
		}
	}
}

// readStateList reads state labels for original character orig up to the next
// comma or semicolon, which is returned.
//
func (b *Block) readStateList(t *nexus.Tokenizer, orig int, save bool) (nexus.Token, error) {
	for {
		tok, err := t.Scan()
		if err != nil {
			return tok, err
		}
		switch {
		case tok.EOF:
			return tok, nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file reading state labels")
		case tok.IsPunct(',') || tok.IsPunct(';'):
			return tok, nil
		}
		if save {
			b.declareState(orig, tok.Text)
		}
	}
}

func (b *Block) readStateLabels(t *nexus.Tokenizer) error {
	b.charStates = make(map[int][]string)
	b.fixed = make(map[int]bool)
	if b.charPos == nil {
		b.buildCharPos()
	}
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		switch {
		case tok.EOF:
			return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in STATELABELS command")
		case tok.IsPunct(';'):
			return nil
		}
		n, err := b.charNumber(tok, 1, "STATELABELS")
		if err != nil {
			return err
		}
		if tok, err = b.readStateList(t, n-1, true); err != nil {
			return err
		}
		if tok.IsPunct(';') {
			return nil
		}
	}
}
