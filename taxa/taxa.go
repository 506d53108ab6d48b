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

// Package taxa implements the NEXUS TAXA block.
//
// The TAXA block defines the list of taxon labels shared by the other blocks
// of a file:
//
//	BEGIN TAXA;
//		DIMENSIONS NTAX=3;
//		TAXLABELS fish frog 'the snake';
//	END;
//
// Block also serves as the taxon registry of CHARACTERS and DATA blocks.
//
package taxa

import (
	"github.com/db47h/nexus"
)

// Block is a TAXA block.
//
type Block struct {
	nexus.BlockBase
	ntax   int
	labels []string
}

// New returns a new, empty TAXA block.
//
func New() *Block {
	return &Block{BlockBase: nexus.NewBlockBase("TAXA")}
}

// Reset clears all taxon labels.
//
func (b *Block) Reset() {
	b.SetEmpty(true)
	b.labels = b.labels[:0]
	b.ntax = 0
}

// Read reads the block contents.
//
func (b *Block) Read(t *nexus.Tokenizer) error {
	b.SetEmpty(false)
	if err := b.ReadHeader(t); err != nil {
		return err
	}
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		switch {
		case tok.Equals("DIMENSIONS"):
			err = b.readDimensions(t)
		case tok.Equals("TAXLABELS"):
			err = b.readTaxLabels(t, tok)
		case nexus.IsEnd(tok):
			return b.ReadEnd(t)
		default:
			err = b.SkipCommand(t, tok)
		}
		if err != nil {
			return err
		}
	}
}

func (b *Block) readDimensions(t *nexus.Tokenizer) error {
	if _, err := t.Expect("NTAX", "in DIMENSIONS command"); err != nil {
		return err
	}
	if _, err := t.Expect("=", "after NTAX"); err != nil {
		return err
	}
	tok, n, err := t.ReadInt("NTAX")
	if err != nil {
		return err
	}
	if n <= 0 {
		return nexus.Errorf(nexus.ErrRange, tok.Pos, "NTAX should be greater than zero (%d)", n)
	}
	b.ntax = n
	_, err = t.Expect(";", "to terminate DIMENSIONS command")
	return err
}

func (b *Block) readTaxLabels(t *nexus.Tokenizer, cmd nexus.Token) error {
	if b.ntax <= 0 {
		return nexus.Errorf(nexus.ErrFormatOrder, cmd.Pos, "NTAX must be specified before TAXLABELS command")
	}
	for i := 0; i < b.ntax; i++ {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		if tok.EOF {
			return nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in TAXLABELS command")
		}
		if tok.Punct {
			return nexus.Errorf(nexus.ErrLabel, tok.Pos, "expecting %d taxon labels, found %d", b.ntax, i)
		}
		if b.IsAlreadyDefined(tok.Text) {
			return nexus.Errorf(nexus.ErrLabel, tok.Pos, "taxon label %s defined more than once", tok)
		}
		b.labels = append(b.labels, tok.Text)
	}
	_, err := t.Expect(";", "to terminate TAXLABELS command")
	return err
}

// NTax returns the number of taxa declared by the DIMENSIONS command, or the
// number of labels added with AddTaxonLabel.
//
func (b *Block) NTax() int {
	return b.ntax
}

// AddTaxonLabel appends a new taxon label.
//
func (b *Block) AddTaxonLabel(label string) {
	b.SetEmpty(false)
	b.labels = append(b.labels, label)
	if len(b.labels) > b.ntax {
		b.ntax = len(b.labels)
	}
}

// ChangeTaxonLabel replaces the label of taxon i.
//
func (b *Block) ChangeTaxonLabel(i int, label string) {
	b.labels[i] = label
}

// TaxonLabel returns the label of taxon i.
//
func (b *Block) TaxonLabel(i int) string {
	return b.labels[i]
}

// TaxonLabels returns all taxon labels.
//
func (b *Block) TaxonLabels() []string {
	return b.labels
}

// NumTaxonLabels returns the number of stored taxon labels.
//
func (b *Block) NumTaxonLabels() int {
	return len(b.labels)
}

// MaxTaxonLabelLength returns the length in bytes of the longest label.
//
func (b *Block) MaxTaxonLabelLength() int {
	max := 0
	for _, l := range b.labels {
		if len(l) > max {
			max = len(l)
		}
	}
	return max
}

// IsAlreadyDefined reports whether label is already in use.
//
func (b *Block) IsAlreadyDefined(label string) bool {
	_, err := b.FindTaxon(label)
	return err == nil
}

// FindTaxon returns the 0-based index of the taxon with the given label. The
// comparison is case sensitive. If there is no such taxon, the returned error
// is nexus.ErrNoSuchTaxon.
//
func (b *Block) FindTaxon(label string) (int, error) {
	for i, l := range b.labels {
		if l == label {
			return i, nil
		}
	}
	return -1, nexus.ErrNoSuchTaxon
}

// TaxonLabelToNumber returns the 1-based number of the taxon with the given
// label, or 0.
//
func (b *Block) TaxonLabelToNumber(label string) int {
	i, err := b.FindTaxon(label)
	if err != nil {
		return 0
	}
	return i + 1
}
