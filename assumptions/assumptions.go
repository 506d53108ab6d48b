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

// Package assumptions implements the NEXUS ASSUMPTIONS block.
//
// The block stores named character sets (CHARSET), taxon sets (TAXSET) and
// exclusion sets (EXSET):
//
//	BEGIN ASSUMPTIONS;
//		CHARSET coding = 1-300\3;
//		TAXSET outgroup = fish frog;
//		EXSET * noisy = 12 45-.;
//	END;
//
// A name preceded by an asterisk becomes the default set of its kind. The
// default EXSET is applied at once to the characters block linked with
// SetCallback.
//
package assumptions

import (
	"sort"

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/characters"
	"github.com/db47h/nexus/set"
)

// Block is an ASSUMPTIONS block.
//
type Block struct {
	nexus.BlockBase
	taxa  characters.TaxonRegistry
	chars *characters.Block

	charSets sets
	taxSets  sets
	exSets   sets
}

type sets struct {
	m   map[string]set.IndexSet
	def string
}

func (s *sets) reset() {
	s.m = make(map[string]set.IndexSet)
	s.def = ""
}

func (s *sets) names() []string {
	n := make([]string, 0, len(s.m))
	for k := range s.m {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// New returns a new ASSUMPTIONS block. TAXSET labels are resolved in taxa.
//
func New(taxa characters.TaxonRegistry) *Block {
	b := &Block{
		BlockBase: nexus.NewBlockBase("ASSUMPTIONS"),
		taxa:      taxa,
	}
	b.Reset()
	return b
}

// SetCallback links b with the characters block that CHARSET and EXSET refer
// to. A characters block calls it after reading its matrix; pass it to
// characters.WithLinker.
//
func (b *Block) SetCallback(c *characters.Block) {
	b.chars = c
}

// Characters returns the linked characters block, or nil.
//
func (b *Block) Characters() *characters.Block {
	return b.chars
}

// Reset clears all sets. The link to the characters block is kept.
//
func (b *Block) Reset() {
	b.SetEmpty(true)
	b.charSets.reset()
	b.taxSets.reset()
	b.exSets.reset()
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
		case tok.Equals("CHARSET"):
			err = b.readCharSet(t, tok, &b.charSets)
		case tok.Equals("EXSET"):
			err = b.readCharSet(t, tok, &b.exSets)
		case tok.Equals("TAXSET"):
			err = b.readTaxSet(t, tok)
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

// readName reads "[*] name =". It returns the name and whether it was
// asterisked.
//
func readName(t *nexus.Tokenizer, cmd nexus.Token) (string, bool, error) {
	tok, err := t.Scan()
	if err != nil {
		return "", false, err
	}
	star := tok.IsPunct('*')
	if star {
		if tok, err = t.Scan(); err != nil {
			return "", false, err
		}
	}
	if tok.EOF {
		return "", false, nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in %s command", cmd.Text)
	}
	if tok.Punct {
		return "", false, nexus.Errorf(nexus.ErrSyntax, tok.Pos, "expecting %s name, found %s instead", cmd.Text, tok)
	}
	if _, err = t.Expect("=", "in "+cmd.Text+" definition"); err != nil {
		return "", false, err
	}
	return tok.Text, star, nil
}

func (b *Block) readCharSet(t *nexus.Tokenizer, cmd nexus.Token, dst *sets) error {
	if b.chars == nil {
		return nexus.Errorf(nexus.ErrFormatOrder, cmd.Pos, "%s requires a preceding CHARACTERS or DATA block with a MATRIX", cmd.Text)
	}
	name, star, err := readName(t, cmd)
	if err != nil {
		return err
	}
	s, err := readSet(t, cmd, b.chars.NCharTotal(), set.ResolverFunc(b.chars.CharLabelToNumber))
	if err != nil {
		return err
	}
	dst.m[name] = s
	if star {
		dst.def = name
		if dst == &b.exSets {
			b.chars.ApplyExset(s)
		}
	}
	return nil
}

func (b *Block) readTaxSet(t *nexus.Tokenizer, cmd nexus.Token) error {
	name, star, err := readName(t, cmd)
	if err != nil {
		return err
	}
	s, err := readSet(t, cmd, b.taxa.NumTaxonLabels(), set.ResolverFunc(b.TaxonLabelToNumber))
	if err != nil {
		return err
	}
	b.taxSets.m[name] = s
	if star {
		b.taxSets.def = name
	}
	return nil
}

func readSet(t *nexus.Tokenizer, cmd nexus.Token, max int, r set.Resolver) (set.IndexSet, error) {
	s, semi, err := set.Read(t, max, r)
	if err != nil {
		return nil, err
	}
	if !semi {
		return nil, nexus.Errorf(nexus.ErrSyntax, cmd.Pos, "%s takes a single set terminated by a semicolon", cmd.Text)
	}
	return s, nil
}

// TaxonLabelToNumber returns the 1-based number of the taxon labelled label,
// or 0.
//
func (b *Block) TaxonLabelToNumber(label string) int {
	i, err := b.taxa.FindTaxon(label)
	if err != nil {
		return 0
	}
	return i + 1
}

// NumCharSets returns the number of character sets.
//
func (b *Block) NumCharSets() int { return len(b.charSets.m) }

// CharSetNames returns the names of the character sets in lexical order.
//
func (b *Block) CharSetNames() []string { return b.charSets.names() }

// CharSet returns the character set with the given name, as 0-based original
// character indices.
//
func (b *Block) CharSet(name string) (set.IndexSet, bool) {
	s, ok := b.charSets.m[name]
	return s, ok
}

// DefaultCharSet returns the name of the default character set, or "".
//
func (b *Block) DefaultCharSet() string { return b.charSets.def }

func (b *Block) NumTaxSets() int { return len(b.taxSets.m) }
func (b *Block) TaxSetNames() []string { return b.taxSets.names() }
func (b *Block) DefaultTaxSet() string { return b.taxSets.def }

// TaxSet returns the taxon set with the given name, as 0-based taxon indices.
//
func (b *Block) TaxSet(name string) (set.IndexSet, bool) {
	s, ok := b.taxSets.m[name]
	return s, ok
}

func (b *Block) NumExSets() int { return len(b.exSets.m) }
func (b *Block) ExSetNames() []string { return b.exSets.names() }
func (b *Block) DefaultExSet() string { return b.exSets.def }

// ExSet returns the exclusion set with the given name.
//
func (b *Block) ExSet(name string) (set.IndexSet, bool) {
	s, ok := b.exSets.m[name]
	return s, ok
}

// ApplyExset excludes the characters of the named exclusion set from the
// linked characters block and returns the number of characters newly
// excluded.
//
func (b *Block) ApplyExset(name string) (int, error) {
	s, ok := b.exSets.m[name]
	if !ok {
		return 0, nexus.Errorf(nexus.ErrUnresolvedLabel, nexus.Position{}, "no exclusion set named %s", name)
	}
	if b.chars == nil {
		return 0, nexus.Errorf(nexus.ErrFormatOrder, nexus.Position{}, "no characters block to apply exclusion set %s to", name)
	}
	return b.chars.ApplyExset(s), nil
}
