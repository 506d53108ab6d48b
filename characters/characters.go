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

// Package characters implements the NEXUS CHARACTERS and DATA blocks.
//
// A CHARACTERS block stores a matrix of discrete character data for a set of
// taxa defined by a taxon registry (usually a TAXA block):
//
//	BEGIN CHARACTERS;
//		DIMENSIONS NCHAR=4;
//		FORMAT DATATYPE=DNA GAP=- MISSING=?;
//		ELIMINATE 2;
//		MATRIX
//			fish ACGT
//			frog AG-T
//		;
//	END;
//
// Characters removed by ELIMINATE are never stored. The block therefore
// distinguishes original indices, which count every character declared by
// NCHAR, from current indices into the stored matrix. Unless noted otherwise,
// methods take current indices.
//
package characters

import (
	"github.com/db47h/nexus"
	"github.com/db47h/nexus/discrete"
	"github.com/db47h/nexus/set"
)

// TaxonRegistry is the list of taxon labels a Block refers to.
//
type TaxonRegistry interface {
	// FindTaxon returns the 0-based index of label, or nexus.ErrNoSuchTaxon.
	FindTaxon(label string) (int, error)
	AddTaxonLabel(label string)
	TaxonLabel(i int) string
	NumTaxonLabels() int
	IsAlreadyDefined(label string) bool
	Reset()
}

// Linker is notified with the Block each time a matrix has been read
// successfully. An ASSUMPTIONS block uses it to apply exclusion sets.
//
type Linker interface {
	SetCallback(b *Block)
}

// Index maps original indices to current indices. Entries of unmapped
// indices are -1.
//
type Index []int

// Current returns the current index for orig.
//
func (x Index) Current(orig int) (int, bool) {
	if orig < 0 || orig >= len(x) || x[orig] < 0 {
		return -1, false
	}
	return x[orig], true
}

// Original returns the original index mapped to cur, or -1.
//
func (x Index) Original(cur int) int {
	for i, c := range x {
		if c == cur {
			return i
		}
	}
	return -1
}

// Option configures a Block.
//
type Option func(*Block)

// WithLinker sets the Linker notified after a successful MATRIX command.
//
func WithLinker(l Linker) Option {
	return func(b *Block) {
		b.linker = l
	}
}

// Block is a CHARACTERS or DATA block.
//
// Block is not safe for concurrent use.
//
type Block struct {
	nexus.BlockBase
	taxa   TaxonRegistry
	linker Linker
	data   bool

	ntax, ntaxTotal   int
	nchar, ncharTotal int
	newtaxa, newchar  bool

	format      Format
	eliminated  set.IndexSet
	charPos     Index
	taxonPos    Index
	activeChar  []bool
	activeTaxon []bool
	charLabels  []string
	charStates  map[int][]string
	fixed       map[int]bool // characters whose states were declared
	transLabels []string     // character labels of the first page of a transposed matrix
	matrix      *discrete.Matrix
}

// New returns a new CHARACTERS block using taxa as taxon registry.
//
func New(taxa TaxonRegistry, opts ...Option) *Block {
	return newBlock("CHARACTERS", false, taxa, opts)
}

// NewData returns a new DATA block. A DATA block is a CHARACTERS block that
// always defines its own taxa: the registry is cleared each time the block is
// read.
//
func NewData(taxa TaxonRegistry, opts ...Option) *Block {
	return newBlock("DATA", true, taxa, opts)
}

func newBlock(id string, data bool, taxa TaxonRegistry, opts []Option) *Block {
	b := &Block{
		BlockBase: nexus.NewBlockBase(id),
		taxa:      taxa,
		data:      data,
	}
	for _, o := range opts {
		o(b)
	}
	b.Reset()
	return b
}

// Reset restores the block to its initial state.
//
func (b *Block) Reset() {
	b.SetEmpty(true)
	b.ntax, b.ntaxTotal = 0, 0
	b.nchar, b.ncharTotal = 0, 0
	b.newchar = true
	b.newtaxa = false
	b.format = defaultFormat()
	b.eliminated = nil
	b.charPos = nil
	b.taxonPos = nil
	b.activeChar = nil
	b.activeTaxon = nil
	b.charLabels = nil
	b.charStates = make(map[int][]string)
	b.fixed = make(map[int]bool)
	b.transLabels = nil
	b.matrix = nil
	if b.data {
		b.newtaxa = true
		b.taxa.Reset()
	}
}

// Read reads the block contents.
//
func (b *Block) Read(t *nexus.Tokenizer) error {
	b.SetEmpty(false)
	if err := b.ReadHeader(t); err != nil {
		return err
	}
	b.ntax = b.taxa.NumTaxonLabels()
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		switch {
		case tok.Equals("DIMENSIONS"):
			err = b.readDimensions(t)
		case tok.Equals("FORMAT"):
			err = b.readFormat(t)
		case tok.Equals("ELIMINATE"):
			err = b.readEliminate(t, tok)
		case tok.Equals("TAXLABELS"):
			err = b.readTaxLabels(t, tok)
		case tok.Equals("CHARSTATELABELS"):
			err = b.readCharStateLabels(t)
		case tok.Equals("CHARLABELS"):
			err = b.readCharLabels(t)
		case tok.Equals("STATELABELS"):
			err = b.readStateLabels(t)
		case tok.Equals("MATRIX"):
			err = b.readMatrix(t, tok)
		case nexus.IsEnd(tok):
			return b.readEnd(t)
		default:
			err = b.SkipCommand(t, tok)
		}
		if err != nil {
			return err
		}
	}
}

func (b *Block) readEnd(t *nexus.Tokenizer) error {
	if err := b.ReadEnd(t); err != nil {
		return err
	}
	if len(b.charLabels) == 0 && len(b.fixed) > 0 {
		for k := 0; k < b.ncharTotal; k++ {
			if !b.IsEliminated(k) {
				b.charLabels = append(b.charLabels, "Character "+itoa(k+1))
			}
		}
	}
	return nil
}

func (b *Block) buildCharPos() {
	b.charPos = make(Index, b.ncharTotal)
	k := 0
	for j := range b.charPos {
		if b.eliminated.Contains(j) {
			b.charPos[j] = -1
			continue
		}
		b.charPos[j] = k
		k++
	}
}

// Format returns the FORMAT settings in effect.
//
func (b *Block) Format() Format {
	return b.format
}

// Matrix returns the data matrix, or nil if no MATRIX command has been read.
//
func (b *Block) Matrix() *discrete.Matrix {
	return b.matrix
}

// NChar returns the number of stored characters.
//
func (b *Block) NChar() int { return b.nchar }

// NCharTotal returns the number of characters declared by NCHAR, including
// eliminated ones.
//
func (b *Block) NCharTotal() int { return b.ncharTotal }

// NTax returns the number of taxa with a row in the matrix.
//
func (b *Block) NTax() int { return b.ntax }

// NTaxTotal returns the number of taxa in the registry when the matrix was
// read.
//
func (b *Block) NTaxTotal() int { return b.ntaxTotal }

// Taxa returns the taxon registry.
//
func (b *Block) Taxa() TaxonRegistry { return b.taxa }

// CharPos returns the current index of original character orig.
//
func (b *Block) CharPos(orig int) (int, bool) {
	return b.charPos.Current(orig)
}

// TaxonPos returns the matrix row of the taxon with original index orig.
//
func (b *Block) TaxonPos(orig int) (int, bool) {
	return b.taxonPos.Current(orig)
}

// OrigCharIndex returns the original index of current character j, or -1.
//
func (b *Block) OrigCharIndex(j int) int {
	if b.charPos == nil {
		if j >= 0 && j < b.ncharTotal {
			return j
		}
		return -1
	}
	return b.charPos.Original(j)
}

// OrigTaxonIndex returns the registry index of the taxon in row i, or -1.
//
func (b *Block) OrigTaxonIndex(i int) int {
	return b.taxonPos.Original(i)
}

// IsEliminated reports whether original character orig was eliminated.
//
func (b *Block) IsEliminated(orig int) bool {
	return b.eliminated.Contains(orig)
}

// NumEliminated returns the number of eliminated characters.
//
func (b *Block) NumEliminated() int {
	return b.eliminated.Len()
}

// Eliminated returns the original indices of eliminated characters.
//
func (b *Block) Eliminated() set.IndexSet {
	return b.eliminated
}

// CharLabel returns the label of character j, or "" if it has none.
//
func (b *Block) CharLabel(j int) string {
	if j < 0 || j >= len(b.charLabels) {
		return ""
	}
	return b.charLabels[j]
}

// CharLabels returns the character labels, indexed by current index.
//
func (b *Block) CharLabels() []string {
	return b.charLabels
}

// StateLabel returns the label of state k of character j, or "".
//
func (b *Block) StateLabel(j, k int) string {
	s := b.charStates[j]
	if k < 0 || k >= len(s) {
		return ""
	}
	return s[k]
}

// StateLabels returns the state labels of character j.
//
func (b *Block) StateLabels(j int) []string {
	return b.charStates[j]
}

// TaxonLabel returns the label of the taxon in row i.
//
func (b *Block) TaxonLabel(i int) string {
	o := b.OrigTaxonIndex(i)
	if o < 0 || o >= b.taxa.NumTaxonLabels() {
		return ""
	}
	return b.taxa.TaxonLabel(o)
}

// ObsNumStates returns the number of distinct states observed for character
// j.
//
func (b *Block) ObsNumStates(j int) int {
	if b.matrix == nil {
		return 0
	}
	return b.matrix.ObsNumStates(j)
}

// MaxObsNumStates returns the largest ObsNumStates over all characters.
//
func (b *Block) MaxObsNumStates() int {
	max := 0
	for j := 0; j < b.nchar; j++ {
		if n := b.ObsNumStates(j); n > max {
			max = n
		}
	}
	return max
}

// CharLabelToNumber returns the 1-based original number of the character
// labelled label, or 0.
//
func (b *Block) CharLabelToNumber(label string) int {
	for j, l := range b.charLabels {
		if l == label {
			return b.OrigCharIndex(j) + 1
		}
	}
	return 0
}

// TaxonLabelToNumber returns the 1-based registry number of the taxon
// labelled label, or 0.
//
func (b *Block) TaxonLabelToNumber(label string) int {
	i, err := b.taxa.FindTaxon(label)
	if err != nil {
		return 0
	}
	return i + 1
}
