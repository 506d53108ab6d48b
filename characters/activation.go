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

import "github.com/db47h/nexus/set"

// ExcludeCharacter marks character j as inactive.
//
func (b *Block) ExcludeCharacter(j int) {
	if j >= 0 && j < len(b.activeChar) {
		b.activeChar[j] = false
	}
}

// IncludeCharacter marks character j as active.
//
func (b *Block) IncludeCharacter(j int) {
	if j >= 0 && j < len(b.activeChar) {
		b.activeChar[j] = true
	}
}

// IsActiveChar reports whether character j is active. Characters are active
// by default.
//
func (b *Block) IsActiveChar(j int) bool {
	return j >= 0 && j < len(b.activeChar) && b.activeChar[j]
}

// DeleteTaxon marks the taxon in row i as inactive.
//
func (b *Block) DeleteTaxon(i int) {
	if i >= 0 && i < len(b.activeTaxon) {
		b.activeTaxon[i] = false
	}
}

// RestoreTaxon marks the taxon in row i as active.
//
func (b *Block) RestoreTaxon(i int) {
	if i >= 0 && i < len(b.activeTaxon) {
		b.activeTaxon[i] = true
	}
}

// IsActiveTaxon reports whether the taxon in row i is active.
//
func (b *Block) IsActiveTaxon(i int) bool {
	return i >= 0 && i < len(b.activeTaxon) && b.activeTaxon[i]
}

// NumActiveChar returns the number of active characters.
//
func (b *Block) NumActiveChar() int {
	return count(b.activeChar)
}

// NumActiveTaxa returns the number of active taxa.
//
func (b *Block) NumActiveTaxa() int {
	return count(b.activeTaxon)
}

func count(v []bool) int {
	n := 0
	for _, a := range v {
		if a {
			n++
		}
	}
	return n
}

// apply sets the flags of v mapped from the original indices in s through x to
// active. Indices that do not map are skipped. apply returns the number of
// flags that changed.
//
func apply(v []bool, x Index, s set.IndexSet, active bool) int {
	n := 0
	for _, o := range s {
		i, ok := x.Current(o)
		if !ok || i >= len(v) {
			continue
		}
		if v[i] != active {
			v[i] = active
			n++
		}
	}
	return n
}

// ApplyExset excludes the characters in s, given as original indices. It
// returns the number of characters newly excluded.
//
func (b *Block) ApplyExset(s set.IndexSet) int {
	return apply(b.activeChar, b.charPos, s, false)
}

// ApplyIncludeset includes the characters in s, given as original indices. It
// returns the number of characters newly included.
//
func (b *Block) ApplyIncludeset(s set.IndexSet) int {
	return apply(b.activeChar, b.charPos, s, true)
}

// ApplyDelset deletes the taxa in s, given as registry indices.
//
func (b *Block) ApplyDelset(s set.IndexSet) int {
	return apply(b.activeTaxon, b.taxonPos, s, false)
}

// ApplyRestoreset restores the taxa in s, given as registry indices.
//
func (b *Block) ApplyRestoreset(s set.IndexSet) int {
	return apply(b.activeTaxon, b.taxonPos, s, true)
}
