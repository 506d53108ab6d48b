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
	"strings"

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/discrete"
)

// CellString returns cell (i, j) written as it would appear in a MATRIX
// command: the missing or gap symbol, a single state, or a state set in
// parentheses (polymorphism) or braces (uncertainty). It returns "" if there
// is no such cell.
//
func (b *Block) CellString(i, j int) string {
	m := b.matrix
	if m == nil || i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return ""
	}
	d := m.Datum(i, j)
	switch d.Kind() {
	case discrete.Missing:
		return string(b.format.Missing)
	case discrete.Gap:
		return string(b.format.Gap)
	}
	states := d.States()
	if len(states) == 1 {
		return b.stateString(j, states[0])
	}
	lb, rb := '{', '}'
	if d.IsPolymorphic() {
		lb, rb = '(', ')'
	}
	var sb strings.Builder
	sb.WriteRune(lb)
	for k, s := range states {
		if k > 0 && b.format.Tokens {
			sb.WriteByte(' ')
		}
		sb.WriteString(b.stateString(j, s))
	}
	sb.WriteRune(rb)
	return sb.String()
}

func (b *Block) stateString(j, s int) string {
	if b.format.Tokens {
		return nexus.Quote(b.StateLabel(j, s))
	}
	sym := []rune(b.format.Symbols)
	if s < 0 || s >= len(sym) {
		return string(b.format.Missing)
	}
	return string(sym[s])
}

// RowString returns row i written as it would appear in a MATRIX command,
// without the taxon label. Tokens are separated by a single space.
//
func (b *Block) RowString(i int) string {
	var sb strings.Builder
	for j := 0; j < b.nchar; j++ {
		if j > 0 && b.format.Tokens {
			sb.WriteByte(' ')
		}
		sb.WriteString(b.CellString(i, j))
	}
	return sb.String()
}
