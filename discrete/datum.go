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

// Package discrete provides storage for discrete character data: a Datum
// holds the state(s) observed for one taxon and one character, and a Matrix
// is a grid of such cells whose number of rows can grow.
//
package discrete

import (
	"errors"
	"fmt"
)

// MaxStates is the maximum number of states a single character can take.
//
const MaxStates = 76

// Kind is the kind of data stored in a Datum.
//
type Kind uint8

// Datum kinds.
//
const (
	Missing Kind = iota
	Gap
	Single
	Multi
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Gap:
		return "gap"
	case Single:
		return "single"
	case Multi:
		return "multi"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Errors returned by Datum.State.
//
var (
	ErrNoState    = errors.New("no state stored for missing or gap data")
	ErrStateIndex = errors.New("state index out of range")
)

// Datum is a single matrix cell. The zero value is a missing datum.
//
// A Multi datum holds at least two states, in the order they were added, and
// records whether they denote polymorphism (all states present) or
// uncertainty (one of the states).
//
type Datum struct {
	kind   Kind
	poly   bool
	states []int
}

// Kind returns the kind of the datum.
//
func (d *Datum) Kind() Kind {
	return d.kind
}

// AddState adds state v. A missing or gap datum becomes a single state datum,
// a single state datum becomes a non-polymorphic Multi datum.
//
func (d *Datum) AddState(v int) {
	switch d.kind {
	case Missing, Gap:
		d.kind = Single
		d.states = append(d.states[:0], v)
	case Single:
		d.kind = Multi
		d.poly = false
		d.states = append(d.states, v)
	default:
		d.states = append(d.states, v)
	}
}

// SetState discards any stored state and sets v as the only state.
//
func (d *Datum) SetState(v int) {
	d.kind = Single
	d.poly = false
	d.states = append(d.states[:0], v)
}

// SetMissing marks the datum as missing.
//
func (d *Datum) SetMissing() {
	d.reset(Missing)
}

// SetGap marks the datum as a gap (inapplicable).
//
func (d *Datum) SetGap() {
	d.reset(Gap)
}

func (d *Datum) reset(k Kind) {
	d.kind = k
	d.poly = false
	d.states = d.states[:0]
}

// SetPolymorphic sets the polymorphism flag of a Multi datum. It does nothing
// for other kinds.
//
func (d *Datum) SetPolymorphic(poly bool) {
	if d.kind == Multi {
		d.poly = poly
	}
}

// CopyFrom makes d a deep copy of o.
//
func (d *Datum) CopyFrom(o *Datum) {
	d.kind = o.kind
	d.poly = o.poly
	d.states = append(d.states[:0], o.states...)
}

// NumStates returns the number of stored states: 0 for missing and gap data.
//
func (d *Datum) NumStates() int {
	if d.kind == Missing || d.kind == Gap {
		return 0
	}
	return len(d.states)
}

// State returns the k-th state.
//
func (d *Datum) State(k int) (int, error) {
	if d.kind == Missing || d.kind == Gap {
		return 0, ErrNoState
	}
	if k < 0 || k >= len(d.states) {
		return 0, ErrStateIndex
	}
	return d.states[k], nil
}

// States returns a copy of the stored states.
//
func (d *Datum) States() []int {
	if d.NumStates() == 0 {
		return nil
	}
	return append([]int(nil), d.states...)
}

// IsMissing reports whether the datum is missing.
//
func (d *Datum) IsMissing() bool { return d.kind == Missing }

// IsGap reports whether the datum is a gap.
//
func (d *Datum) IsGap() bool { return d.kind == Gap }

// IsPolymorphic reports whether the datum holds several states that are all
// present. It is always false for non-Multi data.
//
func (d *Datum) IsPolymorphic() bool { return d.kind == Multi && d.poly }

// HasState reports whether v is one of the stored states.
//
func (d *Datum) HasState(v int) bool {
	if d.NumStates() == 0 {
		return false
	}
	for _, s := range d.states {
		if s == v {
			return true
		}
	}
	return false
}
