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

// Package set reads NEXUS set expressions such as
//
//	1-3 7 10-.\3 charname
//
// into sets of 0-based indices.
//
// Elements are 1-based integers, labels, or the keyword ALL. A range is
// written first-last, where last may be '.' to denote the maximum value; an
// optional \N suffix keeps every Nth element of the range, starting with the
// first one. The expression ends with a semicolon or, when several sets are
// defined by the same command, a comma.
//
package set

import (
	"sort"
	"strconv"

	"github.com/db47h/nexus"
)

// IndexSet is an ordered set of 0-based indices.
//
type IndexSet []int

// Add inserts i into the set.
//
func (s *IndexSet) Add(i int) {
	n := sort.SearchInts(*s, i)
	if n < len(*s) && (*s)[n] == i {
		return
	}
	*s = append(*s, 0)
	copy((*s)[n+1:], (*s)[n:])
	(*s)[n] = i
}

// Contains reports whether i is in the set.
//
func (s IndexSet) Contains(i int) bool {
	n := sort.SearchInts(s, i)
	return n < len(s) && s[n] == i
}

// Len returns the number of elements in the set.
//
func (s IndexSet) Len() int { return len(s) }

// String returns s as a NEXUS set expression of 1-based numbers, with runs of
// three or more consecutive elements written as ranges: "1-3 5 7".
//
func (s IndexSet) String() string {
	var b []byte
	for i := 0; i < len(s); {
		j := i
		for j+1 < len(s) && s[j+1] == s[j]+1 {
			j++
		}
		if len(b) > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendInt(b, int64(s[i]+1), 10)
		switch {
		case j-i >= 2:
			b = append(b, '-')
			b = strconv.AppendInt(b, int64(s[j]+1), 10)
		case j > i:
			j = i
		}
		i = j + 1
	}
	return string(b)
}

// Resolver resolves a label to its 1-based number. It returns 0 if the label
// is unknown.
//
type Resolver interface {
	Resolve(label string) int
}

// ResolverFunc is an adapter to use an ordinary function as a Resolver.
//
type ResolverFunc func(label string) int

// Resolve returns f(label).
//
func (f ResolverFunc) Resolve(label string) int { return f(label) }

// Read reads a set expression from t. Elements must lie in [1, max]; labels
// are resolved by r, which may be nil if the set has no labels. Read returns
// the 0-based indices in the set and true if the expression was terminated
// by a semicolon, false if it was terminated by a comma.
//
func Read(t *nexus.Tokenizer, max int, r Resolver) (IndexSet, bool, error) {
	rd := setReader{t: t, max: max, r: r}
	return rd.run()
}

type setReader struct {
	t   *nexus.Tokenizer
	max int
	r   Resolver
	s   IndexSet
}

func (rd *setReader) run() (IndexSet, bool, error) {
	var (
		first, last = -1, -1
		mod         int
		inRange     bool
		firstTok    nexus.Token
	)
	flush := func(tok nexus.Token) error {
		if first < 0 {
			return nil
		}
		if inRange && last < 0 {
			return nexus.Errorf(nexus.ErrSyntax, tok.Pos, "incomplete range in set specification")
		}
		if !inRange {
			last = first
		}
		if err := rd.addRange(first, last, mod); err != nil {
			return nexus.Errorf(nexus.ErrRange, firstTok.Pos, "%v", err)
		}
		first, last, mod, inRange = -1, -1, 0, false
		return nil
	}

	for {
		tok, err := rd.t.Scan()
		if err != nil {
			return nil, false, err
		}
		switch {
		case tok.EOF:
			return nil, false, nexus.Errorf(nexus.ErrUnexpectedEOF, tok.Pos, "unexpected end of file in set specification")

		case tok.IsPunct(';'), tok.IsPunct(','):
			if err = flush(tok); err != nil {
				return nil, false, err
			}
			return rd.s, tok.IsPunct(';'), nil

		case tok.IsPunct('-'):
			if inRange || first < 0 {
				return nil, false, nexus.Errorf(nexus.ErrSyntax, tok.Pos, "the symbol '-' is out of place here")
			}
			inRange = true

		case tok.Is("."):
			if !inRange || last >= 0 {
				return nil, false, nexus.Errorf(nexus.ErrSyntax, tok.Pos, "the symbol '.' can only be used to specify the end of a range")
			}
			last = rd.max

		case tok.IsPunct('\\'):
			if !inRange || last < 0 || mod != 0 {
				return nil, false, nexus.Errorf(nexus.ErrSyntax, tok.Pos, "the symbol '\\' can only be used after the end of a range has been specified")
			}
			mtok, m, err := rd.t.ReadInt("modulus")
			if err != nil {
				return nil, false, err
			}
			if m <= 0 {
				return nil, false, nexus.Errorf(nexus.ErrRange, mtok.Pos, "the modulus value specified (%s) is invalid; must be greater than 0", mtok.Text)
			}
			mod = m

		case inRange && last < 0:
			if last, err = rd.value(tok); err != nil {
				return nil, false, err
			}

		default:
			if err = flush(tok); err != nil {
				return nil, false, err
			}
			if tok.Equals("ALL") && !tok.Quoted {
				if err = rd.addRange(1, rd.max, 0); err != nil {
					return nil, false, nexus.Errorf(nexus.ErrRange, tok.Pos, "%v", err)
				}
				continue
			}
			if first, err = rd.value(tok); err != nil {
				return nil, false, err
			}
			firstTok = tok
		}
	}
}

// value returns the 1-based value of an element.
//
func (rd *setReader) value(tok nexus.Token) (int, error) {
	if tok.Punct {
		return 0, nexus.Errorf(nexus.ErrSyntax, tok.Pos, "unexpected %s in set specification", tok)
	}
	if v, err := strconv.Atoi(tok.Text); err == nil {
		return v, nil
	}
	if rd.r != nil {
		if v := rd.r.Resolve(tok.Text); v > 0 {
			return v, nil
		}
	}
	return 0, nexus.Errorf(nexus.ErrUnresolvedLabel, tok.Pos, "set element (%s) is not a number and not a valid label", tok.Text)
}

type rangeError struct {
	first, last, max int
}

func (e rangeError) Error() string {
	if e.first == e.last {
		return "set element " + strconv.Itoa(e.first) + " out of range [1, " + strconv.Itoa(e.max) + "]"
	}
	return "invalid range " + strconv.Itoa(e.first) + "-" + strconv.Itoa(e.last) + " for set elements in [1, " + strconv.Itoa(e.max) + "]"
}

// addRange adds the 1-based range [first, last] to the set, keeping only
// elements whose offset from first is a multiple of mod if mod > 0.
//
func (rd *setReader) addRange(first, last, mod int) error {
	if last > rd.max || first < 1 || first > last {
		return rangeError{first, last, rd.max}
	}
	for i := first - 1; i < last; i++ {
		if mod > 0 && (i-first+1)%mod != 0 {
			continue
		}
		rd.s.Add(i)
	}
	return nil
}
