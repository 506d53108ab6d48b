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

package nexus

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned while reading a NEXUS file is an *Error
// whose Kind is one of these values, so that callers can test for a given
// class of failure with errors.Is.
//
var (
	ErrLex             = errors.New("lexical error")
	ErrSyntax          = errors.New("syntax error")
	ErrFormat          = errors.New("not a NEXUS file")
	ErrFormatOrder     = errors.New("option out of order")
	ErrEliminateOrder  = errors.New("misplaced ELIMINATE")
	ErrRange           = errors.New("value out of range")
	ErrUnresolvedLabel = errors.New("unresolved label")
	ErrSymbol          = errors.New("invalid symbol")
	ErrCapacity        = errors.New("too many states")
	ErrOrdering        = errors.New("inconsistent ordering")
	ErrUnexpectedEOF   = errors.New("unexpected end of file")
	ErrLabel           = errors.New("invalid label")
	ErrNoSuchTaxon     = errors.New("no such taxon")
)

// Error is a positioned NEXUS parse error.
//
type Error struct {
	Kind error
	Msg  string
	Pos  Position
}

// Errorf returns a new *Error of the given kind, positioned at pos.
//
func Errorf(kind error, pos Position, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Pos:  pos,
	}
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Unwrap returns e.Kind.
//
func (e *Error) Unwrap() error {
	return e.Kind
}

// AsError returns err as an *Error. Errors that are not already positioned are
// wrapped in an *Error of kind ErrLex positioned at pos.
//
func AsError(err error, pos Position) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: ErrLex, Msg: err.Error(), Pos: pos}
}
