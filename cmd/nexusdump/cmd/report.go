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

package cmd

import (
	"fmt"
	"io"

	"github.com/db47h/nexus"
)

// reportError writes err in the form:
//
//	file:line:col: error description
//	|source line where the error occurred
//	|            ^
//
// The source line and caret are only written if carets is true and f can
// seek back to the line.
//
func reportError(w io.Writer, f *nexus.File, err *nexus.Error, carets bool) {
	fmt.Fprintf(w, "%s: %v: %s\n", err.Pos, err.Kind, err.Msg)
	if !carets || f == nil || !err.Pos.IsValid() {
		return
	}
	l, lerr := f.Line(nexus.Pos(err.Pos.Offset))
	if lerr != nil {
		return
	}
	b := err.Pos.Column - 1
	if b > len(l) {
		b = len(l)
	}
	fmt.Fprintf(w, "|%s\n", l)
	fmt.Fprintf(w, "|%s^\n", nexus.CaretPad(l[:b]))
}
