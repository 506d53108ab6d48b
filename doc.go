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

/*
Package nexus reads NEXUS files, the block-structured text format used by
phylogenetics software to exchange taxa, character matrices and trees.

A NEXUS file starts with #NEXUS and holds a sequence of blocks:

	#NEXUS
	BEGIN TAXA;
		DIMENSIONS NTAX=2;
		TAXLABELS fish frog;
	END;

The package provides the Tokenizer and the block dispatcher (Reader). Block
contents are read by implementations of the Block interface registered with
Reader.Add. Sub-packages implement the usual blocks: taxa (TAXA), characters
(CHARACTERS and DATA) and assumptions (ASSUMPTIONS). Blocks for which no
implementation is registered are skipped.

Tokenizer

NEXUS lexing rules depend on context: newlines are significant in interleaved
matrices, parenthesized groups are single tokens in some places and not in
others, and so on. Rather than carrying mutable flags, every call to
Tokenizer.Next takes a Request describing how the next token is to be read.
The zero Request gives the default rules:

  - whitespace separates tokens and underscores stand for blanks;
  - single-quoted words may contain blanks and punctuation, a doubled quote
    stands for a quote;
  - comments are enclosed in square brackets and nest. Output comments
    ([!...]) are reported through Hooks.OutputComment;
  - every punctuation character ()[]{}/\,;:=*'"`+-<> is a token on its own.

Keyword comparison ignores case.

Error handling

Errors are returned as *Error values carrying the Position of the offending
token. Their Kind is one of the Err* variables of this package, which allows
testing for a class of errors with errors.Is:

	if errors.Is(err, nexus.ErrUnexpectedEOF) {
		// truncated file
	}

By default, reading stops at the first error. With ContinueOnError, the
failing block is skipped and reading resumes with the next one.

Input is expected to be UTF-8. Invalid UTF-8 bytes are decoded as Latin-1.
*/
package nexus
