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

// Block is the interface implemented by NEXUS block readers.
//
// Read is called by the Reader right after the block name has been read; it
// must consume everything up to and including the semicolon that terminates
// the END or ENDBLOCK command. Reset is always called before Read.
//
// CharLabelToNumber and TaxonLabelToNumber resolve a character or taxon label
// to its 1-based number. They return 0 if the label is unknown or the block
// does not hold such labels.
//
type Block interface {
	ID() string
	Enabled() bool
	Empty() bool
	Reset()
	Read(t *Tokenizer) error
	CharLabelToNumber(label string) int
	TaxonLabelToNumber(label string) int
}

// Hooks receives notifications from the Reader, the Tokenizer and the blocks
// while a file is being read.
//
type Hooks interface {
	ExecuteStarting()
	ExecuteStopping()
	EnteringBlock(id string)
	ExitingBlock(id string)
	SkippingBlock(name string)
	SkippingDisabledBlock(name string)
	SkippingCommand(name string)
	OutputComment(text string)
	DebugReportBlock(b Block)
	Error(err *Error)
}

// NopHooks implements Hooks with methods that do nothing. It is meant to be
// embedded by hosts that only care about a few notifications.
//
type NopHooks struct{}

func (NopHooks) ExecuteStarting() {}
func (NopHooks) ExecuteStopping() {}
func (NopHooks) EnteringBlock(string) {}
func (NopHooks) ExitingBlock(string) {}
func (NopHooks) SkippingBlock(string) {}
func (NopHooks) SkippingDisabledBlock(string) {}
func (NopHooks) SkippingCommand(string) {}
func (NopHooks) OutputComment(string) {}
func (NopHooks) DebugReportBlock(Block) {}
func (NopHooks) Error(*Error) {}

// BlockBase provides the bookkeeping shared by all blocks: id, enabled and
// empty flags, and label resolvers that resolve nothing. Block
// implementations embed it and override what they need.
//
type BlockBase struct {
	id       string
	disabled bool
	empty    bool
}

// NewBlockBase returns a BlockBase for a block with the given id. The block
// starts enabled and empty.
//
func NewBlockBase(id string) BlockBase {
	return BlockBase{id: id, empty: true}
}

// ID returns the block id.
//
func (b *BlockBase) ID() string { return b.id }

// Enabled reports whether the block is enabled.
//
func (b *BlockBase) Enabled() bool { return !b.disabled }

// SetEnabled enables or disables the block. Disabled blocks are skipped by
// the Reader.
//
func (b *BlockBase) SetEnabled(enabled bool) { b.disabled = !enabled }

// Empty reports whether the block holds no data.
//
func (b *BlockBase) Empty() bool { return b.empty }

// SetEmpty sets the empty flag.
//
func (b *BlockBase) SetEmpty(empty bool) { b.empty = empty }

func (b *BlockBase) CharLabelToNumber(string) int { return 0 }
func (b *BlockBase) TaxonLabelToNumber(string) int { return 0 }

// ReadHeader reads the semicolon that follows the block name.
//
func (b *BlockBase) ReadHeader(t *Tokenizer) error {
	_, err := t.Expect(";", "after "+b.id+" block name")
	return err
}

// ReadEnd reads the semicolon terminating the END or ENDBLOCK command.
//
func (b *BlockBase) ReadEnd(t *Tokenizer) error {
	_, err := t.Expect(";", "to terminate the END or ENDBLOCK command")
	return err
}

// SkipCommand notifies the hooks that the command starting with tok is not
// understood, then skips it.
//
func (b *BlockBase) SkipCommand(t *Tokenizer, tok Token) error {
	if tok.EOF {
		return Errorf(ErrUnexpectedEOF, tok.Pos, "unexpected end of file in %s block", b.id)
	}
	t.SkippingCommand(tok)
	return t.SkipToSemicolon()
}

// IsEnd reports whether tok is the END or ENDBLOCK keyword.
//
func IsEnd(tok Token) bool {
	return tok.Equals("END") || tok.Equals("ENDBLOCK")
}
