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
	"io"
	"log/slog"
)

// Reader reads NEXUS files and hands each block over to the registered Block
// whose id matches the block name.
//
// A Reader is not safe for concurrent use.
//
type Reader struct {
	blocks          []Block
	hooks           Hooks
	log             *slog.Logger
	continueOnError bool
}

// Option configures a Reader.
//
type Option func(*Reader)

// WithHooks sets the hooks notified while reading.
//
func WithHooks(h Hooks) Option {
	return func(r *Reader) {
		if h != nil {
			r.hooks = h
		}
	}
}

// WithLogger sets the logger used to trace block dispatching.
//
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.log = l.With(slog.String("component", "nexus"))
		}
	}
}

// ContinueOnError sets the error policy. By default, Execute stops at the first
// block that fails to read. If continue is true, the failing block is skipped
// up to its END command and reading resumes with the next block; Execute then
// returns all errors joined together.
//
func ContinueOnError(cont bool) Option {
	return func(r *Reader) {
		r.continueOnError = cont
	}
}

// NewReader returns a new Reader with no blocks.
//
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		hooks: NopHooks{},
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Add appends b to the list of blocks. When several blocks share the same id,
// the first enabled one gets to read it.
//
func (r *Reader) Add(b Block) {
	r.blocks = append(r.blocks, b)
}

// Detach removes b from the list of blocks. It returns false if b was not
// registered.
//
func (r *Reader) Detach(b Block) bool {
	for i, blk := range r.blocks {
		if blk == b {
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			return true
		}
	}
	return false
}

// Block returns the first registered block with the given id, or nil.
//
func (r *Reader) Block(id string) Block {
	for _, b := range r.blocks {
		if EqualFold(b.ID(), id) {
			return b
		}
	}
	return nil
}

// Blocks returns the registered blocks in registration order.
//
func (r *Reader) Blocks() []Block {
	return r.blocks
}

// Tokenizer returns a new Tokenizer for f wired to the Reader's hooks.
//
func (r *Reader) Tokenizer(f *File) *Tokenizer {
	return NewTokenizer(f, r.hooks)
}

// ReadFile reads a NEXUS file from src. name is only used in error messages.
//
func (r *Reader) ReadFile(name string, src io.Reader) error {
	return r.Execute(r.Tokenizer(NewFile(name, src)))
}

// Execute reads the NEXUS file behind t.
//
// The first token must be #NEXUS. Blocks are then read in turn: known and
// enabled blocks are handed to their Block implementation, other blocks are
// skipped. Two special command comments are recognized between blocks:
// [&SHOWALL] calls Hooks.DebugReportBlock for every block and [&LEAVE] stops
// reading.
//
func (r *Reader) Execute(t *Tokenizer) error {
	tok, err := t.Scan()
	if err != nil {
		return r.fail(err, tok.Pos)
	}
	if !tok.Equals("#NEXUS") {
		return r.fail(Errorf(ErrFormat, tok.Pos, "expecting #NEXUS to be the first token in the file, found %s instead", tok), tok.Pos)
	}

	r.hooks.ExecuteStarting()
	defer r.hooks.ExecuteStopping()

	var errs []error
	for {
		tok, err = t.Next(Request{SaveCommandComments: true})
		if err != nil {
			return join(append(errs, r.fail(err, tok.Pos)))
		}
		switch {
		case tok.EOF:
			return join(errs)
		case tok.Equals("BEGIN"):
			if err = r.readBlock(t); err != nil {
				errs = append(errs, err)
				if !r.continueOnError {
					return join(errs)
				}
			}
		case tok.Equals("&SHOWALL"):
			for _, b := range r.blocks {
				r.hooks.DebugReportBlock(b)
			}
		case tok.Equals("&LEAVE"):
			r.log.Debug("leave requested", slog.String("pos", tok.Pos.String()))
			return join(errs)
		}
	}
}

func (r *Reader) readBlock(t *Tokenizer) error {
	name, err := t.Scan()
	if err != nil {
		return r.fail(err, name.Pos)
	}
	if name.EOF {
		return r.fail(Errorf(ErrUnexpectedEOF, name.Pos, "unexpected end of file after BEGIN"), name.Pos)
	}

	disabled := false
	for _, b := range r.blocks {
		if !name.Equals(b.ID()) {
			continue
		}
		if !b.Enabled() {
			disabled = true
			continue
		}
		id := b.ID()
		log := r.log.With(slog.String("block", id))
		log.Debug("entering block", slog.String("pos", name.Pos.String()))
		r.hooks.EnteringBlock(id)
		b.Reset()
		if err = b.Read(t); err != nil {
			perr := r.fail(err, name.Pos)
			b.Reset()
			if !r.continueOnError {
				return perr
			}
			// resync on the END of the failed block
			if serr := r.skipBlock(t, name.Text); serr != nil {
				return join([]error{perr, r.fail(serr, name.Pos)})
			}
			return perr
		}
		log.Debug("exiting block")
		r.hooks.ExitingBlock(id)
		return nil
	}

	label := name.BlanksToUnderscores()
	if disabled {
		r.log.Debug("skipping disabled block", slog.String("block", label))
		r.hooks.SkippingDisabledBlock(label)
	} else {
		r.log.Debug("skipping unknown block", slog.String("block", label))
		r.hooks.SkippingBlock(label)
	}
	if err = r.skipBlock(t, label); err != nil {
		return r.fail(err, name.Pos)
	}
	return nil
}

// skipBlock skips tokens up to and including the next END; or ENDBLOCK;.
//
func (r *Reader) skipBlock(t *Tokenizer, name string) error {
	for {
		tok, err := t.Scan()
		if err != nil {
			return err
		}
		if tok.EOF {
			return Errorf(ErrUnexpectedEOF, tok.Pos, "encountered end of file before END or ENDBLOCK in block %s", name)
		}
		if IsEnd(tok) {
			_, err = t.Expect(";", "after END or ENDBLOCK command")
			return err
		}
	}
}

// fail reports err to the hooks and the log, and returns it as an *Error.
//
func (r *Reader) fail(err error, pos Position) *Error {
	e := AsError(err, pos)
	r.log.Warn("read error", slog.String("pos", e.Pos.String()), slog.String("error", e.Msg))
	r.hooks.Error(e)
	return e
}

func join(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
