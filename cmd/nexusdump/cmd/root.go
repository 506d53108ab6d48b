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

// Package cmd implements the nexusdump commands.
//
package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/assumptions"
	"github.com/db47h/nexus/characters"
	"github.com/db47h/nexus/internal/config"
	"github.com/db47h/nexus/taxa"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type options struct {
	cfgFile string
	verbose bool
}

// NewRootCmd returns the nexusdump root command.
//
func NewRootCmd() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:   "nexusdump",
		Short: "Read NEXUS files and print their contents",
		Long: `nexusdump reads NEXUS files and prints the contents of the blocks it
understands:

  TAXA         taxon labels
  CHARACTERS   character matrix
  DATA         character matrix with implied taxa
  ASSUMPTIONS  character, taxon and exclusion sets

Other blocks are skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file, TOML or YAML")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")
	root.AddCommand(newDumpCmd(&o), newSetsCmd(&o))
	return root
}

// Execute runs the root command.
//
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration and builds the logger for a run. Log output
// goes to w.
//
func (o *options) setup(w io.Writer) (*config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if o.cfgFile != "" {
		var err error
		if cfg, err = config.Load(o.cfgFile); err != nil {
			return nil, nil, err
		}
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, hopts)
	if cfg.Log.Format == "json" {
		h = slog.NewJSONHandler(w, hopts)
	}
	return cfg, slog.New(h).With(slog.String("run_id", uuid.NewString())), nil
}

// session holds the blocks used to read a single file.
//
type session struct {
	log    *slog.Logger
	hooks  *hooks
	reader *nexus.Reader
	taxa   *taxa.Block
	chars  *characters.Block
	data   *characters.Block
	asm    *assumptions.Block
}

type block interface {
	nexus.Block
	SetEnabled(bool)
}

func newSession(cfg *config.Config, log *slog.Logger, errw io.Writer) *session {
	s := &session{
		log:   log,
		hooks: &hooks{log: log, w: errw, carets: cfg.Output.Carets},
		taxa:  taxa.New(),
	}
	s.asm = assumptions.New(s.taxa)
	s.chars = characters.New(s.taxa, characters.WithLinker(s.asm))
	s.data = characters.NewData(s.taxa, characters.WithLinker(s.asm))
	s.reader = nexus.NewReader(
		nexus.WithHooks(s.hooks),
		nexus.WithLogger(log),
		nexus.ContinueOnError(cfg.Reader.ContinueOnError),
	)
	for _, b := range []block{s.taxa, s.chars, s.data, s.asm} {
		b.SetEnabled(!cfg.IsDisabled(b.ID()))
		s.reader.Add(b)
	}
	return s
}

// readFile reads the named file. Parse errors have already been reported
// through the hooks when readFile returns; ok is false if there were any. A
// non-nil error means that the file could not be opened.
//
func (s *session) readFile(name string) (ok bool, err error) {
	fh, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer fh.Close()
	f := nexus.NewFile(name, fh)
	s.hooks.file = f
	s.log.Info("reading file", slog.String("file", name))
	return s.reader.Execute(s.reader.Tokenizer(f)) == nil, nil
}

// hooks logs reader notifications and reports errors.
//
type hooks struct {
	nexus.NopHooks
	log    *slog.Logger
	w      io.Writer
	carets bool
	file   *nexus.File
}

func (h *hooks) OutputComment(text string) {
	h.log.Info("output comment", slog.String("text", text))
}

func (h *hooks) SkippingCommand(name string) {
	h.log.Debug("skipping command", slog.String("command", name))
}

func (h *hooks) Error(err *nexus.Error) {
	reportError(h.w, h.file, err, h.carets)
}
