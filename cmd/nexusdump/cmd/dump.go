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
	"strings"

	"github.com/db47h/nexus"
	"github.com/db47h/nexus/characters"
	"github.com/db47h/nexus/set"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDumpCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE...",
		Short: "Print the taxa and character matrices of NEXUS files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var enc *yaml.Encoder
			if cfg.Output.Format == "yaml" {
				enc = yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				defer enc.Close()
			}
			var failed int
			for _, name := range args {
				s := newSession(cfg, log, cmd.ErrOrStderr())
				ok, err := s.readFile(name)
				if err != nil {
					return err
				}
				if !ok {
					failed++
				}
				sum := s.summary(name)
				if enc != nil {
					err = enc.Encode(sum)
				} else {
					err = sum.writeText(cmd.OutOrStdout())
				}
				if err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files had errors", failed, len(args))
			}
			return nil
		},
	}
}

type fileSummary struct {
	File       string         `yaml:"file"`
	Taxa       []string       `yaml:"taxa,omitempty"`
	Characters *matrixSummary `yaml:"characters,omitempty"`
	Data       *matrixSummary `yaml:"data,omitempty"`
}

type matrixSummary struct {
	DataType   string   `yaml:"datatype"`
	NTax       int      `yaml:"ntax"`
	NChar      int      `yaml:"nchar"`
	Eliminated string   `yaml:"eliminated,omitempty"`
	Excluded   string   `yaml:"excluded,omitempty"`
	CharLabels []string `yaml:"charlabels,omitempty"`
	Matrix     []row    `yaml:"matrix"`
}

type row struct {
	Taxon  string `yaml:"taxon"`
	States string `yaml:"states"`
}

func (s *session) summary(name string) *fileSummary {
	sum := &fileSummary{File: name}
	for i := 0; i < s.taxa.NumTaxonLabels(); i++ {
		sum.Taxa = append(sum.Taxa, s.taxa.TaxonLabel(i))
	}
	sum.Characters = summarize(s.chars)
	sum.Data = summarize(s.data)
	return sum
}

func summarize(c *characters.Block) *matrixSummary {
	m := c.Matrix()
	if c.Empty() || m == nil {
		return nil
	}
	ms := &matrixSummary{
		DataType:   c.Format().DataType.String(),
		NTax:       c.NTax(),
		NChar:      c.NChar(),
		Eliminated: c.Eliminated().String(),
	}
	var excluded []int
	for j := 0; j < c.NChar(); j++ {
		if !c.IsActiveChar(j) {
			excluded = append(excluded, c.OrigCharIndex(j))
		}
	}
	ms.Excluded = set.IndexSet(excluded).String()
	for _, l := range c.CharLabels() {
		if l != " " {
			ms.CharLabels = c.CharLabels()
			break
		}
	}
	for i := 0; i < m.Rows(); i++ {
		ms.Matrix = append(ms.Matrix, row{Taxon: c.TaxonLabel(i), States: c.RowString(i)})
	}
	return ms
}

func (sum *fileSummary) writeText(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("file %s\n", sum.File)
	if len(sum.Taxa) > 0 {
		labels := make([]string, len(sum.Taxa))
		for i, l := range sum.Taxa {
			labels[i] = nexus.Quote(l)
		}
		ew.printf("taxa %s\n", strings.Join(labels, " "))
	}
	for _, b := range []struct {
		id string
		ms *matrixSummary
	}{{"CHARACTERS", sum.Characters}, {"DATA", sum.Data}} {
		if b.ms == nil {
			continue
		}
		ms := b.ms
		ew.printf("%s %s ntax=%d nchar=%d\n", b.id, ms.DataType, ms.NTax, ms.NChar)
		if ms.Eliminated != "" {
			ew.printf("  eliminated %s\n", ms.Eliminated)
		}
		if ms.Excluded != "" {
			ew.printf("  excluded %s\n", ms.Excluded)
		}
		wl := 0
		for _, r := range ms.Matrix {
			if n := len(nexus.Quote(r.Taxon)); n > wl {
				wl = n
			}
		}
		for _, r := range ms.Matrix {
			ew.printf("  %-*s  %s\n", wl, nexus.Quote(r.Taxon), r.States)
		}
	}
	return ew.err
}

// errWriter remembers the first write error.
//
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err == nil {
		_, ew.err = fmt.Fprintf(ew.w, format, args...)
	}
}
