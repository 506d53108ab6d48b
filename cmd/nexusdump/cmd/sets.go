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
	"github.com/db47h/nexus/assumptions"
	"github.com/db47h/nexus/set"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSetsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sets FILE",
		Short: "Print the sets defined in the ASSUMPTIONS blocks of a NEXUS file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			s := newSession(cfg, log, cmd.ErrOrStderr())
			ok, err := s.readFile(args[0])
			if err != nil {
				return err
			}
			sum := summarizeSets(s.asm)
			if cfg.Output.Format == "yaml" {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err = enc.Encode(sum); err == nil {
					err = enc.Close()
				}
			} else {
				err = sum.writeNexus(cmd.OutOrStdout())
			}
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s had errors", args[0])
			}
			return nil
		},
	}
}

type namedSet struct {
	Name    string `yaml:"name"`
	Default bool   `yaml:"default,omitempty"`
	Set     string `yaml:"set"`
}

type setsSummary struct {
	CharSets []namedSet `yaml:"charsets,omitempty"`
	TaxSets  []namedSet `yaml:"taxsets,omitempty"`
	ExSets   []namedSet `yaml:"exsets,omitempty"`
}

func collect(names []string, def string, get func(string) (set.IndexSet, bool)) []namedSet {
	var ns []namedSet
	for _, n := range names {
		s, _ := get(n)
		ns = append(ns, namedSet{Name: n, Default: n == def, Set: s.String()})
	}
	return ns
}

func summarizeSets(a *assumptions.Block) *setsSummary {
	return &setsSummary{
		CharSets: collect(a.CharSetNames(), a.DefaultCharSet(), a.CharSet),
		TaxSets:  collect(a.TaxSetNames(), a.DefaultTaxSet(), a.TaxSet),
		ExSets:   collect(a.ExSetNames(), a.DefaultExSet(), a.ExSet),
	}
}

// writeNexus writes the sets as an ASSUMPTIONS block.
//
func (sum *setsSummary) writeNexus(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("BEGIN ASSUMPTIONS;\n")
	for _, c := range []struct {
		cmd  string
		sets []namedSet
	}{{"CHARSET", sum.CharSets}, {"TAXSET", sum.TaxSets}, {"EXSET", sum.ExSets}} {
		for _, s := range c.sets {
			star := ""
			if s.Default {
				star = "* "
			}
			ew.printf("\t%s %s%s = %s;\n", c.cmd, star, nexus.Quote(s.Name), s.Set)
		}
	}
	ew.printf("END;\n")
	return ew.err
}
