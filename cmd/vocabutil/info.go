// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"

	texttable "github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-vocab/table"
)

func newInfoCommand() *cli.Command {
	return &cli.Command{
		Name:         "info",
		Usage:        "print the vocabulary's root table",
		Flags:        []cli.Flag{newHelpFlag()},
		HideHelp:     true,
		OnUsageError: onUsageError,
		Action: withHelp(func(c *cli.Context) error {
			v, cfg, err := openVocabulary(c)
			if err != nil {
				return err
			}
			defer v.Close()

			root, err := v.Root(c.Context)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrVocabutil, err)
			}
			count, err := v.WordCount(c.Context)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrVocabutil, err)
			}

			w := c.App.Writer
			fmt.Fprintf(w, "File:         %s\n", v.URI())
			fmt.Fprintf(w, "Layout:       %s\n", cfg.Layout)
			fmt.Fprintf(w, "Root length:  %d\n", v.RootLength())
			fmt.Fprintf(w, "Word count:   %d\n", count)
			fmt.Fprintln(w)
			printEntries(w, root.Entries)
			return nil
		}),
	}
}

func printEntries(w io.Writer, entries []table.Entry) {
	tbl := texttable.New("Letter", "Words", "Offset", "Length").WithWriter(w)
	for _, e := range entries {
		tbl.AddRow(fmt.Sprintf("%q", e.Letter), e.WordCount, e.NextOffset, e.NextLength)
	}
	tbl.Print()
}

func printWords(w io.Writer, words []table.Word) {
	tbl := texttable.New("Original", "Transcription", "Translation").WithWriter(w)
	for _, word := range words {
		tbl.AddRow(word.Original, word.Transcription, plainText(word.Translation))
	}
	tbl.Print()
}
