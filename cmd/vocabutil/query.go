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
	"strings"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-vocab/table"
)

var errNoQuery = fmt.Errorf("%w: missing QUERY", ErrFlagParse)

func newQueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "search for words starting with QUERY",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "exact",
				Usage:              "only print words equal to QUERY",
				Aliases:            []string{"e"},
				DisableDefaultText: true,
			},
			newHelpFlag(),
		},
		HideHelp:     true,
		OnUsageError: onUsageError,
		Action: withHelp(func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errNoQuery
			}
			query := strings.Join(c.Args().Slice(), " ")

			v, _, err := openVocabulary(c)
			if err != nil {
				return err
			}
			defer v.Close()

			var words []table.Word
			if c.Bool("exact") {
				words, err = v.Find(c.Context, query)
			} else {
				words, err = v.Search(c.Context, query)
			}
			if err != nil {
				return fmt.Errorf("%w: %w", ErrVocabutil, err)
			}

			for _, w := range words {
				printWord(c.App.Writer, w)
			}
			return nil
		}),
	}
}

func printWord(w io.Writer, word table.Word) {
	fmt.Fprint(w, word.Original)
	if word.Transcription != "" {
		fmt.Fprintf(w, " [%s]", word.Transcription)
	}
	fmt.Fprintln(w)
	if t := plainText(word.Translation); t != "" {
		for _, line := range strings.Split(t, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

// plainText renders an HTML translation as plain text.
func plainText(s string) string {
	return strings.TrimSpace(html2text.HTML2Text(s))
}
