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
	"errors"
	"fmt"
	"math"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-vocab/table"
)

var (
	errOffsetRange   = fmt.Errorf("%w: --offset and --length must fit in 32 bits", ErrFlagParse)
	errOffsetMissing = fmt.Errorf("%w: --offset and --length are required", ErrFlagParse)
)

func newTableCommand() *cli.Command {
	return &cli.Command{
		Name:      "table",
		Usage:     "print the table at an offset",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:    "offset",
				Usage:   "read the table at `OFFSET`",
				Aliases: []string{"o"},
			},
			&cli.Uint64Flag{
				Name:    "length",
				Usage:   "the table is `LENGTH` bytes long",
				Aliases: []string{"l"},
			},
			newHelpFlag(),
		},
		HideHelp:     true,
		OnUsageError: onUsageError,
		Action: withHelp(func(c *cli.Context) error {
			if !c.IsSet("offset") || !c.IsSet("length") {
				return errOffsetMissing
			}
			offset, length := c.Uint64("offset"), c.Uint64("length")
			if offset > math.MaxUint32 || length > math.MaxUint32 {
				return errOffsetRange
			}

			v, _, err := openVocabulary(c)
			if err != nil {
				return err
			}
			defer v.Close()

			//nolint:gosec // bounds checked above.
			t, err := v.Table(c.Context, uint32(offset), uint32(length))
			var dataErr *table.DataSegmentError
			if err != nil && (t == nil || !errors.As(err, &dataErr)) {
				return fmt.Errorf("%w: %w", ErrVocabutil, err)
			}

			w := c.App.Writer
			fmt.Fprintf(w, "Data offset:  %d\n", t.DataOffset)
			fmt.Fprintf(w, "Data length:  %d\n", t.DataLength)
			fmt.Fprintln(w)
			printEntries(w, t.Entries)
			if len(t.Words) > 0 {
				fmt.Fprintln(w)
				printWords(w, t.Words)
			}

			if err != nil {
				// The entries were printed but the words could not be read.
				return fmt.Errorf("%w: %w", ErrVocabutil, err)
			}
			return nil
		}),
	}
}
