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
	"io/fs"
	"os"

	texttable "github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ianlewis/go-vocab"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list vocabulary files in data directories",
		ArgsUsage: "[DIR]...",
		Flags:     []cli.Flag{newHelpFlag()},
		Description: "Lists '.vocab' and '.vocab.dz' files found under each DIR. " +
			"Without arguments the default data directories are searched.",
		HideHelp:     true,
		OnUsageError: onUsageError,
		Action: withHelp(func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			log, err := newLogger(c.App.ErrWriter, cfg.LogLevel)
			if err != nil {
				return err
			}

			dirs := c.Args().Slice()
			if len(dirs) == 0 {
				dirs = dataLocations()
			}

			var vocabs []*vocab.Vocabulary
			var errs []error
			for _, dir := range dirs {
				// Missing default directories are skipped.
				if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) && c.NArg() == 0 {
					continue
				}
				opened, openErrs := vocab.OpenAll(c.Context, dir, cfg.VocabOptions(log))
				vocabs = append(vocabs, opened...)
				errs = append(errs, openErrs...)
			}
			defer func() {
				for _, v := range vocabs {
					_ = v.Close()
				}
			}()

			tbl := texttable.New("File", "Words").WithWriter(c.App.Writer)
			for _, v := range vocabs {
				count, err := v.WordCount(c.Context)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				tbl.AddRow(v.URI(), count)
			}
			tbl.Print()

			for _, err := range errs {
				log.Error("opening vocabulary", zap.Error(err))
			}
			if len(errs) > 0 {
				return fmt.Errorf("%w: %d vocabularies could not be read", ErrVocabutil, len(errs))
			}
			return nil
		}),
	}
}
