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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ianlewis/go-vocab"
	"github.com/ianlewis/go-vocab/internal/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrVocabutil is a parent error for all command errors.
var ErrVocabutil = errors.New("vocabutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrVocabutil)

// ErrNoFile indicates that no vocabulary file was given.
var ErrNoFile = fmt.Errorf("%w: no vocabulary file; use --file or set %s", ErrVocabutil, envFile)

const (
	envFile   = "VOCAB_FILE"
	envConfig = "VOCAB_CONFIG"
)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use it that way.
	//
	// This is done because `vocabutil --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func newHelpFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:               "help",
		Usage:              "print this help text and exit",
		Aliases:            []string{"h"},
		DisableDefaultText: true,
	}
}

func onUsageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

// withHelp wraps a command action so that --help prints the command's help.
func withHelp(action cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.Bool("help") {
			check(cli.ShowSubcommandHelp(c))
			return nil
		}
		return action(c)
	}
}

// loadConfig reads the config file, if any, and applies global flags on top
// of it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrVocabutil, err)
		}
	}

	if c.IsSet("file") {
		cfg.File = c.String("file")
	}
	if c.IsSet("layout") {
		cfg.Layout = c.String("layout")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	return cfg, nil
}

// newLogger returns a console logger writing to w at level.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %w", ErrFlagParse, err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// openVocabulary opens the configured vocabulary file.
func openVocabulary(c *cli.Context) (*vocab.Vocabulary, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	if cfg.File == "" {
		return nil, nil, ErrNoFile
	}

	log, err := newLogger(c.App.ErrWriter, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	v, err := vocab.Open(c.Context, cfg.File, cfg.VocabOptions(log))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrVocabutil, err)
	}
	return v, cfg, nil
}

func newVocabutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Read binary vocabulary files.",
		Description: strings.Join([]string{
			"Vocabulary file utility written in Go.",
			"http://github.com/ianlewis/go-vocab",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Usage:   "read the vocabulary at `PATH` (a path, file:// or s3:// URI)",
				Aliases: []string{"f"},
				EnvVars: []string{envFile},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{envConfig},
			},
			&cli.StringFlag{
				Name:  "layout",
				Usage: "read table entries in `LAYOUT` (terminated, packed)",
				Value: config.Default().Layout,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log messages at `LEVEL` (debug, info, warn, error)",
				Value: config.Default().LogLevel,
			},

			// Special flags are shown at the end.
			newHelpFlag(),
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError:    onUsageError,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			newInfoCommand(),
			newListCommand(),
			newQueryCommand(),
			newTableCommand(),
		},
	}
}
