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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ianlewis/go-vocab/table"
)

func TestRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		yaml     string
		expected *Config
		err      bool
	}{
		{
			name:     "empty",
			yaml:     "",
			expected: Default(),
		},
		{
			name: "all fields",
			yaml: strings.Join([]string{
				"file: s3://vocab/en-ru.vocab",
				"layout: packed",
				"cache_size: 0",
				"concurrency: 8",
				"max_results: 0",
				"log_level: debug",
			}, "\n"),
			expected: &Config{
				File:        "s3://vocab/en-ru.vocab",
				Layout:      "packed",
				CacheSize:   0,
				Concurrency: 8,
				MaxResults:  0,
				LogLevel:    "debug",
			},
		},
		{
			name: "partial",
			yaml: "max_results: 10\n",
			expected: func() *Config {
				c := Default()
				c.MaxResults = 10
				return c
			}(),
		},
		{
			name: "bad layout",
			yaml: "layout: zigzag\n",
			err:  true,
		},
		{
			name: "negative cache",
			yaml: "cache_size: -1\n",
			err:  true,
		},
		{
			name: "zero concurrency",
			yaml: "concurrency: 0\n",
			err:  true,
		},
		{
			name: "bad log level",
			yaml: "log_level: loud\n",
			err:  true,
		},
		{
			name: "unknown field",
			yaml: "colour: blue\n",
			err:  true,
		},
		{
			name: "not yaml",
			yaml: "[unclosed",
			err:  true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			c, err := Read(strings.NewReader(test.yaml))
			if test.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, c)
		})
	}
}

func TestValidate_errInvalid(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Layout = "zigzag"
	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), "Layout")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vocabutil.yaml")
	require.NoError(t, os.WriteFile(path, []byte("file: en-ru.vocab\nlayout: packed\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "en-ru.vocab", c.File)
	require.Equal(t, table.Packed, c.TableLayout())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfig_VocabOptions(t *testing.T) {
	t.Parallel()

	log := zap.NewNop()
	c := Default()
	opts := c.VocabOptions(log)

	require.Equal(t, table.Terminated, opts.Layout)
	require.Same(t, log, opts.Logger)
	require.Equal(t, c.CacheSize, opts.CacheSize)
	require.Equal(t, c.Concurrency, opts.Concurrency)
	require.Equal(t, c.MaxResults, opts.MaxResults)
	require.Nil(t, opts.Folder)
}
