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
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-vocab/internal/testutil"
	"github.com/ianlewis/go-vocab/table"
)

var testRoot = &testutil.Node{
	Children: []*testutil.Child{
		{
			Letter: "c",
			Node: &testutil.Node{
				Words: []table.Word{
					{Original: "car", Translation: "<b>машина</b>"},
					{Original: "Cat", Translation: "кошка", Transcription: "kæt"},
				},
			},
		},
		{
			Letter: "d",
			Node:   &testutil.Node{Words: []table.Word{{Original: "dog"}}},
		},
	},
}

func runApp(args ...string) (string, error) {
	app := newVocabutilApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.RunContext(context.Background(), append([]string{"vocabutil"}, args...))
	return out.String(), err
}

func TestQuery(t *testing.T) {
	t.Parallel()

	path := testutil.MakeTempVocabulary(t, testutil.MakeVocabulary(testRoot, table.Terminated), nil)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "prefix",
			args:     []string{"--file", path, "query", "c"},
			expected: "car\n    машина\nCat [kæt]\n    кошка\n",
		},
		{
			name:     "folded",
			args:     []string{"-f", path, "query", "CA"},
			expected: "car\n    машина\nCat [kæt]\n    кошка\n",
		},
		{
			name:     "exact",
			args:     []string{"-f", path, "query", "--exact", "cat"},
			expected: "Cat [kæt]\n    кошка\n",
		},
		{
			name:     "no results",
			args:     []string{"-f", path, "query", "x"},
			expected: "",
		},
		{
			name:     "max results from config",
			args:     []string{"-f", path, "--config", writeConfig(t, "max_results: 1\n"), "query", "c"},
			expected: "car\n    машина\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			out, err := runApp(test.args...)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if diff := cmp.Diff(test.expected, out); diff != "" {
				t.Fatalf("output (-want, +got):\n%s", diff)
			}
		})
	}
}

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vocabutil.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInfo(t *testing.T) {
	t.Parallel()

	path := testutil.MakeTempVocabulary(t, testutil.MakeVocabulary(testRoot, table.Packed), &testutil.MakeTempOptions{DictZip: true})

	out, err := runApp("-f", path, "--layout", "packed", "info")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{
		"File:         " + path,
		"Layout:       packed",
		"Word count:   3",
		`"c"`,
		`"d"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutOverridesConfig(t *testing.T) {
	t.Parallel()

	path := testutil.MakeTempVocabulary(t, testutil.MakeVocabulary(testRoot, table.Terminated), nil)
	cfg := writeConfig(t, "layout: packed\n")

	out, err := runApp("-f", path, "-c", cfg, "--layout", "terminated", "query", "cat")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff("Cat [kæt]\n    кошка\n", out); diff != "" {
		t.Fatalf("output (-want, +got):\n%s", diff)
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	b := testutil.MakeVocabulary(testRoot, table.Terminated)
	path := testutil.MakeTempVocabulary(t, b, nil)
	rootLength := binary.BigEndian.Uint32(b)

	out, err := runApp("-f", path, "table", "--offset", "4", "--length", fmt.Sprint(rootLength))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"Data offset:  0", "Data length:  0", `"c"`, `"d"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	b := testutil.MakeVocabulary(testRoot, table.Terminated)
	path := testutil.MakeTempVocabulary(t, b, nil)

	out, err := runApp("list", filepath.Dir(path))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output missing %q:\n%s", path, out)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := runApp("--version")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "GitVersion") {
		t.Errorf("unexpected version output:\n%s", out)
	}
}

func TestErrors(t *testing.T) {
	t.Setenv(envFile, "")
	t.Setenv(envConfig, "")

	path := testutil.MakeTempVocabulary(t, testutil.MakeVocabulary(testRoot, table.Terminated), nil)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{
			name: "no file",
			args: []string{"query", "cat"},
			code: ExitCodeFlagParseError,
		},
		{
			name: "no query",
			args: []string{"-f", path, "query"},
			code: ExitCodeFlagParseError,
		},
		{
			name: "missing offset",
			args: []string{"-f", path, "table", "--length", "10"},
			code: ExitCodeFlagParseError,
		},
		{
			name: "offset too large",
			args: []string{"-f", path, "table", "--offset", "4294967296", "--length", "10"},
			code: ExitCodeFlagParseError,
		},
		{
			name: "bad log level",
			args: []string{"-f", path, "--log-level", "loud", "info"},
			code: ExitCodeFlagParseError,
		},
		{
			name: "bad layout",
			args: []string{"-f", path, "--layout", "compact", "info"},
			code: ExitCodeFlagParseError,
		},
		{
			name: "unknown flag",
			args: []string{"--frobnicate"},
			code: ExitCodeFlagParseError,
		},
		{
			name: "missing file",
			args: []string{"-f", path + ".missing", "info"},
			code: ExitCodeUnknownError,
		},
		{
			name: "table past end",
			args: []string{"-f", path, "table", "--offset", "4", "--length", "100000"},
			code: ExitCodeUnknownError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := runApp(test.args...)
			if diff := cmp.Diff(test.code, exitCode(err)); diff != "" {
				t.Fatalf("exit code for %v (-want, +got):\n%s", err, diff)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff(ExitCodeSuccess, exitCode(nil)); diff != "" {
		t.Errorf("exitCode(nil) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(ExitCodeUnknownError, exitCode(errors.New("boom"))); diff != "" {
		t.Errorf("exitCode (-want, +got):\n%s", diff)
	}
}
