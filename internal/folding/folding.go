// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package folding normalizes words so that queries and vocabulary entries
// can be compared.
package folding

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Default returns a new transformer that composes the input to NFC, folds
// whitespace, and lower cases it. Vocabulary tries are built on lower cased
// words so queries must be folded the same way.
func Default() transform.Transformer {
	return transform.Chain(
		norm.NFC,
		&Whitespace{},
		cases.Lower(language.Und),
	)
}

// String folds s with t. If t fails s is returned unchanged.
func String(t transform.Transformer, s string) string {
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
