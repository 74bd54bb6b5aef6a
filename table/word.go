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

package table

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ianlewis/go-vocab/codec"
)

var errWordFormat = errors.New("invalid word")

// Word is a word from a table's data segment.
type Word struct {
	// Original is the word itself.
	Original string `json:"i"`

	// Translation is the translation of the word. It may contain HTML.
	Translation string `json:"o,omitempty"`

	// Transcription is the phonetic transcription of the word.
	Transcription string `json:"s,omitempty"`
}

// String returns the original word.
func (w Word) String() string {
	return w.Original
}

// UnmarshalJSON implements json.Unmarshaler. A word is either a JSON string
// holding the original word or an object with the keys "i" (original), "o"
// (translation) and "s" (transcription).
func (w *Word) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("%w: empty", errWordFormat)
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("%w: %w", errWordFormat, err)
		}
		*w = Word{Original: s}
		return nil
	case '{':
		// word has no methods so it does not recurse into UnmarshalJSON.
		type word Word
		var v word
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("%w: %w", errWordFormat, err)
		}
		*w = Word(v)
		return nil
	default:
		return fmt.Errorf("%w: %.20s", errWordFormat, b)
	}
}

// decodeWords decodes a data segment. It returns the words and the number of
// bytes dropped by the text decoder.
func decodeWords(b []byte) ([]Word, int, error) {
	text, dropped := codec.DecodeTextDropped(b, codec.NoLimit, 0)

	var words []Word
	if err := json.Unmarshal([]byte(text), &words); err != nil {
		return nil, dropped, fmt.Errorf("decoding word list: %w", err)
	}
	if words == nil {
		words = []Word{}
	}
	return words, dropped, nil
}
