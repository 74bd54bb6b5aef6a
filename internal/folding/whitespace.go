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

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Whitespace trims leading and trailing whitespace and collapses each
// internal whitespace run into a single ASCII space.
type Whitespace struct {
	// seenText is set once a non-space rune has been written.
	seenText bool

	// pendingSpace is set while inside a whitespace run that follows text.
	pendingSpace bool
}

// Transform implements [transform.Transformer.Transform].
func (w *Whitespace) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(r) {
			// A run is only written once text follows it.
			w.pendingSpace = w.seenText
			nSrc += size
			continue
		}

		need := utf8.RuneLen(r)
		if w.pendingSpace {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		if w.pendingSpace {
			dst[nDst] = ' '
			nDst++
			w.pendingSpace = false
		}
		// Invalid bytes are written as utf8.RuneError.
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
		w.seenText = true
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *Whitespace) Reset() {
	*w = Whitespace{}
}
