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

package codec

import (
	"strings"
)

// NoLimit may be passed to DecodeText to decode the whole buffer.
const NoLimit = -1

// DecodeText decodes restricted utf-8 text starting at b[start]. Decoding
// stops at the end of b or once limit characters have been decoded. A
// negative limit decodes until the end of b.
//
// Lead bytes that do not start a one, two, or three byte sequence (stray
// continuation bytes and four byte sequence leads) produce no output and are
// skipped one byte at a time.
func DecodeText(b []byte, limit, start int) string {
	s, _ := DecodeTextDropped(b, limit, start)
	return s
}

// DecodeTextDropped is like DecodeText but also returns the number of bytes
// that were skipped because they were not valid lead bytes.
func DecodeTextDropped(b []byte, limit, start int) (string, int) {
	if start < 0 {
		start = 0
	}

	var sb strings.Builder
	var n, dropped int
	for i := start; i < len(b) && (limit < 0 || n < limit); {
		c := b[i]
		i++

		switch c >> 4 {
		case 0, 1, 2, 3, 4, 5, 6, 7:
			// 0xxxxxxx
			sb.WriteRune(rune(c))
		case 12, 13:
			// 110xxxxx 10xxxxxx
			c1 := byteAt(b, i)
			i++
			sb.WriteRune(rune(c&0x1f)<<6 | rune(c1&0x3f))
		case 14:
			// 1110xxxx 10xxxxxx 10xxxxxx
			c1 := byteAt(b, i)
			c2 := byteAt(b, i+1)
			i += 2
			sb.WriteRune(rune(c&0x0f)<<12 | rune(c1&0x3f)<<6 | rune(c2&0x3f))
		default:
			dropped++
			continue
		}
		n++
	}

	return sb.String(), dropped
}

// byteAt returns b[i] or zero when i is past the end of b. Sequences cut off
// by the end of the buffer decode with their missing bits set to zero.
func byteAt(b []byte, i int) byte {
	if i < len(b) {
		return b[i]
	}
	return 0
}
