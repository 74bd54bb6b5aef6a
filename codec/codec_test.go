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

package codec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-vocab/codec"
)

// TestReadUint32 tests ReadUint32.
func TestReadUint32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    []byte
		pos  int

		expected uint32
		err      error
	}{
		{
			name:     "zero",
			b:        []byte{0, 0, 0, 0},
			expected: 0,
		},
		{
			name:     "max",
			b:        []byte{0xff, 0xff, 0xff, 0xff},
			expected: 0xffffffff,
		},
		{
			name:     "byte order",
			b:        []byte{0x01, 0x02, 0x03, 0x04},
			expected: 0x01020304,
		},
		{
			name:     "offset",
			b:        []byte{0xaa, 0xbb, 0x00, 0x00, 0x01, 0x00},
			pos:      2,
			expected: 256,
		},
		{
			name: "short buffer",
			b:    []byte{0x01, 0x02, 0x03},
			err:  codec.ErrOutOfBounds,
		},
		{
			name: "past end",
			b:    []byte{0x01, 0x02, 0x03, 0x04, 0x05},
			pos:  2,
			err:  codec.ErrOutOfBounds,
		},
		{
			name: "negative position",
			b:    []byte{0x01, 0x02, 0x03, 0x04},
			pos:  -1,
			err:  codec.ErrOutOfBounds,
		},
		{
			name: "nil buffer",
			err:  codec.ErrOutOfBounds,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := codec.ReadUint32(test.b, test.pos)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("ReadUint32 err (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("ReadUint32 (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestDecodeText tests DecodeTextDropped.
func TestDecodeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		b     []byte
		limit int
		start int

		expected string
		dropped  int
	}{
		{
			name:     "empty",
			b:        nil,
			limit:    codec.NoLimit,
			expected: "",
		},
		{
			name:     "ascii",
			b:        []byte("hello"),
			limit:    codec.NoLimit,
			expected: "hello",
		},
		{
			name:     "ascii limit",
			b:        []byte("hello"),
			limit:    3,
			expected: "hel",
		},
		{
			name:     "zero limit",
			b:        []byte("hello"),
			limit:    0,
			expected: "",
		},
		{
			name:     "start",
			b:        []byte("hello"),
			limit:    codec.NoLimit,
			start:    2,
			expected: "llo",
		},
		{
			name:     "start past end",
			b:        []byte("hello"),
			limit:    codec.NoLimit,
			start:    10,
			expected: "",
		},
		{
			name:     "two byte lower bound",
			b:        []byte{0xc2, 0x80},
			limit:    codec.NoLimit,
			expected: "\u0080",
		},
		{
			name:     "three byte lower bound",
			b:        []byte{0xe0, 0xa0, 0x80},
			limit:    codec.NoLimit,
			expected: "ࠀ",
		},
		{
			name:     "cyrillic",
			b:        []byte("слово"),
			limit:    codec.NoLimit,
			expected: "слово",
		},
		{
			name:     "mixed widths",
			b:        []byte("a€é"),
			limit:    codec.NoLimit,
			expected: "a€é",
		},
		{
			name:     "limit counts characters",
			b:        []byte("éa"),
			limit:    1,
			expected: "é",
		},
		{
			name:     "four byte sequence dropped",
			b:        []byte("\U0001F600a"),
			limit:    codec.NoLimit,
			expected: "a",
			dropped:  4,
		},
		{
			name:     "stray continuation dropped",
			b:        []byte{0x80, 'a'},
			limit:    codec.NoLimit,
			expected: "a",
			dropped:  1,
		},
		{
			name:     "dropped bytes do not count toward limit",
			b:        []byte{0xbf, 0xbf, 'a', 'b'},
			limit:    1,
			expected: "a",
			dropped:  2,
		},
		{
			// NOTE: missing continuation bits are zero.
			name:     "truncated two byte sequence",
			b:        []byte{0xc3},
			limit:    codec.NoLimit,
			expected: "À",
		},
		{
			name:     "truncated three byte sequence",
			b:        []byte{0xe2, 0x82},
			limit:    codec.NoLimit,
			expected: "₀",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, dropped := codec.DecodeTextDropped(test.b, test.limit, test.start)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("DecodeTextDropped (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.dropped, dropped); diff != "" {
				t.Fatalf("DecodeTextDropped dropped (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(got, codec.DecodeText(test.b, test.limit, test.start)); diff != "" {
				t.Fatalf("DecodeText (-want, +got):\n%s", diff)
			}
		})
	}
}
