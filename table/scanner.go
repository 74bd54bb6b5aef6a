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
	"bufio"
	"bytes"
	"fmt"

	"github.com/ianlewis/go-vocab/codec"
)

// entryFieldsSize is the size of the integer fields following an entry's
// letter: the word count, sub-table offset, and sub-table length.
const entryFieldsSize = 3 * codec.Uint32Size

// Layout is the layout of table entries.
type Layout int

const (
	// Terminated entries end the letter with a zero byte that is followed by
	// the integer fields.
	Terminated Layout = iota

	// Packed entries have no terminator of their own. The letter ends at the
	// first zero byte, which is the high byte of the word count. This is the
	// layout written by the vocabulary generator and only works for
	// word counts below 2^24.
	Packed
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case Terminated:
		return "terminated"
	case Packed:
		return "packed"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// fieldsOffset returns the offset of the integer fields from the zero byte
// ending the letter.
func (l Layout) fieldsOffset() int {
	if l == Packed {
		return 0
	}
	return 1
}

// Scanner scans the entries of a table from start to end.
type Scanner struct {
	s      *bufio.Scanner
	layout Layout

	// pos is the offset of the next entry from the start of the entries.
	pos int

	entry   Entry
	err     error
	dropped int
}

// NewScanner returns a new Scanner that scans table entries in b. b holds
// the entries only, without the table header.
func NewScanner(b []byte, layout Layout) *Scanner {
	s := &Scanner{
		s:      bufio.NewScanner(bytes.NewReader(b)),
		layout: layout,
	}
	// Letters have no fixed maximum size. The whole table may be one token.
	s.s.Buffer(nil, len(b)+1)
	s.s.Split(s.splitEntry)
	return s
}

// Scan advances the scanner to the next entry. It returns false if the scan
// stops either by reaching the end of the table or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if !s.s.Scan() {
		return false
	}

	token := s.s.Bytes()
	s.entry, s.err = s.parseEntry(token)
	if s.err != nil {
		return false
	}
	s.pos += len(token)
	return true
}

// Entry returns the most recently scanned entry.
func (s *Scanner) Entry() Entry {
	return s.entry
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	//nolint:wrapcheck // error is created by splitEntry.
	return s.s.Err()
}

// Dropped returns the number of letter bytes that were skipped by the text
// decoder so far.
func (s *Scanner) Dropped() int {
	return s.dropped
}

func (s *Scanner) parseEntry(token []byte) (Entry, error) {
	var e Entry
	i := bytes.IndexByte(token, 0)
	if i < 0 {
		return e, fmt.Errorf("%w: unterminated letter at entry offset %d", ErrMalformedTable, s.pos)
	}

	var dropped int
	e.Letter, dropped = codec.DecodeTextDropped(token[:i], i, 0)
	s.dropped += dropped

	fields := []*uint32{&e.WordCount, &e.NextOffset, &e.NextLength}
	pos := i + s.layout.fieldsOffset()
	for _, f := range fields {
		v, err := codec.ReadUint32(token, pos)
		if err != nil {
			return e, fmt.Errorf("%w: entry offset %d: %w", ErrMalformedTable, s.pos, err)
		}
		*f = v
		pos += codec.Uint32Size
	}

	return e, nil
}

// splitEntry splits an entry in the table.
func (s *Scanner) splitEntry(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// Found the zero byte ending the letter.
		tokenSize := i + s.layout.fieldsOffset() + entryFieldsSize
		if len(data) >= tokenSize {
			return tokenSize, data[:tokenSize], nil
		}
	}

	if atEOF {
		return 0, nil, fmt.Errorf("%w: truncated entry at entry offset %d (%d bytes left)",
			ErrMalformedTable, s.pos, len(data))
	}

	// Request more data.
	return 0, nil, nil
}
