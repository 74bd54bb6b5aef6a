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
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ianlewis/go-vocab/codec"
)

const (
	// HeaderSize is the size of a table header.
	HeaderSize = 2 * codec.Uint32Size

	// RootOffset is the file offset of the root table. The root table
	// immediately follows the root table length.
	RootOffset = codec.Uint32Size
)

// Source reads byte ranges from a vocabulary file. ReadBytes must return
// exactly length bytes or an error. Implementations must be safe for
// concurrent use.
type Source interface {
	ReadBytes(ctx context.Context, position, length uint64) ([]byte, error)
}

// Header is a table header.
type Header struct {
	// DataOffset is the offset of the table's word data segment.
	DataOffset uint32

	// DataLength is the length of the table's word data segment.
	DataLength uint32
}

// HasData returns true if the header points to a word data segment.
func (h Header) HasData() bool {
	return h.DataOffset != 0 && h.DataLength != 0
}

// Entry is a table entry.
type Entry struct {
	// Letter is the letter or prefix of the entry.
	Letter string

	// WordCount is the number of words under the letter.
	WordCount uint32

	// NextOffset is the offset of the letter's sub-table.
	NextOffset uint32

	// NextLength is the length of the letter's sub-table.
	NextLength uint32
}

// HasNext returns true if the entry has a sub-table.
func (e Entry) HasNext() bool {
	return e.NextLength > 0
}

// Table is a decoded lookup table.
type Table struct {
	Header

	// Entries are the table's entries in file order.
	Entries []Entry

	// Words are the words in the table's data segment. Words is empty if the
	// table has no data segment.
	Words []Word
}

// Find returns the entry with the given letter.
func (t *Table) Find(letter string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.Letter == letter {
			return e, true
		}
	}
	return Entry{}, false
}

// Options are options for reading tables.
type Options struct {
	// Layout is the layout of table entries.
	Layout Layout

	// Logger is used to log reads. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions are the default options for reading tables.
var DefaultOptions = &Options{
	Layout: Terminated,
}

func (o *Options) logger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *Options) layout() Layout {
	if o == nil {
		return DefaultOptions.Layout
	}
	return o.Layout
}

// ReadRootLength reads the length of the root table from the start of the
// file.
func ReadRootLength(ctx context.Context, src Source) (uint32, error) {
	b, err := readBytes(ctx, src, 0, codec.Uint32Size)
	if err != nil {
		return 0, err
	}
	//nolint:wrapcheck // b is always large enough.
	return codec.ReadUint32(b, 0)
}

// ReadRoot reads the root table length and then the root table.
func ReadRoot(ctx context.Context, src Source, opts *Options) (*Table, error) {
	length, err := ReadRootLength(ctx, src)
	if err != nil {
		return nil, err
	}
	return Read(ctx, src, RootOffset, length, opts)
}

// Read reads the table at [offset, offset+length) from src. If the table has
// a word data segment it is read after the table's entries are parsed.
//
// If the data segment cannot be read or decoded Read returns the table with
// its entries and nil Words along with a *DataSegmentError.
func Read(ctx context.Context, src Source, offset, length uint32, opts *Options) (*Table, error) {
	log := opts.logger()
	log.Debug("reading table", zap.Uint32("offset", offset), zap.Uint32("length", length))

	b, err := readBytes(ctx, src, uint64(offset), uint64(length))
	if err != nil {
		return nil, err
	}

	var t Table
	if t.DataOffset, err = codec.ReadUint32(b, 0); err != nil {
		return nil, fmt.Errorf("%w: header at %d: %w", ErrMalformedTable, offset, err)
	}
	if t.DataLength, err = codec.ReadUint32(b, codec.Uint32Size); err != nil {
		return nil, fmt.Errorf("%w: header at %d: %w", ErrMalformedTable, offset, err)
	}

	t.Entries = []Entry{}
	s := NewScanner(b[HeaderSize:], opts.layout())
	for s.Scan() {
		t.Entries = append(t.Entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("table at %d: %w", offset, err)
	}
	if d := s.Dropped(); d > 0 {
		log.Warn("dropped undecodable letter bytes", zap.Uint32("offset", offset), zap.Int("bytes", d))
	}

	if !t.HasData() {
		t.Words = []Word{}
		return &t, nil
	}

	log.Debug("reading data segment",
		zap.Uint32("offset", t.DataOffset), zap.Uint32("length", t.DataLength))
	t.Words, err = readWords(ctx, src, t.Header, log)
	if err != nil {
		return &t, err
	}
	return &t, nil
}

func readWords(ctx context.Context, src Source, h Header, log *zap.Logger) ([]Word, error) {
	b, err := readSource(ctx, src, uint64(h.DataOffset), uint64(h.DataLength))
	if err != nil {
		return nil, &DataSegmentError{
			Offset: h.DataOffset,
			Length: h.DataLength,
			Err:    err,
		}
	}

	words, dropped, err := decodeWords(b)
	if dropped > 0 {
		log.Warn("dropped undecodable data segment bytes",
			zap.Uint32("offset", h.DataOffset), zap.Int("bytes", dropped))
	}
	if err != nil {
		return nil, &DataSegmentError{
			Offset: h.DataOffset,
			Length: h.DataLength,
			Err:    err,
		}
	}
	return words, nil
}

// readBytes reads exactly length bytes from src. Failures are returned as a
// *ReadError.
func readBytes(ctx context.Context, src Source, offset, length uint64) ([]byte, error) {
	b, err := readSource(ctx, src, offset, length)
	if err != nil {
		return nil, newReadError(offset, length, err)
	}
	return b, nil
}

// readSource reads exactly length bytes from src.
func readSource(ctx context.Context, src Source, offset, length uint64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck // error should not be wrapped
		return nil, err
	}
	b, err := src.ReadBytes(ctx, offset, length)
	if err != nil {
		//nolint:wrapcheck // callers wrap with the read's offset and length
		return nil, err
	}
	if uint64(len(b)) != length {
		return nil, fmt.Errorf("%w: read %d bytes", io.ErrUnexpectedEOF, len(b))
	}
	return b, nil
}
