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

// Package source implements random access to vocabulary files.
//
// Vocabulary files can be read from:
//  1. Local files, which are memory mapped.
//  2. Local files compressed with dictzip (a '.dz' extension). The dictzip
//     format allows random access without decompressing the whole file.
//  3. Objects in Amazon S3 (s3://bucket/key URIs), read with ranged GETs.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-vocab/table"
)

var (
	// ErrUnsupportedScheme indicates that a URI scheme has no Source.
	ErrUnsupportedScheme = errors.New("unsupported scheme")

	errOffsetTooLarge = errors.New("offset too large")
	errLengthTooLarge = errors.New("length too large")
)

// chunkSize is the largest buffer allocated up front when the size of the
// underlying reader is unknown.
const chunkSize = 1 << 16

// Source is a table.Source that holds resources that must be released with
// Close.
type Source interface {
	table.Source
	io.Closer
}

// Open opens the vocabulary file at uri. uri is either a local file path, a
// file:// URI, or an s3://bucket/key URI. Local files with a '.dz' extension
// are read as dictzip files.
func Open(ctx context.Context, uri string) (Source, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows paths with a drive letter.
		return openLocal(uri)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return openLocal(filepath.FromSlash(u.Path))
	case "s3":
		return OpenS3(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func openLocal(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".dz") {
		return OpenDictZip(path)
	}
	return OpenFile(path)
}

// ReaderAt is a Source backed by an io.ReaderAt.
type ReaderAt struct {
	r io.ReaderAt
}

// NewReaderAt returns a new Source that reads from r. r must be safe for
// concurrent use.
func NewReaderAt(r io.ReaderAt) *ReaderAt {
	return &ReaderAt{r: r}
}

// ReadBytes implements table.Source.
func (s *ReaderAt) ReadBytes(ctx context.Context, position, length uint64) ([]byte, error) {
	return readAt(ctx, s.r, -1, position, length)
}

// Close closes the underlying reader if it implements io.Closer.
func (s *ReaderAt) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		//nolint:wrapcheck // error should not be wrapped
		return c.Close()
	}
	return nil
}

// checkRange checks that [position, position+length) can be addressed.
func checkRange(position, length uint64) error {
	if position > math.MaxInt64 {
		return fmt.Errorf("%w: %d", errOffsetTooLarge, position)
	}
	if length > math.MaxInt64-position || length > math.MaxInt {
		return fmt.Errorf("%w: %d", errLengthTooLarge, length)
	}
	return nil
}

// readAt reads exactly length bytes at position from r, which holds size
// bytes. A negative size means the size of r is unknown, in which case r is
// read in chunks so that a bad length cannot force a large allocation.
func readAt(ctx context.Context, r io.ReaderAt, size int64, position, length uint64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck // error should not be wrapped
		return nil, err
	}
	if err := checkRange(position, length); err != nil {
		return nil, err
	}
	if size >= 0 && position+length > uint64(size) {
		return nil, io.ErrUnexpectedEOF
	}
	if size < 0 && length > chunkSize {
		return readChunks(ctx, r, position, length)
	}

	b := make([]byte, length)
	// NOTE: ReadAt returns an error whenever it reads fewer than len(b) bytes.
	//nolint:gosec // offset size is bounds checked above.
	n, err := r.ReadAt(b, int64(position))
	if n == len(b) {
		return b, nil
	}
	return nil, unexpectedEOF(err)
}

// readChunks reads length bytes at position from r one chunk at a time.
func readChunks(ctx context.Context, r io.ReaderAt, position, length uint64) ([]byte, error) {
	var b []byte
	chunk := make([]byte, chunkSize)
	for uint64(len(b)) < length {
		if err := ctx.Err(); err != nil {
			//nolint:wrapcheck // error should not be wrapped
			return nil, err
		}
		chunk = chunk[:min(uint64(chunkSize), length-uint64(len(b)))]
		//nolint:gosec // offset size is bounds checked by the caller.
		n, err := r.ReadAt(chunk, int64(position)+int64(len(b)))
		b = append(b, chunk[:n]...)
		if n < len(chunk) {
			return nil, unexpectedEOF(err)
		}
	}
	return b, nil
}

func unexpectedEOF(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	//nolint:wrapcheck // error should not be wrapped
	return err
}
