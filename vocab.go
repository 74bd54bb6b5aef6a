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

package vocab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-vocab/internal/folding"
	"github.com/ianlewis/go-vocab/source"
	"github.com/ianlewis/go-vocab/table"
)

// ErrNoSubTable is returned by Next for entries without a sub-table.
var ErrNoSubTable = errors.New("entry has no sub-table")

// Options are options for reading a vocabulary.
type Options struct {
	// Layout is the layout of table entries.
	Layout table.Layout

	// Logger is used to log reads. Defaults to a no-op logger.
	Logger *zap.Logger

	// CacheSize is the number of decoded tables to keep in memory. Zero
	// disables caching.
	CacheSize int

	// Concurrency is the number of sub-tables fetched at once by Search.
	// Values less than one fetch sequentially.
	Concurrency int

	// MaxResults is the maximum number of words returned by Search. Values
	// less than one return all matching words.
	MaxResults int

	// Folder returns a new transformer used to normalize queries and words
	// before comparing them. Defaults to folding.Default.
	Folder func() transform.Transformer
}

// DefaultOptions are the default options for reading a vocabulary.
var DefaultOptions = &Options{
	Layout:      table.Terminated,
	CacheSize:   256,
	Concurrency: 4,
	MaxResults:  100,
}

// span is the location of a table in the file.
type span struct {
	offset uint32
	length uint32
}

// Vocabulary is a vocabulary file.
type Vocabulary struct {
	src  table.Source
	uri  string
	opts Options
	log  *zap.Logger

	rootLength uint32

	// cache is nil when caching is disabled.
	cache *lru.Cache[span, *table.Table]
}

// OpenAll opens all vocabulary files under a directory. Files with a
// '.vocab' or '.vocab.dz' extension are opened. This function will return
// all successfully opened vocabularies along with any errors that occurred.
func OpenAll(ctx context.Context, path string, opts *Options) ([]*Vocabulary, []error) {
	var vocabs []*Vocabulary
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if info.IsDir() || !IsVocabularyFile(info.Name()) {
			return nil
		}
		v, err := Open(ctx, path, opts)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		vocabs = append(vocabs, v)
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return vocabs, errs
}

// IsVocabularyFile returns whether name has a vocabulary file extension.
func IsVocabularyFile(name string) bool {
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".vocab") || strings.HasSuffix(name, ".vocab.dz")
}

// Open opens the vocabulary file at uri. See source.Open for supported URIs.
// The returned Vocabulary must be closed.
func Open(ctx context.Context, uri string, opts *Options) (*Vocabulary, error) {
	src, err := source.Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", uri, err)
	}

	v, err := New(ctx, src, opts)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("opening %q: %w", uri, err)
	}
	v.uri = uri
	return v, nil
}

// New returns a new Vocabulary read from src. The root table length is read
// immediately. If src implements io.Closer it is closed by Close.
func New(ctx context.Context, src table.Source, opts *Options) (*Vocabulary, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	v := &Vocabulary{
		src:  src,
		opts: *opts,
		log:  opts.Logger,
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
	if v.opts.Folder == nil {
		v.opts.Folder = folding.Default
	}

	if opts.CacheSize > 0 {
		cache, err := lru.New[span, *table.Table](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating table cache: %w", err)
		}
		v.cache = cache
	}

	length, err := table.ReadRootLength(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("reading root table length: %w", err)
	}
	v.rootLength = length
	v.log.Debug("opened vocabulary", zap.Uint32("root_length", length))

	return v, nil
}

// RootLength returns the length of the root table.
func (v *Vocabulary) RootLength() uint32 {
	return v.rootLength
}

// URI returns the URI the vocabulary was opened from. It is empty for
// vocabularies created with New.
func (v *Vocabulary) URI() string {
	return v.uri
}

// WordCount returns the number of words in the vocabulary: the root table's
// own words plus the word counts of its entries.
func (v *Vocabulary) WordCount(ctx context.Context) (uint64, error) {
	root, err := v.Root(ctx)
	if err != nil {
		return 0, err
	}
	n := uint64(len(root.Words))
	for _, e := range root.Entries {
		n += uint64(e.WordCount)
	}
	return n, nil
}

// Root returns the root table.
func (v *Vocabulary) Root(ctx context.Context) (*table.Table, error) {
	return v.Table(ctx, table.RootOffset, v.rootLength)
}

// Table returns the table at [offset, offset+length). Tables may be shared
// between callers and must not be modified.
//
// If the table's data segment cannot be read the table is returned along with
// a *table.DataSegmentError and is not cached.
func (v *Vocabulary) Table(ctx context.Context, offset, length uint32) (*table.Table, error) {
	key := span{offset: offset, length: length}
	if v.cache != nil {
		if t, ok := v.cache.Get(key); ok {
			return t, nil
		}
	}

	t, err := table.Read(ctx, v.src, offset, length, &table.Options{
		Layout: v.opts.Layout,
		Logger: v.log,
	})
	if err != nil {
		//nolint:wrapcheck // error should not be wrapped
		return t, err
	}

	if v.cache != nil {
		v.cache.Add(key, t)
	}
	return t, nil
}

// Next returns the sub-table of e.
func (v *Vocabulary) Next(ctx context.Context, e table.Entry) (*table.Table, error) {
	if !e.HasNext() {
		return nil, fmt.Errorf("%w: %q", ErrNoSubTable, e.Letter)
	}
	return v.Table(ctx, e.NextOffset, e.NextLength)
}

// Close closes the underlying source if it implements io.Closer.
func (v *Vocabulary) Close() error {
	if c, ok := v.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing vocabulary: %w", err)
		}
	}
	return nil
}
