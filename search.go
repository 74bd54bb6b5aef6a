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
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-vocab/internal/folding"
	"github.com/ianlewis/go-vocab/internal/index"
	"github.com/ianlewis/go-vocab/table"
)

// Match is the result of descending the trie along a query.
type Match struct {
	// Prefix is the part of the folded query matched by entry letters.
	Prefix string

	// Remainder is the part of the folded query left after Prefix.
	Remainder string

	// Path are the entries followed from the root table.
	Path []table.Entry

	// Table is the deepest table reached.
	Table *table.Table
}

// Fold normalizes s using the vocabulary's folder.
func (v *Vocabulary) Fold(s string) string {
	return folding.String(v.opts.Folder(), s)
}

// Lookup folds query and descends from the root table for as long as the
// rest of the query starts with an entry's letter and that entry has a
// sub-table.
func (v *Vocabulary) Lookup(ctx context.Context, query string) (*Match, error) {
	return v.lookup(ctx, v.Fold(query))
}

func (v *Vocabulary) lookup(ctx context.Context, q string) (*Match, error) {
	t, err := v.Root(ctx)
	if err != nil {
		return nil, err
	}

	m := &Match{
		Remainder: q,
		Table:     t,
	}
	for m.Remainder != "" {
		e, ok := longestLetter(m.Table, m.Remainder)
		if !ok || !e.HasNext() {
			break
		}

		next, err := v.Next(ctx, e)
		if err != nil {
			return nil, err
		}

		m.Prefix += e.Letter
		m.Remainder = m.Remainder[len(e.Letter):]
		m.Path = append(m.Path, e)
		m.Table = next
	}
	return m, nil
}

// longestLetter returns the entry with the longest non-empty letter that
// prefixes q.
func longestLetter(t *table.Table, q string) (table.Entry, bool) {
	var found table.Entry
	var ok bool
	for _, e := range t.Entries {
		if e.Letter == "" || !strings.HasPrefix(q, e.Letter) {
			continue
		}
		if !ok || len(e.Letter) > len(found.Letter) {
			found, ok = e, true
		}
	}
	return found, ok
}

// Find returns the words whose folded original equals the folded word.
func (v *Vocabulary) Find(ctx context.Context, word string) ([]table.Word, error) {
	m, err := v.Lookup(ctx, word)
	if err != nil {
		return nil, err
	}
	return v.index(m.Table.Words).Search(m.Prefix + m.Remainder), nil
}

// Search returns the words whose folded original starts with the folded
// query. Words are returned depth first in trie order, each table's words
// sorted by their folded original. At most Options.MaxResults words are
// returned.
//
// When the query is fully matched by entry letters every word under the
// matched table is considered and sibling sub-tables are fetched
// concurrently. Otherwise only the matched table's own words are.
func (v *Vocabulary) Search(ctx context.Context, query string) ([]table.Word, error) {
	q := v.Fold(query)
	m, err := v.lookup(ctx, q)
	if err != nil {
		return nil, err
	}
	v.log.Debug("search",
		zap.String("query", q),
		zap.String("prefix", m.Prefix),
		zap.String("remainder", m.Remainder),
	)

	if m.Remainder != "" {
		return v.limit(v.index(m.Table.Words).Prefix(q)), nil
	}

	start := span{offset: table.RootOffset, length: v.rootLength}
	if len(m.Path) > 0 {
		last := m.Path[len(m.Path)-1]
		start = span{offset: last.NextOffset, length: last.NextLength}
	}
	w := &walker{
		v:     v,
		q:     q,
		limit: v.opts.MaxResults,
		seen:  map[span]bool{start: true},
	}
	if err := w.walk(ctx, m.Table); err != nil {
		return nil, err
	}
	return w.words, nil
}

func (v *Vocabulary) index(words []table.Word) *index.Index[table.Word] {
	return index.New(words, func(w table.Word) string {
		return v.Fold(w.Original)
	})
}

func (v *Vocabulary) limit(words []table.Word) []table.Word {
	if v.opts.MaxResults > 0 && len(words) > v.opts.MaxResults {
		return words[:v.opts.MaxResults]
	}
	return words
}

// walker collects words from a sub-trie.
type walker struct {
	v     *Vocabulary
	q     string
	limit int

	// seen holds the tables already visited. Each table is walked once even
	// if an entry points back up the trie.
	seen map[span]bool

	words []table.Word
}

func (w *walker) full() bool {
	return w.limit > 0 && len(w.words) >= w.limit
}

func (w *walker) walk(ctx context.Context, t *table.Table) error {
	for _, word := range w.v.index(t.Words).Prefix(w.q) {
		if w.full() {
			return nil
		}
		w.words = append(w.words, word)
	}

	var entries []table.Entry
	for _, e := range t.Entries {
		s := span{offset: e.NextOffset, length: e.NextLength}
		if !e.HasNext() || w.seen[s] {
			continue
		}
		w.seen[s] = true
		entries = append(entries, e)
	}
	if len(entries) == 0 || w.full() {
		return nil
	}

	children := make([]*table.Table, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(w.v.opts.Concurrency, 1))
	for i, e := range entries {
		g.Go(func() error {
			child, err := w.v.Next(gctx, e)
			if err != nil {
				return err
			}
			children[i] = child
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		//nolint:wrapcheck // error should not be wrapped
		return err
	}

	for _, child := range children {
		if err := w.walk(ctx, child); err != nil {
			return err
		}
		if w.full() {
			return nil
		}
	}
	return nil
}
