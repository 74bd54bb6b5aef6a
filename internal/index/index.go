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

// Package index implements a sorted index over a table's words.
package index

import (
	"slices"
	"sort"
	"strings"
)

type item[V any] struct {
	key   string
	value V
}

// Index is a generic sorted array index keyed by strings.
type Index[V any] struct {
	items []item[V]
}

// New creates an index of values keyed by key(v). Values with equal keys keep
// their relative order.
func New[V any](values []V, key func(V) string) *Index[V] {
	items := make([]item[V], len(values))
	for i, v := range values {
		items[i] = item[V]{key: key(v), value: v}
	}
	slices.SortStableFunc(items, func(a, b item[V]) int {
		return strings.Compare(a.key, b.key)
	})
	return &Index[V]{items: items}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.items)
}

// Search returns the values whose key equals k.
func (idx *Index[V]) Search(k string) []V {
	return idx.scan(k, func(key string) bool { return key == k })
}

// Prefix returns the values whose key starts with prefix in key order.
func (idx *Index[V]) Prefix(prefix string) []V {
	return idx.scan(prefix, func(key string) bool { return strings.HasPrefix(key, prefix) })
}

func (idx *Index[V]) scan(start string, match func(string) bool) []V {
	i := sort.Search(len(idx.items), func(i int) bool {
		return idx.items[i].key >= start
	})

	var values []V
	for ; i < len(idx.items) && match(idx.items[i].key); i++ {
		values = append(values, idx.items[i].value)
	}
	return values
}
