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

package testutil

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-vocab/table"
)

// Node is a node in a test vocabulary trie.
type Node struct {
	// Words are stored in the node's data segment.
	Words []table.Word

	// Children are the node's entries.
	Children []*Child
}

// Child is a lettered child of a Node.
type Child struct {
	Letter string

	// Node is the child's sub-table. A nil Node makes a leaf entry with no
	// sub-table.
	Node *Node
}

// Count returns the number of words in the trie rooted at n.
func (n *Node) Count() uint32 {
	if n == nil {
		return 0
	}
	c := uint32(len(n.Words))
	for _, ch := range n.Children {
		c += ch.Node.Count()
	}
	return c
}

// MakeUint32 returns x in network byte order.
func MakeUint32(x uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, x)
	return b
}

// MakeEntry makes a single table entry.
func MakeEntry(e table.Entry, layout table.Layout) []byte {
	b := []byte(e.Letter)
	if layout == table.Terminated {
		b = append(b, 0) // Add the zero byte terminator.
	}
	b = append(b, MakeUint32(e.WordCount)...)
	b = append(b, MakeUint32(e.NextOffset)...)
	b = append(b, MakeUint32(e.NextLength)...)
	return b
}

// MakeTable makes a table from a header and entries.
func MakeTable(h table.Header, entries []table.Entry, layout table.Layout) []byte {
	b := MakeUint32(h.DataOffset)
	b = append(b, MakeUint32(h.DataLength)...)
	for _, e := range entries {
		b = append(b, MakeEntry(e, layout)...)
	}
	return b
}

// MakeWords makes a word data segment.
func MakeWords(words []table.Word) []byte {
	b, err := json.Marshal(words)
	if err != nil {
		panic(fmt.Sprintf("marshaling words: %v", err))
	}
	return b
}

// MakeVocabulary makes a vocabulary file from a trie in the layout written by
// the vocabulary generator: the root table length, all tables in pre-order,
// then all data segments in the same order.
func MakeVocabulary(root *Node, layout table.Layout) []byte {
	var nodes []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		nodes = append(nodes, n)
		for _, ch := range n.Children {
			if ch.Node != nil {
				walk(ch.Node)
			}
		}
	}
	walk(root)

	tableLen := map[*Node]int{}
	tableOff := map[*Node]int{}
	pos := table.RootOffset
	for _, n := range nodes {
		l := table.HeaderSize
		for _, ch := range n.Children {
			l += len(MakeEntry(table.Entry{Letter: ch.Letter}, layout))
		}
		tableLen[n] = l
		tableOff[n] = pos
		pos += l
	}

	data := map[*Node][]byte{}
	dataOff := map[*Node]int{}
	for _, n := range nodes {
		if len(n.Words) == 0 {
			continue
		}
		data[n] = MakeWords(n.Words)
		dataOff[n] = pos
		pos += len(data[n])
	}
	if pos > math.MaxUint32 {
		panic(fmt.Sprintf("vocabulary too large: %d", pos))
	}

	//nolint:gosec // sizes are bounds checked above.
	b := MakeUint32(uint32(tableLen[root]))
	for _, n := range nodes {
		var h table.Header
		if d, ok := data[n]; ok {
			//nolint:gosec // sizes are bounds checked above.
			h = table.Header{DataOffset: uint32(dataOff[n]), DataLength: uint32(len(d))}
		}
		var entries []table.Entry
		for _, ch := range n.Children {
			e := table.Entry{Letter: ch.Letter}
			if ch.Node != nil {
				e.WordCount = ch.Node.Count()
				//nolint:gosec // sizes are bounds checked above.
				e.NextOffset = uint32(tableOff[ch.Node])
				//nolint:gosec // sizes are bounds checked above.
				e.NextLength = uint32(tableLen[ch.Node])
			}
			entries = append(entries, e)
		}
		b = append(b, MakeTable(h, entries, layout)...)
	}
	for _, n := range nodes {
		b = append(b, data[n]...)
	}
	return b
}

// MakeTempOptions are options for MakeTempVocabulary.
type MakeTempOptions struct {
	// Ext is the file extension. Defaults to '.vocab.dz' if DictZip is true.
	// Otherwise '.vocab'.
	Ext string

	// DictZip indicates that the file should be compressed with DictZip.
	DictZip bool
}

// GetExt returns the file extension.
func (o *MakeTempOptions) GetExt() string {
	if o != nil {
		if o.Ext != "" {
			return o.Ext
		}
		if o.DictZip {
			return ".vocab.dz"
		}
	}
	return ".vocab"
}

// MakeTempVocabulary writes b to a temporary file and returns its path. The
// file is removed when the test ends.
func MakeTempVocabulary(t *testing.T, b []byte, opts *MakeTempOptions) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vocabulary"+opts.GetExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if opts != nil && opts.DictZip {
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(b); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	} else if _, err := f.Write(b); err != nil {
		t.Fatal(err)
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
