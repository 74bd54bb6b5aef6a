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

package source

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/exp/mmap"
)

// File is a memory mapped local vocabulary file.
type File struct {
	r    *mmap.ReaderAt
	path string
}

// OpenFile memory maps the file at path.
func OpenFile(path string) (*File, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	return &File{r: r, path: path}, nil
}

// Len returns the length of the file.
func (f *File) Len() int {
	return f.r.Len()
}

// ReadBytes implements table.Source.
func (f *File) ReadBytes(ctx context.Context, position, length uint64) ([]byte, error) {
	b, err := readAt(ctx, f.r, int64(f.r.Len()), position, length)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", f.path, err)
	}
	return b, nil
}

// Close unmaps the file.
func (f *File) Close() error {
	if err := f.r.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", f.path, err)
	}
	return nil
}

// DictZip is a local vocabulary file compressed with dictzip.
type DictZip struct {
	f    *os.File
	path string

	// mu guards z, which seeks f on every read.
	mu sync.Mutex
	z  *dictzip.Reader
}

// OpenDictZip opens the dictzip file at path.
func OpenDictZip(path string) (*DictZip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading dictzip header %q: %w", path, err)
	}

	return &DictZip{
		f:    f,
		path: path,
		z:    z,
	}, nil
}

// ReadBytes implements table.Source.
func (d *DictZip) ReadBytes(ctx context.Context, position, length uint64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, err := readAt(ctx, d.z, -1, position, length)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", d.path, err)
	}
	return b, nil
}

// Close closes the file.
func (d *DictZip) Close() error {
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", d.path, err)
	}
	return nil
}
