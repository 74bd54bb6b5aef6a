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
	"context"
	"fmt"
	"io"
	"sync"
)

// Read is a read recorded by Source.
type Read struct {
	Position uint64
	Length   uint64
}

// Source is an in-memory table.Source that records reads.
type Source struct {
	// Data is the file contents.
	Data []byte

	// Fail maps read positions to errors returned for reads at that position.
	Fail map[uint64]error

	mu    sync.Mutex
	reads []Read
}

// ReadBytes implements table.Source.
func (s *Source) ReadBytes(ctx context.Context, position, length uint64) ([]byte, error) {
	s.mu.Lock()
	s.reads = append(s.reads, Read{Position: position, Length: length})
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := s.Fail[position]; ok {
		return nil, err
	}
	if position > uint64(len(s.Data)) || length > uint64(len(s.Data))-position {
		return nil, fmt.Errorf("%w: [%d, %d) past end of %d bytes",
			io.ErrUnexpectedEOF, position, position+length, len(s.Data))
	}

	b := make([]byte, length)
	copy(b, s.Data[position:])
	return b, nil
}

// Reads returns the reads made so far in order.
func (s *Source) Reads() []Read {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Read(nil), s.reads...)
}
