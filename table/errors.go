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
	"errors"
	"fmt"
)

// ErrMalformedTable indicates that table data does not follow the table
// layout, e.g. an entry is cut off by the end of the table.
var ErrMalformedTable = errors.New("malformed table")

// ReadError is returned when reading a table or the root table length from
// the Source fails.
type ReadError struct {
	// Offset is the position of the failed read.
	Offset uint64

	// Length is the number of bytes requested.
	Length uint64

	// Code is the error code reported by the Source, if any.
	Code string

	// Err is the underlying error.
	Err error
}

func newReadError(offset, length uint64, err error) *ReadError {
	return &ReadError{
		Offset: offset,
		Length: length,
		Code:   errorCode(err),
		Err:    err,
	}
}

// Error implements error.
func (e *ReadError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("reading %d bytes at offset %d: %s: %v", e.Length, e.Offset, e.Code, e.Err)
	}
	return fmt.Sprintf("reading %d bytes at offset %d: %v", e.Length, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// DataSegmentError is returned when a table's word data segment could not be
// read or decoded. The table's entries are still valid.
type DataSegmentError struct {
	// Offset is the offset of the data segment.
	Offset uint32

	// Length is the length of the data segment.
	Length uint32

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *DataSegmentError) Error() string {
	return fmt.Sprintf("data segment [%d, %d): %v", e.Offset, uint64(e.Offset)+uint64(e.Length), e.Err)
}

// Unwrap returns the underlying error.
func (e *DataSegmentError) Unwrap() error {
	return e.Err
}

// errorCode returns the code of the first error in err's chain that reports
// one, e.g. S3 API errors.
func errorCode(err error) string {
	var coder interface{ ErrorCode() string }
	if errors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
