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

// Package table implements reading vocabulary lookup tables.
//
// A vocabulary file starts with the length of the root table as a 32 bit
// integer in network byte order. The root table follows immediately. Each
// table comes in two parts:
//  1. The header: the offset and length of the table's word data segment.
//     Both are zero if the table has no word data.
//  2. The entries: one per letter at this level of the lookup trie. Each entry
//     is the letter as utf-8 text, ended by a zero byte, followed by the
//     number of words under the letter and the offset and length of the
//     letter's sub-table. The offset and length are zero for leaf entries.
//
// The word data segment is utf-8 encoded JSON holding the list of words for
// the table.
//
// All integers are 32 bit and in network byte order. All offsets are
// absolute offsets into the file.
package table
