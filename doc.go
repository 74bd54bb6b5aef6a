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

// Package vocab implements a library for reading binary vocabulary files in
// pure Go.
//
// A vocabulary file is a trie of lookup tables followed by word data
// segments:
//  1. The file starts with the length of the root table as a big-endian
//     uint32. The root table follows immediately at offset 4.
//  2. Each table has a header pointing at an optional data segment and a list
//     of entries. Each entry is keyed by a letter and points at the sub-table
//     for words continuing with that letter.
//  3. Data segments are JSON lists of words, optionally with a translation
//     and transcription.
//
// Tables are read lazily, one random access read at a time, so vocabulary
// files may be large or remote. See the [table] package for the table format
// and the [source] package for supported storage.
package vocab
