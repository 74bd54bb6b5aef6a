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

// Package codec implements the low level decoding used by vocabulary files.
//
// Vocabulary files contain two kinds of primitive values:
//  1. Unsigned 32 bit integers in network byte order.
//  2. Text encoded in a restricted form of utf-8 that only uses one, two, and
//     three byte sequences. Four byte sequences (code points outside the Basic
//     Multilingual Plane) are never produced by the file generator and are
//     dropped by the decoder.
package codec
