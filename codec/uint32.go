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

package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Uint32Size is the size in bytes of an encoded integer.
const Uint32Size = 4

// ErrOutOfBounds indicates that a read would go past the end of a buffer.
var ErrOutOfBounds = errors.New("out of bounds")

// ReadUint32 returns the big-endian unsigned 32 bit integer at b[pos:pos+4].
func ReadUint32(b []byte, pos int) (uint32, error) {
	if pos < 0 || pos > len(b)-Uint32Size {
		return 0, fmt.Errorf("%w: uint32 at %d, buffer length %d", ErrOutOfBounds, pos, len(b))
	}
	return binary.BigEndian.Uint32(b[pos:]), nil
}
