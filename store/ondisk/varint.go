// Copyright 2026 Dolthub, Inc.
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

package ondisk

import (
	"gopkg.in/src-d/go-errors.v1"
)

const maxVarintLen = 9

var ErrTruncatedVarint = errors.NewKind("truncated varint at offset %d")

// ReadVarint decodes a big-endian base-128 varint. The first eight bytes
// contribute seven bits each and a ninth byte contributes all eight.
func ReadVarint(buf []byte) (v uint64, n int, err error) {
	for i := 0; i < maxVarintLen-1; i++ {
		if i >= len(buf) {
			return 0, 0, ErrTruncatedVarint.New(i)
		}
		b := buf[i]
		v = (v << 7) | uint64(b&0x7f)
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	if len(buf) < maxVarintLen {
		return 0, 0, ErrTruncatedVarint.New(maxVarintLen - 1)
	}
	v = (v << 8) | uint64(buf[maxVarintLen-1])
	return v, maxVarintLen, nil
}

// VarintLen returns the number of bytes PutVarint writes for |v|.
func VarintLen(v uint64) int {
	if v > 0x00ffffffffffffff {
		return maxVarintLen
	}
	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}

// PutVarint encodes |v| into |buf|, which must hold VarintLen(v) bytes, and
// returns the number of bytes written.
func PutVarint(buf []byte, v uint64) int {
	if v > 0x00ffffffffffffff {
		buf[8] = byte(v)
		v >>= 8
		for i := 7; i >= 0; i-- {
			buf[i] = byte(v&0x7f) | 0x80
			v >>= 7
		}
		return maxVarintLen
	}

	n := VarintLen(v)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(v & 0x7f)
		if i != n-1 {
			buf[i] |= 0x80
		}
		v >>= 7
	}
	return n
}

// AppendVarint appends the encoding of |v| to |buf|.
func AppendVarint(buf []byte, v uint64) []byte {
	var tmp [maxVarintLen]byte
	n := PutVarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}
