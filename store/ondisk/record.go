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
	"encoding/binary"
	"math"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/seonWKim/limbo/store/val"
)

var ErrMalformedHeader = errors.NewKind("malformed record header: %s")

// Codec decodes fields of the SQLite record format.
type Codec struct{}

var _ val.Codec = Codec{}

func (Codec) ReadValue(payload []byte, st val.SerialType, offset int) (val.OwnedValue, error) {
	return ReadValue(payload, st, offset)
}

// ParseRecord reads the header of |payload| and returns a record whose
// columns are all lazy. Field bytes are not touched until a column is read.
//
// | header size | serial type ... | field ... |
func ParseRecord(payload []byte) (*val.OwnedRecord, error) {
	hdrSize, n, err := ReadVarint(payload)
	if err != nil {
		return nil, ErrMalformedHeader.Wrap(err, "header size")
	}
	if hdrSize < uint64(n) || hdrSize > uint64(len(payload)) {
		return nil, ErrMalformedHeader.New("header size out of bounds")
	}

	var slots []val.LazyValue
	pos, fieldOff := n, int(hdrSize)
	for pos < int(hdrSize) {
		st, sz, err := ReadVarint(payload[pos:hdrSize])
		if err != nil {
			return nil, ErrMalformedHeader.Wrap(err, "serial type")
		}
		pos += sz

		width, err := SerialTypeSize(val.SerialType(st))
		if err != nil {
			return nil, ErrMalformedHeader.Wrap(err, "serial type")
		}
		if width < 0 || width > len(payload)-fieldOff {
			return nil, ErrMalformedHeader.New("fields overrun payload")
		}
		slots = append(slots, val.Lazy(val.SerialType(st), fieldOff))
		fieldOff += width
	}

	return val.NewLazyRecord(Codec{}, payload, slots), nil
}

// EncodeRecord serializes |values| into the record format, choosing the
// narrowest serial type for every integer.
func EncodeRecord(values ...val.OwnedValue) ([]byte, error) {
	types := make([]val.SerialType, len(values))
	typesLen, bodyLen := 0, 0
	for i, v := range values {
		st, err := SerialTypeFor(v)
		if err != nil {
			return nil, err
		}
		types[i] = st
		typesLen += VarintLen(uint64(st))
		sz, _ := SerialTypeSize(st)
		bodyLen += sz
	}

	// the header size includes its own varint
	hdrLen := typesLen + 1
	for VarintLen(uint64(hdrLen)) != hdrLen-typesLen {
		hdrLen = typesLen + VarintLen(uint64(hdrLen))
	}

	buf := make([]byte, 0, hdrLen+bodyLen)
	buf = AppendVarint(buf, uint64(hdrLen))
	for _, st := range types {
		buf = AppendVarint(buf, uint64(st))
	}
	for i, v := range values {
		buf = appendField(buf, types[i], v)
	}
	return buf, nil
}

func appendField(buf []byte, st val.SerialType, v val.OwnedValue) []byte {
	if v.Kind() == val.AggKind && v.Agg() != nil {
		v = v.Agg().Value()
	}
	switch {
	case st == Float64Type:
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(v.Float()))
	case st >= Int8Type && st <= Int64Type:
		width := intWidths[st]
		start := len(buf)
		buf = append(buf, make([]byte, width)...)
		putInt(buf[start:], v.Int())
		return buf
	case IsText(st):
		return append(buf, v.Text()...)
	case IsBlob(st):
		return append(buf, v.Blob()...)
	default:
		// NULL, 0 and 1 carry no body bytes
		return buf
	}
}
