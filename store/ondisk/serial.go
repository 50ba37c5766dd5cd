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

var (
	ErrReservedSerialType = errors.NewKind("serial type %d is reserved")
	ErrTruncatedField     = errors.NewKind("field of serial type %d at offset %d needs %d bytes, payload has %d")
	ErrUnencodable        = errors.NewKind("%s values cannot be stored in a record")
)

// Serial types of the record format. Types 12 and up are variable width:
// even values are blobs of (N-12)/2 bytes, odd values text of (N-13)/2 bytes.
const (
	NullType    val.SerialType = 0
	Int8Type    val.SerialType = 1
	Int16Type   val.SerialType = 2
	Int24Type   val.SerialType = 3
	Int32Type   val.SerialType = 4
	Int48Type   val.SerialType = 5
	Int64Type   val.SerialType = 6
	Float64Type val.SerialType = 7
	ZeroType    val.SerialType = 8
	OneType     val.SerialType = 9

	reserved10 val.SerialType = 10
	reserved11 val.SerialType = 11

	minBlobType val.SerialType = 12
	minTextType val.SerialType = 13
)

var intWidths = [...]int{0, 1, 2, 3, 4, 6, 8}

// BlobType returns the serial type of a blob of |n| bytes.
func BlobType(n int) val.SerialType {
	return minBlobType + val.SerialType(2*n)
}

// TextType returns the serial type of |n| bytes of text.
func TextType(n int) val.SerialType {
	return minTextType + val.SerialType(2*n)
}

func IsBlob(st val.SerialType) bool {
	return st >= minBlobType && st%2 == 0
}

func IsText(st val.SerialType) bool {
	return st >= minTextType && st%2 == 1
}

// SerialTypeSize returns the number of payload bytes a field of type |st|
// occupies.
func SerialTypeSize(st val.SerialType) (int, error) {
	switch {
	case st <= Int64Type:
		return intWidths[st], nil
	case st == Float64Type:
		return 8, nil
	case st == ZeroType || st == OneType:
		return 0, nil
	case st == reserved10 || st == reserved11:
		return 0, ErrReservedSerialType.New(uint64(st))
	case IsBlob(st):
		return int((st - minBlobType) / 2), nil
	default:
		return int((st - minTextType) / 2), nil
	}
}

// SerialTypeFor returns the narrowest serial type able to hold |v|.
func SerialTypeFor(v val.OwnedValue) (val.SerialType, error) {
	switch v.Kind() {
	case val.NullKind:
		return NullType, nil
	case val.IntegerKind:
		return intSerialType(v.Int()), nil
	case val.FloatKind:
		return Float64Type, nil
	case val.TextKind:
		return TextType(len(v.Text())), nil
	case val.BlobKind:
		return BlobType(len(v.Blob())), nil
	case val.AggKind:
		if v.Agg() != nil {
			return SerialTypeFor(v.Agg().Value())
		}
		return NullType, nil
	default:
		return 0, ErrUnencodable.New(v.Kind())
	}
}

func intSerialType(i int64) val.SerialType {
	switch {
	case i == 0:
		return ZeroType
	case i == 1:
		return OneType
	case i >= math.MinInt8 && i <= math.MaxInt8:
		return Int8Type
	case i >= math.MinInt16 && i <= math.MaxInt16:
		return Int16Type
	case i >= -(1<<23) && i < (1<<23):
		return Int24Type
	case i >= math.MinInt32 && i <= math.MaxInt32:
		return Int32Type
	case i >= -(1<<47) && i < (1<<47):
		return Int48Type
	default:
		return Int64Type
	}
}

// ReadValue decodes the field of type |st| found at |offset| in |payload|.
// Blob values share the payload's memory, so the payload must be immutable.
func ReadValue(payload []byte, st val.SerialType, offset int) (val.OwnedValue, error) {
	size, err := SerialTypeSize(st)
	if err != nil {
		return val.OwnedValue{}, err
	}
	if offset < 0 || size < 0 || offset > len(payload) || size > len(payload)-offset {
		return val.OwnedValue{}, ErrTruncatedField.New(uint64(st), offset, size, len(payload))
	}
	field := payload[offset : offset+size]

	switch {
	case st == NullType:
		return val.NullValue(), nil
	case st <= Int64Type:
		return val.NewInteger(readInt(field)), nil
	case st == Float64Type:
		return val.NewFloat(math.Float64frombits(binary.BigEndian.Uint64(field))), nil
	case st == ZeroType:
		return val.NewInteger(0), nil
	case st == OneType:
		return val.NewInteger(1), nil
	case IsBlob(st):
		return val.ShareBlob(field[:len(field):len(field)]), nil
	default:
		return val.NewText(string(field)), nil
	}
}

// readInt sign-extends a big-endian two's complement integer of 1 to 8 bytes.
func readInt(field []byte) int64 {
	var u uint64
	for _, b := range field {
		u = (u << 8) | uint64(b)
	}
	shift := 64 - 8*uint(len(field))
	return int64(u<<shift) >> shift
}

func putInt(buf []byte, i int64) {
	u := uint64(i)
	for j := len(buf) - 1; j >= 0; j-- {
		buf[j] = byte(u)
		u >>= 8
	}
}
