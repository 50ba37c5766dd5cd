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

package val

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// storage class rank: NULL < numeric < text < blob < record
func rank(k Kind) int {
	switch k {
	case NullKind:
		return 0
	case IntegerKind, FloatKind:
		return 1
	case TextKind:
		return 2
	case BlobKind:
		return 3
	default:
		return 4
	}
}

func unwrapAgg(v OwnedValue) OwnedValue {
	for v.kind == AggKind {
		if v.agg == nil {
			return NullValue()
		}
		v = v.agg.Value()
	}
	return v
}

// Compare returns -1, 0 or 1. Integers and floats compare numerically with
// each other, aggregates compare by their accumulator, and nested records
// compare column by column.
func Compare(l, r OwnedValue) int {
	l, r = unwrapAgg(l), unwrapAgg(r)
	if rl, rr := rank(l.kind), rank(r.kind); rl != rr {
		if rl < rr {
			return -1
		}
		return 1
	}

	switch l.kind {
	case NullKind:
		return 0
	case IntegerKind, FloatKind:
		return compareNumeric(l, r)
	case TextKind:
		return strings.Compare(l.text, r.text)
	case BlobKind:
		return bytes.Compare(l.blob, r.blob)
	default:
		return compareRecords(l.rec, r.rec)
	}
}

func compareNumeric(l, r OwnedValue) int {
	if l.kind == IntegerKind && r.kind == IntegerKind {
		return compareInt64(l.Int(), r.Int())
	}
	lf, rf := asFloat(l), asFloat(r)
	switch {
	case lf < rf:
		return -1
	case lf > rf:
		return 1
	default:
		return 0
	}
}

func compareInt64(l, r int64) int {
	if l == r {
		return 0
	} else if l < r {
		return -1
	} else {
		return 1
	}
}

func asFloat(v OwnedValue) float64 {
	if v.kind == IntegerKind {
		return float64(v.Int())
	}
	return v.Float()
}

func compareRecords(l, r *OwnedRecord) int {
	if l == nil || r == nil {
		return compareInt64(int64(l.Len()), int64(r.Len()))
	}
	n := min(l.Len(), r.Len())
	for i := 0; i < n; i++ {
		// undecodable columns sort as NULL
		lv, _ := l.Column(i)
		rv, _ := r.Column(i)
		if c := Compare(lv, rv); c != 0 {
			return c
		}
	}
	return compareInt64(int64(l.Len()), int64(r.Len()))
}

// Equal reports whether Compare(l, r) == 0.
func Equal(l, r OwnedValue) bool {
	return Compare(l, r) == 0
}

// Hash returns a 64-bit hash consistent with Equal: values that compare
// equal hash equal, including an integer and an integral float.
func (v OwnedValue) Hash() uint64 {
	d := xxhash.New()
	hashInto(d, v)
	return d.Sum64()
}

func hashInto(d *xxhash.Digest, v OwnedValue) {
	v = unwrapAgg(v)
	var buf [9]byte
	buf[0] = byte(rank(v.kind))

	switch v.kind {
	case NullKind:
		d.Write(buf[:1])
	case IntegerKind:
		binary.LittleEndian.PutUint64(buf[1:], uint64(v.Int()))
		d.Write(buf[:])
	case FloatKind:
		f := v.Float()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			binary.LittleEndian.PutUint64(buf[1:], uint64(int64(f)))
		} else {
			binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))
		}
		d.Write(buf[:])
	case TextKind:
		d.Write(buf[:1])
		d.WriteString(v.text)
	case BlobKind:
		d.Write(buf[:1])
		d.Write(v.blob)
	default:
		d.Write(buf[:1])
		if v.rec == nil {
			return
		}
		for i := 0; i < v.rec.Len(); i++ {
			c, _ := v.rec.Column(i)
			hashInto(d, c)
		}
	}
}
