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
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnsupportedConversion is returned when an OwnedValue has no borrowed form.
var ErrUnsupportedConversion = errors.NewKind("cannot convert %s value to a borrowed view")

// OwnedValue is a cell that may be stored beyond the lifetime of the page it
// was read from. Text and blob payloads are shared between copies and are
// never mutated once constructed; arithmetic always produces a new value.
//
// Plain assignment shares aggregate and nested record payloads. Use Clone
// before handing such a value to another owner.
type OwnedValue struct {
	kind Kind
	num  uint64
	text string
	blob []byte
	agg  *AggContext
	rec  *OwnedRecord
}

func NullValue() OwnedValue {
	return OwnedValue{kind: NullKind}
}

func NewInteger(i int64) OwnedValue {
	return OwnedValue{kind: IntegerKind, num: uint64(i)}
}

func NewFloat(f float64) OwnedValue {
	return OwnedValue{kind: FloatKind, num: math.Float64bits(f)}
}

func NewText(s string) OwnedValue {
	return OwnedValue{kind: TextKind, text: s}
}

// NewBlob copies |b| into a buffer owned by the returned value.
func NewBlob(b []byte) OwnedValue {
	return OwnedValue{kind: BlobKind, blob: append(make([]byte, 0, len(b)), b...)}
}

// ShareBlob wraps |b| without copying. The caller gives up the right to
// modify |b|.
func ShareBlob(b []byte) OwnedValue {
	if b == nil {
		b = []byte{}
	}
	return OwnedValue{kind: BlobKind, blob: b}
}

func NewAgg(ctx *AggContext) OwnedValue {
	return OwnedValue{kind: AggKind, agg: ctx}
}

func NewNested(r *OwnedRecord) OwnedValue {
	return OwnedValue{kind: RecordKind, rec: r}
}

// OwnedFromValue materializes a borrowed view, copying any referenced bytes.
func OwnedFromValue(v Value) OwnedValue {
	switch v.Kind {
	case IntegerKind:
		return NewInteger(v.Int)
	case FloatKind:
		return NewFloat(v.Float)
	case TextKind:
		return NewText(strings.Clone(v.Text))
	case BlobKind:
		return NewBlob(v.Blob)
	default:
		return NullValue()
	}
}

func (v OwnedValue) Kind() Kind {
	return v.kind
}

func (v OwnedValue) IsNull() bool {
	return v.kind == NullKind
}

// IsNumeric returns true for integers and floats.
func (v OwnedValue) IsNumeric() bool {
	return v.kind == IntegerKind || v.kind == FloatKind
}

func (v OwnedValue) Int() int64 {
	return int64(v.num)
}

func (v OwnedValue) Float() float64 {
	return math.Float64frombits(v.num)
}

func (v OwnedValue) Text() string {
	return v.text
}

// Blob returns the shared payload. It must be treated as read-only.
func (v OwnedValue) Blob() []byte {
	return v.blob
}

func (v OwnedValue) Agg() *AggContext {
	return v.agg
}

func (v OwnedValue) Nested() *OwnedRecord {
	return v.rec
}

// Clone returns a copy of |v| that no longer shares mutable state with it.
func (v OwnedValue) Clone() OwnedValue {
	switch v.kind {
	case AggKind:
		if v.agg != nil {
			v.agg = v.agg.Clone()
		}
	case RecordKind:
		if v.rec != nil {
			v.rec = v.rec.Clone()
		}
	}
	return v
}

func (v OwnedValue) String() string {
	switch v.kind {
	case NullKind:
		return "NULL"
	case IntegerKind:
		return strconv.FormatInt(v.Int(), 10)
	case FloatKind:
		return formatFloat(v.Float())
	case TextKind:
		return v.text
	case BlobKind:
		return fmt.Sprintf("%v", v.blob)
	case AggKind:
		if v.agg == nil {
			return "NULL"
		}
		return v.agg.Value().String()
	case RecordKind:
		if v.rec == nil {
			return "NULL"
		}
		return v.rec.String()
	default:
		return "<" + v.kind.String() + ">"
	}
}

// ToValue returns a borrowed view of |v|. Aggregates are viewed through their
// accumulator; an average yields its running sum unless finalization has
// already replaced it.
func ToValue(v OwnedValue) (Value, error) {
	switch v.kind {
	case NullKind:
		return NullView(), nil
	case IntegerKind:
		return IntegerView(v.Int()), nil
	case FloatKind:
		return FloatView(v.Float()), nil
	case TextKind:
		return TextView(v.text), nil
	case BlobKind:
		return BlobView(v.blob), nil
	case AggKind:
		if v.agg == nil {
			return NullView(), nil
		}
		return ToValue(v.agg.Value())
	default:
		return Value{}, ErrUnsupportedConversion.New(v.kind)
	}
}
