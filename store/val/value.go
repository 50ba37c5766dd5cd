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
	"strconv"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnexpectedKind is returned when a Value is read as a Go type it does not hold.
var ErrUnexpectedKind = errors.NewKind("Expected %s value, found %s")

// Kind identifies the variant held by a Value or an OwnedValue.
type Kind uint8

const (
	NullKind Kind = iota
	IntegerKind
	FloatKind
	TextKind
	BlobKind

	// owned only
	AggKind
	RecordKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case IntegerKind:
		return "integer"
	case FloatKind:
		return "float"
	case TextKind:
		return "text"
	case BlobKind:
		return "blob"
	case AggKind:
		return "aggregate"
	case RecordKind:
		return "record"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a borrowed view of a single cell. Text and Blob reference memory
// owned elsewhere (a page buffer or an OwnedValue) and are never copied. A
// Value must not outlive its owner, and Blob must not be written through.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Text  string
	Blob  []byte
}

func NullView() Value {
	return Value{Kind: NullKind}
}

func IntegerView(i int64) Value {
	return Value{Kind: IntegerKind, Int: i}
}

func FloatView(f float64) Value {
	return Value{Kind: FloatKind, Float: f}
}

func TextView(s string) Value {
	return Value{Kind: TextKind, Text: s}
}

func BlobView(b []byte) Value {
	return Value{Kind: BlobKind, Blob: b}
}

func (v Value) IsNull() bool {
	return v.Kind == NullKind
}

func (v Value) String() string {
	switch v.Kind {
	case NullKind:
		return "NULL"
	case IntegerKind:
		return strconv.FormatInt(v.Int, 10)
	case FloatKind:
		return formatFloat(v.Float)
	case TextKind:
		return v.Text
	case BlobKind:
		return fmt.Sprintf("%v", v.Blob)
	default:
		return "<" + v.Kind.String() + ">"
	}
}

// Int64FromValue extracts an integer from |v|.
func Int64FromValue(v Value) (int64, error) {
	if v.Kind != IntegerKind {
		return 0, ErrUnexpectedKind.New(IntegerKind, v.Kind)
	}
	return v.Int, nil
}

// StringFromValue extracts text from |v|. The returned string shares memory
// with the owner of |v|.
func StringFromValue(v Value) (string, error) {
	if v.Kind != TextKind {
		return "", ErrUnexpectedKind.New(TextKind, v.Kind)
	}
	return v.Text, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
