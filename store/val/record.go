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
	"strconv"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

var (
	ErrColumnOutOfRange = errors.NewKind("column index %d out of range for record with %d columns")
	ErrMalformedRecord  = errors.NewKind("malformed record: cannot decode column %d")
)

// SerialType is the on-disk tag of a field. Only a Codec interprets it.
type SerialType uint64

// Codec decodes a single field out of a raw record payload.
type Codec interface {
	ReadValue(payload []byte, typ SerialType, offset int) (OwnedValue, error)
}

// Record is an ephemeral row of borrowed values.
type Record struct {
	Values []Value
}

func NewRecord(values ...Value) Record {
	return Record{Values: values}
}

func (r Record) Len() int {
	return len(r.Values)
}

// LazyValue is a decode cache slot. It either holds a materialized value,
// or the serial type and payload offset of a field not yet decoded.
type LazyValue struct {
	value   OwnedValue
	decoded bool

	Type   SerialType
	Offset int
}

func Materialized(v OwnedValue) LazyValue {
	return LazyValue{value: v, decoded: true}
}

func Lazy(typ SerialType, offset int) LazyValue {
	return LazyValue{Type: typ, Offset: offset}
}

func (lv LazyValue) IsDecoded() bool {
	return lv.decoded
}

// OwnedRecord is a durable row: the encoded payload plus one decode cache
// slot per column. Columns are decoded on first access and memoized.
//
// An OwnedRecord has a single owner. Column mutates the cache, so callers
// sharing a record must serialize access.
type OwnedRecord struct {
	payload []byte
	slots   []LazyValue
	codec   Codec
}

// NewOwnedRecord builds an in-memory record. The payload is empty and every
// slot starts materialized.
func NewOwnedRecord(values ...OwnedValue) *OwnedRecord {
	slots := make([]LazyValue, len(values))
	for i, v := range values {
		slots[i] = Materialized(v)
	}
	return &OwnedRecord{slots: slots}
}

// NewLazyRecord wraps a raw payload read from storage. |slots| holds one
// entry per column of the payload header; |payload| must not be modified
// afterwards.
func NewLazyRecord(codec Codec, payload []byte, slots []LazyValue) *OwnedRecord {
	return &OwnedRecord{payload: payload, slots: slots, codec: codec}
}

func (r *OwnedRecord) Len() int {
	if r == nil {
		return 0
	}
	return len(r.slots)
}

func (r *OwnedRecord) Payload() []byte {
	return r.payload
}

// Slot returns a copy of the decode cache slot for column |i|.
func (r *OwnedRecord) Slot(i int) (LazyValue, error) {
	if i < 0 || i >= r.Len() {
		return LazyValue{}, ErrColumnOutOfRange.New(i, r.Len())
	}
	return r.slots[i], nil
}

// Column returns the value of column |i|, decoding it from the payload on
// first access. A failed decode leaves the slot lazy.
func (r *OwnedRecord) Column(i int) (OwnedValue, error) {
	if i < 0 || i >= r.Len() {
		return OwnedValue{}, ErrColumnOutOfRange.New(i, r.Len())
	}

	s := &r.slots[i]
	if s.decoded {
		return s.value, nil
	}
	if r.codec == nil {
		return OwnedValue{}, ErrMalformedRecord.New(i)
	}

	v, err := r.codec.ReadValue(r.payload, s.Type, s.Offset)
	if err != nil {
		return OwnedValue{}, ErrMalformedRecord.Wrap(err, i)
	}
	s.value, s.decoded = v, true
	return v, nil
}

// Values decodes every column.
func (r *OwnedRecord) Values() ([]OwnedValue, error) {
	vals := make([]OwnedValue, r.Len())
	for i := range vals {
		v, err := r.Column(i)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// View decodes every column and returns a borrowed Record over the cache.
// The view is valid for as long as |r| is.
func (r *OwnedRecord) View() (Record, error) {
	vals := make([]Value, r.Len())
	for i := range vals {
		ov, err := r.Column(i)
		if err != nil {
			return Record{}, err
		}
		if vals[i], err = ToValue(ov); err != nil {
			return Record{}, err
		}
	}
	return Record{Values: vals}, nil
}

// Clone copies the decode cache. The payload and any text or blob buffers
// are shared.
func (r *OwnedRecord) Clone() *OwnedRecord {
	if r == nil {
		return nil
	}
	slots := make([]LazyValue, len(r.slots))
	for i, s := range r.slots {
		if s.decoded {
			s.value = s.value.Clone()
		}
		slots[i] = s
	}
	return &OwnedRecord{payload: r.payload, slots: slots, codec: r.codec}
}

// Equal compares records column by column, decoding as needed.
func (r *OwnedRecord) Equal(other *OwnedRecord) bool {
	if r.Len() != other.Len() {
		return false
	}
	for i := 0; i < r.Len(); i++ {
		lv, lerr := r.Column(i)
		rv, rerr := other.Column(i)
		if lerr != nil || rerr != nil {
			return false
		}
		if lv.kind != rv.kind || !Equal(lv, rv) {
			return false
		}
	}
	return true
}

func (r *OwnedRecord) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i := 0; i < r.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, err := r.Column(i)
		if err != nil {
			sb.WriteString("<column " + strconv.Itoa(i) + ": " + err.Error() + ">")
			continue
		}
		sb.WriteString(v.String())
	}
	sb.WriteString(")")
	return sb.String()
}
