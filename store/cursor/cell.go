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

package cursor

import (
	"gopkg.in/src-d/go-errors.v1"

	"github.com/seonWKim/limbo/store/val"
)

var (
	ErrRecordBorrowed = errors.NewKind("current record is borrowed by %d outstanding reference(s)")
	ErrStaleRecord    = errors.NewKind("record reference is no longer valid")
)

// RecordCell holds the current row of a cursor. Borrows are counted at
// runtime: the row cannot be replaced while any RecordRef is outstanding.
type RecordCell struct {
	rec     *val.OwnedRecord
	borrows int
	version uint64
}

func (c *RecordCell) IsEmpty() bool {
	return c.rec == nil
}

// Set replaces the current row. A nil |rec| empties the cell.
func (c *RecordCell) Set(rec *val.OwnedRecord) error {
	if c.borrows > 0 {
		return ErrRecordBorrowed.New(c.borrows)
	}
	c.rec = rec
	c.version++
	return nil
}

func (c *RecordCell) Clear() error {
	return c.Set(nil)
}

// Borrow returns a read-only reference to the current row.
func (c *RecordCell) Borrow() *RecordRef {
	c.borrows++
	return &RecordRef{cell: c, rec: c.rec, version: c.version}
}

// RecordRef is a read-only view of a cursor's current row. Reading a column
// may decode it into the row's cache, but callers cannot replace values.
// Release must be called once the caller is done with the row.
type RecordRef struct {
	cell     *RecordCell
	rec      *val.OwnedRecord
	version  uint64
	released bool
}

// Present returns false if the cursor had no current row.
func (r *RecordRef) Present() bool {
	return r.rec != nil
}

func (r *RecordRef) Len() int {
	return r.rec.Len()
}

func (r *RecordRef) check() error {
	if r.released || r.cell.version != r.version {
		return ErrStaleRecord.New()
	}
	return nil
}

// Column returns column |i| of the current row.
func (r *RecordRef) Column(i int) (val.OwnedValue, error) {
	if err := r.check(); err != nil {
		return val.OwnedValue{}, err
	}
	return r.rec.Column(i)
}

// View returns a borrowed Record of every column. It is valid until the
// referenced row is dropped by its cursor.
func (r *RecordRef) View() (val.Record, error) {
	if err := r.check(); err != nil {
		return val.Record{}, err
	}
	return r.rec.View()
}

// Clone returns an owned copy of the current row that outlives the borrow.
func (r *RecordRef) Clone() (*val.OwnedRecord, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return r.rec.Clone(), nil
}

// Release ends the borrow. Releasing twice is a no-op.
func (r *RecordRef) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cell.borrows--
}
