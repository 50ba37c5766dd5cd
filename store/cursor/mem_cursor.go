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
	"context"

	"github.com/seonWKim/limbo/store/val"
)

// MemCursor scans rows buffered in memory. Row ids are assigned in insertion
// order starting from 1.
type MemCursor struct {
	rows    []*val.OwnedRecord
	pos     int
	current RecordCell
}

var _ Cursor = &MemCursor{}

func NewMemCursor(rows ...*val.OwnedRecord) *MemCursor {
	c := &MemCursor{pos: -1}
	for _, r := range rows {
		c.rows = append(c.rows, r.Clone())
	}
	return c
}

func (c *MemCursor) Len() int {
	return len(c.rows)
}

func (c *MemCursor) IsEmpty() bool {
	return c.current.IsEmpty()
}

func (c *MemCursor) Rewind(_ context.Context) (Result, error) {
	return Ok, c.moveTo(0)
}

func (c *MemCursor) Next(_ context.Context) (Result, error) {
	if c.pos < 0 {
		return Ok, c.moveTo(0)
	}
	if c.pos >= len(c.rows) {
		return Ok, nil
	}
	return Ok, c.moveTo(c.pos + 1)
}

func (c *MemCursor) moveTo(pos int) error {
	var rec *val.OwnedRecord
	if pos < len(c.rows) {
		rec = c.rows[pos]
	}
	if err := c.current.Set(rec); err != nil {
		return err
	}
	c.pos = pos
	return nil
}

func (c *MemCursor) WaitForCompletion(_ context.Context) error {
	return nil
}

func (c *MemCursor) RowID() (uint64, bool, error) {
	if c.current.IsEmpty() {
		return 0, false, nil
	}
	return uint64(c.pos + 1), true, nil
}

func (c *MemCursor) Record() (*RecordRef, error) {
	return c.current.Borrow(), nil
}

// Insert appends a copy of |rec|.
func (c *MemCursor) Insert(_ context.Context, rec *val.OwnedRecord) error {
	c.rows = append(c.rows, rec.Clone())
	return nil
}
