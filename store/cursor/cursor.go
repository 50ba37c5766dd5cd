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

	"gopkg.in/src-d/go-errors.v1"

	"github.com/seonWKim/limbo/store/val"
)

// ErrNotImplemented is returned when a cursor does not offer a capability
// of the protocol, as opposed to failing on bad data.
var ErrNotImplemented = errors.NewKind("%s is not supported by %s")

// Result reports whether a cursor operation completed. It is paired with an
// error to form the three outcomes of an operation: done, not yet, failed.
type Result uint8

const (
	// Ok means the operation completed.
	Ok Result = iota
	// IO means the operation is waiting on I/O. The caller must call
	// WaitForCompletion and then retry the same operation.
	IO
)

func (r Result) String() string {
	if r == IO {
		return "io"
	}
	return "ok"
}

// Cursor is the protocol every row source and row sink implements. A cursor
// is either empty or positioned on a current row. Rewind and Next move it,
// Insert never does.
//
// Cursors are driven by a single goroutine. Suspension is explicit: an
// operation that would block returns IO instead.
type Cursor interface {
	// IsEmpty returns true iff there is no current row.
	IsEmpty() bool

	// Rewind positions the cursor on the first row.
	Rewind(ctx context.Context) (Result, error)

	// Next advances to the following row. Past the last row the cursor
	// becomes empty.
	Next(ctx context.Context) (Result, error)

	// WaitForCompletion blocks until pending I/O signaled by a previous IO
	// result has finished. It is a no-op for cursors that never suspend.
	WaitForCompletion(ctx context.Context) error

	// RowID returns the integer identity of the current row, if any.
	RowID() (id uint64, ok bool, err error)

	// Record returns a read-only borrow of the current row. The borrow
	// must be released before the cursor can move.
	Record() (*RecordRef, error)

	// Insert accepts a row into the underlying structure.
	Insert(ctx context.Context, rec *val.OwnedRecord) error
}

// Retry runs |op| until it completes, waiting on |c| each time it reports
// pending I/O.
func Retry(ctx context.Context, c Cursor, op func(context.Context) (Result, error)) error {
	for {
		res, err := op(ctx)
		if err != nil {
			return err
		}
		if res == Ok {
			return nil
		}
		if err = c.WaitForCompletion(ctx); err != nil {
			return err
		}
	}
}
