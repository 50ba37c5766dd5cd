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

package sort

import (
	"context"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/seonWKim/limbo/store/cursor"
	"github.com/seonWKim/limbo/store/val"
)

var (
	ErrUnsupportedSortKey = errors.NewKind("cannot derive a sort key from a %s value")
	ErrUnknownOrdering    = errors.NewKind("unknown sorter ordering: %q")
)

// Ordering controls the order in which buffered rows are replayed.
type Ordering uint8

const (
	InsertionOrder Ordering = iota
	KeyOrder
)

func (o Ordering) String() string {
	if o == KeyOrder {
		return "key"
	}
	return "insertion"
}

func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "", "insertion":
		return InsertionOrder, nil
	case "key":
		return KeyOrder, nil
	default:
		return InsertionOrder, ErrUnknownOrdering.New(s)
	}
}

type Option func(*Sorter)

func WithOrdering(o Ordering) Option {
	return func(s *Sorter) {
		s.ordering = o
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *Sorter) {
		s.logger = l
	}
}

// Sorter spools rows and replays them. Rows go in through Insert and come
// back out one at a time through Rewind and Next, each of which pops the
// next buffered row into the current slot. A popped row is not replayed.
//
// The sorter never suspends on I/O.
type Sorter struct {
	ordering Ordering
	logger   *logrus.Entry
	buf      spool
	seq      uint64
	current  cursor.RecordCell

	drained      int
	drainedBytes uint64
}

var _ cursor.Cursor = &Sorter{}

func NewSorter(opts ...Option) *Sorter {
	s := &Sorter{logger: logrus.NewEntry(logrus.StandardLogger())}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("component", "sorter")

	if s.ordering == KeyOrder {
		s.buf = newKeySpool()
	} else {
		s.buf = &fifoSpool{}
	}
	return s
}

func (s *Sorter) Ordering() Ordering {
	return s.ordering
}

// Len returns the number of rows still buffered.
func (s *Sorter) Len() int {
	return s.buf.len()
}

func (s *Sorter) IsEmpty() bool {
	return s.current.IsEmpty()
}

func (s *Sorter) Rewind(_ context.Context) (cursor.Result, error) {
	return cursor.Ok, s.advance()
}

func (s *Sorter) Next(_ context.Context) (cursor.Result, error) {
	return cursor.Ok, s.advance()
}

func (s *Sorter) advance() error {
	// the current row is dropped before the next one is popped
	if err := s.current.Clear(); err != nil {
		return err
	}

	e, ok := s.buf.pop()
	if !ok {
		if s.drained > 0 {
			s.logger.Debugf("drained %d rows (%s spooled)", s.drained, humanize.Bytes(s.drainedBytes))
			s.drained, s.drainedBytes = 0, 0
		}
		return nil
	}

	s.drained++
	s.drainedBytes += uint64(len(e.rec.Payload()))
	return s.current.Set(e.rec)
}

func (s *Sorter) WaitForCompletion(_ context.Context) error {
	return nil
}

func (s *Sorter) RowID() (uint64, bool, error) {
	return 0, false, cursor.ErrNotImplemented.New("rowid", "sorter")
}

func (s *Sorter) Record() (*cursor.RecordRef, error) {
	return s.current.Borrow(), nil
}

// Insert buffers a copy of |rec| under a key derived from its first column.
func (s *Sorter) Insert(_ context.Context, rec *val.OwnedRecord) error {
	key, err := sortKey(rec)
	if err != nil {
		return err
	}
	s.logger.Tracef("Inserting record with key: %s", key)
	s.InsertWithKey(key, rec)
	return nil
}

// InsertWithKey buffers a copy of |rec| under |key|.
func (s *Sorter) InsertWithKey(key string, rec *val.OwnedRecord) {
	s.buf.push(entry{key: key, seq: s.seq, rec: rec.Clone()})
	s.seq++
}

func sortKey(rec *val.OwnedRecord) (string, error) {
	v, err := rec.Column(0)
	if err != nil {
		return "", err
	}
	switch v.Kind() {
	case val.IntegerKind:
		return strconv.FormatInt(v.Int(), 10), nil
	case val.TextKind:
		return v.Text(), nil
	default:
		return "", ErrUnsupportedSortKey.New(v.Kind())
	}
}
