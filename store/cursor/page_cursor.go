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

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/seonWKim/limbo/store/ondisk"
	"github.com/seonWKim/limbo/store/val"
)

const DefaultPageCacheSize = 64

// PageSource provides record payloads grouped into pages. Returned payloads
// are retained by the cursor and must not be reused by the source.
type PageSource interface {
	PageCount() int
	ReadPage(ctx context.Context, page int) ([][]byte, error)
}

// RecordParser turns a payload into a record.
type RecordParser func(payload []byte) (*val.OwnedRecord, error)

type PageCursorOption func(*PageCursor)

func WithPageCacheSize(n int) PageCursorOption {
	return func(c *PageCursor) {
		c.cacheSize = n
	}
}

func WithRecordParser(p RecordParser) PageCursorOption {
	return func(c *PageCursor) {
		c.parse = p
	}
}

func WithPageLogger(l *logrus.Entry) PageCursorOption {
	return func(c *PageCursor) {
		c.logger = l
	}
}

// PageCursor scans the records of a PageSource. Pages missing from its cache
// are read in the background: the operation that needs the page returns IO,
// and the same operation succeeds once WaitForCompletion returns.
type PageCursor struct {
	src       PageSource
	parse     RecordParser
	cacheSize int
	cache     *lru.Cache[int, []*val.OwnedRecord]
	logger    *logrus.Entry

	// position of the row the next move lands on
	nextPage, nextIdx int
	rowID             uint64

	pending *pageLoad
	current RecordCell
}

var _ Cursor = &PageCursor{}

type pageLoad struct {
	page int
	eg   *errgroup.Group
	done chan struct{}
	recs []*val.OwnedRecord
}

func (l *pageLoad) finished() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

func NewPageCursor(src PageSource, opts ...PageCursorOption) (*PageCursor, error) {
	c := &PageCursor{
		src:       src,
		parse:     ondisk.ParseRecord,
		cacheSize: DefaultPageCacheSize,
		logger:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}

	cache, err := lru.New[int, []*val.OwnedRecord](c.cacheSize)
	if err != nil {
		return nil, err
	}
	c.cache = cache
	return c, nil
}

func (c *PageCursor) IsEmpty() bool {
	return c.current.IsEmpty()
}

func (c *PageCursor) Rewind(ctx context.Context) (Result, error) {
	if err := c.current.Clear(); err != nil {
		return Ok, err
	}
	c.nextPage, c.nextIdx, c.rowID = 0, 0, 0
	return c.advance(ctx)
}

func (c *PageCursor) Next(ctx context.Context) (Result, error) {
	return c.advance(ctx)
}

// advance positions the cursor on the row at (nextPage, nextIdx). Nothing
// moves when IO is returned, so a retry lands on the same row.
func (c *PageCursor) advance(ctx context.Context) (Result, error) {
	for c.nextPage < c.src.PageCount() {
		recs, res, err := c.loadPage(ctx, c.nextPage)
		if err != nil || res == IO {
			return res, err
		}
		if c.nextIdx < len(recs) {
			if err = c.current.Set(recs[c.nextIdx]); err != nil {
				return Ok, err
			}
			c.nextIdx++
			c.rowID++
			return Ok, nil
		}
		c.nextPage, c.nextIdx = c.nextPage+1, 0
	}
	return Ok, c.current.Clear()
}

func (c *PageCursor) loadPage(ctx context.Context, page int) ([]*val.OwnedRecord, Result, error) {
	if recs, ok := c.cache.Get(page); ok {
		pageCacheHits.Inc()
		return recs, Ok, nil
	}

	if c.pending != nil {
		if c.pending.page != page {
			// the cursor was rewound while another page was in flight
			if err := c.WaitForCompletion(ctx); err != nil {
				return nil, Ok, err
			}
			return c.loadPage(ctx, page)
		}
		if !c.pending.finished() {
			ioSuspensions.Inc()
			return nil, IO, nil
		}
		if err := c.WaitForCompletion(ctx); err != nil {
			return nil, Ok, err
		}
		return c.loadPage(ctx, page)
	}

	pageCacheMisses.Inc()
	ioSuspensions.Inc()
	c.startLoad(ctx, page)
	return nil, IO, nil
}

func (c *PageCursor) startLoad(ctx context.Context, page int) {
	eg, ctx := errgroup.WithContext(ctx)
	l := &pageLoad{page: page, eg: eg, done: make(chan struct{})}
	c.logger.Tracef("reading page %d", page)

	eg.Go(func() error {
		defer close(l.done)
		payloads, err := c.src.ReadPage(ctx, page)
		if err != nil {
			return err
		}
		recs := make([]*val.OwnedRecord, len(payloads))
		for i, p := range payloads {
			if recs[i], err = c.parse(p); err != nil {
				return err
			}
		}
		l.recs = recs
		return nil
	})
	c.pending = l
}

// WaitForCompletion blocks until the page read started by the last IO
// result has finished and surfaces its error.
func (c *PageCursor) WaitForCompletion(ctx context.Context) error {
	l := c.pending
	if l == nil {
		return nil
	}

	select {
	case <-l.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	c.pending = nil
	if err := l.eg.Wait(); err != nil {
		return err
	}
	c.cache.Add(l.page, l.recs)
	c.logger.Tracef("page %d loaded with %d records", l.page, len(l.recs))
	return nil
}

// RowID is the 1-based ordinal of the current row in the scan.
func (c *PageCursor) RowID() (uint64, bool, error) {
	if c.current.IsEmpty() {
		return 0, false, nil
	}
	return c.rowID, true, nil
}

func (c *PageCursor) Record() (*RecordRef, error) {
	return c.current.Borrow(), nil
}

func (c *PageCursor) Insert(_ context.Context, _ *val.OwnedRecord) error {
	return ErrNotImplemented.New("insert", "page cursor")
}
