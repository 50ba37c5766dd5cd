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
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seonWKim/limbo/store/ondisk"
	"github.com/seonWKim/limbo/store/val"
)

type memPages struct {
	pages [][][]byte
	gate  chan struct{}
	fail  map[int]error

	mu    sync.Mutex
	reads map[int]int
}

func newMemPages(t *testing.T, pages ...[]int64) *memPages {
	src := &memPages{reads: make(map[int]int), fail: make(map[int]error)}
	for _, p := range pages {
		var payloads [][]byte
		for _, i := range p {
			b, err := ondisk.EncodeRecord(val.NewInteger(i), val.NewText("row"))
			require.NoError(t, err)
			payloads = append(payloads, b)
		}
		src.pages = append(src.pages, payloads)
	}
	return src
}

func (m *memPages) PageCount() int {
	return len(m.pages)
}

func (m *memPages) ReadPage(ctx context.Context, page int) ([][]byte, error) {
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	m.reads[page]++
	m.mu.Unlock()
	if err := m.fail[page]; err != nil {
		return nil, err
	}
	return m.pages[page], nil
}

func (m *memPages) readCount(page int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[page]
}

type row struct {
	id  uint64
	key int64
}

func scan(t *testing.T, c Cursor) []row {
	ctx := context.Background()
	var rows []row
	require.NoError(t, Retry(ctx, c, c.Rewind))
	for !c.IsEmpty() {
		id, ok, err := c.RowID()
		require.NoError(t, err)
		require.True(t, ok)

		ref, err := c.Record()
		require.NoError(t, err)
		require.True(t, ref.Present())
		v, err := ref.Column(0)
		require.NoError(t, err)
		ref.Release()

		rows = append(rows, row{id: id, key: v.Int()})
		require.NoError(t, Retry(ctx, c, c.Next))
	}
	return rows
}

func TestMemCursor(t *testing.T) {
	ctx := context.Background()
	c := NewMemCursor()
	assert.True(t, c.IsEmpty())

	res, err := c.Rewind(ctx)
	require.NoError(t, err)
	assert.Equal(t, Ok, res)
	assert.True(t, c.IsEmpty())
	_, ok, err := c.RowID()
	require.NoError(t, err)
	assert.False(t, ok)

	for _, i := range []int64{7, 8, 9} {
		require.NoError(t, c.Insert(ctx, val.NewOwnedRecord(val.NewInteger(i))))
	}
	// inserting never moves the cursor
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 3, c.Len())

	assert.Equal(t, []row{{1, 7}, {2, 8}, {3, 9}}, scan(t, c))

	res, err = c.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, Ok, res)
	assert.True(t, c.IsEmpty())
}

func TestMemCursorInsertCopies(t *testing.T) {
	ctx := context.Background()
	rec := val.NewOwnedRecord(val.NewText("a"))
	c := NewMemCursor()
	require.NoError(t, c.Insert(ctx, rec))

	_, err := c.Rewind(ctx)
	require.NoError(t, err)
	ref, err := c.Record()
	require.NoError(t, err)
	defer ref.Release()
	cp, err := ref.Clone()
	require.NoError(t, err)
	assert.True(t, rec.Equal(cp))
}

func TestRecordBorrow(t *testing.T) {
	ctx := context.Background()
	c := NewMemCursor(
		val.NewOwnedRecord(val.NewInteger(1)),
		val.NewOwnedRecord(val.NewInteger(2)),
	)
	_, err := c.Rewind(ctx)
	require.NoError(t, err)

	ref, err := c.Record()
	require.NoError(t, err)
	_, err = c.Next(ctx)
	assert.True(t, ErrRecordBorrowed.Is(err))

	// the failed move leaves the cursor where it was
	id, ok, err := c.RowID()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), id)

	v, err := ref.Column(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int())

	ref.Release()
	ref.Release()
	_, err = c.Next(ctx)
	require.NoError(t, err)

	_, err = ref.Column(0)
	assert.True(t, ErrStaleRecord.Is(err))
	_, err = ref.View()
	assert.True(t, ErrStaleRecord.Is(err))
	_, err = ref.Clone()
	assert.True(t, ErrStaleRecord.Is(err))
}

func TestRecordOnEmptyCursor(t *testing.T) {
	c := NewMemCursor()
	ref, err := c.Record()
	require.NoError(t, err)
	assert.False(t, ref.Present())
	assert.Equal(t, 0, ref.Len())
	ref.Release()
}

func TestPageCursorScan(t *testing.T) {
	src := newMemPages(t, []int64{1, 2}, nil, []int64{3}, []int64{4, 5})
	c, err := NewPageCursor(src)
	require.NoError(t, err)

	misses := testutil.ToFloat64(pageCacheMisses)
	suspensions := testutil.ToFloat64(ioSuspensions)
	hits := testutil.ToFloat64(pageCacheHits)

	exp := []row{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}}
	assert.Equal(t, exp, scan(t, c))
	for p := 0; p < src.PageCount(); p++ {
		assert.Equal(t, 1, src.readCount(p))
	}

	assert.Equal(t, float64(4), testutil.ToFloat64(pageCacheMisses)-misses)
	assert.Equal(t, float64(4), testutil.ToFloat64(ioSuspensions)-suspensions)
	assert.Greater(t, testutil.ToFloat64(pageCacheHits), hits)

	// a second scan is served from the cache
	assert.Equal(t, exp, scan(t, c))
	for p := 0; p < src.PageCount(); p++ {
		assert.Equal(t, 1, src.readCount(p))
	}
}

func TestPageCursorSuspendsUntilWaited(t *testing.T) {
	ctx := context.Background()
	src := newMemPages(t, []int64{10, 20})
	src.gate = make(chan struct{})
	c, err := NewPageCursor(src)
	require.NoError(t, err)

	res, err := c.Rewind(ctx)
	require.NoError(t, err)
	assert.Equal(t, IO, res)
	assert.True(t, c.IsEmpty())

	// still in flight
	res, err = c.Rewind(ctx)
	require.NoError(t, err)
	assert.Equal(t, IO, res)

	close(src.gate)
	require.NoError(t, c.WaitForCompletion(ctx))
	require.NoError(t, c.WaitForCompletion(ctx))

	res, err = c.Rewind(ctx)
	require.NoError(t, err)
	assert.Equal(t, Ok, res)
	id, ok, err := c.RowID()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), id)

	res, err = c.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, Ok, res)
	id, _, _ = c.RowID()
	assert.Equal(t, uint64(2), id)

	res, err = c.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, Ok, res)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 1, src.readCount(0))
}

func TestPageCursorRetryWithoutWait(t *testing.T) {
	ctx := context.Background()
	src := newMemPages(t, []int64{1}, []int64{2})
	c, err := NewPageCursor(src)
	require.NoError(t, err)

	var keys []int64
	res, err := c.Rewind(ctx)
	for ; err == nil && res == IO; res, err = c.Rewind(ctx) {
	}
	require.NoError(t, err)
	for !c.IsEmpty() {
		ref, err := c.Record()
		require.NoError(t, err)
		v, err := ref.Column(0)
		require.NoError(t, err)
		ref.Release()
		keys = append(keys, v.Int())

		res, err = c.Next(ctx)
		for ; err == nil && res == IO; res, err = c.Next(ctx) {
		}
		require.NoError(t, err)
	}
	assert.Equal(t, []int64{1, 2}, keys)
}

func TestPageCursorReadError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	src := newMemPages(t, []int64{1}, []int64{2})
	src.fail[1] = boom
	c, err := NewPageCursor(src)
	require.NoError(t, err)

	require.NoError(t, Retry(ctx, c, c.Rewind))
	err = Retry(ctx, c, c.Next)
	assert.ErrorIs(t, err, boom)
}

func TestPageCursorParseError(t *testing.T) {
	ctx := context.Background()
	src := &memPages{pages: [][][]byte{{{0x05, 0x01}}}, reads: make(map[int]int)}
	c, err := NewPageCursor(src)
	require.NoError(t, err)

	err = Retry(ctx, c, c.Rewind)
	assert.True(t, ondisk.ErrMalformedHeader.Is(err))
}

func TestPageCursorEviction(t *testing.T) {
	src := newMemPages(t, []int64{1}, []int64{2})
	c, err := NewPageCursor(src, WithPageCacheSize(1))
	require.NoError(t, err)

	assert.Len(t, scan(t, c), 2)
	assert.Len(t, scan(t, c), 2)
	assert.Equal(t, 2, src.readCount(0))
	assert.Equal(t, 2, src.readCount(1))

	_, err = NewPageCursor(src, WithPageCacheSize(0))
	assert.Error(t, err)
}

func TestPageCursorParser(t *testing.T) {
	src := newMemPages(t, []int64{1, 2, 3})
	parsed := 0
	c, err := NewPageCursor(src, WithRecordParser(func(p []byte) (*val.OwnedRecord, error) {
		parsed++
		return ondisk.ParseRecord(p)
	}))
	require.NoError(t, err)
	assert.Len(t, scan(t, c), 3)
	assert.Equal(t, 3, parsed)
}

func TestPageCursorInsert(t *testing.T) {
	c, err := NewPageCursor(newMemPages(t))
	require.NoError(t, err)
	err = c.Insert(context.Background(), val.NewOwnedRecord())
	assert.True(t, ErrNotImplemented.Is(err))

	require.NoError(t, Retry(context.Background(), c, c.Rewind))
	assert.True(t, c.IsEmpty())
}

func TestCollectors(t *testing.T) {
	assert.Len(t, Collectors(), 3)
}
