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
	"github.com/google/btree"

	"github.com/seonWKim/limbo/store/val"
)

type entry struct {
	key string
	seq uint64
	rec *val.OwnedRecord
}

// spool buffers entries until they are replayed.
type spool interface {
	push(e entry)
	pop() (entry, bool)
	len() int
}

// fifoSpool replays entries in insertion order regardless of key.
type fifoSpool struct {
	entries []entry
	head    int
}

func (s *fifoSpool) push(e entry) {
	s.entries = append(s.entries, e)
}

func (s *fifoSpool) pop() (entry, bool) {
	if s.head >= len(s.entries) {
		return entry{}, false
	}
	e := s.entries[s.head]
	s.entries[s.head] = entry{}
	s.head++
	if s.head == len(s.entries) {
		s.entries, s.head = s.entries[:0], 0
	}
	return e, true
}

func (s *fifoSpool) len() int {
	return len(s.entries) - s.head
}

// keySpool replays entries in ascending key order. Equal keys keep their
// insertion order through |seq|.
type keySpool struct {
	t *btree.BTreeG[entry]
}

func newKeySpool() *keySpool {
	return &keySpool{t: btree.NewG[entry](32, entryLess)}
}

func entryLess(a, b entry) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.seq < b.seq
}

func (s *keySpool) push(e entry) {
	s.t.ReplaceOrInsert(e)
}

func (s *keySpool) pop() (entry, bool) {
	return s.t.DeleteMin()
}

func (s *keySpool) len() int {
	return s.t.Len()
}
