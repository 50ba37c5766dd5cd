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

import "github.com/prometheus/client_golang/prometheus"

var (
	ioSuspensions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "limbo",
		Subsystem: "cursor",
		Name:      "io_suspensions_total",
		Help:      "Cursor operations that returned IO while a page was loaded.",
	})
	pageCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "limbo",
		Subsystem: "cursor",
		Name:      "page_cache_hits_total",
		Help:      "Page lookups served from the page cache.",
	})
	pageCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "limbo",
		Subsystem: "cursor",
		Name:      "page_cache_misses_total",
		Help:      "Page lookups that required a read from the page source.",
	})
)

// Collectors returns the cursor metrics. They are not registered with the
// default registry; callers register them where they want them exported.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{ioSuspensions, pageCacheHits, pageCacheMisses}
}
