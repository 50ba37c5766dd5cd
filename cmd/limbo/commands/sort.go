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

package commands

import (
	"bufio"
	"context"
	"encoding/hex"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	flag "github.com/juju/gnuflag"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/seonWKim/limbo/cmd/limbo/cli"
	"github.com/seonWKim/limbo/libraries/utils/config"
	"github.com/seonWKim/limbo/store/cursor"
	"github.com/seonWKim/limbo/store/sort"
)

const (
	sortUsage = "sort [--order insertion|key] [--config file.yaml] [--log-level level] [--stats] <file>"

	// LinesPerPage is the number of input lines grouped into one page.
	LinesPerPage = 64
)

// SortCmd spools every record of a file through a Sorter and prints the
// rows it replays.
type SortCmd struct{}

var _ cli.Command = SortCmd{}

func (SortCmd) Name() string {
	return "sort"
}

func (SortCmd) Description() string {
	return "Spool hex encoded records from a file through a sorter."
}

func (SortCmd) Exec(ctx context.Context, commandStr string, args []string) int {
	fs := flag.NewFlagSet(commandStr, flag.ContinueOnError)
	order := fs.String("order", "", "replay order: insertion or key")
	cfgPath := fs.String("config", "", "YAML config file")
	logLevel := fs.String("log-level", "", "log level")
	stats := fs.Bool("stats", false, "print cursor metrics when done")
	if code, ok := parseFlags(fs, sortUsage, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	var cfg config.ReadableConfig = config.NewMapConfig(nil)
	if *cfgPath != "" {
		c, err := config.FromYAMLFile(*cfgPath)
		if err != nil {
			return printError(err)
		}
		cfg = c
	}

	opts, err := newSortOptions(cfg, *order, *logLevel)
	if err != nil {
		return printError(err)
	}

	var reg *prometheus.Registry
	if *stats {
		reg = prometheus.NewRegistry()
		reg.MustRegister(cursor.Collectors()...)
	}

	n, size, err := runSort(ctx, fs.Arg(0), opts)
	if err != nil {
		return printError(err)
	}
	cli.PrintErrf("sorted %d rows (%s)\n", n, humanize.Bytes(size))

	if reg != nil {
		if err = printStats(reg); err != nil {
			return printError(err)
		}
	}
	return 0
}

type sortOptions struct {
	ordering  sort.Ordering
	cacheSize int
	logger    *logrus.Entry
}

// newSortOptions resolves settings from |cfg|. Non-empty flag values take
// precedence over the config.
func newSortOptions(cfg config.ReadableConfig, order, level string) (sortOptions, error) {
	if order == "" {
		order = config.GetStringOrDefault(cfg, config.SorterOrderingKey, sort.InsertionOrder.String())
	}
	ordering, err := sort.ParseOrdering(order)
	if err != nil {
		return sortOptions{}, err
	}

	cacheSize, err := config.GetIntOrDefault(cfg, config.PageCacheSizeKey, cursor.DefaultPageCacheSize)
	if err != nil {
		return sortOptions{}, errors.Wrapf(err, "invalid %s", config.PageCacheSizeKey)
	}

	if level == "" {
		level = config.GetStringOrDefault(cfg, config.LogLevelKey, logrus.WarnLevel.String())
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return sortOptions{}, err
	}
	logger := logrus.New()
	logger.SetOutput(cli.CliErr)
	logger.SetLevel(lvl)

	return sortOptions{ordering: ordering, cacheSize: int(cacheSize), logger: logrus.NewEntry(logger)}, nil
}

func runSort(ctx context.Context, path string, opts sortOptions) (rows int, size uint64, err error) {
	src, err := openLinePages(path, LinesPerPage)
	if err != nil {
		return 0, 0, err
	}

	pages, err := cursor.NewPageCursor(src,
		cursor.WithPageCacheSize(opts.cacheSize),
		cursor.WithPageLogger(opts.logger.WithField("component", "page_cursor")))
	if err != nil {
		return 0, 0, err
	}
	sorter := sort.NewSorter(sort.WithOrdering(opts.ordering), sort.WithLogger(opts.logger))

	if err = spool(ctx, pages, sorter); err != nil {
		return 0, 0, err
	}
	return replay(ctx, sorter)
}

// spool inserts every row of |src| into |dst|.
func spool(ctx context.Context, src cursor.Cursor, dst cursor.Cursor) error {
	if err := cursor.Retry(ctx, src, src.Rewind); err != nil {
		return err
	}
	for !src.IsEmpty() {
		ref, err := src.Record()
		if err != nil {
			return err
		}
		rec, err := ref.Clone()
		ref.Release()
		if err != nil {
			return err
		}

		if err = dst.Insert(ctx, rec); err != nil {
			return err
		}
		if err = cursor.Retry(ctx, src, src.Next); err != nil {
			return err
		}
	}
	return nil
}

// replay prints every row of |c| as a JSON array.
func replay(ctx context.Context, c cursor.Cursor) (rows int, size uint64, err error) {
	if err = cursor.Retry(ctx, c, c.Rewind); err != nil {
		return 0, 0, err
	}
	for !c.IsEmpty() {
		ref, err := c.Record()
		if err != nil {
			return rows, size, err
		}
		rec, err := ref.Clone()
		ref.Release()
		if err != nil {
			return rows, size, err
		}

		out, err := json.Marshal(rec)
		if err != nil {
			return rows, size, errors.Wrap(err, "error encoding record")
		}
		cli.Println(string(out))
		rows++
		size += uint64(len(rec.Payload()))

		if err = cursor.Retry(ctx, c, c.Next); err != nil {
			return rows, size, err
		}
	}
	return rows, size, nil
}

func printStats(g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "error gathering metrics")
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			cli.PrintErrf("%s %v\n", mf.GetName(), m.GetCounter().GetValue())
		}
	}
	return nil
}

// linePages serves a file of hex encoded payloads, one per line, as pages
// of a fixed number of lines. Blank lines are skipped.
type linePages struct {
	pages   [][]string
	lineNos [][]int
}

var _ cursor.PageSource = &linePages{}

func openLinePages(path string, perPage int) (*linePages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %s", path)
	}
	defer f.Close()

	lp := &linePages{}
	var page []string
	var lineNos []int
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		page = append(page, line)
		lineNos = append(lineNos, lineNo)
		if len(page) == perPage {
			lp.pages, lp.lineNos = append(lp.pages, page), append(lp.lineNos, lineNos)
			page, lineNos = nil, nil
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading %s", path)
	}
	if len(page) > 0 {
		lp.pages, lp.lineNos = append(lp.pages, page), append(lp.lineNos, lineNos)
	}
	return lp, nil
}

func (lp *linePages) PageCount() int {
	return len(lp.pages)
}

func (lp *linePages) ReadPage(ctx context.Context, page int) ([][]byte, error) {
	lines := lp.pages[page]
	payloads := make([][]byte, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := hex.DecodeString(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lp.lineNos[page][i])
		}
		payloads[i] = b
	}
	return payloads, nil
}
