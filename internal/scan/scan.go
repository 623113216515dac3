// Package scan computes per-key min/max/mean aggregates over a large
// newline-delimited key;value file. The file is divided into
// fixed-size chunks claimed through an atomic cursor, each chunk is
// realigned to record boundaries, and every worker aggregates into a
// private table that is merged into the shared result exactly once.
package scan

import (
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultChunkSize balances claim overhead against how much of the
	// file a single worker pins in memory at a time.
	DefaultChunkSize = 16 << 20

	// DefaultMargin is the lookback window used to realign chunk
	// starts. It must exceed the longest record in the file; raise it
	// via Options for formats with long keys.
	DefaultMargin = 64
)

// Options control a Run. Zero values pick the defaults above and one
// worker per available CPU.
type Options struct {
	Workers   int
	ChunkSize int64
	Margin    int64
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	return o
}

// Run scans the size bytes readable from r and returns the per-key
// aggregates. Workers claim chunks until the file is exhausted; the
// record format is a trusted precondition, so any I/O, alignment, or
// format error aborts the whole run and no partial result is returned.
func Run(r io.ReaderAt, size int64, opts Options) (map[string]*Stats, error) {
	opts = opts.withDefaults()
	cur := newCursor(size, opts.ChunkSize)
	m := newMerger()

	var g errgroup.Group
	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			buf := make([]byte, opts.ChunkSize+opts.Margin)
			local := newAggTable()
			for {
				start, ok := cur.claim()
				if !ok {
					break
				}
				chunk, base, err := alignChunk(r, size, start, opts.ChunkSize, opts.Margin, buf)
				if err != nil {
					return err
				}
				it := newRecordIter(chunk, base)
				for key, v, ok := it.Next(); ok; key, v, ok = it.Next() {
					local.observe(key, v)
				}
				if err := it.Err(); err != nil {
					return err
				}
			}
			m.absorb(local)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m.results, nil
}
