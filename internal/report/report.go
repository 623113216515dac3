// Package report renders final aggregates. It sits outside the scan
// core: by the time it runs, all workers have finished and the result
// map has a single owner.
package report

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"golang.org/x/exp/maps"

	"keystats/internal/scan"
)

// Write renders the aggregates one key per line, in ascending key
// order, as key=min/mean/max with one decimal place.
func Write(w io.Writer, results map[string]*scan.Stats) error {
	keys := maps.Keys(results)
	slices.Sort(keys)

	bw := bufio.NewWriter(w)
	for _, key := range keys {
		s := results[key]
		if _, err := fmt.Fprintf(bw, "%s=%.1f/%.1f/%.1f\n", key, s.Min, s.Mean(), s.Max); err != nil {
			return err
		}
	}
	return bw.Flush()
}
