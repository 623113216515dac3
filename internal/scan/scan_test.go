package scan

import (
	"bufio"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

// referenceAggregate is a naive single-pass implementation used to
// cross-check the parallel engine.
func referenceAggregate(t *testing.T, input string) map[string]Stats {
	t.Helper()
	out := make(map[string]Stats)
	sc := bufio.NewScanner(strings.NewReader(input))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		key, valText, ok := strings.Cut(line, ";")
		if !ok {
			t.Fatalf("reference: malformed line %q", line)
		}
		v, err := strconv.ParseFloat(valText, 64)
		if err != nil {
			t.Fatalf("reference: %v", err)
		}
		if s, ok := out[key]; ok {
			s.Add(v)
			out[key] = s
		} else {
			out[key] = newStats(v)
		}
	}
	return out
}

func runString(t *testing.T, input string, opts Options) map[string]Stats {
	t.Helper()
	results, err := Run(strings.NewReader(input), int64(len(input)), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := make(map[string]Stats)
	for key, s := range results {
		out[key] = *s
	}
	return out
}

func TestRunScenario(t *testing.T) {
	const input = "AA;3.0\nBB;4.0\nAA;1.0\n"
	want := map[string]Stats{
		"AA": {Sum: 4, Count: 2, Min: 1, Max: 3},
		"BB": {Sum: 4, Count: 1, Min: 4, Max: 4},
	}
	// Sweep chunk sizes so the split lands on every possible byte
	// boundary, including record ends and past-EOF.
	for chunk := int64(7); chunk <= int64(len(input))+3; chunk++ {
		got := runString(t, input, Options{Workers: 3, ChunkSize: chunk})
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("chunk=%d: got %+v, want %+v", chunk, got, want)
		}
	}
}

func TestRunEmptyFile(t *testing.T) {
	got := runString(t, "", Options{Workers: 4})
	if len(got) != 0 {
		t.Fatalf("got %+v, want empty map", got)
	}
}

func TestRunSingleRecord(t *testing.T) {
	got := runString(t, "AA;5.0\n", Options{Workers: 4})
	want := map[string]Stats{"AA": {Sum: 5, Count: 1, Min: 5, Max: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRunBoundaryOnRecordEnd(t *testing.T) {
	// Ten 7-byte records; a chunk size of 7 puts every chunk boundary
	// exactly on a record end. Each record must be counted once.
	input := strings.Repeat("AA;1.0\n", 10)
	for _, chunk := range []int64{7, 14, 70} {
		got := runString(t, input, Options{Workers: 3, ChunkSize: chunk})
		if s := got["AA"]; s.Count != 10 || s.Sum != 10 {
			t.Fatalf("chunk=%d: AA = %+v, want count=10 sum=10", chunk, s)
		}
	}
}

func TestRunAggregationCorrectness(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 100; i++ {
		fmt.Fprintf(&sb, "k;%d.0\n", i)
	}
	got := runString(t, sb.String(), Options{Workers: 4, ChunkSize: 32})
	want := map[string]Stats{"k": {Sum: 5050, Count: 100, Min: 1, Max: 100}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

// TestRunWorkerCountEquivalence checks that one worker and many
// workers produce identical results. Values are multiples of 0.5, so
// floating-point sums are exact in any order.
func TestRunWorkerCountEquivalence(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&sb, "key-%d;%.1f\n", i%17, float64(i%200)/2.0-50.0)
	}
	input := sb.String()

	want := referenceAggregate(t, input)
	for _, workers := range []int{1, 4, 16} {
		got := runString(t, input, Options{Workers: workers, ChunkSize: 256})
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("workers=%d: got %+v, want %+v", workers, got, want)
		}
	}
}

func TestRunMarginTooSmall(t *testing.T) {
	long := strings.Repeat("x", 100) + ";1.0\n"
	input := strings.Repeat(long, 4)
	_, err := Run(strings.NewReader(input), int64(len(input)), Options{
		Workers: 2, ChunkSize: 64, Margin: 8,
	})
	if !errors.Is(err, ErrNoTerminator) {
		t.Fatalf("err = %v, want ErrNoTerminator", err)
	}
}

func TestRunMalformedRecordAbortsRun(t *testing.T) {
	input := "AA;3.0\ngarbage\nBB;4.0\n"
	_, err := Run(strings.NewReader(input), int64(len(input)), Options{Workers: 2})
	if !errors.Is(err, ErrMissingSeparator) {
		t.Fatalf("err = %v, want ErrMissingSeparator", err)
	}
}

func TestRunLargerMarginForLongRecords(t *testing.T) {
	// The same long records pass once the margin exceeds their length.
	long := strings.Repeat("x", 100) + ";1.0\n"
	input := strings.Repeat(long, 4)
	got := runString(t, input, Options{Workers: 2, ChunkSize: 128, Margin: 128})
	key := strings.Repeat("x", 100)
	if s := got[key]; s.Count != 4 || s.Sum != 4 {
		t.Fatalf("got %+v, want count=4 sum=4", s)
	}
}
