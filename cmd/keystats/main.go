// Command keystats aggregates a newline-delimited key;value file into
// per-key min/mean/max statistics, printed in key order on stdout.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/mmap"

	"keystats/internal/report"
	"keystats/internal/scan"
)

func main() {
	var (
		filePath   = flag.String("file", "measurements.txt", "input file to aggregate")
		workers    = flag.Int("workers", runtime.GOMAXPROCS(0), "number of scan workers")
		chunkSize  = flag.Int64("chunk-size", scan.DefaultChunkSize, "bytes claimed per chunk")
		margin     = flag.Int64("margin", scan.DefaultMargin, "lookback margin; must exceed the longest record")
		useMmap    = flag.Bool("mmap", false, "read the file through a memory map")
		cpuProfile = flag.String("cpuprofile", "", "write a CPU profile to this file")
	)
	flag.Parse()

	if *cpuProfile != "" {
		pf, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("create profile: %v", err)
		}
		defer pf.Close()
		if err := pprof.StartCPUProfile(pf); err != nil {
			log.Fatalf("start profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	r, size, cleanup, err := openInput(*filePath, *useMmap)
	if err != nil {
		log.Fatalf("open %s: %v", *filePath, err)
	}
	defer cleanup()

	start := time.Now()
	results, err := scan.Run(r, size, scan.Options{
		Workers:   *workers,
		ChunkSize: *chunkSize,
		Margin:    *margin,
	})
	if err != nil {
		log.Fatalf("scan %s: %v", *filePath, err)
	}
	log.Printf("aggregated %d keys from %d bytes in %v", len(results), size, time.Since(start))

	if err := report.Write(os.Stdout, results); err != nil {
		log.Fatalf("write report: %v", err)
	}
}

// openInput opens the file either as a memory map or as a plain file
// with sequential-readahead advice. Both paths hand the core the same
// io.ReaderAt surface.
func openInput(path string, useMmap bool) (io.ReaderAt, int64, func() error, error) {
	if useMmap {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, 0, nil, err
		}
		return m, int64(m.Len()), m.Close, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, nil, err
	}
	adviseSequential(f)
	return f, info.Size(), f.Close, nil
}
