// Command datagen writes a synthetic input file for exercising the
// scanner: newline-terminated key;value records drawn from a fixed
// number of distinct keys, values uniform in [-99.9, 99.9].
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
)

func main() {
	var (
		out  = flag.String("out", "measurements.txt", "output file")
		rows = flag.Int("rows", 1_000_000, "number of records to write")
		keys = flag.Int("keys", 400, "number of distinct keys")
		seed = flag.Int64("seed", 1, "random seed")
	)
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*seed))
	w := bufio.NewWriter(f)
	for i := 0; i < *rows; i++ {
		fmt.Fprintf(w, "station-%03d;%.1f\n", rng.Intn(*keys), rng.Float64()*199.8-99.9)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("flush %s: %v", *out, err)
	}
	log.Printf("wrote %d rows to %s", *rows, *out)
}
