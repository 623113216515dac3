package scan

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"unsafe"
)

const (
	// terminator ends a record, separator divides its key from its
	// value. The record format is a fixed external contract.
	terminator = '\n'
	separator  = ';'
)

// ErrMissingSeparator reports a record with no key/value separator.
var ErrMissingSeparator = errors.New("record missing separator")

// recordIter walks an aligned chunk one record at a time in a single
// forward pass. Returned keys are views into the chunk buffer and stay
// valid only until the buffer is reused.
type recordIter struct {
	rest []byte
	base int64 // absolute file offset of rest[0]
	err  error
}

func newRecordIter(chunk []byte, base int64) recordIter {
	return recordIter{rest: chunk, base: base}
}

// Next returns the next record's key bytes and parsed value. ok is
// false once the chunk is exhausted or a malformed record was hit;
// check Err to tell the two apart.
func (it *recordIter) Next() (key []byte, val float64, ok bool) {
	for len(it.rest) > 0 && it.err == nil {
		line := it.rest
		advance := len(it.rest)
		if i := bytes.IndexByte(it.rest, terminator); i >= 0 {
			line = it.rest[:i]
			advance = i + 1
		}
		recOff := it.base
		it.rest = it.rest[advance:]
		it.base += int64(advance)
		if len(line) == 0 {
			// A trailing terminator leaves one empty fragment.
			continue
		}

		sep := bytes.IndexByte(line, separator)
		if sep < 0 {
			it.err = fmt.Errorf("record at offset %d: %w", recOff, ErrMissingSeparator)
			return nil, 0, false
		}
		v, err := parseValue(line[sep+1:])
		if err != nil {
			it.err = fmt.Errorf("record at offset %d: %w", recOff, err)
			return nil, 0, false
		}
		return line[:sep], v, true
	}
	return nil, 0, false
}

// Err returns the first error hit during iteration, if any.
func (it *recordIter) Err() error {
	return it.err
}

// parseValue decodes the value bytes as a decimal float without
// copying them into a string first.
func parseValue(b []byte) (float64, error) {
	s := unsafe.String(unsafe.SliceData(b), len(b))
	return strconv.ParseFloat(s, 64)
}
