package scan

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoTerminator reports that no record terminator was found inside
// the lookback margin. It means the margin, or the chunk size itself,
// is smaller than the longest record in the file.
var ErrNoTerminator = errors.New("no record terminator within margin")

// alignChunk reads the chunk with nominal range [start, start+chunk)
// into buf and realigns both ends to record boundaries. The returned
// slice starts immediately after a terminator (or at file start) and
// ends on a terminator (or at EOF), so it contains only whole records.
// base is the absolute file offset of the first returned byte.
//
// A claim at or past EOF returns an empty slice. buf must have room
// for chunk+margin bytes.
func alignChunk(r io.ReaderAt, size, start, chunk, margin int64, buf []byte) (data []byte, base int64, err error) {
	if start >= size {
		return nil, 0, nil
	}

	readFrom := start - margin
	if readFrom < 0 {
		readFrom = 0
	}
	head := start - readFrom
	// Clamp the read so the buffer never extends past the nominal end
	// or past EOF. Bytes beyond start+chunk belong to later claims.
	readTo := start + chunk
	if readTo > size {
		readTo = size
	}
	buf = buf[:readTo-readFrom]

	n, err := r.ReadAt(buf, readFrom)
	if err != nil && !(err == io.EOF && n == len(buf)) {
		return nil, 0, fmt.Errorf("read chunk at offset %d: %w", readFrom, err)
	}

	// Walk back from the nominal start to the terminator of the
	// previous record. The first chunk already starts on a boundary.
	i := head
	for i > 0 && buf[i-1] != terminator {
		i--
	}
	if i == 0 && start > 0 {
		return nil, 0, fmt.Errorf("align chunk at offset %d: %w", start, ErrNoTerminator)
	}

	end := int64(len(buf))
	if readTo < size {
		// Drop the trailing partial record; the next claim's lookback
		// picks it up. At EOF there is nothing after this chunk, so an
		// unterminated final record is kept instead.
		j := end - 1
		for j >= i && buf[j] != terminator {
			j--
		}
		if j < i {
			return nil, 0, fmt.Errorf("align chunk at offset %d: %w", start, ErrNoTerminator)
		}
		end = j + 1
	}
	return buf[i:end], readFrom + i, nil
}
