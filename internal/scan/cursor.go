package scan

import "sync/atomic"

// cursor hands out nominal chunk start offsets to workers. Offsets are
// spaced exactly chunk bytes apart and no offset is handed out twice,
// so the ranges claimed by different workers never overlap.
type cursor struct {
	next  atomic.Int64
	size  int64
	chunk int64
}

func newCursor(size, chunk int64) *cursor {
	return &cursor{size: size, chunk: chunk}
}

// claim returns the next nominal start offset. ok is false once the
// offsets have walked past the end of the file; an offset equal to the
// file size could only yield an empty chunk, so it is not handed out.
func (c *cursor) claim() (start int64, ok bool) {
	start = c.next.Add(c.chunk) - c.chunk
	if start >= c.size {
		return 0, false
	}
	return start, true
}
