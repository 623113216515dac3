package scan

import "github.com/zeebo/xxh3"

const initialTableSize = 1 << 12

// aggTable is the worker-local aggregate map: open addressing with
// linear probing, keyed by the xxh3 hash of the key bytes. The stored
// key is compared on every hash match, so colliding hashes stay
// correct. The key is copied out of the chunk buffer once, when the
// entry is created; repeat observations allocate nothing.
//
// An aggTable is owned by exactly one worker and needs no locking.
type aggTable struct {
	entries []aggEntry // len is always a power of two
	used    int
}

type aggEntry struct {
	hash  uint64
	key   string
	stats Stats
}

func newAggTable() *aggTable {
	return &aggTable{entries: make([]aggEntry, initialTableSize)}
}

// observe folds one observation into the aggregate for key.
func (t *aggTable) observe(key []byte, v float64) {
	h := xxh3.Hash(key)
	mask := uint64(len(t.entries) - 1)
	for i := h & mask; ; i = (i + 1) & mask {
		e := &t.entries[i]
		if e.stats.Count == 0 {
			// An entry with no observations is a free slot.
			*e = aggEntry{hash: h, key: string(key), stats: newStats(v)}
			t.used++
			if t.used*2 > len(t.entries) {
				t.grow()
			}
			return
		}
		if e.hash == h && e.key == string(key) {
			e.stats.Add(v)
			return
		}
	}
}

// grow doubles the table and reinserts every live entry.
func (t *aggTable) grow() {
	old := t.entries
	t.entries = make([]aggEntry, 2*len(old))
	mask := uint64(len(t.entries) - 1)
	for i := range old {
		e := &old[i]
		if e.stats.Count == 0 {
			continue
		}
		for j := e.hash & mask; ; j = (j + 1) & mask {
			if t.entries[j].stats.Count == 0 {
				t.entries[j] = *e
				break
			}
		}
	}
}

// forEach visits every key with at least one observation.
func (t *aggTable) forEach(fn func(key string, s *Stats)) {
	for i := range t.entries {
		if e := &t.entries[i]; e.stats.Count > 0 {
			fn(e.key, &e.stats)
		}
	}
}
