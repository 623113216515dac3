package scan

import "sync"

// merger is the shared result map. Each worker absorbs its local table
// exactly once, after its claim loop ends, so the lock is contended
// O(workers) times rather than once per record.
type merger struct {
	mu      sync.Mutex
	results map[string]*Stats
}

func newMerger() *merger {
	return &merger{results: make(map[string]*Stats)}
}

// absorb folds a worker's local table into the shared map. The local
// table's key strings are already owned, independent of any chunk
// buffer, so they move into the map as-is.
func (m *merger) absorb(t *aggTable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.forEach(func(key string, s *Stats) {
		if cur, ok := m.results[key]; ok {
			cur.Merge(*s)
		} else {
			c := *s
			m.results[key] = &c
		}
	})
}
