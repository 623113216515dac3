package scan

// Stats is the running aggregate for one key. Count is at least 1 once
// the key has been observed, and Min <= Max always holds.
type Stats struct {
	Sum   float64
	Count float64
	Min   float64
	Max   float64
}

func newStats(v float64) Stats {
	return Stats{Sum: v, Count: 1, Min: v, Max: v}
}

// Add folds one observation into the aggregate.
func (s *Stats) Add(v float64) {
	s.Sum += v
	s.Count++
	s.Min = min(s.Min, v)
	s.Max = max(s.Max, v)
}

// Merge folds another aggregate for the same key into s. Merging is
// commutative and associative, so worker completion order does not
// affect the final result.
func (s *Stats) Merge(o Stats) {
	s.Sum += o.Sum
	s.Count += o.Count
	s.Min = min(s.Min, o.Min)
	s.Max = max(s.Max, o.Max)
}

// Mean returns the arithmetic mean of all observations.
func (s Stats) Mean() float64 {
	return s.Sum / s.Count
}
