package status

import "sync/atomic"

// Counter names reported by RunStats
const (
	KeyBytes       = "bytes"
	KeyRuns        = "runs"
	KeyRepeats     = "runs_repeated"
	KeyRepeatBytes = "bytes_repeated"
	KeyLongest     = "run_longest"
	KeyScoreSum    = "score_sum"
)

// RunStats caches the counters updated once per rendered run
type RunStats struct {
	bytes       *atomic.Int64
	runs        *atomic.Int64
	repeats     *atomic.Int64
	repeatBytes *atomic.Int64
	longest     *atomic.Int64
	scoreSum    *AtomicFloat
}

// NewRunStats registers the run counters in reg
func NewRunStats(reg *Registry) *RunStats {
	return &RunStats{
		bytes:       reg.Int(KeyBytes),
		runs:        reg.Int(KeyRuns),
		repeats:     reg.Int(KeyRepeats),
		repeatBytes: reg.Int(KeyRepeatBytes),
		longest:     reg.Int(KeyLongest),
		scoreSum:    reg.Float(KeyScoreSum),
	}
}

// Observe records one non-empty run
func (s *RunStats) Observe(length int, repeat bool, score float64) {
	n := int64(length)
	s.bytes.Add(n)
	s.runs.Add(1)
	if repeat {
		s.repeats.Add(1)
		s.repeatBytes.Add(n)
	}
	StoreMax(s.longest, n)
	s.scoreSum.Add(score)
}

// Bytes returns the number of bytes observed
func (s *RunStats) Bytes() int64 {
	return s.bytes.Load()
}

// Runs returns the number of runs observed
func (s *RunStats) Runs() int64 {
	return s.runs.Load()
}
