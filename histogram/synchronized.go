package histogram

import "sync"

// NewSynchronized returns a Histogram that guards delegate with a read-write lock, so that appends are exclusive and
// queries may run concurrently with each other.
//
// The returned Histogram is concurrency safe.
func NewSynchronized(delegate Histogram) Histogram {
	return &synchronized{delegate: delegate}
}

type synchronized struct {
	mu       sync.RWMutex
	delegate Histogram
}

func (s *synchronized) Append(value uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delegate.Append(value)
}

func (s *synchronized) Average() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.Average()
}

func (s *synchronized) AverageLifetime() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.AverageLifetime()
}

func (s *synchronized) AverageP(percentile uint8) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.AverageP(percentile)
}

func (s *synchronized) SampleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.SampleCount()
}

func (s *synchronized) SampleCountP(percentile uint8) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.SampleCountP(percentile)
}

func (s *synchronized) Buckets() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.Buckets()
}

func (s *synchronized) Range() Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.Range()
}

func (s *synchronized) LifetimeRange() Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.LifetimeRange()
}
