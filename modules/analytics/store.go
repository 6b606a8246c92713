package analytics

import (
	"sync"
	"time"
)

// rejectedOperation groups requests that never reached an operation.
const rejectedOperation = "rejected"

// OperationStats counts dispatches of one operation.
type OperationStats struct {
	Success         int64   `json:"success"`
	Failure         int64   `json:"failure"`
	AvgDurationMs   float64 `json:"avg_duration_ms"`
	totalDurationMs float64
}

// Summary is the snapshot served by get-stats.
type Summary struct {
	Total          int64                     `json:"total"`
	Operations     map[string]OperationStats `json:"operations"`
	StatusCodes    map[int]int64             `json:"status_codes"`
	LastDispatchAt *time.Time                `json:"last_dispatch_at,omitempty"`
}

// Store aggregates dispatch results in memory.
type Store struct {
	mu          sync.RWMutex
	total       int64
	operations  map[string]*OperationStats
	statusCodes map[int]int64
	last        time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		operations:  make(map[string]*OperationStats),
		statusCodes: make(map[int]int64),
	}
}

// Record adds one dispatch result.
func (s *Store) Record(operation string, success bool, status int, durationMs float64, at time.Time) {
	if operation == "" {
		operation = rejectedOperation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := s.operations[operation]
	if !ok {
		stats = &OperationStats{}
		s.operations[operation] = stats
	}
	if success {
		stats.Success++
	} else {
		stats.Failure++
	}
	stats.totalDurationMs += durationMs
	stats.AvgDurationMs = stats.totalDurationMs / float64(stats.Success+stats.Failure)

	s.total++
	s.statusCodes[status]++
	if at.After(s.last) {
		s.last = at
	}
}

// Summary returns a copy of the aggregated counts.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := Summary{
		Total:       s.total,
		Operations:  make(map[string]OperationStats, len(s.operations)),
		StatusCodes: make(map[int]int64, len(s.statusCodes)),
	}
	for name, stats := range s.operations {
		summary.Operations[name] = *stats
	}
	for code, n := range s.statusCodes {
		summary.StatusCodes[code] = n
	}
	if !s.last.IsZero() {
		last := s.last
		summary.LastDispatchAt = &last
	}
	return summary
}
