package handler

import (
	"sync/atomic"

	"github.com/philipp01105/nlog/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log entry when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log entry when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.DebugLevel: DropNewest,
		core.InfoLevel:  DropNewest,
		core.WarnLevel:  DropNewest,
		core.ErrorLevel: Block,
		core.FatalLevel: Block,
		core.PanicLevel: Block,
	}
}

// trackedLevels are the levels with their own drop counter. Fatal and
// Panic drops are counted as Error.
var trackedLevels = [...]core.Level{core.DebugLevel, core.InfoLevel, core.WarnLevel, core.ErrorLevel}

func dropSlot(level core.Level) int {
	switch {
	case level <= core.DebugLevel:
		return 0
	case level >= core.ErrorLevel:
		return 3
	default:
		return int(level)
	}
}

// Stats tracks handler statistics. All methods are safe for concurrent use.
type Stats struct {
	dropped   [len(trackedLevels)]atomic.Uint64
	blocked   atomic.Uint64
	processed atomic.Uint64
	failed    atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped counts an entry dropped at level.
func (s *Stats) IncrementDropped(level core.Level) {
	s.dropped[dropSlot(level)].Add(1)
}

// IncrementBlocked counts a blocking send that timed out.
func (s *Stats) IncrementBlocked() { s.blocked.Add(1) }

// IncrementProcessed counts an entry written successfully.
func (s *Stats) IncrementProcessed() { s.processed.Add(1) }

// IncrementFailed counts an entry that could not be formatted or written.
func (s *Stats) IncrementFailed() { s.failed.Add(1) }

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	return s.dropped[dropSlot(level)].Load()
}

// GetBlocked returns the blocked count
func (s *Stats) GetBlocked() uint64 { return s.blocked.Load() }

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 { return s.processed.Load() }

// GetFailed returns the failed count
func (s *Stats) GetFailed() uint64 { return s.failed.Load() }

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for i := range s.dropped {
		total += s.dropped[i].Load()
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.dropped {
		s.dropped[i].Store(0)
	}
	s.blocked.Store(0)
	s.processed.Store(0)
	s.failed.Store(0)
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	DroppedTotal   map[core.Level]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
	FailedTotal    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		DroppedTotal:   make(map[core.Level]uint64, len(trackedLevels)),
		BlockedTotal:   s.GetBlocked(),
		ProcessedTotal: s.GetProcessed(),
		FailedTotal:    s.GetFailed(),
	}
	for _, level := range trackedLevels {
		snap.DroppedTotal[level] = s.GetDropped(level)
	}
	return snap
}
