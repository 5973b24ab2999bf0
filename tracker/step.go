package tracker

import (
	"encoding/json"
	"fmt"
	"time"
)

// StepType represents the kind of operation a StepRecord describes
type StepType int

const (
	StepRead StepType = iota
	StepWrite
	StepCompare
	StepSwap
	StepPhase
	StepMilestone
)

// String returns the string representation of StepType
func (st StepType) String() string {
	switch st {
	case StepRead:
		return "read"
	case StepWrite:
		return "write"
	case StepCompare:
		return "compare"
	case StepSwap:
		return "swap"
	case StepPhase:
		return "phase"
	case StepMilestone:
		return "milestone"
	default:
		return fmt.Sprintf("unknown(%d)", int(st))
	}
}

// ParseStepType parses a string into a StepType
func ParseStepType(s string) (StepType, error) {
	switch s {
	case "read":
		return StepRead, nil
	case "write":
		return StepWrite, nil
	case "compare":
		return StepCompare, nil
	case "swap":
		return StepSwap, nil
	case "phase":
		return StepPhase, nil
	case "milestone":
		return StepMilestone, nil
	default:
		return StepRead, fmt.Errorf("invalid step type: %s (must be 'read', 'write', 'compare', 'swap', 'phase', or 'milestone')", s)
	}
}

// MarshalJSON implements json.Marshaler for StepType
func (st StepType) MarshalJSON() ([]byte, error) {
	return json.Marshal(st.String())
}

// UnmarshalJSON implements json.Unmarshaler for StepType
func (st *StepType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseStepType(s)
	if err != nil {
		return err
	}
	*st = parsed
	return nil
}

// StepRecord is one immutable, ordered log entry describing a primitive
// operation or milestone. Records are appended to the Timeline and consumed
// by renderers for replay; they are never mutated after creation.
type StepRecord struct {
	Seq       int            `json:"seq"`               // Position in the run, 0-based
	Type      StepType       `json:"type"`              //
	At        time.Duration  `json:"atNs"`              // Time since run start, paused intervals excluded
	Indices   []int          `json:"indices,omitempty"` // Array indices touched by the operation
	Values    []int          `json:"values,omitempty"`  // Operand values
	Array     []int          `json:"array,omitempty"`   // Optional full snapshot (RecordState only)
	Message   string         `json:"message,omitempty"`
	Details   map[string]any `json:"details,omitempty"` // Algorithm-specific fields
	CacheHit  *bool          `json:"cacheHit,omitempty"`
	Phase     string         `json:"phase,omitempty"` // Phase current when the record was made
}

// Timeline is a bounded, append-only sequence of StepRecords. Once capacity
// is reached the oldest records are preserved and new ones are dropped; the
// drop is counted rather than silent so consumers can tell the log is
// truncated. This is a deliberate memory bound, not an error.
type Timeline struct {
	steps    []StepRecord
	capacity int
	dropped  int64
}

// NewTimeline creates a timeline holding at most capacity records.
func NewTimeline(capacity int) *Timeline {
	// Preallocate modestly; very large capacities grow on demand.
	initial := capacity
	if initial > 1024 {
		initial = 1024
	}
	return &Timeline{
		steps:    make([]StepRecord, 0, initial),
		capacity: capacity,
	}
}

// Append adds a record, returning false if the timeline is full and the
// record was dropped.
func (tl *Timeline) Append(rec StepRecord) bool {
	if len(tl.steps) >= tl.capacity {
		tl.dropped++
		return false
	}
	tl.steps = append(tl.steps, rec)
	return true
}

// Steps returns the recorded steps in chronological order. The returned
// slice aliases internal storage; callers must not modify it.
func (tl *Timeline) Steps() []StepRecord {
	return tl.steps
}

// Len returns the number of recorded steps.
func (tl *Timeline) Len() int {
	return len(tl.steps)
}

// Dropped returns how many records were discarded after capacity was hit.
func (tl *Timeline) Dropped() int64 {
	return tl.dropped
}

// Reset clears the timeline, preserving capacity.
func (tl *Timeline) Reset() {
	tl.steps = tl.steps[:0]
	tl.dropped = 0
}
