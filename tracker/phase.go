package tracker

import "time"

// PhaseTransition logs one phase change.
type PhaseTransition struct {
	Phase    string        `json:"phase"`
	Previous string        `json:"previousPhase,omitempty"`
	At       time.Duration `json:"atNs"`
}

// PhaseStats accumulates time and operation deltas for one named phase.
// A phase may be entered more than once; every interval during which it was
// current contributes to Duration and Ops.
type PhaseStats struct {
	Phase    string         `json:"phase"`
	Visits   int            `json:"visits"`
	Duration time.Duration  `json:"durationNs"`
	Ops      OperationDelta `json:"ops"`
}

// PhaseTracker tracks the current phase of a run plus the full transition
// log. Phase names are free-form strings coined by each algorithm; there is
// no fixed enum.
type PhaseTracker struct {
	current     string
	enteredAt   time.Duration
	entryOps    OperationDelta
	transitions []PhaseTransition
	stats       map[string]*PhaseStats
	order       []string // First-entry order, for stable reporting
}

// NewPhaseTracker creates an empty phase tracker.
func NewPhaseTracker() *PhaseTracker {
	return &PhaseTracker{
		stats: make(map[string]*PhaseStats),
	}
}

// Set switches to the named phase, closing out the previous phase's duration
// and operation delta. Setting the current phase again is a no-op; Set
// returns whether a transition actually happened.
func (p *PhaseTracker) Set(name string, at time.Duration, ops OperationDelta) bool {
	if name == p.current {
		return false
	}

	p.closeCurrent(at, ops)

	p.transitions = append(p.transitions, PhaseTransition{
		Phase:    name,
		Previous: p.current,
		At:       at,
	})

	stats, ok := p.stats[name]
	if !ok {
		stats = &PhaseStats{Phase: name}
		p.stats[name] = stats
		p.order = append(p.order, name)
	}
	stats.Visits++

	p.current = name
	p.enteredAt = at
	p.entryOps = ops
	return true
}

// Close finalizes the current phase interval, typically at run end.
func (p *PhaseTracker) Close(at time.Duration, ops OperationDelta) {
	p.closeCurrent(at, ops)
	p.enteredAt = at
	p.entryOps = ops
}

func (p *PhaseTracker) closeCurrent(at time.Duration, ops OperationDelta) {
	if p.current == "" {
		return
	}
	stats := p.stats[p.current]
	stats.Duration += at - p.enteredAt
	stats.Ops = stats.Ops.add(ops.sub(p.entryOps))
}

// Current returns the active phase name ("" before the first Set).
func (p *PhaseTracker) Current() string {
	return p.current
}

// Transitions returns the transition log in chronological order.
func (p *PhaseTracker) Transitions() []PhaseTransition {
	return p.transitions
}

// Stats returns accumulated per-phase stats in first-entry order. The
// current phase's open interval is not included until Set or Close closes it.
func (p *PhaseTracker) Stats() []PhaseStats {
	out := make([]PhaseStats, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, *p.stats[name])
	}
	return out
}

// Reset clears all phase state.
func (p *PhaseTracker) Reset() {
	p.current = ""
	p.enteredAt = 0
	p.entryOps = OperationDelta{}
	p.transitions = nil
	p.stats = make(map[string]*PhaseStats)
	p.order = nil
}
