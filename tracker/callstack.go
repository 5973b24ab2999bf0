package tracker

import (
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"go.uber.org/zap"
)

// FunctionStats holds per-function timing hotspots keyed by function name.
type FunctionStats struct {
	Name           string        `json:"name"`
	Calls          int64         `json:"calls"`
	RecursiveCalls int64         `json:"recursiveCalls"`
	TotalTime      time.Duration `json:"totalTimeNs"`
	MaxDepth       int           `json:"maxDepth"`
}

type callFrame struct {
	name      string
	enteredAt time.Duration
}

// callStack is an explicit stack of call frames for recursion bookkeeping.
// It deliberately does not rely on the host call stack, so skewed recursive
// algorithms can be tracked without depth limits. Bookkeeping here is
// best-effort instrumentation and never a correctness gate on the sort:
// a mismatched return logs a warning and resyncs rather than failing.
type callStack struct {
	frames []callFrame
	// Hotspots iterate in first-call order, which reads better in reports
	// than map order.
	hotspots *orderedmap.OrderedMap[string, *FunctionStats]
	log      *zap.Logger
}

func newCallStack(log *zap.Logger) *callStack {
	return &callStack{
		hotspots: orderedmap.NewOrderedMap[string, *FunctionStats](),
		log:      log,
	}
}

// enter pushes a frame and reports whether the call is recursive (the same
// name is already somewhere on the stack).
func (cs *callStack) enter(name string, at time.Duration) (recursive bool) {
	for _, f := range cs.frames {
		if f.name == name {
			recursive = true
			break
		}
	}

	cs.frames = append(cs.frames, callFrame{name: name, enteredAt: at})

	stats, ok := cs.hotspots.Get(name)
	if !ok {
		stats = &FunctionStats{Name: name}
		cs.hotspots.Set(name, stats)
	}
	stats.Calls++
	if recursive {
		stats.RecursiveCalls++
	}
	if len(cs.frames) > stats.MaxDepth {
		stats.MaxDepth = len(cs.frames)
	}
	return recursive
}

// exit pops the frame for name. If name does not match the top of the stack
// the mismatch is logged and the stack pops until the matching frame is
// found (or the stack empties).
func (cs *callStack) exit(name string, at time.Duration) bool {
	if len(cs.frames) == 0 {
		cs.log.Warn("function return with empty call stack", zap.String("function", name))
		return false
	}

	top := cs.frames[len(cs.frames)-1]
	if top.name != name {
		cs.log.Warn("function return does not match top of call stack",
			zap.String("returned", name),
			zap.String("top", top.name))
		// Resync: pop until we find the matching frame.
		for i := len(cs.frames) - 1; i >= 0; i-- {
			if cs.frames[i].name == name {
				cs.creditTime(name, at-cs.frames[i].enteredAt)
				cs.frames = cs.frames[:i]
				return false
			}
		}
		return false
	}

	cs.creditTime(name, at-top.enteredAt)
	cs.frames = cs.frames[:len(cs.frames)-1]
	return true
}

func (cs *callStack) creditTime(name string, d time.Duration) {
	if stats, ok := cs.hotspots.Get(name); ok {
		stats.TotalTime += d
	}
}

func (cs *callStack) depth() int {
	return len(cs.frames)
}

// stats returns per-function stats in first-call order.
func (cs *callStack) stats() []FunctionStats {
	out := make([]FunctionStats, 0, cs.hotspots.Len())
	for el := cs.hotspots.Front(); el != nil; el = el.Next() {
		out = append(out, *el.Value)
	}
	return out
}

func (cs *callStack) reset() {
	cs.frames = nil
	cs.hotspots = orderedmap.NewOrderedMap[string, *FunctionStats]()
}
