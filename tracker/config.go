package tracker

import "go.uber.org/zap"

// Config holds the instrumentation parameters for a run. Clock and Logger
// are injected capabilities so tests can be deterministic and silent.
type Config struct {
	// MaxTimelineEvents bounds the step timeline; once reached, new records
	// are dropped (oldest preserved) and counted.
	MaxTimelineEvents int `json:"maxTimelineEvents"`

	// CacheSize is the simulated LRU cache capacity in lines (one array
	// index per line).
	CacheSize int `json:"cacheSize"`

	// OperationFilter limits which primitive operations emit StepRecords.
	// Valid entries: "read", "write", "compare", "swap". Empty means all.
	// Phase and milestone records are always emitted. Unknown entries are a
	// configuration error, rejected at construction rather than mid-run.
	OperationFilter []string `json:"operationFilter,omitempty"`

	// OnStep, when set, is invoked inline once per appended StepRecord for
	// progressive consumption. It runs on the caller's goroutine.
	OnStep func(StepRecord) `json:"-"`

	// Clock defaults to SystemClock.
	Clock Clock `json:"-"`

	// Logger receives instrumentation soft-failure warnings. Defaults to a
	// no-op logger.
	Logger *zap.Logger `json:"-"`
}

// DefaultConfig returns sensible instrumentation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTimelineEvents: 10000, // Bounded replay log
		CacheSize:         64,    // 64-line simulated cache
	}
}

// Validate checks if configuration values are reasonable
func (c *Config) Validate() error {
	if c.MaxTimelineEvents <= 0 {
		return ErrInvalidConfig("maxTimelineEvents must be > 0")
	}
	if c.CacheSize <= 0 {
		return ErrInvalidConfig("cacheSize must be > 0")
	}
	for _, op := range c.OperationFilter {
		st, err := ParseStepType(op)
		if err != nil {
			return ErrInvalidConfig("unrecognized operation filter: " + op)
		}
		switch st {
		case StepRead, StepWrite, StepCompare, StepSwap:
		default:
			return ErrInvalidConfig("operation filter must name a primitive operation, got: " + op)
		}
	}
	return nil
}
