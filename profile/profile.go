// Package profile loads run profiles from YAML: which algorithm to run,
// its options, the tracker configuration, and the input to generate.
package profile

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mvoloshin/sortlab/algorithms"
	"github.com/mvoloshin/sortlab/datagen"
	"github.com/mvoloshin/sortlab/tracker"
)

// TrackerConfig is the plain-data subset of tracker.Config a profile can
// set. Callbacks and clocks are wired by the caller, not the file.
type TrackerConfig struct {
	MaxTimelineEvents int      `mapstructure:"maxTimelineEvents" json:"maxTimelineEvents"`
	CacheSize         int      `mapstructure:"cacheSize" json:"cacheSize"`
	OperationFilter   []string `mapstructure:"operationFilter" json:"operationFilter"`
}

// CountingConfig mirrors algorithms.CountingOptions.
type CountingConfig struct {
	AutoDetectRange bool `mapstructure:"autoDetectRange" json:"autoDetectRange"`
	MinValue        int  `mapstructure:"minValue" json:"minValue"`
	MaxValue        int  `mapstructure:"maxValue" json:"maxValue"`
}

// RadixConfig mirrors algorithms.RadixOptions.
type RadixConfig struct {
	Variant         string `mapstructure:"variant" json:"variant"`
	Radix           int    `mapstructure:"radix" json:"radix"`
	UseCountingSort bool   `mapstructure:"useCountingSort" json:"useCountingSort"`
	Stable          bool   `mapstructure:"stable" json:"stable"`
}

// BucketConfig mirrors algorithms.BucketOptions.
type BucketConfig struct {
	BucketCount       int    `mapstructure:"bucketCount" json:"bucketCount"`
	Sizing            string `mapstructure:"bucketSizing" json:"bucketSizing"`
	Inner             string `mapstructure:"bucketSort" json:"bucketSort"`
	OptimizeSingleton bool   `mapstructure:"optimizeSingleton" json:"optimizeSingleton"`
}

// PigeonholeConfig mirrors algorithms.PigeonholeOptions.
type PigeonholeConfig struct {
	AutoDetectRange    bool `mapstructure:"autoDetectRange" json:"autoDetectRange"`
	MinValue           int  `mapstructure:"minValue" json:"minValue"`
	MaxValue           int  `mapstructure:"maxValue" json:"maxValue"`
	DynamicPigeonholes bool `mapstructure:"dynamicPigeonholes" json:"dynamicPigeonholes"`
}

// InputSpec mirrors datagen.Spec with plain string enums so it decodes
// straight from YAML.
type InputSpec struct {
	Size            int     `mapstructure:"size" json:"size"`
	MinValue        int     `mapstructure:"minValue" json:"minValue"`
	MaxValue        int     `mapstructure:"maxValue" json:"maxValue"`
	Distribution    string  `mapstructure:"distribution" json:"distribution"`
	Shape           string  `mapstructure:"shape" json:"shape"`
	UniqueValues    int     `mapstructure:"uniqueValues" json:"uniqueValues"`
	PerturbFraction float64 `mapstructure:"perturbFraction" json:"perturbFraction"`
	Seed            int64   `mapstructure:"seed" json:"seed"`
}

// InputConfig describes the generated input, or a literal value list.
type InputConfig struct {
	Values []int     `mapstructure:"values" json:"values"`
	Spec   InputSpec `mapstructure:"spec" json:"spec"`
}

// Profile is one complete run description.
type Profile struct {
	Algorithm string        `mapstructure:"algorithm" json:"algorithm"`
	Tracker   TrackerConfig `mapstructure:"tracker" json:"tracker"`

	Counting   CountingConfig   `mapstructure:"counting" json:"counting"`
	Radix      RadixConfig      `mapstructure:"radix" json:"radix"`
	Bucket     BucketConfig     `mapstructure:"bucket" json:"bucket"`
	Pigeonhole PigeonholeConfig `mapstructure:"pigeonhole" json:"pigeonhole"`

	Input InputConfig `mapstructure:"input" json:"input"`
}

// DefaultProfile returns a counting-sort run over a small random input.
func DefaultProfile() *Profile {
	tc := tracker.DefaultConfig()
	return &Profile{
		Algorithm: "counting",
		Tracker: TrackerConfig{
			MaxTimelineEvents: tc.MaxTimelineEvents,
			CacheSize:         tc.CacheSize,
		},
		Counting:   CountingConfig{AutoDetectRange: true},
		Radix:      RadixConfig{Variant: "lsd", Radix: 10, UseCountingSort: true, Stable: true},
		Bucket:     BucketConfig{Sizing: "adaptive", Inner: "insertion", OptimizeSingleton: true},
		Pigeonhole: PigeonholeConfig{AutoDetectRange: true},
		Input:      InputConfig{Spec: InputSpec{Size: 100, MinValue: 0, MaxValue: 1000}},
	}
}

// Load reads a profile from the specified YAML file path.
func Load(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper creates a Profile from an existing Viper instance.
func LoadFromViper(v *viper.Viper) (*Profile, error) {
	p := DefaultProfile()
	if err := v.Unmarshal(p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return p, nil
}

// TrackerOptions converts the profile's tracker section into a full
// tracker.Config.
func (p *Profile) TrackerOptions() tracker.Config {
	cfg := tracker.DefaultConfig()
	if p.Tracker.MaxTimelineEvents > 0 {
		cfg.MaxTimelineEvents = p.Tracker.MaxTimelineEvents
	}
	if p.Tracker.CacheSize > 0 {
		cfg.CacheSize = p.Tracker.CacheSize
	}
	cfg.OperationFilter = p.Tracker.OperationFilter
	return cfg
}

// BuildAlgorithm constructs the configured algorithm instance.
func (p *Profile) BuildAlgorithm() (algorithms.Algorithm, error) {
	return p.BuildAlgorithmWithTracker(p.TrackerOptions())
}

// BuildAlgorithmWithTracker constructs the configured algorithm with an
// explicit tracker config, letting callers attach callbacks or clocks the
// profile file cannot express.
func (p *Profile) BuildAlgorithmWithTracker(tc tracker.Config) (algorithms.Algorithm, error) {
	switch p.Algorithm {
	case "counting":
		return algorithms.NewCountingSort(algorithms.CountingOptions{
			AutoDetectRange: p.Counting.AutoDetectRange,
			MinValue:        p.Counting.MinValue,
			MaxValue:        p.Counting.MaxValue,
			Tracker:         tc,
		})
	case "radix":
		variant, err := algorithms.ParseRadixVariant(p.Radix.Variant)
		if err != nil {
			return nil, err
		}
		return algorithms.NewRadixSort(algorithms.RadixOptions{
			Variant:         variant,
			Radix:           p.Radix.Radix,
			UseCountingSort: p.Radix.UseCountingSort,
			Stable:          p.Radix.Stable,
			Tracker:         tc,
		})
	case "bucket":
		sizing, err := algorithms.ParseBucketSizing(p.Bucket.Sizing)
		if err != nil {
			return nil, err
		}
		inner, err := algorithms.ParseInnerSort(p.Bucket.Inner)
		if err != nil {
			return nil, err
		}
		return algorithms.NewBucketSort(algorithms.BucketOptions{
			BucketCount:       p.Bucket.BucketCount,
			Sizing:            sizing,
			Inner:             inner,
			OptimizeSingleton: p.Bucket.OptimizeSingleton,
			Tracker:           tc,
		})
	case "pigeonhole":
		return algorithms.NewPigeonholeSort(algorithms.PigeonholeOptions{
			AutoDetectRange:    p.Pigeonhole.AutoDetectRange,
			MinValue:           p.Pigeonhole.MinValue,
			MaxValue:           p.Pigeonhole.MaxValue,
			DynamicPigeonholes: p.Pigeonhole.DynamicPigeonholes,
			Tracker:            tc,
		})
	default:
		return nil, fmt.Errorf("unknown algorithm %q (must be 'counting', 'radix', 'bucket', or 'pigeonhole')", p.Algorithm)
	}
}

// BuildInput returns the literal input values when set, otherwise
// generates them from the input spec.
func (p *Profile) BuildInput() ([]int, error) {
	if len(p.Input.Values) > 0 {
		return append([]int(nil), p.Input.Values...), nil
	}

	spec := datagen.Spec{
		Size:            p.Input.Spec.Size,
		MinValue:        p.Input.Spec.MinValue,
		MaxValue:        p.Input.Spec.MaxValue,
		UniqueValues:    p.Input.Spec.UniqueValues,
		PerturbFraction: p.Input.Spec.PerturbFraction,
		Seed:            p.Input.Spec.Seed,
	}
	if p.Input.Spec.Distribution != "" {
		dist, err := datagen.ParseDistributionType(p.Input.Spec.Distribution)
		if err != nil {
			return nil, err
		}
		spec.Distribution = dist
	}
	if p.Input.Spec.Shape != "" {
		shape, err := datagen.ParseShape(p.Input.Spec.Shape)
		if err != nil {
			return nil, err
		}
		spec.Shape = shape
	}
	return datagen.Generate(spec)
}
