package datagen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
)

// Shape controls the arrangement of generated values.
type Shape int

const (
	ShapeRandom Shape = iota
	ShapeSorted
	ShapeReversed
	ShapeNearlySorted
	ShapeFewUnique
)

// String returns the string representation of Shape
func (s Shape) String() string {
	switch s {
	case ShapeRandom:
		return "random"
	case ShapeSorted:
		return "sorted"
	case ShapeReversed:
		return "reversed"
	case ShapeNearlySorted:
		return "nearly-sorted"
	case ShapeFewUnique:
		return "few-unique"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ParseShape parses a string into a Shape
func ParseShape(str string) (Shape, error) {
	switch str {
	case "random":
		return ShapeRandom, nil
	case "sorted":
		return ShapeSorted, nil
	case "reversed":
		return ShapeReversed, nil
	case "nearly-sorted":
		return ShapeNearlySorted, nil
	case "few-unique":
		return ShapeFewUnique, nil
	default:
		return ShapeRandom, fmt.Errorf("invalid Shape: %s (must be 'random', 'sorted', 'reversed', 'nearly-sorted', or 'few-unique')", str)
	}
}

// MarshalJSON implements json.Marshaler for Shape
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler for Shape
func (s *Shape) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseShape(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Spec describes one generated input.
type Spec struct {
	Size         int              `json:"size"`
	MinValue     int              `json:"minValue"`
	MaxValue     int              `json:"maxValue"`
	Distribution DistributionType `json:"distribution"`
	Shape        Shape            `json:"shape"`

	// UniqueValues caps the distinct value count for ShapeFewUnique.
	// Zero means size/10 (at least 2).
	UniqueValues int `json:"uniqueValues"`

	// PerturbFraction is the fraction of elements displaced for
	// ShapeNearlySorted. Zero means 0.05.
	PerturbFraction float64 `json:"perturbFraction"`

	// Seed for reproducibility; 0 draws a random seed.
	Seed int64 `json:"seed"`
}

// DefaultSpec returns a uniformly random spec of the given size.
func DefaultSpec(size int) Spec {
	return Spec{
		Size:     size,
		MinValue: 0,
		MaxValue: 1000,
	}
}

// Validate checks spec consistency.
func (s *Spec) Validate() error {
	if s.Size < 0 {
		return fmt.Errorf("size must be >= 0, got %d", s.Size)
	}
	if s.MinValue > s.MaxValue {
		return fmt.Errorf("minValue %d must be <= maxValue %d", s.MinValue, s.MaxValue)
	}
	if s.PerturbFraction < 0 || s.PerturbFraction > 1 {
		return fmt.Errorf("perturbFraction must be in [0, 1], got %f", s.PerturbFraction)
	}
	return nil
}

// Generate produces the input described by the spec.
func Generate(spec Spec) ([]int, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Size == 0 {
		return []int{}, nil
	}

	seed := spec.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))
	dist := NewDistribution(spec.Distribution)

	out := make([]int, spec.Size)
	switch spec.Shape {
	case ShapeFewUnique:
		unique := spec.UniqueValues
		if unique <= 0 {
			unique = spec.Size / 10
		}
		if unique < 2 {
			unique = 2
		}
		pool := make([]int, unique)
		for i := range pool {
			pool[i] = dist.Sample(rng, spec.MinValue, spec.MaxValue)
		}
		for i := range out {
			out[i] = pool[rng.Intn(unique)]
		}
	default:
		for i := range out {
			out[i] = dist.Sample(rng, spec.MinValue, spec.MaxValue)
		}
	}

	switch spec.Shape {
	case ShapeSorted:
		sort.Ints(out)
	case ShapeReversed:
		sort.Sort(sort.Reverse(sort.IntSlice(out)))
	case ShapeNearlySorted:
		sort.Ints(out)
		frac := spec.PerturbFraction
		if frac == 0 {
			frac = 0.05
		}
		swaps := int(float64(spec.Size) * frac / 2)
		if swaps < 1 {
			swaps = 1
		}
		for k := 0; k < swaps; k++ {
			i, j := rng.Intn(spec.Size), rng.Intn(spec.Size)
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}
