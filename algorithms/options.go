package algorithms

import (
	"encoding/json"
	"fmt"
)

// RadixVariant selects the digit-processing direction for radix sort
type RadixVariant int

const (
	VariantLSD RadixVariant = iota // Least significant digit first (stable)
	VariantMSD                     // Most significant digit first (recursive)
)

// String returns the string representation of RadixVariant
func (v RadixVariant) String() string {
	switch v {
	case VariantLSD:
		return "lsd"
	case VariantMSD:
		return "msd"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// ParseRadixVariant parses a string into RadixVariant
func ParseRadixVariant(s string) (RadixVariant, error) {
	switch s {
	case "lsd":
		return VariantLSD, nil
	case "msd":
		return VariantMSD, nil
	default:
		return VariantLSD, fmt.Errorf("invalid radix variant: %s (must be 'lsd' or 'msd')", s)
	}
}

// MarshalJSON implements json.Marshaler for RadixVariant
func (v RadixVariant) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler for RadixVariant
func (v *RadixVariant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRadixVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// BucketSizing selects how bucket sort picks its bucket count
type BucketSizing int

const (
	SizingUniform  BucketSizing = iota // Fixed count from options.BucketCount
	SizingSqrt                         // sqrt(n) buckets
	SizingAdaptive                     // Staged heuristic keyed on n
)

// String returns the string representation of BucketSizing
func (bs BucketSizing) String() string {
	switch bs {
	case SizingUniform:
		return "uniform"
	case SizingSqrt:
		return "sqrt"
	case SizingAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("unknown(%d)", int(bs))
	}
}

// ParseBucketSizing parses a string into BucketSizing
func ParseBucketSizing(s string) (BucketSizing, error) {
	switch s {
	case "uniform":
		return SizingUniform, nil
	case "sqrt":
		return SizingSqrt, nil
	case "adaptive":
		return SizingAdaptive, nil
	default:
		return SizingAdaptive, fmt.Errorf("invalid bucket sizing: %s (must be 'uniform', 'sqrt', or 'adaptive')", s)
	}
}

// MarshalJSON implements json.Marshaler for BucketSizing
func (bs BucketSizing) MarshalJSON() ([]byte, error) {
	return json.Marshal(bs.String())
}

// UnmarshalJSON implements json.Unmarshaler for BucketSizing
func (bs *BucketSizing) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBucketSizing(s)
	if err != nil {
		return err
	}
	*bs = parsed
	return nil
}

// InnerSort selects the comparison sort used inside individual buckets
type InnerSort int

const (
	InnerInsertion InnerSort = iota // Stable, good for small buckets
	InnerQuick                      // In-place, not stable
	InnerMerge                      // Stable, needs scratch space
)

// String returns the string representation of InnerSort
func (is InnerSort) String() string {
	switch is {
	case InnerInsertion:
		return "insertion"
	case InnerQuick:
		return "quick"
	case InnerMerge:
		return "merge"
	default:
		return fmt.Sprintf("unknown(%d)", int(is))
	}
}

// ParseInnerSort parses a string into InnerSort
func ParseInnerSort(s string) (InnerSort, error) {
	switch s {
	case "insertion":
		return InnerInsertion, nil
	case "quick":
		return InnerQuick, nil
	case "merge":
		return InnerMerge, nil
	default:
		return InnerInsertion, fmt.Errorf("invalid inner sort: %s (must be 'insertion', 'quick', or 'merge')", s)
	}
}

// MarshalJSON implements json.Marshaler for InnerSort
func (is InnerSort) MarshalJSON() ([]byte, error) {
	return json.Marshal(is.String())
}

// UnmarshalJSON implements json.Unmarshaler for InnerSort
func (is *InnerSort) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseInnerSort(s)
	if err != nil {
		return err
	}
	*is = parsed
	return nil
}
