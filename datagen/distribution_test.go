package datagen

import (
	"math/rand"
	"testing"
)

func TestUniformDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	dist := &UniformDistribution{}

	t.Run("single value range", func(t *testing.T) {
		result := dist.Sample(rng, 5, 5)
		if result != 5 {
			t.Errorf("Expected 5, got %d", result)
		}
	})

	t.Run("range 1-10", func(t *testing.T) {
		samples := make(map[int]int)
		iterations := 10000

		for i := 0; i < iterations; i++ {
			result := dist.Sample(rng, 1, 10)
			if result < 1 || result > 10 {
				t.Fatalf("Sample %d out of range [1, 10]", result)
			}
			samples[result]++
		}

		if len(samples) != 10 {
			t.Errorf("Expected 10 unique values, got %d", len(samples))
		}
	})
}

func TestExponentialDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	dist := &ExponentialDistribution{Lambda: 0.5}

	t.Run("single value range", func(t *testing.T) {
		result := dist.Sample(rng, 5, 5)
		if result != 5 {
			t.Errorf("Expected 5, got %d", result)
		}
	})

	t.Run("skewed toward min", func(t *testing.T) {
		iterations := 10000
		lowerHalf := 0

		for i := 0; i < iterations; i++ {
			result := dist.Sample(rng, 0, 100)
			if result < 0 || result > 100 {
				t.Fatalf("Sample %d out of range [0, 100]", result)
			}
			if result < 50 {
				lowerHalf++
			}
		}

		// Exponential bias: well over half the samples land in the lower half.
		if lowerHalf < iterations*6/10 {
			t.Errorf("Expected strong skew toward min, got %d/%d in lower half", lowerHalf, iterations)
		}
	})
}

func TestGeometricDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	dist := &GeometricDistribution{P: 0.3}

	t.Run("single value range", func(t *testing.T) {
		result := dist.Sample(rng, 5, 5)
		if result != 5 {
			t.Errorf("Expected 5, got %d", result)
		}
	})

	t.Run("min is the mode", func(t *testing.T) {
		samples := make(map[int]int)
		for i := 0; i < 10000; i++ {
			result := dist.Sample(rng, 0, 50)
			if result < 0 || result > 50 {
				t.Fatalf("Sample %d out of range [0, 50]", result)
			}
			samples[result]++
		}

		for v, count := range samples {
			if count > samples[0] {
				t.Errorf("Value %d sampled more often (%d) than min (%d)", v, count, samples[0])
			}
		}
	})
}

func TestFixedDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))

	t.Run("always the same point", func(t *testing.T) {
		dist := &FixedDistribution{Percentage: 0.5}
		first := dist.Sample(rng, 0, 100)
		for i := 0; i < 100; i++ {
			if got := dist.Sample(rng, 0, 100); got != first {
				t.Fatalf("Fixed distribution varied: %d vs %d", got, first)
			}
		}
		if first != 50 {
			t.Errorf("Expected 50 at 50%%, got %d", first)
		}
	})

	t.Run("percentage clamped", func(t *testing.T) {
		low := &FixedDistribution{Percentage: -1}
		if got := low.Sample(rng, 10, 20); got != 10 {
			t.Errorf("Expected clamp to min, got %d", got)
		}
		high := &FixedDistribution{Percentage: 2}
		if got := high.Sample(rng, 10, 20); got != 20 {
			t.Errorf("Expected clamp to max, got %d", got)
		}
	})
}
