package datagen

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate_SeededReproducibility(t *testing.T) {
	spec := DefaultSpec(200)
	spec.Seed = 12345

	a, err := Generate(spec)
	require.NoError(t, err)
	b, err := Generate(spec)
	require.NoError(t, err)

	require.Equal(t, a, b, "same seed, same input")
	require.Len(t, a, 200)
	for _, v := range a {
		require.GreaterOrEqual(t, v, spec.MinValue)
		require.LessOrEqual(t, v, spec.MaxValue)
	}
}

func TestGenerate_Shapes(t *testing.T) {
	base := DefaultSpec(100)
	base.Seed = 7

	t.Run("sorted", func(t *testing.T) {
		spec := base
		spec.Shape = ShapeSorted
		out, err := Generate(spec)
		require.NoError(t, err)
		require.True(t, sort.IntsAreSorted(out))
	})

	t.Run("reversed", func(t *testing.T) {
		spec := base
		spec.Shape = ShapeReversed
		out, err := Generate(spec)
		require.NoError(t, err)
		require.True(t, sort.IsSorted(sort.Reverse(sort.IntSlice(out))))
	})

	t.Run("nearly-sorted is mostly ordered", func(t *testing.T) {
		spec := base
		spec.Shape = ShapeNearlySorted
		out, err := Generate(spec)
		require.NoError(t, err)

		inversionsAt := 0
		for i := 1; i < len(out); i++ {
			if out[i] < out[i-1] {
				inversionsAt++
			}
		}
		require.Less(t, inversionsAt, 25, "most of the order survives")
	})

	t.Run("few-unique caps distinct values", func(t *testing.T) {
		spec := base
		spec.Shape = ShapeFewUnique
		spec.UniqueValues = 5
		out, err := Generate(spec)
		require.NoError(t, err)

		distinct := make(map[int]bool)
		for _, v := range out {
			distinct[v] = true
		}
		require.LessOrEqual(t, len(distinct), 5)
	})
}

func TestGenerate_EmptyAndValidation(t *testing.T) {
	spec := DefaultSpec(0)
	out, err := Generate(spec)
	require.NoError(t, err)
	require.Empty(t, out)

	spec = DefaultSpec(10)
	spec.MinValue = 5
	spec.MaxValue = 1
	_, err = Generate(spec)
	require.Error(t, err)

	spec = DefaultSpec(10)
	spec.PerturbFraction = 2
	_, err = Generate(spec)
	require.Error(t, err)
}

func TestShapeJSON(t *testing.T) {
	var s Shape
	require.NoError(t, s.UnmarshalJSON([]byte(`"nearly-sorted"`)))
	require.Equal(t, ShapeNearlySorted, s)

	data, err := ShapeFewUnique.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"few-unique"`, string(data))

	require.Error(t, s.UnmarshalJSON([]byte(`"spiral"`)))
}
