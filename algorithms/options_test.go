package algorithms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRadixVariant(t *testing.T) {
	v, err := ParseRadixVariant("msd")
	require.NoError(t, err)
	require.Equal(t, VariantMSD, v)

	_, err = ParseRadixVariant("middle-out")
	require.Error(t, err)
}

func TestParseInnerSort(t *testing.T) {
	is, err := ParseInnerSort("merge")
	require.NoError(t, err)
	require.Equal(t, InnerMerge, is)

	_, err = ParseInnerSort("bogo")
	require.Error(t, err)
}

func TestBucketSizingJSON(t *testing.T) {
	data, err := json.Marshal(SizingAdaptive)
	require.NoError(t, err)
	require.Equal(t, `"adaptive"`, string(data))

	var bs BucketSizing
	require.NoError(t, json.Unmarshal([]byte(`"sqrt"`), &bs))
	require.Equal(t, SizingSqrt, bs)

	require.Error(t, json.Unmarshal([]byte(`"cubic"`), &bs))
}
