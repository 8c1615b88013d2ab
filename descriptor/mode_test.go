package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tagcover/descriptor"
)

func TestParseMode(t *testing.T) {
	cases := map[string]descriptor.Mode{
		"max": descriptor.BudgetedMaxCoverage, "MAX": descriptor.BudgetedMaxCoverage, "A": descriptor.BudgetedMaxCoverage,
		"min": descriptor.MinTagsForCoverage, "MIN": descriptor.MinTagsForCoverage, "b": descriptor.MinTagsForCoverage,
		"capped": descriptor.ClusterCappedMaxCoverage, " C ": descriptor.ClusterCappedMaxCoverage,
	}
	for in, want := range cases {
		got, err := descriptor.ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := descriptor.ParseMode("maximum")
	assert.ErrorIs(t, err, descriptor.ErrUnknownMode)
}

func TestMode_Strings(t *testing.T) {
	assert.Equal(t, "capped", descriptor.ClusterCappedMaxCoverage.String())
	assert.Equal(t, "Mode(9)", descriptor.Mode(9).String())
	assert.Equal(t, "?", descriptor.Mode(0).Letter())
	assert.True(t, descriptor.BudgetedMaxCoverage.Maximize())
	assert.False(t, descriptor.MinTagsForCoverage.Maximize())
}

func TestParams_Validate(t *testing.T) {
	ok := []descriptor.Params{
		{Mode: descriptor.BudgetedMaxCoverage},
		{Mode: descriptor.BudgetedMaxCoverage, Budget: 5},
		{Mode: descriptor.MinTagsForCoverage},
		{Mode: descriptor.MinTagsForCoverage, Threshold: 3},
		{Mode: descriptor.ClusterCappedMaxCoverage, ClusterCap: 2, Threshold: 3},
		{Mode: descriptor.ClusterCappedMaxCoverage},
	}
	for _, p := range ok {
		assert.NoError(t, p.Validate(), "%+v", p)
	}

	assert.ErrorIs(t, descriptor.Params{Mode: descriptor.ClusterCappedMaxCoverage, ClusterCap: -2}.Validate(), descriptor.ErrNegativeParameter)
	assert.ErrorIs(t, descriptor.Params{Mode: 7}.Validate(), descriptor.ErrUnknownMode)
}
