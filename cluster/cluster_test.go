package cluster_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tagcover/cluster"
)

func TestNew_InferredK(t *testing.T) {
	p, err := cluster.New([]int{1, 2, 1, 2, 2, 1}, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, p.K())
	assert.Equal(t, []int{0, 2, 5}, p.Items(0))
	assert.Equal(t, []int{1, 3, 4}, p.Items(1))
	assert.Equal(t, []int{0, 1, 0, 1, 1, 0}, p.Assignment())
	assert.Equal(t, []int{3, 3}, p.Sizes())
	assert.Equal(t, 6, p.Len())
	require.NoError(t, p.Validate())
}

func TestNew_ExplicitKAllowsEmptyCluster(t *testing.T) {
	p, err := cluster.New([]int{1, 1, 3}, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, p.K())
	assert.Equal(t, 0, p.Size(1))
	assert.Empty(t, p.Items(1))
	require.NoError(t, p.Validate())
}

func TestNew_Errors(t *testing.T) {
	_, err := cluster.New(nil, 0)
	assert.ErrorIs(t, err, cluster.ErrNoItems)

	_, err = cluster.New([]int{1}, -1)
	assert.ErrorIs(t, err, cluster.ErrBadClusterCount)

	// Zero label is outside [1, K].
	_, err = cluster.New([]int{1, 0}, 0)
	assert.ErrorIs(t, err, cluster.ErrInvalidClusterLabel)

	// Gap in inferred labels: {1,3} gives K=2, so 3 is invalid.
	_, err = cluster.New([]int{1, 3, 1}, 0)
	require.ErrorIs(t, err, cluster.ErrInvalidClusterLabel)
	var le *cluster.LabelError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 1, le.Item)
	assert.Equal(t, 3, le.Label)
	assert.Equal(t, 2, le.K)

	// Explicit K smaller than the observed range.
	_, err = cluster.New([]int{1, 2, 4}, 3)
	assert.ErrorIs(t, err, cluster.ErrInvalidClusterLabel)
}

func TestAccessors_OutOfRange(t *testing.T) {
	p, err := cluster.New([]int{2, 1}, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, p.ClusterOf(0))
	assert.Equal(t, -1, p.ClusterOf(2))
	assert.Equal(t, -1, p.ClusterOf(-1))
	assert.Nil(t, p.Items(5))
	assert.Equal(t, 0, p.Size(-1))
}

func TestValidate_Empty(t *testing.T) {
	var none *cluster.Partition
	assert.ErrorIs(t, none.Validate(), cluster.ErrNoItems)
	assert.ErrorIs(t, (&cluster.Partition{}).Validate(), cluster.ErrNoItems)
}

func TestAccessors_ReturnCopies(t *testing.T) {
	p, err := cluster.New([]int{1, 2, 1}, 0)
	require.NoError(t, err)

	items := p.Items(0)
	items[0] = 99
	of := p.Assignment()
	of[1] = 0

	assert.Equal(t, []int{0, 2}, p.Items(0))
	assert.Equal(t, 1, p.ClusterOf(1))
	require.NoError(t, p.Validate())
}

// TestNew_Totality checks that random label columns always yield a
// partition: union is 0..n-1 and clusters are pairwise disjoint.
func TestNew_Totality(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(40)
		k := 1 + rng.Intn(6)
		labels := make([]int, n)
		for i := range labels {
			labels[i] = 1 + rng.Intn(k)
		}

		p, err := cluster.New(labels, k)
		require.NoError(t, err)
		require.NoError(t, p.Validate())

		total := 0
		for c := 0; c < p.K(); c++ {
			total += p.Size(c)
			for _, i := range p.Items(c) {
				require.Equal(t, labels[i]-1, c)
			}
		}
		require.Equal(t, n, total)
	}
}
