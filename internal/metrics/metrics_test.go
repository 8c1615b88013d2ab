package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tagcover/ilp"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.ObserveModel(ilp.Stats{Vars: 18, Constraints: 22})
	r.ObserveSolve("max", ilp.Optimal, 40, 20*time.Millisecond)
	r.ObserveSolve("max", ilp.Optimal, 2, time.Millisecond)
	r.ObserveSolve("min", ilp.Infeasible, 7, time.Millisecond)
	r.ObserveCoverage("max", 4)

	assert.Equal(t, 18.0, testutil.ToFloat64(r.Variables))
	assert.Equal(t, 22.0, testutil.ToFloat64(r.Constraints))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Solves.WithLabelValues("max", "optimal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Solves.WithLabelValues("min", "infeasible")))
	assert.Equal(t, 49.0, testutil.ToFloat64(r.Nodes))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.Covered.WithLabelValues("max")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.Duration))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.ObserveSolve("capped", ilp.TimedOut, 1024, time.Second)

	path := filepath.Join(t.TempDir(), "tagcover.prom")
	require.NoError(t, r.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `tagcover_solves_total{mode="capped",status="timed_out"} 1`)
	assert.Contains(t, string(raw), "tagcover_nodes_explored_total 1024")
}
