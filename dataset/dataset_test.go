package dataset_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tagcover/dataset"
)

const sixItems = `E,A0,A1,A2,C
0,1,0,0,1
1,1,1,0,1
2,0,0,1,1
3,0,1,0,2
4,0,1,1,2
5,0,0,0,2
`

func TestIncidence_Bounds(t *testing.T) {
	_, err := dataset.NewIncidence(0, 3)
	require.ErrorIs(t, err, dataset.ErrBadShape)

	m, err := dataset.NewIncidence(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, true))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.True(t, v)
	assert.True(t, m.Has(1, 2))

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, true), dataset.ErrOutOfRange)
	_, err = m.Row(5)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)

	assert.Equal(t, 1, m.RowCount(1))
	assert.Equal(t, 1, m.ColCount(2))
	assert.Equal(t, 0, m.ColCount(9))
	assert.Equal(t, "[0 0 0]\n[0 0 1]\n", m.String())
}

func TestIncidence_CloneIsIndependent(t *testing.T) {
	m, err := dataset.IncidenceFromRows([][]bool{{true, false}, {false, true}})
	require.NoError(t, err)

	cp := m.Clone()
	require.NoError(t, cp.Set(0, 1, true))
	assert.False(t, m.Has(0, 1))
	assert.True(t, cp.Has(0, 1))

	_, err = dataset.IncidenceFromRows([][]bool{{true}, {true, false}})
	assert.ErrorIs(t, err, dataset.ErrInconsistent)
}

func TestReadCSV_DropsIDAndSplitsClusters(t *testing.T) {
	ds, err := dataset.ReadCSV(strings.NewReader(sixItems))
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Equal(t, []string{"A0", "A1", "A2"}, ds.Tags)
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2}, ds.Labels)
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5"}, ds.IDs)
	assert.Equal(t, 6, ds.Matrix.Rows())

	row, err := ds.Matrix.Row(4)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, row)
}

func TestReadCSV_CustomLayout(t *testing.T) {
	in := "cluster;x;y\n2;1;0\n1;0;1\n"
	ds, err := dataset.ReadCSV(strings.NewReader(in),
		dataset.WithComma(';'),
		dataset.WithClusterColumn("cluster"),
		dataset.WithIDColumn(""),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ds.Tags)
	assert.Equal(t, []int{2, 1}, ds.Labels)
	assert.Nil(t, ds.IDs)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := dataset.ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, dataset.ErrNoRows)

	_, err = dataset.ReadCSV(strings.NewReader("E,A0,C\n"))
	assert.ErrorIs(t, err, dataset.ErrNoRows)

	_, err = dataset.ReadCSV(strings.NewReader("E,A0\n0,1\n"))
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	_, err = dataset.ReadCSV(strings.NewReader("E,C\n0,1\n"))
	assert.ErrorIs(t, err, dataset.ErrNoTagColumns)

	_, err = dataset.ReadCSV(strings.NewReader("E,A0,C\n0,2,1\n"))
	assert.ErrorIs(t, err, dataset.ErrBadCell)

	_, err = dataset.ReadCSV(strings.NewReader("E,A0,C\n0,1,x\n"))
	assert.ErrorIs(t, err, dataset.ErrBadCell)
}

func TestWriteCSV_ReadBack(t *testing.T) {
	ds, err := dataset.ReadCSV(strings.NewReader(sixItems))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dataset.WriteCSV(&buf, ds))
	assert.Equal(t, sixItems, buf.String())
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := dataset.GenConfig{Items: 50, Tags: 8, Clusters: 3, TagProb: 0.3, Seed: 42}

	a, countsA, err := dataset.Generate(cfg)
	require.NoError(t, err)
	b, countsB, err := dataset.Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Matrix.String(), b.Matrix.String())
	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, countsA, countsB)

	total := 0
	for k, c := range countsA {
		total += c
		n := 0
		for _, l := range a.Labels {
			if l == k+1 {
				n++
			}
		}
		assert.Equal(t, c, n)
	}
	assert.Equal(t, 50, total)
	assert.Equal(t, "A7", a.Tags[7])
}

func TestGenerate_ExtremeProbabilities(t *testing.T) {
	full, _, err := dataset.Generate(dataset.GenConfig{Items: 5, Tags: 4, Clusters: 2, TagProb: 1})
	require.NoError(t, err)
	empty, _, err := dataset.Generate(dataset.GenConfig{Items: 5, Tags: 4, Clusters: 2, TagProb: 0})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 4, full.Matrix.RowCount(i))
		assert.Equal(t, 0, empty.Matrix.RowCount(i))
	}
}

func TestGenerate_BadConfig(t *testing.T) {
	bad := []dataset.GenConfig{
		{Items: 0, Tags: 1, Clusters: 1},
		{Items: 1, Tags: 0, Clusters: 1},
		{Items: 1, Tags: 1, Clusters: 0},
		{Items: 1, Tags: 1, Clusters: 1, TagProb: 1.5},
		{Items: 1, Tags: 1, Clusters: 1, TagProb: -0.1},
	}
	for _, cfg := range bad {
		_, _, err := dataset.Generate(cfg)
		assert.ErrorIs(t, err, dataset.ErrBadGenConfig, "%+v", cfg)
	}
}

func TestFileName(t *testing.T) {
	got := dataset.FileName(dataset.GenConfig{Items: 100, Tags: 20, Clusters: 4, TagProb: 0.25})
	assert.Equal(t, "synthetic_data_100_20_4_0.25.csv", got)
}
