package csv

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pbanos/impurity/dataset"
	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var features = []feature.Feature{
	feature.NewDiscreteFeature("outlook", []string{"sunny", "overcast", "rainy"}),
	feature.NewContinuousFeature("temperature"),
	feature.NewDiscreteFeature("play", []string{"yes", "no"}),
}

const weatherCSV = `play,outlook,temperature
no,sunny,30
no,sunny,27.5
yes,overcast,?
yes,rainy,21
`

func TestReadDataset(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader(weatherCSV), features)
	require.NoError(t, err)
	require.Equal(t, 4, ds.Count())
	assert.Equal(t, []value.Value{value.NewCategorical("sunny"), value.NewNumeric(27.5), value.NewCategorical("no")}, ds.Rows[1])
	assert.False(t, ds.Rows[2][1].Defined())

	g, err := ds.Gini("play")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, g, 1e-12)
}

func TestReadDatasetMissingColumn(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader("outlook,play\nsunny,no\n"), features)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Count())
	assert.False(t, ds.Rows[0][1].Defined())
}

func TestReadDatasetErrors(t *testing.T) {
	testCases := map[string]string{
		"empty":          "",
		"unknown column": "outlook,humidity\nsunny,high\n",
		"repeated":       "outlook,outlook\nsunny,sunny\n",
		"bad number":     "temperature\nwarm\n",
		"nan":            "temperature\nNaN\nNaN\n1\n",
		"infinite":       "temperature\n-Inf\n",
		"bad category":   "outlook\nsnowy\n",
		"short row":      "outlook,play\nsunny\n",
	}
	for name, input := range testCases {
		_, err := ReadDataset(strings.NewReader(input), features)
		assert.Error(t, err, name)
	}
}

func TestReadBySampleStops(t *testing.T) {
	var seen int
	err := ReadBySample(strings.NewReader(weatherCSV), features, func(i int, _ value.Row) (bool, error) {
		seen++
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
}

func TestReader(t *testing.T) {
	ds, err := dataset.Load(context.Background(), features, NewReader(strings.NewReader(weatherCSV), features))
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Count())

	_, err = dataset.Load(context.Background(), features, NewReader(strings.NewReader("humidity\n1\n"), features))
	assert.Error(t, err)
}

func TestWriteDatasetRoundTrip(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader(weatherCSV), features)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteDataset(context.Background(), &buf, ds))
	assert.True(t, strings.HasPrefix(buf.String(), "outlook,temperature,play\n"))
	assert.Contains(t, buf.String(), "overcast,?,yes\n")

	read, err := ReadDataset(&buf, features)
	require.NoError(t, err)
	assert.Equal(t, ds.Rows, read.Rows)
}

func TestWriterRejectsShortRows(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, features)
	require.NoError(t, err)
	n, err := w.Write(context.Background(), [][]value.Value{{value.NewCategorical("sunny")}})
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Zero(t, w.Count())
}
