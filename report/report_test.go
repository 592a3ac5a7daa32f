package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pbanos/impurity"
	"github.com/pbanos/impurity/dataset"
	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

var (
	outlook  = feature.NewDiscreteFeature("outlook", []string{"sunny", "overcast", "rainy"})
	humidity = feature.NewContinuousFeature("humidity")
	play     = feature.NewDiscreteFeature("play", []string{"yes", "no"})
	features = []feature.Feature{outlook, humidity, play}
)

func weather(t *testing.T) *dataset.Dataset {
	c := value.NewCategorical
	n := value.NewNumeric
	ds, err := dataset.New(features, [][]value.Value{
		{c("sunny"), n(85), c("no")},
		{c("sunny"), n(90), c("no")},
		{c("overcast"), n(78), c("yes")},
		{c("rainy"), n(96), c("yes")},
		{c("rainy"), n(80), c("yes")},
		{c("rainy"), n(70), c("no")},
		{c("overcast"), n(65), c("yes")},
		{c("sunny"), n(95), c("no")},
	})
	require.NoError(t, err)
	return ds
}

func TestColumn(t *testing.T) {
	r, err := Column(weather(t), "outlook")
	require.NoError(t, err)
	assert.Equal(t, "outlook", r.Column)
	assert.Equal(t, 8, r.Rows)
	assert.Equal(t, []value.Value{
		value.NewCategorical("overcast"),
		value.NewCategorical("rainy"),
		value.NewCategorical("sunny"),
	}, r.UniqueValues)
	assert.Equal(t, []ClassCount{
		{value.NewCategorical("overcast"), 2},
		{value.NewCategorical("rainy"), 3},
		{value.NewCategorical("sunny"), 3},
	}, r.ClassCounts)
	require.NotNil(t, r.Gini)
	assert.InDelta(t, 1-(4.0+9.0+9.0)/64.0, *r.Gini, 1e-12)
	require.NotNil(t, r.Entropy)
}

func TestColumnEmptyDataset(t *testing.T) {
	r, err := Column(&dataset.Dataset{Features: features}, "play")
	require.NoError(t, err)
	assert.Zero(t, r.Rows)
	assert.Nil(t, r.Gini)
	assert.Empty(t, r.UniqueValues)
}

func TestFromCountsWithImpurity(t *testing.T) {
	ds := weather(t)
	counts, err := ds.ClassCounts("play")
	require.NoError(t, err)
	r, err := FromCounts("play", counts).WithImpurity()
	require.NoError(t, err)
	expected, err := Column(ds, "play")
	require.NoError(t, err)
	assert.Equal(t, expected.Rows, r.Rows)
	assert.Equal(t, expected.ClassCounts, r.ClassCounts)
	assert.InDelta(t, *expected.Gini, *r.Gini, 1e-12)
	assert.InDelta(t, *expected.Entropy, *r.Entropy, 1e-12)
}

func TestDescribe(t *testing.T) {
	ds := weather(t)
	reports, err := Describe(ds, nil, 4)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	for i, f := range features {
		assert.Equal(t, f.Name(), reports[i].Column)
		expected, err := Column(ds, f.Name())
		require.NoError(t, err)
		assert.Equal(t, expected, reports[i])
	}

	reports, err = Describe(ds, []string{"play"}, 0)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	_, err = Describe(ds, []string{"play", "wind"}, 2)
	assert.Error(t, err)
}

func TestGain(t *testing.T) {
	ds := weather(t)
	c, err := feature.ParseCriterion(features, "outlook=overcast")
	require.NoError(t, err)
	left, right, err := ds.Split(c)
	require.NoError(t, err)

	r, err := Gain(left, right, "play", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, r.LeftRows)
	assert.Equal(t, 6, r.RightRows)
	assert.InDelta(t, 0.5, r.ParentImpurity, 1e-12)
	assert.Zero(t, r.LeftImpurity)
	assert.InDelta(t, 4.0/9.0, r.RightImpurity, 1e-12)
	assert.InDelta(t, 0.5-0.75*4.0/9.0, r.InformationGain, 1e-12)

	parent := 0.6
	r, err = Gain(left, right, "play", &parent)
	require.NoError(t, err)
	assert.InDelta(t, 0.6-0.75*4.0/9.0, r.InformationGain, 1e-12)
}

func TestGainEmptySide(t *testing.T) {
	ds := weather(t)
	_, err := Gain(ds, &dataset.Dataset{Features: features}, "play", nil)
	assert.ErrorIs(t, err, impurity.ErrEmptyPartition)
}

func TestEncode(t *testing.T) {
	r, err := Column(weather(t), "play")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, JSON, r))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "play", decoded["column"])
	assert.Equal(t, []interface{}{"no", "yes"}, decoded["uniqueValues"])

	buf.Reset()
	require.NoError(t, Encode(&buf, YAML, r))
	decoded = nil
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "play", decoded["column"])
	assert.Equal(t, 8, decoded["rows"])

	assert.Error(t, Encode(&buf, "xml", r))
}
