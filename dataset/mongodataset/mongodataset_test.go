package mongodataset

import (
	"context"
	"os"
	"testing"

	"github.com/pbanos/impurity/dataset"
	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"
)

var features = []feature.Feature{
	feature.NewDiscreteFeature("outlook", []string{"sunny", "rainy"}),
	feature.NewContinuousFeature("humidity"),
}

func TestCollection(t *testing.T) {
	url := os.Getenv("IMPURITY_TEST_MONGO")
	if url == "" {
		t.Skip("IMPURITY_TEST_MONGO not set")
	}
	session, err := Dial(url)
	require.NoError(t, err)
	defer session.Close()
	ctx := context.Background()

	_ = session.DB("").C("impurity_test").DropCollection()
	c, err := Open(session, "impurity_test", features)
	require.NoError(t, err)

	rows := [][]value.Value{
		{value.NewCategorical("sunny"), value.NewNumeric(70)},
		{value.NewCategorical("sunny"), value.NewUndefined()},
		{value.NewCategorical("rainy"), value.NewNumeric(90)},
	}
	n, err := c.Write(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	ds, err := dataset.Load(ctx, features, c)
	require.NoError(t, err)
	assert.ElementsMatch(t, rows, ds.Rows)

	counts, err := c.CountClasses(ctx, features[0])
	require.NoError(t, err)
	assert.Equal(t, map[value.Value]int{value.NewCategorical("sunny"): 2, value.NewCategorical("rainy"): 1}, counts)

	counts, err = c.CountClasses(ctx, features[1])
	require.NoError(t, err)
	assert.Equal(t, 1, counts[value.NewUndefined()])

	require.NoError(t, session.DB("").C("impurity_test").Insert(bson.M{"outlook": "foggy", "humidity": 80.0}))
	_, err = c.CountClasses(ctx, features[0])
	assert.Error(t, err)
}

func TestOpenRejectsReservedNames(t *testing.T) {
	for _, name := range []string{"_id", "a.b", "$a"} {
		c := &Collection{features: []feature.Feature{feature.NewContinuousFeature(name)}}
		assert.Error(t, c.ensureIndexes(), name)
	}
}
