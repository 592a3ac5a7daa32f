package feature

import (
	"testing"

	"github.com/pbanos/impurity/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFeatures = []Feature{
	NewDiscreteFeature("outlook", []string{"sunny", "rainy"}),
	NewContinuousFeature("temperature"),
}

func TestParseDiscreteCriterion(t *testing.T) {
	c, err := ParseCriterion(testFeatures, "outlook = sunny")
	require.NoError(t, err)
	dc, ok := c.(DiscreteCriterion)
	require.True(t, ok)
	assert.Equal(t, "sunny", dc.Value())
	assert.Equal(t, "outlook", c.Feature().Name())
	assert.True(t, c.SatisfiedBy(value.NewCategorical("sunny")))
	assert.False(t, c.SatisfiedBy(value.NewCategorical("rainy")))
	assert.False(t, c.SatisfiedBy(value.NewUndefined()))
}

func TestParseContinuousCriterion(t *testing.T) {
	below, err := ParseCriterion(testFeatures, "temperature<20")
	require.NoError(t, err)
	assert.True(t, below.SatisfiedBy(value.NewNumeric(19.9)))
	assert.False(t, below.SatisfiedBy(value.NewNumeric(20)))
	assert.False(t, below.SatisfiedBy(value.NewUndefined()))

	above, err := ParseCriterion(testFeatures, "temperature>=20")
	require.NoError(t, err)
	assert.True(t, above.SatisfiedBy(value.NewNumeric(20)))
	assert.False(t, above.SatisfiedBy(value.NewNumeric(19)))
	a, b := above.(ContinuousCriterion).Interval()
	assert.Equal(t, 20.0, a)
	assert.True(t, b > 1e300)
}

func TestParseCriterionErrors(t *testing.T) {
	for _, expr := range []string{
		"outlook",
		"humidity=high",
		"outlook<3",
		"outlook=cloudy",
		"temperature=20",
		"temperature<warm",
		"temperature<NaN",
		"temperature>=Inf",
		"temperature>20",
	} {
		_, err := ParseCriterion(testFeatures, expr)
		assert.Error(t, err, expr)
	}
}

func TestParseCriterionSplitsOnFirstOperator(t *testing.T) {
	features := []Feature{NewDiscreteFeature("range", []string{"a<b", "b>=c"})}
	for _, v := range []string{"a<b", "b>=c"} {
		c, err := ParseCriterion(features, "range="+v)
		require.NoError(t, err, v)
		assert.Equal(t, v, c.(DiscreteCriterion).Value())
		assert.True(t, c.SatisfiedBy(value.NewCategorical(v)))
	}
}
