package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/impurity/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const metadata = `
features:
  outlook: [sunny, overcast, rainy]
  temperature: continuous
  play: [yes, no]
`

func TestReadFeatures(t *testing.T) {
	features, err := ReadFeatures([]byte(metadata))
	require.NoError(t, err)
	require.Len(t, features, 3)

	names := []string{}
	for _, f := range features {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"outlook", "play", "temperature"}, names)

	outlook, ok := features[0].(*feature.DiscreteFeature)
	require.True(t, ok)
	assert.Equal(t, []string{"sunny", "overcast", "rainy"}, outlook.AvailableValues())
	// yaml.v2 reads unquoted yes/no as booleans
	play, ok := features[1].(*feature.DiscreteFeature)
	require.True(t, ok)
	assert.Equal(t, []string{"true", "false"}, play.AvailableValues())
	_, ok = features[2].(*feature.ContinuousFeature)
	assert.True(t, ok)
}

func TestReadFeaturesWithOrder(t *testing.T) {
	features, err := ReadFeatures([]byte(metadata + "order: [temperature, outlook, play]\n"))
	require.NoError(t, err)
	assert.Equal(t, "temperature", features[0].Name())
	assert.Equal(t, "outlook", features[1].Name())
	assert.Equal(t, "play", features[2].Name())
}

func TestReadFeaturesErrors(t *testing.T) {
	for _, md := range []string{
		"other: 1",
		"features:\n  a: discrete\n",
		"features:\n  a: 3\n",
		"features:\n  a: continuous\norder: [b]\n",
		"features:\n  a: continuous\n  b: continuous\norder: [a, a]\n",
		"features: [",
	} {
		_, err := ReadFeatures([]byte(md))
		assert.Error(t, err, md)
	}
}

func TestReadFeaturesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.yml")
	require.NoError(t, os.WriteFile(path, []byte(metadata), 0600))
	features, err := ReadFeaturesFromFile(path)
	require.NoError(t, err)
	assert.Len(t, features, 3)

	_, err = ReadFeaturesFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
