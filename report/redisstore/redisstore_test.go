package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pbanos/impurity/report"
	"github.com/pbanos/impurity/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(t *testing.T) *report.ColumnReport {
	r, err := report.FromCounts("play", map[value.Value]int{
		value.NewCategorical("yes"): 9,
		value.NewCategorical("no"):  5,
		value.NewUndefined():        1,
	}).WithImpurity()
	require.NoError(t, err)
	return r
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("a.csv", "play"), Key("a.csv", "play"))
	assert.NotEqual(t, Key("a.csv", "play"), Key("a.csv", "outlook"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.Len(t, Key("x"), 40)
}

func TestJSONEncodeDecoder(t *testing.T) {
	encdec := NewJSONEncodeDecoder()
	r := testReport(t)
	data, err := encdec.Encode(r)
	require.NoError(t, err)
	decoded := &report.ColumnReport{}
	require.NoError(t, encdec.Decode(data, decoded))
	assert.Equal(t, r, decoded)
}

func TestStore(t *testing.T) {
	addr := os.Getenv("IMPURITY_TEST_REDIS")
	if addr == "" {
		t.Skip("IMPURITY_TEST_REDIS not set")
	}
	rc, err := Dial(addr)
	require.NoError(t, err)
	defer rc.Close()
	ctx := context.Background()
	s := New(rc, "impurity-test", time.Minute, NewJSONEncodeDecoder())
	key := Key("store-test", time.Now().String())

	found, err := s.Get(ctx, key, &report.ColumnReport{})
	require.NoError(t, err)
	assert.False(t, found)

	r := testReport(t)
	require.NoError(t, s.Store(ctx, key, r))
	cached := &report.ColumnReport{}
	found, err = s.Get(ctx, key, cached)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, r, cached)

	require.NoError(t, s.Delete(ctx, key))
	found, err = s.Get(ctx, key, &report.ColumnReport{})
	require.NoError(t, err)
	assert.False(t, found)
}
