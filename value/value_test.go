package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func TestValueEquality(t *testing.T) {
	assert.Equal(t, NewNumeric(1), NewNumeric(1))
	assert.NotEqual(t, NewNumeric(1), NewCategorical("1"))
	assert.Equal(t, NewUndefined(), Value{})

	counts := map[Value]int{}
	for _, v := range []Value{NewCategorical("a"), NewNumeric(2), NewCategorical("a"), NewUndefined()} {
		counts[v]++
	}
	assert.Equal(t, 2, counts[NewCategorical("a")])
	assert.Equal(t, 1, counts[NewNumeric(2)])
	assert.Equal(t, 1, counts[NewUndefined()])
}

func TestValueAccessors(t *testing.T) {
	f, ok := NewNumeric(2.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)
	_, ok = NewCategorical("x").Float()
	assert.False(t, ok)

	s, ok := NewCategorical("x").Category()
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = NewNumeric(1).Category()
	assert.False(t, ok)

	assert.False(t, NewUndefined().Defined())
	assert.True(t, NewNumeric(0).Defined())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "?", NewUndefined().String())
	assert.Equal(t, "2.5", NewNumeric(2.5).String())
	assert.Equal(t, "3", NewNumeric(3).String())
	assert.Equal(t, "sunny", NewCategorical("sunny").String())
}

func TestLess(t *testing.T) {
	values := []Value{NewCategorical("b"), NewNumeric(3), NewUndefined(), NewCategorical("a"), NewNumeric(-1)}
	slices.SortFunc(values, Less)
	assert.Equal(t, []Value{NewUndefined(), NewNumeric(-1), NewNumeric(3), NewCategorical("a"), NewCategorical("b")}, values)
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal([]Value{NewNumeric(1.5), NewCategorical("x"), NewUndefined()})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, "x", null]`, string(data))

	var values []Value
	require.NoError(t, json.Unmarshal(data, &values))
	assert.Equal(t, []Value{NewNumeric(1.5), NewCategorical("x"), NewUndefined()}, values)

	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &v))
}

func TestFromInterface(t *testing.T) {
	testCases := []struct {
		in       interface{}
		expected Value
	}{
		{nil, NewUndefined()},
		{int64(4), NewNumeric(4)},
		{float32(0.5), NewNumeric(0.5)},
		{[]byte("abc"), NewCategorical("abc")},
		{"abc", NewCategorical("abc")},
	}
	for _, tc := range testCases {
		v, err := FromInterface(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, v)
	}
	_, err := FromInterface(struct{}{})
	assert.Error(t, err)

	for _, x := range []interface{}{math.NaN(), math.Inf(1), float32(math.Inf(-1))} {
		_, err = FromInterface(x)
		assert.Error(t, err, "%v", x)
	}
}
