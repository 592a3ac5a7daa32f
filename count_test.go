package impurity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelRows(labels ...string) [][]string {
	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, []string{l})
	}
	return rows
}

func TestCountClasses(t *testing.T) {
	testCases := []struct {
		name     string
		rows     [][]string
		column   int
		expected map[string]int
	}{
		{"empty", nil, 0, map[string]int{}},
		{"single label", labelRows("A", "A"), 0, map[string]int{"A": 2}},
		{"mixed labels", labelRows("A", "A", "A", "B"), 0, map[string]int{"A": 3, "B": 1}},
		{
			"second column",
			[][]string{{"sunny", "yes"}, {"rainy", "no"}, {"sunny", "yes"}},
			1,
			map[string]int{"yes": 2, "no": 1},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			counts, err := CountClasses(tc.rows, tc.column)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, counts)
			var total int
			for _, c := range counts {
				assert.NotZero(t, c)
				total += c
			}
			assert.Equal(t, len(tc.rows), total)
		})
	}
}

func TestCountClassesNumericValues(t *testing.T) {
	rows := [][]float64{{1.5, 0}, {2.5, 1}, {1.5, 1}}
	counts, err := CountClasses(rows, 0)
	require.NoError(t, err)
	assert.Equal(t, map[float64]int{1.5: 2, 2.5: 1}, counts)
}

func TestCountClassesColumnOutOfRange(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"c"}}
	_, err := CountClasses(rows, 1)
	assert.ErrorIs(t, err, ErrColumnOutOfRange)
	_, err = CountClasses(rows, -1)
	assert.ErrorIs(t, err, ErrColumnOutOfRange)
}

func TestCountClassesDoesNotShareResults(t *testing.T) {
	rows := labelRows("A", "B")
	first, err := CountClasses(rows, 0)
	require.NoError(t, err)
	first["A"] = 10
	second, err := CountClasses(rows, 0)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1, "B": 1}, second)
	assert.Equal(t, labelRows("A", "B"), rows)
}
