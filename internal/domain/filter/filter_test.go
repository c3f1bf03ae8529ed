package filter_test

import (
	"testing"

	"github.com/rpggio/academe/internal/domain/filter"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	require.True(t, filter.Matches("", "anything"))
	require.True(t, filter.Matches("  ", "anything"))
	require.True(t, filter.Matches("research", "Alpha Research"))
	require.True(t, filter.Matches("ALPHA", "Alpha Research"))
	require.True(t, filter.Matches("data", "Title", "Healthcare data analysis"))
	require.False(t, filter.Matches("research", "Beta Study", "Survey design"))
	require.False(t, filter.Matches("x"))
}

func TestSelects(t *testing.T) {
	require.True(t, filter.Selects(filter.All, "open"))
	require.True(t, filter.Selects("", "open"))
	require.True(t, filter.Selects("open", "open"))
	require.False(t, filter.Selects("open", "completed"))
	require.False(t, filter.Selects("Open", "open"))
}

func TestApply(t *testing.T) {
	even := filter.Apply([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	require.Equal(t, []int{2, 4}, even)
	require.Empty(t, filter.Apply[int](nil, func(int) bool { return true }))
}
