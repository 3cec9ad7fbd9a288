package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	require.Equal(t, Page{Page: 1, Limit: DefaultPageSize, Offset: 0}, Calculate(0, 0))
	require.Equal(t, Page{Page: 3, Limit: 10, Offset: 20}, Calculate(3, 10))
	require.Equal(t, MaxPageSize, Calculate(1, 1000).Limit)
}

func TestCalculateHugePage(t *testing.T) {
	p := Calculate(math.MaxInt, 20)
	require.Equal(t, MaxPage, p.Page)
	require.Positive(t, p.Offset)

	m := p.Meta(5)
	require.EqualValues(t, 1, m.TotalPages)
	require.False(t, m.HasNext)
	require.True(t, m.HasPrev)
}

func TestMeta(t *testing.T) {
	m := Calculate(2, 10).Meta(25)
	require.Equal(t, Meta{Page: 2, Limit: 10, TotalPages: 3, HasNext: true, HasPrev: true}, m)

	m = Calculate(1, 10).Meta(0)
	require.EqualValues(t, 0, m.TotalPages)
	require.False(t, m.HasNext)
	require.False(t, m.HasPrev)
}

func TestParseIntDefault(t *testing.T) {
	require.Equal(t, 5, ParseIntDefault("", 5))
	require.Equal(t, 5, ParseIntDefault("x", 5))
	require.Equal(t, 7, ParseIntDefault("7", 5))
}
