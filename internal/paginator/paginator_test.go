package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_PageCount(t *testing.T) {
	p := New(10)

	cases := []struct {
		count    int64
		numPages int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
	}
	for _, tc := range cases {
		page := Resolve[int](p, tc.count, "")
		assert.Equal(t, tc.numPages, page.NumPages, "count=%d", tc.count)
		assert.Equal(t, 1, page.Number)
	}
}

func TestResolve_FallsBackToNearestValidPage(t *testing.T) {
	p := New(10)

	cases := map[string]int{
		"":     1,
		"abc":  1,
		"0":    1,
		"-4":   1,
		"2":    2,
		" 3 ":  3,
		"3":    3,
		"99":   3,
		"2.5":  1,
		"1e10": 1,
	}
	for raw, want := range cases {
		page := Resolve[int](p, 25, raw)
		assert.Equal(t, want, page.Number, "raw=%q", raw)
	}
}

func TestPage_Navigation(t *testing.T) {
	page := Resolve[string](New(10), 25, "2")

	assert.Equal(t, 10, page.Offset())
	assert.True(t, page.HasNext())
	assert.True(t, page.HasPrevious())
	assert.True(t, page.HasOtherPages())
	assert.Equal(t, 3, page.NextNumber())
	assert.Equal(t, 1, page.PreviousNumber())
	assert.Equal(t, []int{1, 2, 3}, page.Range())

	last := Resolve[string](New(10), 25, "3")
	assert.False(t, last.HasNext())
	assert.Equal(t, 20, last.Offset())
}

func TestNew_DefaultsNonPositiveSize(t *testing.T) {
	assert.Equal(t, DefaultPerPage, New(0).PerPage)
	assert.Equal(t, DefaultPerPage, New(-3).PerPage)
	assert.Equal(t, 7, New(7).PerPage)
}

func TestPage_Len(t *testing.T) {
	page := Resolve[string](New(10), 12, "2")
	assert.Equal(t, 0, page.Len())

	page.Items = []string{"a", "b"}
	assert.Equal(t, 2, page.Len())
}
