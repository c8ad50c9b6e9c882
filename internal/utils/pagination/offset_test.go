package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, 0, Offset(0, 10))
	assert.Equal(t, 0, Offset(2, 0))
}

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		total, perPage, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
		{7, 0, 0},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.perPage), "total=%d perPage=%d", tc.total, tc.perPage)
	}
}

func TestWindow(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Window(1, 10, 5))
	assert.Equal(t, []int{3, 4, 5, 6, 7}, Window(5, 10, 5))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, Window(10, 10, 5))
	assert.Equal(t, []int{1, 2}, Window(2, 2, 5))
	assert.Nil(t, Window(1, 0, 5))
}
