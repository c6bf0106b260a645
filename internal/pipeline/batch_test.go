package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePages(n int) []Page {
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("page-%d.jpg", i+1)
	}
	return NumberPages(paths)
}

func TestNumberPagesIsOneBased(t *testing.T) {
	pages := NumberPages([]string{"a.jpg", "b.jpg"})
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "a.jpg", pages[0].Path)
	assert.Equal(t, 2, pages[1].Number)
}

func TestChunkPartitionShape(t *testing.T) {
	for _, tc := range []struct {
		n, max, groups int
	}{
		{5, 2, 3},
		{4, 2, 2},
		{1, 2, 1},
		{6, 6, 1},
		{7, 3, 3},
		{0, 2, 0},
	} {
		groups := Chunk(makePages(tc.n), tc.max)
		assert.Len(t, groups, tc.groups, "n=%d max=%d", tc.n, tc.max)
		for _, g := range groups {
			assert.LessOrEqual(t, len(g), tc.max)
		}
	}
}

func TestChunkConcatenatesBackToOriginalOrder(t *testing.T) {
	pages := makePages(7)
	var flat []Page
	for _, g := range Chunk(pages, 3) {
		flat = append(flat, g...)
	}
	assert.Equal(t, pages, flat)
}

func TestChunkPreservesPageNumbersThroughBatching(t *testing.T) {
	groups := Chunk(makePages(5), 2)
	require.Len(t, groups, 3)
	assert.Equal(t, 5, groups[2][0].Number)
}
