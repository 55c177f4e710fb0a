package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportEdges(t *testing.T) {
	// 6 cards of 200px with 16px gaps in an 800px window:
	// content 1280px, scrollable range 480px.
	v := &Viewport{ItemWidth: 200, Gap: 16, Width: 800, Count: 6}

	assert.False(t, v.CanPrev())
	assert.True(t, v.CanNext())
	assert.Equal(t, 216, v.Step())

	v.Next()
	assert.Equal(t, 216, v.Offset())
	assert.True(t, v.CanPrev())

	// Run past the end: offset clamps and next disables.
	for i := 0; i < 10; i++ {
		v.Next()
	}
	assert.Equal(t, 480, v.Offset())
	assert.False(t, v.CanNext())

	// And back past the start.
	for i := 0; i < 10; i++ {
		v.Prev()
	}
	assert.Equal(t, 0, v.Offset())
	assert.False(t, v.CanPrev())
}

func TestViewportScrollToIndex(t *testing.T) {
	v := &Viewport{ItemWidth: 200, Gap: 16, Width: 800, Count: 6}

	v.ScrollToIndex(2)
	assert.Equal(t, 432, v.Offset())

	v.ScrollToIndex(-3)
	assert.Equal(t, 0, v.Offset())

	// Beyond the last scrollable position clamps to the end.
	v.ScrollToIndex(5)
	assert.Equal(t, 480, v.Offset())
}

func TestViewportContentNarrowerThanWindow(t *testing.T) {
	v := &Viewport{ItemWidth: 200, Gap: 16, Width: 1600, Count: 3}
	assert.False(t, v.CanNext())
	v.Next()
	assert.Equal(t, 0, v.Offset())
}
