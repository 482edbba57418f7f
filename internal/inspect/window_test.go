package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWindow(t *testing.T) {
	lines := []string{"one", "two", "three", "four", "five"}

	t.Run("interior match", func(t *testing.T) {
		before, after := ContextWindow(lines, 2, 1)
		assert.Equal(t, []string{"two"}, before)
		assert.Equal(t, []string{"four"}, after)
	})

	t.Run("window wider than file", func(t *testing.T) {
		before, after := ContextWindow(lines, 2, 10)
		assert.Equal(t, []string{"one", "two"}, before)
		assert.Equal(t, []string{"four", "five"}, after)
	})

	t.Run("match at first line has empty before", func(t *testing.T) {
		before, after := ContextWindow(lines, 0, 3)
		assert.Empty(t, before)
		assert.Equal(t, []string{"two", "three", "four"}, after)
	})

	t.Run("match at last line has empty after", func(t *testing.T) {
		before, after := ContextWindow(lines, 4, 2)
		assert.Equal(t, []string{"three", "four"}, before)
		assert.Empty(t, after)
	})

	t.Run("zero context", func(t *testing.T) {
		before, after := ContextWindow(lines, 2, 0)
		assert.Empty(t, before)
		assert.Empty(t, after)
	})

	t.Run("single line file", func(t *testing.T) {
		before, after := ContextWindow([]string{"only"}, 0, 2)
		assert.Empty(t, before)
		assert.Empty(t, after)
	})

	t.Run("order is preserved", func(t *testing.T) {
		before, _ := ContextWindow(lines, 3, 2)
		assert.Equal(t, []string{"two", "three"}, before)
	})
}
