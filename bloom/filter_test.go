package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/pagewatch/bloom"
	"github.com/stretchr/testify/assert"
)

func TestLineIndex_AddAndContains(t *testing.T) {
	t.Parallel()

	x := bloom.NewLineIndex(1000, 0.01)

	// Line not yet added should be absent
	assert.False(t, x.Contains("Price: 10"))

	x.Add("Price: 10\nIn stock")

	assert.True(t, x.Contains("Price: 10"))
	assert.True(t, x.Contains("In stock"))

	// Comparison ignores case and surrounding whitespace
	assert.True(t, x.Contains("  price: 10 "))

	assert.False(t, x.Contains("Price: 12"))
}

func TestLineIndex_HasUniqueLines(t *testing.T) {
	t.Parallel()

	t.Run("returns false when every line was seen", func(t *testing.T) {
		t.Parallel()

		x := bloom.NewLineIndex(1000, 0.01)
		x.Add("a\nb")
		x.Add("c")

		assert.False(t, x.HasUniqueLines([]string{"A", "c", "b"}))
	})

	t.Run("returns true when a line is new", func(t *testing.T) {
		t.Parallel()

		x := bloom.NewLineIndex(1000, 0.01)
		x.Add("a\nb")

		assert.True(t, x.HasUniqueLines([]string{"a", "d"}))
	})

	t.Run("ignores blank lines", func(t *testing.T) {
		t.Parallel()

		x := bloom.NewLineIndex(1000, 0.01)
		x.Add("a")

		assert.False(t, x.HasUniqueLines([]string{"a", "", "   "}))
	})

	t.Run("treats an empty history as having seen nothing", func(t *testing.T) {
		t.Parallel()

		x := bloom.NewLineIndex(1000, 0.01)

		assert.True(t, x.HasUniqueLines([]string{"a"}))
	})
}

func TestLineIndex_NoFalsePositives(t *testing.T) {
	t.Parallel()

	const numLines = 10000

	x := bloom.NewLineIndex(numLines, 0.01)
	for i := range numLines {
		x.AddLine(fmt.Sprintf("added line %d", i))
	}

	// The exact set resolves every Bloom false positive
	for i := range numLines {
		assert.False(t, x.Contains(fmt.Sprintf("other line %d", i)))
	}
}
