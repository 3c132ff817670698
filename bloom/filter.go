// Package bloom tracks the lines seen across a watch's snapshots using a
// Bloom filter backed by an exact hash set.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagewatch"
)

// Ensure LineIndex implements pagewatch.LineHistory at compile time.
var _ pagewatch.LineHistory = (*LineIndex)(nil)

// LineIndex records normalized lines. The Bloom filter answers most
// lookups for unseen lines; the hash set resolves its false positives.
type LineIndex struct {
	f    *bloom.BloomFilter
	seen map[uint64]struct{}
}

// NewLineIndex creates an index sized for n expected lines with the given
// false positive rate.
func NewLineIndex(n uint, fpRate float64) *LineIndex {
	return &LineIndex{
		f:    bloom.NewWithEstimates(n, fpRate),
		seen: make(map[uint64]struct{}),
	}
}

// Add records every line of a snapshot text.
func (x *LineIndex) Add(text string) {
	for _, line := range pagewatch.SplitLines(text) {
		x.AddLine(line)
	}
}

// AddLine records a single line.
func (x *LineIndex) AddLine(line string) {
	key := normalize(line)
	x.f.AddString(key)
	x.seen[xxhash.Sum64String(key)] = struct{}{}
}

// Contains reports whether the line was recorded. Comparison ignores case
// and surrounding whitespace.
func (x *LineIndex) Contains(line string) bool {
	key := normalize(line)
	if !x.f.TestString(key) {
		return false
	}
	_, ok := x.seen[xxhash.Sum64String(key)]
	return ok
}

// HasUniqueLines implements pagewatch.LineHistory. Blank lines are never
// unique.
func (x *LineIndex) HasUniqueLines(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !x.Contains(line) {
			return true
		}
	}
	return false
}

func normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}
