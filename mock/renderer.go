package mock

import "github.com/fwojciec/pagewatch"

var (
	_ pagewatch.TextRenderer   = (*TextRenderer)(nil)
	_ pagewatch.FeedNormalizer = (*FeedNormalizer)(nil)
	_ pagewatch.Differ         = (*Differ)(nil)
)

// TextRenderer is a mock implementation of pagewatch.TextRenderer.
type TextRenderer struct {
	RenderFn func(markup string, opts pagewatch.RenderOptions) (string, error)
}

func (r *TextRenderer) Render(markup string, opts pagewatch.RenderOptions) (string, error) {
	return r.RenderFn(markup, opts)
}

// FeedNormalizer is a mock implementation of pagewatch.FeedNormalizer.
type FeedNormalizer struct {
	NormalizeFn func(feed string, opts pagewatch.RenderOptions) string
}

func (n *FeedNormalizer) Normalize(feed string, opts pagewatch.RenderOptions) string {
	return n.NormalizeFn(feed, opts)
}

// Differ is a mock implementation of pagewatch.Differ.
type Differ struct {
	DiffFn func(previous, current string, filter pagewatch.DiffFilter) string
}

func (d *Differ) Diff(previous, current string, filter pagewatch.DiffFilter) string {
	return d.DiffFn(previous, current, filter)
}
