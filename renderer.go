package pagewatch

// RenderOptions controls markup to text rendering.
type RenderOptions struct {
	// RenderAnchors writes link targets inline after the link text.
	RenderAnchors bool

	// IsRSS renders feed <title> elements as headings.
	IsRSS bool
}

// TextRenderer converts markup to plain text, keeping line structure.
type TextRenderer interface {
	Render(markup string, opts RenderOptions) (string, error)
}

// FeedNormalizer rewrites RSS documents so that CDATA sections become
// escaped plain text, leaving the document structure intact.
type FeedNormalizer interface {
	Normalize(feed string, opts RenderOptions) string
}

// Differ renders the line-level difference between two texts.
type Differ interface {
	// Diff returns only the lines of the kinds selected by filter, joined
	// by newlines. Unchanged lines are never included.
	Diff(previous, current string, filter DiffFilter) string
}
