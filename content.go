package pagewatch

// ContentKind is how fetched content is interpreted by the pipeline.
type ContentKind int

// Content kinds.
const (
	KindHTML ContentKind = iota
	KindJSON
	KindPlaintext
	KindRSS
	KindSource
)

// String returns the kind name used in logs.
func (k ContentKind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindPlaintext:
		return "plaintext"
	case KindRSS:
		return "rss"
	case KindSource:
		return "source"
	default:
		return "html"
	}
}

// IsMarkup reports whether the content is rendered from markup to text.
func (k ContentKind) IsMarkup() bool {
	return k == KindHTML || k == KindRSS
}
