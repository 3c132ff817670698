package pagewatch

// SelectOptions controls how matched fragments are joined.
type SelectOptions struct {
	// PrettyLines inserts a line break between fragments that would not
	// otherwise start on a new line once rendered.
	PrettyLines bool

	// IsRSS parses the document as XML instead of HTML.
	IsRSS bool
}

// Selector evaluates structural filter rules against markup.
type Selector interface {
	// Select returns the serialized fragments matched by rule, concatenated
	// in document order. No match returns an empty string.
	// Returns EINVALID if the rule cannot be compiled or is not supported.
	Select(markup string, rule FilterRule, opts SelectOptions) (string, error)

	// Remove deletes every element matched by any of the rules and returns
	// the remaining markup.
	Remove(markup string, rules []FilterRule) (string, error)
}

// TitleExtractor reads the document title from markup.
type TitleExtractor interface {
	// ExtractTitle returns the trimmed text of the first <title> element,
	// or an empty string when there is none.
	ExtractTitle(markup string) string
}

// JSONQuerier evaluates json: and jq: rules.
type JSONQuerier interface {
	// Query evaluates rule against content and returns the matches as
	// indented JSON. Content that is not JSON is searched for embedded
	// <script> blobs. No match returns an empty string.
	// Returns ENOTFOUND if no parsable JSON exists in the content.
	Query(content string, rule FilterRule) (string, error)

	// HasProductPrice reports whether markup carries ld+json product data
	// with a price.
	HasProductPrice(markup string) bool
}
