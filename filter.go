package pagewatch

import "strings"

// FilterKind identifies the query engine a filter rule is evaluated with.
type FilterKind int

// Filter kinds, selected by rule prefix.
const (
	FilterCSS FilterKind = iota
	FilterXPath
	FilterXPath1
	FilterJSONPath
	FilterJQ
)

// Rule prefixes understood by ParseFilterRule.
const (
	PrefixJSON   = "json:"
	PrefixJQ     = "jq:"
	PrefixXPath  = "xpath:"
	PrefixXPath1 = "xpath1:"
)

// String returns the kind name used in logs.
func (k FilterKind) String() string {
	switch k {
	case FilterXPath:
		return "xpath"
	case FilterXPath1:
		return "xpath1"
	case FilterJSONPath:
		return "json"
	case FilterJQ:
		return "jq"
	default:
		return "css"
	}
}

// FilterRule is a parsed include or subtractive filter.
// Raw keeps the rule as the user wrote it; Pattern is the expression
// handed to the query engine with any prefix removed.
type FilterRule struct {
	Kind    FilterKind
	Pattern string
	Raw     string
}

// ParseFilterRule parses a rule string by prefix:
// "json:" and "jq:" select JSON queries, a leading "/" or "xpath:" selects
// XPath, "xpath1:" selects XPath 1.0 node-set queries, and anything else is
// a CSS selector.
func ParseFilterRule(s string) FilterRule {
	raw := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(raw, PrefixJSON):
		return FilterRule{Kind: FilterJSONPath, Pattern: strings.TrimPrefix(raw, PrefixJSON), Raw: raw}
	case strings.HasPrefix(raw, PrefixJQ):
		return FilterRule{Kind: FilterJQ, Pattern: strings.TrimPrefix(raw, PrefixJQ), Raw: raw}
	case strings.HasPrefix(raw, PrefixXPath1):
		return FilterRule{Kind: FilterXPath1, Pattern: strings.TrimSpace(strings.TrimPrefix(raw, PrefixXPath1)), Raw: raw}
	case strings.HasPrefix(raw, PrefixXPath):
		return FilterRule{Kind: FilterXPath, Pattern: strings.TrimSpace(strings.TrimPrefix(raw, PrefixXPath)), Raw: raw}
	case strings.HasPrefix(raw, "/"):
		return FilterRule{Kind: FilterXPath, Pattern: raw, Raw: raw}
	}
	return FilterRule{Kind: FilterCSS, Pattern: raw, Raw: raw}
}

// ParseFilterRules parses rules in order, skipping blank entries.
func ParseFilterRules(rules []string) []FilterRule {
	var parsed []FilterRule
	for _, r := range rules {
		if strings.TrimSpace(r) == "" {
			continue
		}
		parsed = append(parsed, ParseFilterRule(r))
	}
	return parsed
}

// IsJSON reports whether the rule queries JSON rather than markup.
func (r FilterRule) IsJSON() bool {
	return r.Kind == FilterJSONPath || r.Kind == FilterJQ
}

// IsXPath reports whether the rule is evaluated by an XPath engine.
func (r FilterRule) IsXPath() bool {
	return r.Kind == FilterXPath || r.Kind == FilterXPath1
}

// String returns the rule as written.
func (r FilterRule) String() string {
	return r.Raw
}

// MarshalText implements encoding.TextMarshaler.
func (r FilterRule) MarshalText() ([]byte, error) {
	return []byte(r.Raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so that rules are parsed
// once when a watch definition is loaded.
func (r *FilterRule) UnmarshalText(text []byte) error {
	*r = ParseFilterRule(string(text))
	return nil
}

// RawFilterRules returns the rules as written, in order.
func RawFilterRules(rules []FilterRule) []string {
	raw := make([]string, len(rules))
	for i, r := range rules {
		raw[i] = r.Raw
	}
	return raw
}

// LDJSONOfferFilters are the virtual include rules added when a watch tracks
// structured product price data.
var LDJSONOfferFilters = []FilterRule{
	ParseFilterRule("json:$..offers"),
	ParseFilterRule("json:$..Offers"),
}
