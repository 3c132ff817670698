package pagewatch

import "strings"

// SourcePrefix marks a watch URL whose raw markup is monitored instead of
// its rendered text.
const SourcePrefix = "source:"

// Watch is a read-only snapshot of a monitored resource's configuration and
// the state recorded by its previous check.
type Watch struct {
	ID  string `yaml:"id"`
	URL string `yaml:"url"`

	IncludeFilters       []FilterRule `yaml:"include_filters"`
	SubtractiveSelectors []FilterRule `yaml:"subtractive_selectors"`
	Tags                 []Tag        `yaml:"tags"`

	IgnoreText  []string `yaml:"ignore_text"`
	TriggerText []string `yaml:"trigger_text"`
	BlockText   []string `yaml:"text_should_not_be_present"`
	ExtractText []string `yaml:"extract_text"`

	DiffFilter       DiffFilter `yaml:",inline"`
	CheckUniqueLines bool       `yaml:"check_unique_lines"`

	// IsPDF forces document conversion regardless of headers.
	IsPDF bool `yaml:"is_pdf"`

	// TrackLDJSONPrice adds LDJSONOfferFilters to the include rules.
	TrackLDJSONPrice bool `yaml:"track_ldjson_price_data"`

	ExtractTitle bool   `yaml:"extract_title_as_title"`
	Title        string `yaml:"title"`

	// State from the previous check. Owned by the caller's history store.
	PreviousDigest    string      `yaml:"-"`
	PrefilterChecksum string      `yaml:"-"`
	PrefilterText     string      `yaml:"-"`
	HasHistory        bool        `yaml:"-"`
	History           LineHistory `yaml:"-"`
}

// IsSourceType reports whether the watch monitors raw markup.
func (w *Watch) IsSourceType() bool {
	return strings.HasPrefix(w.URL, SourcePrefix)
}

// AllIncludeFilters returns the watch's include rules followed by those of
// its tags, and the virtual price rules when price tracking is enabled.
func (w *Watch) AllIncludeFilters() []FilterRule {
	var rules []FilterRule
	rules = append(rules, w.IncludeFilters...)
	for _, t := range w.Tags {
		rules = append(rules, t.IncludeFilters...)
	}
	if w.TrackLDJSONPrice {
		rules = append(rules, LDJSONOfferFilters...)
	}
	return rules
}

// AllSubtractiveSelectors returns tag rules, then watch rules, then the
// global rules from settings.
func (w *Watch) AllSubtractiveSelectors(settings Settings) []FilterRule {
	var rules []FilterRule
	for _, t := range w.Tags {
		rules = append(rules, t.SubtractiveSelectors...)
	}
	rules = append(rules, w.SubtractiveSelectors...)
	rules = append(rules, settings.GlobalSubtractiveSelectors...)
	return rules
}

// Tag groups watches that share filter overrides.
type Tag struct {
	Name                 string       `yaml:"name"`
	IncludeFilters       []FilterRule `yaml:"include_filters"`
	SubtractiveSelectors []FilterRule `yaml:"subtractive_selectors"`
}

// DiffFilter selects which kinds of changed lines are kept when the
// comparable text is rewritten to the difference against the previous check.
type DiffFilter struct {
	Added    bool `yaml:"filter_text_added"`
	Removed  bool `yaml:"filter_text_removed"`
	Replaced bool `yaml:"filter_text_replaced"`
}

// DefaultDiffFilter keeps every kind of change, which disables diff-scope.
func DefaultDiffFilter() DiffFilter {
	return DiffFilter{Added: true, Removed: true, Replaced: true}
}

// Special reports whether at least one change kind is excluded.
// Excluding all of them leaves nothing to compare, so it counts as unset.
func (f DiffFilter) Special() bool {
	if !f.Added && !f.Removed && !f.Replaced {
		return false
	}
	return !f.Added || !f.Removed || !f.Replaced
}

// Settings holds process-wide options that affect every watch.
type Settings struct {
	IgnoreWhitespace           bool         `yaml:"ignore_whitespace"`
	EmptyPagesAreChange        bool         `yaml:"empty_pages_are_a_change"`
	GlobalIgnoreText           []string     `yaml:"global_ignore_text"`
	GlobalSubtractiveSelectors []FilterRule `yaml:"global_subtractive_selectors"`
	RenderAnchorTagContent     bool         `yaml:"render_anchor_tag_content"`
	ExtractTitleAsTitle        bool         `yaml:"extract_title_as_title"`
}

// LineHistory reports whether lines are new relative to every earlier
// snapshot of a watch.
type LineHistory interface {
	// HasUniqueLines returns true if at least one line has not been seen.
	// Comparison ignores case and surrounding whitespace.
	HasUniqueLines(lines []string) bool
}
