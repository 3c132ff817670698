// Package goquery implements CSS filter rules and title extraction on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagewatch"
)

// Ensure Selector implements the pagewatch interfaces at compile time.
var (
	_ pagewatch.Selector       = (*Selector)(nil)
	_ pagewatch.TitleExtractor = (*Selector)(nil)
)

// lineSuffix separates consecutive matches so that each lands on its own
// line once rendered.
const lineSuffix = "<br>"

// Selector evaluates CSS selector rules against markup.
type Selector struct{}

// NewSelector creates a new Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select returns the outer markup of every element matching rule, in
// document order.
func (s *Selector) Select(markup string, rule pagewatch.FilterRule, opts pagewatch.SelectOptions) (string, error) {
	m, err := compile(rule.Pattern)
	if err != nil {
		return "", err
	}

	doc, err := parse(markup)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var renderErr error
	doc.FindMatcher(m).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if opts.PrettyLines && b.Len() > 0 && !breaksLine(goquery.NodeName(sel)) {
			b.WriteString(lineSuffix)
		}
		html, err := goquery.OuterHtml(sel)
		if err != nil {
			renderErr = pagewatch.Errorf(pagewatch.EINTERNAL, "failed to render element: %v", err)
			return false
		}
		b.WriteString(html)
		return true
	})
	if renderErr != nil {
		return "", renderErr
	}
	return b.String(), nil
}

// Remove deletes every element matching any of rules and returns the
// remaining markup. Fragments without an <html> element come back as
// fragments.
func (s *Selector) Remove(markup string, rules []pagewatch.FilterRule) (string, error) {
	patterns := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.Pattern != "" {
			patterns = append(patterns, r.Pattern)
		}
	}
	if len(patterns) == 0 {
		return markup, nil
	}

	m, err := compile(strings.Join(patterns, ","))
	if err != nil {
		return "", err
	}

	doc, err := parse(markup)
	if err != nil {
		return "", err
	}
	doc.FindMatcher(m).Remove()

	return Render(doc, markup)
}

// ExtractTitle returns the trimmed text of the first <title> element, or an
// empty string.
func (s *Selector) ExtractTitle(markup string) string {
	doc, err := parse(markup)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

var htmlTagRe = regexp.MustCompile(`(?i)<html`)

// Render serializes doc, returning only the body's inner markup when the
// original input was a fragment.
func Render(doc *goquery.Document, original string) (string, error) {
	var (
		html string
		err  error
	)
	if htmlTagRe.MatchString(original) {
		html, err = doc.Html()
	} else {
		html, err = doc.Find("body").Html()
	}
	if err != nil {
		return "", pagewatch.Errorf(pagewatch.EINTERNAL, "failed to render HTML: %v", err)
	}
	return html, nil
}

// compile validates the selector up front; goquery treats an invalid
// selector as matching nothing.
func compile(pattern string) (cascadia.Selector, error) {
	m, err := cascadia.Compile(pattern)
	if err != nil {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid CSS selector %q: %v", pattern, err)
	}
	return m, nil
}

func parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

func breaksLine(name string) bool {
	switch name {
	case "br", "hr", "div", "p":
		return true
	}
	return false
}
