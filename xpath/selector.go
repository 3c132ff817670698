// Package xpath implements XPath filter rules using the antchfx query
// engines: htmlquery for HTML documents and xmlquery for feeds.
package xpath

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/pagewatch"
	"golang.org/x/net/html"
)

// Ensure Selector implements pagewatch.Selector at compile time.
var _ pagewatch.Selector = (*Selector)(nil)

// lineSuffix separates consecutive results so each lands on its own line
// once rendered.
const lineSuffix = "<br>"

// Selector evaluates XPath rules. Rules of kind FilterXPath may evaluate to
// a string, number or boolean; FilterXPath1 rules must select nodes.
type Selector struct{}

// NewSelector creates a new Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select returns the serialized results of rule, in document order.
// Feeds are parsed as XML, everything else as HTML.
func (s *Selector) Select(markup string, rule pagewatch.FilterRule, opts pagewatch.SelectOptions) (string, error) {
	expr, err := compile(rule.Pattern)
	if err != nil {
		return "", err
	}

	var (
		nav    xpath.NodeNavigator
		render func(xpath.NodeNavigator) (string, string)
	)
	if opts.IsRSS {
		doc, err := xmlquery.Parse(strings.NewReader(markup))
		if err != nil {
			return "", pagewatch.Errorf(pagewatch.EINVALID, "failed to parse XML: %v", err)
		}
		nav, render = xmlquery.CreateXPathNavigator(doc), renderXML
	} else {
		doc, err := htmlquery.Parse(strings.NewReader(markup))
		if err != nil {
			return "", pagewatch.Errorf(pagewatch.EINVALID, "failed to parse HTML: %v", err)
		}
		nav, render = htmlquery.CreateXPathNavigator(doc), renderHTML
	}

	var b strings.Builder
	switch v := expr.Evaluate(nav).(type) {
	case *xpath.NodeIterator:
		for v.MoveNext() {
			name, out := render(v.Current())
			if opts.PrettyLines && b.Len() > 0 && !breaksLine(name) {
				b.WriteString(lineSuffix)
			}
			b.WriteString(out)
		}
	case string, float64, bool:
		if rule.Kind == pagewatch.FilterXPath1 {
			return "", pagewatch.Errorf(pagewatch.EINVALID, "XPath 1.0 rule %q must select nodes", rule.Raw)
		}
		b.WriteString(scalar(v))
	}
	return b.String(), nil
}

// Remove deletes every node selected by any of rules and returns the
// remaining markup. Fragments without an <html> element come back as
// fragments.
func (s *Selector) Remove(markup string, rules []pagewatch.FilterRule) (string, error) {
	doc, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return "", pagewatch.Errorf(pagewatch.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, r := range rules {
		if r.Pattern == "" {
			continue
		}
		expr, err := compile(r.Pattern)
		if err != nil {
			return "", err
		}
		for _, n := range htmlquery.QuerySelectorAll(doc, expr) {
			// Attribute results are detached copies.
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
		}
	}

	if htmlTagRe.MatchString(markup) {
		return htmlquery.OutputHTML(doc, true), nil
	}
	body := htmlquery.FindOne(doc, "//body")
	if body == nil {
		return "", nil
	}
	return htmlquery.OutputHTML(body, false), nil
}

var htmlTagRe = regexp.MustCompile(`(?i)<html`)

func compile(pattern string) (*xpath.Expr, error) {
	expr, err := xpath.Compile(strings.TrimSpace(pattern))
	if err != nil {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid XPath %q: %v", pattern, err)
	}
	return expr, nil
}

// renderHTML returns the element name, if any, and the serialized node.
// Attribute and text results serialize to their value.
func renderHTML(nav xpath.NodeNavigator) (string, string) {
	n, ok := nav.(*htmlquery.NodeNavigator)
	if !ok {
		return "", nav.Value()
	}
	switch nav.NodeType() {
	case xpath.ElementNode:
		return n.Current().Data, htmlquery.OutputHTML(n.Current(), true)
	case xpath.RootNode:
		return "", htmlquery.OutputHTML(n.Current(), true)
	case xpath.CommentNode:
		var b strings.Builder
		_ = html.Render(&b, n.Current())
		return "", b.String()
	}
	return "", nav.Value()
}

func renderXML(nav xpath.NodeNavigator) (string, string) {
	n, ok := nav.(*xmlquery.NodeNavigator)
	if !ok {
		return "", nav.Value()
	}
	switch nav.NodeType() {
	case xpath.ElementNode:
		return n.Current().Data, n.Current().OutputXML(true)
	case xpath.RootNode:
		return "", n.Current().OutputXML(false)
	}
	return "", nav.Value()
}

func scalar(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	}
	return ""
}

func breaksLine(name string) bool {
	switch name {
	case "br", "hr", "div", "p":
		return true
	}
	return false
}
