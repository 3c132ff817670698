package detect

import (
	"strings"

	"github.com/fwojciec/pagewatch"
)

// extraction is the text produced by the filter chain and text extractor.
type extraction struct {
	text string

	// document is the preprocessed content the markup filters ran against.
	document string

	// rendered is set when the content was interpreted as markup and
	// rendered to text.
	rendered bool

	hasLDJSONPrice *bool
}

// extract applies include filters and subtractive selectors, then renders
// the remaining markup to text. JSON rules bypass markup rendering entirely.
func (d *Detector) extract(
	content string,
	kind pagewatch.ContentKind,
	plaintext bool,
	include, subtractive []pagewatch.FilterRule,
	settings pagewatch.Settings,
) (*extraction, error) {
	var jsonRules, markupRules []pagewatch.FilterRule
	for _, r := range include {
		if r.IsJSON() {
			jsonRules = append(jsonRules, r)
		} else {
			markupRules = append(markupRules, r)
		}
	}

	switch {
	case kind == pagewatch.KindJSON,
		kind != pagewatch.KindSource && len(jsonRules) > 0:
		text, err := d.queryJSON(content, jsonRules, include)
		if err != nil {
			return nil, err
		}
		return &extraction{text: text}, nil

	case kind == pagewatch.KindPlaintext,
		kind == pagewatch.KindSource && plaintext:
		return &extraction{text: CleanObfuscation(content)}, nil
	}

	content = CleanObfuscation(content)
	ex := &extraction{document: content}

	markup := content
	opts := pagewatch.SelectOptions{
		PrettyLines: kind != pagewatch.KindSource,
		IsRSS:       kind == pagewatch.KindRSS,
	}
	if kind != pagewatch.KindSource {
		price := d.JSON.HasProductPrice(content)
		ex.hasLDJSONPrice = &price
	}

	if len(markupRules) > 0 {
		var err error
		markup, err = d.selectAll(content, markupRules, include, opts)
		if err != nil {
			return nil, err
		}
	}

	markup, err := d.removeSubtractive(markup, subtractive)
	if err != nil {
		return nil, err
	}

	if kind == pagewatch.KindSource {
		ex.text = markup
		return ex, nil
	}

	ex.text, err = d.Renderer.Render(markup, pagewatch.RenderOptions{
		RenderAnchors: settings.RenderAnchorTagContent,
		IsRSS:         kind == pagewatch.KindRSS,
	})
	if err != nil {
		return nil, err
	}
	ex.rendered = true
	return ex, nil
}

// queryJSON concatenates the results of every JSON rule in order.
func (d *Detector) queryJSON(content string, rules, include []pagewatch.FilterRule) (string, error) {
	var b strings.Builder
	for _, rule := range rules {
		s, err := d.JSON.Query(content, rule)
		if pagewatch.ErrorCode(err) == pagewatch.ENOTFOUND {
			return "", &pagewatch.FilterNotFoundError{Filters: pagewatch.RawFilterRules(include)}
		} else if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// selectAll concatenates the fragments matched by every markup rule in
// order, without de-duplication.
func (d *Detector) selectAll(content string, rules, include []pagewatch.FilterRule, opts pagewatch.SelectOptions) (string, error) {
	var b strings.Builder
	for _, rule := range rules {
		sel := d.CSS
		if rule.IsXPath() {
			sel = d.XPath
		}
		s, err := sel.Select(content, rule, opts)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", &pagewatch.FilterNotFoundError{Filters: pagewatch.RawFilterRules(include)}
	}
	return b.String(), nil
}

// removeSubtractive removes CSS matches first, then XPath matches.
func (d *Detector) removeSubtractive(markup string, rules []pagewatch.FilterRule) (string, error) {
	var css, xpath []pagewatch.FilterRule
	for _, r := range rules {
		switch {
		case r.Kind == pagewatch.FilterCSS && r.Pattern != "":
			css = append(css, r)
		case r.IsXPath():
			xpath = append(xpath, r)
		}
	}

	var err error
	if len(css) > 0 {
		if markup, err = d.CSS.Remove(markup, css); err != nil {
			return "", err
		}
	}
	if len(xpath) > 0 {
		if markup, err = d.XPath.Remove(markup, xpath); err != nil {
			return "", err
		}
	}
	return markup, nil
}
