// Package jsonpath implements JSON filter rules. JSONPath rules are
// evaluated with github.com/ohler55/ojg and jq rules with
// github.com/itchyny/gojq.
package jsonpath

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagewatch"
	"github.com/itchyny/gojq"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Ensure Querier implements pagewatch.JSONQuerier at compile time.
var _ pagewatch.JSONQuerier = (*Querier)(nil)

// productType is the structured-data type whose price is tracked.
const productType = "product"

// Querier evaluates JSON rules against JSON documents, or against JSON
// embedded in HTML when the content itself is not JSON.
type Querier struct{}

// NewQuerier creates a new Querier.
func NewQuerier() *Querier {
	return &Querier{}
}

// Query evaluates rule and formats the matches as indented JSON: nothing
// for no match, the bare value for one match and an array otherwise.
// Returns ENOTFOUND if the content holds no parsable JSON at all.
func (q *Querier) Query(content string, rule pagewatch.FilterRule) (string, error) {
	out, _, err := query(content, rule, "")
	return out, err
}

// HasProductPrice reports whether markup embeds structured data of type
// Product that carries offers, as matched by pagewatch.LDJSONOfferFilters.
func (q *Querier) HasProductPrice(markup string) bool {
	for _, rule := range pagewatch.LDJSONOfferFilters {
		if _, ok, err := query(markup, rule, productType); err == nil && ok {
			return true
		}
	}
	return false
}

// query returns the formatted result of the first document yielding a
// non-empty one. When ensureType is set, embedded documents must also
// declare that @type.
func query(content string, rule pagewatch.FilterRule, ensureType string) (string, bool, error) {
	eval, err := compile(rule)
	if err != nil {
		return "", false, err
	}

	if data, err := oj.ParseString(content); err == nil {
		out, err := eval(data)
		if err != nil {
			return "", false, err
		}
		return out, out != "", nil
	}

	docs := embeddedDocuments(content, ensureType != "")
	if len(docs) == 0 {
		return "", false, pagewatch.Errorf(pagewatch.ENOTFOUND, "no parsable JSON found in this document")
	}

	var out string
	for _, data := range docs {
		out, err = eval(data)
		if err != nil {
			return "", false, err
		}
		if out == "" {
			continue
		}
		if ensureType == "" || hasType(data, ensureType) {
			return out, true, nil
		}
	}
	return out, false, nil
}

type evaluator func(data any) (string, error)

func compile(rule pagewatch.FilterRule) (evaluator, error) {
	switch rule.Kind {
	case pagewatch.FilterJSONPath:
		x, err := jp.ParseString(strings.TrimSpace(rule.Pattern))
		if err != nil {
			return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid JSONPath %q: %v", rule.Raw, err)
		}
		return func(data any) (string, error) {
			return format(x.Get(data))
		}, nil

	case pagewatch.FilterJQ:
		parsed, err := gojq.Parse(rule.Pattern)
		if err != nil {
			return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid jq expression %q: %v", rule.Raw, err)
		}
		code, err := gojq.Compile(parsed)
		if err != nil {
			return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid jq expression %q: %v", rule.Raw, err)
		}
		return func(data any) (string, error) {
			var matches []any
			iter := code.Run(data)
			for {
				v, ok := iter.Next()
				if !ok {
					break
				}
				if err, ok := v.(error); ok {
					var halt *gojq.HaltError
					if errors.As(err, &halt) && halt.Value() == nil {
						break
					}
					return "", pagewatch.Errorf(pagewatch.EINVALID, "jq expression %q failed: %v", rule.Raw, err)
				}
				matches = append(matches, v)
			}
			return format(matches)
		}, nil
	}
	return nil, pagewatch.Errorf(pagewatch.EINVALID, "not a JSON rule: %q", rule.Raw)
}

// format renders matches with four-space indentation and without escaping
// HTML characters.
func format(matches []any) (string, error) {
	var v any
	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		v = matches[0]
	default:
		v = matches
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return "", pagewatch.Errorf(pagewatch.EINTERNAL, "failed to encode JSON result: %v", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// embeddedDocuments returns the parsable JSON found in script elements and
// the document body, in document order. With ldOnly set only structured
// data scripts are considered.
func embeddedDocuments(markup string, ldOnly bool) []any {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	scripts := "script"
	if ldOnly {
		scripts = `script[type="application/ld+json"]`
	}

	var docs []any
	collect := func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		if !strings.Contains(text, "{") {
			return
		}
		data, err := oj.ParseString(text)
		if err != nil {
			return
		}
		docs = append(docs, data)
	}
	doc.Find(scripts).Each(collect)
	doc.Find("body").Each(collect)
	return docs
}

// hasType reports whether an object's @type equals want, or lists it.
func hasType(data any, want string) bool {
	obj, ok := data.(map[string]any)
	if !ok {
		return false
	}
	switch t := obj["@type"].(type) {
	case string:
		return strings.EqualFold(t, want)
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), want) {
				return true
			}
		}
	}
	return false
}
