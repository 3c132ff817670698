package mock

import "github.com/fwojciec/pagewatch"

var (
	_ pagewatch.Selector       = (*Selector)(nil)
	_ pagewatch.TitleExtractor = (*TitleExtractor)(nil)
	_ pagewatch.JSONQuerier    = (*JSONQuerier)(nil)
)

// Selector is a mock implementation of pagewatch.Selector.
type Selector struct {
	SelectFn func(markup string, rule pagewatch.FilterRule, opts pagewatch.SelectOptions) (string, error)
	RemoveFn func(markup string, rules []pagewatch.FilterRule) (string, error)
}

func (s *Selector) Select(markup string, rule pagewatch.FilterRule, opts pagewatch.SelectOptions) (string, error) {
	return s.SelectFn(markup, rule, opts)
}

func (s *Selector) Remove(markup string, rules []pagewatch.FilterRule) (string, error) {
	return s.RemoveFn(markup, rules)
}

// TitleExtractor is a mock implementation of pagewatch.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(markup string) string
}

func (e *TitleExtractor) ExtractTitle(markup string) string {
	return e.ExtractTitleFn(markup)
}

// JSONQuerier is a mock implementation of pagewatch.JSONQuerier.
type JSONQuerier struct {
	QueryFn           func(content string, rule pagewatch.FilterRule) (string, error)
	HasProductPriceFn func(markup string) bool
}

func (q *JSONQuerier) Query(content string, rule pagewatch.FilterRule) (string, error) {
	return q.QueryFn(content, rule)
}

func (q *JSONQuerier) HasProductPrice(markup string) bool {
	return q.HasProductPriceFn(markup)
}
