package goquery_test

import (
	"testing"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_Select(t *testing.T) {
	t.Parallel()

	t.Run("returns outer markup of matches in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><span class="a">one</span><b>x</b><span class="a">two</span></body></html>`

		got, err := goquery.NewSelector().Select(html, pagewatch.ParseFilterRule(".a"), pagewatch.SelectOptions{})

		require.NoError(t, err)
		assert.Equal(t, `<span class="a">one</span><span class="a">two</span>`, got)
	})

	t.Run("separates matches with line breaks when pretty lines is set", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><span>one</span><span>two</span><span>three</span></body></html>`

		got, err := goquery.NewSelector().Select(html, pagewatch.ParseFilterRule("span"), pagewatch.SelectOptions{PrettyLines: true})

		require.NoError(t, err)
		assert.Equal(t, `<span>one</span><br><span>two</span><br><span>three</span>`, got)
	})

	t.Run("does not separate block elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>one</p><p>two</p></body></html>`

		got, err := goquery.NewSelector().Select(html, pagewatch.ParseFilterRule("p"), pagewatch.SelectOptions{PrettyLines: true})

		require.NoError(t, err)
		assert.Equal(t, `<p>one</p><p>two</p>`, got)
	})

	t.Run("returns empty string when nothing matches", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewSelector().Select(`<p>one</p>`, pagewatch.ParseFilterRule("#missing"), pagewatch.SelectOptions{})

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("returns EINVALID for malformed selector", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewSelector().Select(`<p>one</p>`, pagewatch.ParseFilterRule("div[[["), pagewatch.SelectOptions{})

		require.Error(t, err)
		assert.Equal(t, pagewatch.EINVALID, pagewatch.ErrorCode(err))
	})
}

func TestSelector_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes every matching element from a fragment", func(t *testing.T) {
		t.Parallel()

		markup := `<div><nav>menu</nav><p>keep</p><footer>foot</footer></div>`
		rules := pagewatch.ParseFilterRules([]string{"nav", "footer"})

		got, err := goquery.NewSelector().Remove(markup, rules)

		require.NoError(t, err)
		assert.Equal(t, `<div><p>keep</p></div>`, got)
	})

	t.Run("keeps the document wrapper for full documents", func(t *testing.T) {
		t.Parallel()

		markup := `<html><head></head><body><nav>menu</nav><p>keep</p></body></html>`

		got, err := goquery.NewSelector().Remove(markup, pagewatch.ParseFilterRules([]string{"nav"}))

		require.NoError(t, err)
		assert.Equal(t, `<html><head></head><body><p>keep</p></body></html>`, got)
	})

	t.Run("returns markup unchanged without rules", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewSelector().Remove(`<p>x</p>`, nil)

		require.NoError(t, err)
		assert.Equal(t, `<p>x</p>`, got)
	})

	t.Run("returns EINVALID for malformed selector", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewSelector().Remove(`<p>x</p>`, pagewatch.ParseFilterRules([]string{"p[[["}))

		assert.Equal(t, pagewatch.EINVALID, pagewatch.ErrorCode(err))
	})
}

func TestSelector_ExtractTitle(t *testing.T) {
	t.Parallel()

	t.Run("returns trimmed first title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>
  Product page </title></head><body></body></html>`

		assert.Equal(t, "Product page", goquery.NewSelector().ExtractTitle(html))
	})

	t.Run("returns empty string without title", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.NewSelector().ExtractTitle(`<p>no title</p>`))
	})
}
