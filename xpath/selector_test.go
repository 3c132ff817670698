package xpath_test

import (
	"testing"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/xpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title>T</title></head><body>
<ul><li class="price">10</li><li class="price">20</li></ul>
<a href="/next">next</a>
</body></html>`

func TestSelector_Select(t *testing.T) {
	t.Parallel()

	t.Run("serializes selected elements", func(t *testing.T) {
		t.Parallel()

		got, err := xpath.NewSelector().Select(page, pagewatch.ParseFilterRule("//li"), pagewatch.SelectOptions{})

		require.NoError(t, err)
		assert.Equal(t, `<li class="price">10</li><li class="price">20</li>`, got)
	})

	t.Run("separates inline results with line breaks when pretty lines is set", func(t *testing.T) {
		t.Parallel()

		got, err := xpath.NewSelector().Select(page, pagewatch.ParseFilterRule("//li/text()"), pagewatch.SelectOptions{PrettyLines: true})

		require.NoError(t, err)
		assert.Equal(t, `10<br>20`, got)
	})

	t.Run("returns attribute values", func(t *testing.T) {
		t.Parallel()

		got, err := xpath.NewSelector().Select(page, pagewatch.ParseFilterRule("xpath://a/@href"), pagewatch.SelectOptions{})

		require.NoError(t, err)
		assert.Equal(t, "/next", got)
	})

	t.Run("formats numeric results", func(t *testing.T) {
		t.Parallel()

		got, err := xpath.NewSelector().Select(page, pagewatch.ParseFilterRule("xpath:sum(//li)"), pagewatch.SelectOptions{})

		require.NoError(t, err)
		assert.Equal(t, "30", got)
	})

	t.Run("formats boolean results", func(t *testing.T) {
		t.Parallel()

		got, err := xpath.NewSelector().Select(page, pagewatch.ParseFilterRule("xpath:count(//li) = 2"), pagewatch.SelectOptions{})

		require.NoError(t, err)
		assert.Equal(t, "true", got)
	})

	t.Run("rejects scalar results for xpath1 rules", func(t *testing.T) {
		t.Parallel()

		_, err := xpath.NewSelector().Select(page, pagewatch.ParseFilterRule("xpath1:count(//li)"), pagewatch.SelectOptions{})

		require.Error(t, err)
		assert.Equal(t, pagewatch.EINVALID, pagewatch.ErrorCode(err))
	})

	t.Run("selects nodes for xpath1 rules", func(t *testing.T) {
		t.Parallel()

		got, err := xpath.NewSelector().Select(page, pagewatch.ParseFilterRule("xpath1://title/text()"), pagewatch.SelectOptions{})

		require.NoError(t, err)
		assert.Equal(t, "T", got)
	})

	t.Run("queries feeds as XML", func(t *testing.T) {
		t.Parallel()

		feed := `<?xml version="1.0"?><rss><channel><item><title>First</title></item><item><title>Second</title></item></channel></rss>`

		got, err := xpath.NewSelector().Select(feed, pagewatch.ParseFilterRule("//item/title/text()"), pagewatch.SelectOptions{IsRSS: true, PrettyLines: true})

		require.NoError(t, err)
		assert.Equal(t, "First<br>Second", got)
	})

	t.Run("returns EINVALID for malformed expression", func(t *testing.T) {
		t.Parallel()

		_, err := xpath.NewSelector().Select(page, pagewatch.ParseFilterRule("//li[@"), pagewatch.SelectOptions{})

		require.Error(t, err)
		assert.Equal(t, pagewatch.EINVALID, pagewatch.ErrorCode(err))
	})
}

func TestSelector_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes selected elements from a fragment", func(t *testing.T) {
		t.Parallel()

		markup := `<div><span class="ad">buy</span><p>keep</p></div>`

		got, err := xpath.NewSelector().Remove(markup, pagewatch.ParseFilterRules([]string{`//span[@class="ad"]`}))

		require.NoError(t, err)
		assert.Equal(t, `<div><p>keep</p></div>`, got)
	})

	t.Run("keeps the document wrapper for full documents", func(t *testing.T) {
		t.Parallel()

		markup := `<html><head></head><body><nav>menu</nav><p>keep</p></body></html>`

		got, err := xpath.NewSelector().Remove(markup, pagewatch.ParseFilterRules([]string{"xpath://nav"}))

		require.NoError(t, err)
		assert.Equal(t, `<html><head></head><body><p>keep</p></body></html>`, got)
	})
}
