// Package etree normalizes RSS feeds with github.com/beevik/etree.
package etree

import (
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagewatch"
)

// Ensure FeedNormalizer implements pagewatch.FeedNormalizer at compile time.
var _ pagewatch.FeedNormalizer = (*FeedNormalizer)(nil)

// FeedNormalizer replaces every CDATA section of a feed with the plain text
// rendering of its content, escaped for XML.
type FeedNormalizer struct {
	Renderer pagewatch.TextRenderer
}

// NewFeedNormalizer creates a new FeedNormalizer.
func NewFeedNormalizer(r pagewatch.TextRenderer) *FeedNormalizer {
	return &FeedNormalizer{Renderer: r}
}

// Normalize implements pagewatch.FeedNormalizer. Feeds that do not parse
// as XML are rewritten textually.
func (n *FeedNormalizer) Normalize(feed string, opts pagewatch.RenderOptions) string {
	if !strings.Contains(feed, "<![CDATA[") {
		return feed
	}

	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	// Content arrives decoded; the declared encoding no longer applies.
	doc.ReadSettings.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) {
		return r, nil
	}
	if err := doc.ReadFromString(feed); err != nil {
		return n.normalizeText(feed, opts)
	}

	n.replaceCData(&doc.Element, opts)

	out, err := doc.WriteToString()
	if err != nil {
		return n.normalizeText(feed, opts)
	}
	return out
}

func (n *FeedNormalizer) replaceCData(e *etree.Element, opts pagewatch.RenderOptions) {
	for i, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.Element:
			n.replaceCData(t, opts)
		case *etree.CharData:
			if !t.IsCData() {
				continue
			}
			e.RemoveChildAt(i)
			e.InsertChildAt(i, etree.NewText(n.render(t.Data, opts)))
		}
	}
}

var cdataRe = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

func (n *FeedNormalizer) normalizeText(feed string, opts pagewatch.RenderOptions) string {
	return cdataRe.ReplaceAllStringFunc(feed, func(m string) string {
		data := cdataRe.FindStringSubmatch(m)[1]
		return html.EscapeString(n.render(data, opts))
	})
}

// render converts CDATA content to trimmed text. Content that fails to
// render is kept as is.
func (n *FeedNormalizer) render(data string, opts pagewatch.RenderOptions) string {
	text, err := n.Renderer.Render(data, pagewatch.RenderOptions{RenderAnchors: opts.RenderAnchors})
	if err != nil {
		return strings.TrimSpace(data)
	}
	return strings.TrimSpace(text)
}
