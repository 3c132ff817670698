package detect

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagewatch"
)

// feedContentTypes are the content types checked for an <rss root.
var feedContentTypes = []string{"application/xml", "application/rss", "text/xml"}

// Classify determines how fetched content is interpreted.
// Source watches disable all interpretation; then a JSON content type wins,
// then XML content types whose first 100 characters open an <rss element,
// then plain text; everything else is HTML.
func Classify(watch *pagewatch.Watch, fetch *pagewatch.FetchResult) pagewatch.ContentKind {
	if watch.IsSourceType() {
		return pagewatch.KindSource
	}

	ctype := fetch.ContentType()
	if strings.Contains(ctype, "application/json") {
		return pagewatch.KindJSON
	}

	for _, t := range feedContentTypes {
		if strings.Contains(ctype, t) && strings.Contains(strings.ToLower(head(fetch.Content, 100)), "<rss") {
			return pagewatch.KindRSS
		}
	}

	if IsPlaintext(fetch) {
		return pagewatch.KindPlaintext
	}
	return pagewatch.KindHTML
}

// IsPlaintext reports whether the fetch is plain text by header or sniffing.
func IsPlaintext(fetch *pagewatch.FetchResult) bool {
	return fetch.IsPlaintext || strings.Contains(fetch.ContentType(), "text/plain")
}

// IsPDF reports whether the fetched body is a PDF document that must be
// converted to markup first.
func IsPDF(watch *pagewatch.Watch, fetch *pagewatch.FetchResult) bool {
	if watch.IsPDF || strings.Contains(fetch.ContentType(), "application/pdf") {
		return true
	}
	if fetch.Header("Content-Disposition") == "" {
		return false
	}
	raw := fetch.RawContent
	if len(raw) > 10 {
		raw = raw[:10]
	}
	return bytes.Contains(raw, []byte("%PDF-1")) || strings.Contains(head(fetch.Content, 10), "%PDF-1")
}

// head returns the first n characters of s.
func head(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
