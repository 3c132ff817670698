package pagewatch

import (
	"net/http"
	"strings"
)

// FetchResult is the content delivered by a fetcher for one check.
type FetchResult struct {
	// Content is the decoded text of the response body.
	Content string

	// RawContent is the undecoded response body.
	RawContent []byte

	Headers    http.Header
	StatusCode int

	// IsPlaintext is set by fetchers that sniffed a plain text body.
	IsPlaintext bool

	Screenshot []byte
	XPathData  string
}

// Header returns the named header value; lookup is case-insensitive.
func (f *FetchResult) Header(name string) string {
	if f.Headers == nil {
		return ""
	}
	if v := f.Headers.Get(name); v != "" {
		return v
	}
	// Headers built by hand may not use canonical keys.
	for k, v := range f.Headers {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// ContentType returns the lower-cased Content-Type header.
func (f *FetchResult) ContentType() string {
	return strings.ToLower(f.Header("Content-Type"))
}
