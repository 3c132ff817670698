package detect_test

import (
	"net/http"
	"testing"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/detect"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		ctype   string
		content string
		sniffed bool
		want    pagewatch.ContentKind
	}{
		{name: "html", ctype: "text/html", content: "<html></html>", want: pagewatch.KindHTML},
		{name: "missing content type", content: "<p>x</p>", want: pagewatch.KindHTML},
		{name: "json", ctype: "application/json; charset=utf-8", content: "{}", want: pagewatch.KindJSON},
		{name: "rss", ctype: "application/rss+xml", content: `<?xml version="1.0"?><rss version="2.0">`, want: pagewatch.KindRSS},
		{name: "xml without rss root", ctype: "text/xml", content: "<feed></feed>", want: pagewatch.KindHTML},
		{name: "plain text header", ctype: "text/plain", content: "hello", want: pagewatch.KindPlaintext},
		{name: "sniffed plain text", ctype: "text/html", content: "hello", sniffed: true, want: pagewatch.KindPlaintext},
		{name: "source wins over json", url: "source:https://example.com/api", ctype: "application/json", content: "{}", want: pagewatch.KindSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			watch := pagewatch.Watch{URL: tt.url}
			fetch := pagewatch.FetchResult{Content: tt.content, IsPlaintext: tt.sniffed, Headers: http.Header{}}
			if tt.ctype != "" {
				fetch.Headers.Set("Content-Type", tt.ctype)
			}

			assert.Equal(t, tt.want, detect.Classify(&watch, &fetch))
		})
	}
}

func TestIsPDF(t *testing.T) {
	t.Parallel()

	t.Run("by content type", func(t *testing.T) {
		t.Parallel()

		fetch := pagewatch.FetchResult{Headers: http.Header{"Content-Type": {"Application/PDF"}}}

		assert.True(t, detect.IsPDF(&pagewatch.Watch{}, &fetch))
	})

	t.Run("forced by the watch", func(t *testing.T) {
		t.Parallel()

		assert.True(t, detect.IsPDF(&pagewatch.Watch{IsPDF: true}, &pagewatch.FetchResult{}))
	})

	t.Run("by magic bytes of an attachment", func(t *testing.T) {
		t.Parallel()

		fetch := pagewatch.FetchResult{
			RawContent: []byte("%PDF-1.5\n..."),
			Headers:    http.Header{"Content-Disposition": {"attachment"}},
		}

		assert.True(t, detect.IsPDF(&pagewatch.Watch{}, &fetch))
	})

	t.Run("not by magic bytes alone", func(t *testing.T) {
		t.Parallel()

		fetch := pagewatch.FetchResult{RawContent: []byte("%PDF-1.5\n...")}

		assert.False(t, detect.IsPDF(&pagewatch.Watch{}, &fetch))
	})

	t.Run("not for attachments without magic bytes", func(t *testing.T) {
		t.Parallel()

		fetch := pagewatch.FetchResult{
			RawContent: []byte("PK\x03\x04 zip data"),
			Headers:    http.Header{"Content-Disposition": {"attachment"}},
		}

		assert.False(t, detect.IsPDF(&pagewatch.Watch{}, &fetch))
	})
}

func TestCanonicalJSON(t *testing.T) {
	t.Parallel()

	t.Run("sorts keys recursively", func(t *testing.T) {
		t.Parallel()

		got := detect.CanonicalJSON(`{"b": {"d": 1, "c": [2, 1]}, "a": "x"}`)

		assert.Equal(t, `{"a":"x","b":{"c":[2,1],"d":1}}`, got)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		once := detect.CanonicalJSON(`{"z": 1.50, "y": "<b>"}`)

		assert.Equal(t, once, detect.CanonicalJSON(once))
		assert.Equal(t, `{"y":"<b>","z":1.50}`, once)
	})

	t.Run("leaves invalid JSON unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, `{"a": 1`, detect.CanonicalJSON(`{"a": 1`))
		assert.Equal(t, `{"a":1} trailing`, detect.CanonicalJSON(`{"a":1} trailing`))
	})
}

func TestCleanObfuscation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<span>$90.74</span>", detect.CleanObfuscation("<span>$<!-- -->90<!-- -->.<!--  -->74</span>"))
	assert.Equal(t, "<!--keep-->", detect.CleanObfuscation("<!--keep-->"))
	assert.Empty(t, detect.CleanObfuscation(""))
}

func TestInjectDocumentMarker(t *testing.T) {
	t.Parallel()

	got := detect.InjectDocumentMarker("<html><body><p>x</p></body></html>", []byte(""))

	assert.Equal(t,
		"<html><body><p>x</p><p>Document checksum - D41D8CD98F00B204E9800998ECF8427E Filesize - 0 bytes</p></body></html>",
		got)
}
