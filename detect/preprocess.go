package detect

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fwojciec/pagewatch"
)

// CanonicalJSON re-serializes JSON with object keys sorted so that
// reordered documents compare equal. Content that is not a single valid
// JSON value is returned unchanged; it may be a partial snippet.
func CanonicalJSON(content string) string {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return content
	}
	if _, err := dec.Token(); err != io.EOF {
		return content
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return content
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// emptyCommentRe matches comments used to split text into fragments that
// render with spurious spacing, e.g. <span>$<!-- -->90<!-- -->.<!-- -->74</span>.
var emptyCommentRe = regexp.MustCompile(`<!--\s+-->`)

// CleanObfuscation undoes known markup obfuscation patterns.
func CleanObfuscation(content string) string {
	if content == "" {
		return content
	}
	return emptyCommentRe.ReplaceAllString(content, "")
}

// InjectDocumentMarker adds the checksum and size of the raw document before
// the closing body tag, so that changes invisible in the text (such as
// embedded images) still change the signal.
func InjectDocumentMarker(markup string, raw []byte) string {
	sum := md5.Sum(raw)
	marker := fmt.Sprintf("<p>Document checksum - %s Filesize - %d bytes</p>",
		strings.ToUpper(hex.EncodeToString(sum[:])), len(raw))
	return strings.ReplaceAll(markup, "</body>", marker+"</body>")
}

func (d *Detector) convertDocument(ctx context.Context, raw []byte) (string, error) {
	if d.Converter == nil {
		return "", pagewatch.Errorf(pagewatch.EINTERNAL, "no document converter configured")
	}
	markup, err := d.Converter.Convert(ctx, raw)
	if err != nil {
		return "", err
	}
	return InjectDocumentMarker(markup, raw), nil
}
