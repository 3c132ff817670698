// Package htmltext renders HTML to plain text in reading order using the
// golang.org/x/net/html tokenizer tree.
package htmltext

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/fwojciec/pagewatch"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Renderer implements pagewatch.TextRenderer at compile time.
var _ pagewatch.TextRenderer = (*Renderer)(nil)

// Renderer converts markup to text. Block elements start new lines, list
// items are prefixed with bullets or numbers and whitespace is collapsed
// outside preformatted blocks.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

var feedTitleRe = regexp.MustCompile(`(?i)<(/?)title([\s>])`)

// Render implements pagewatch.TextRenderer.
func (r *Renderer) Render(markup string, opts pagewatch.RenderOptions) (string, error) {
	if opts.IsRSS {
		// Feed item titles would otherwise be dropped as document titles.
		markup = feedTitleRe.ReplaceAllString(markup, "<${1}h1${2}")
	}

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", pagewatch.Errorf(pagewatch.EINVALID, "failed to parse HTML: %v", err)
	}

	w := &writer{anchors: opts.RenderAnchors}
	w.walk(doc)
	return w.String(), nil
}

// writer accumulates rendered lines.
type writer struct {
	anchors bool

	lines []string
	line  strings.Builder
	space bool
	pre   int
	lists []*list
}

type list struct {
	ordered bool
	n       int
}

func (w *writer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		w.element(n)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}
	w.children(n)
}

func (w *writer) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *writer) element(n *html.Node) {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title, atom.Template, atom.Noscript:
		return

	case atom.Br:
		w.breakLine()

	case atom.Hr:
		w.ensureBreak()

	case atom.A:
		href := attr(n, "href")
		if !w.anchors || href == "" {
			w.children(n)
			return
		}
		sub := &writer{}
		sub.children(n)
		label := strings.Join(strings.Fields(sub.String()), " ")
		w.inline("[" + label + "](" + href + ")")

	case atom.Ul, atom.Ol:
		w.paragraph()
		w.lists = append(w.lists, &list{ordered: n.DataAtom == atom.Ol})
		w.children(n)
		w.lists = w.lists[:len(w.lists)-1]
		w.paragraph()

	case atom.Li:
		w.ensureBreak()
		w.inline(w.bullet())
		w.children(n)
		w.ensureBreak()

	case atom.Pre:
		w.paragraph()
		w.pre++
		w.children(n)
		w.pre--
		w.paragraph()

	case atom.Td, atom.Th:
		w.children(n)
		w.space = true

	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Blockquote, atom.Table, atom.Dl:
		w.paragraph()
		w.children(n)
		w.paragraph()

	case atom.Div, atom.Section, atom.Article, atom.Header, atom.Footer,
		atom.Nav, atom.Aside, atom.Main, atom.Form, atom.Tr, atom.Dt, atom.Dd,
		atom.Figure, atom.Figcaption, atom.Address, atom.Details, atom.Summary,
		atom.Fieldset, atom.Caption, atom.Center:
		w.ensureBreak()
		w.children(n)
		w.ensureBreak()

	default:
		w.children(n)
	}
}

func (w *writer) bullet() string {
	if len(w.lists) == 0 {
		return "* "
	}
	l := w.lists[len(w.lists)-1]
	if !l.ordered {
		return "* "
	}
	l.n++
	return strconv.Itoa(l.n) + ". "
}

// text writes character data, collapsing whitespace runs outside
// preformatted blocks.
func (w *writer) text(s string) {
	if w.pre > 0 {
		for i, part := range strings.Split(s, "\n") {
			if i > 0 {
				w.breakLine()
			}
			w.line.WriteString(part)
		}
		return
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			w.space = true
		}
		return
	}
	if startsWithSpace(s) {
		w.space = true
	}
	for _, f := range fields {
		w.inline(f)
		w.space = true
	}
	w.space = endsWithSpace(s)
}

// inline appends s to the current line, preceded by a pending space.
func (w *writer) inline(s string) {
	if w.space && w.line.Len() > 0 && !strings.HasSuffix(w.line.String(), " ") {
		w.line.WriteByte(' ')
	}
	w.space = false
	w.line.WriteString(s)
}

func (w *writer) breakLine() {
	w.lines = append(w.lines, w.line.String())
	w.line.Reset()
	w.space = false
}

func (w *writer) ensureBreak() {
	if w.line.Len() > 0 {
		w.breakLine()
	}
	w.space = false
}

// paragraph ends the current line and leaves a blank line.
func (w *writer) paragraph() {
	w.ensureBreak()
	w.lines = append(w.lines, "")
}

// String returns the rendered text with trailing whitespace removed from
// every line, blank runs collapsed and surrounding blank lines trimmed.
func (w *writer) String() string {
	w.ensureBreak()

	out := make([]string, 0, len(w.lines))
	for _, l := range w.lines {
		l = strings.TrimRightFunc(l, unicode.IsSpace)
		if l == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func startsWithSpace(s string) bool {
	return strings.TrimLeft(s, " \t\n\r\f") != s
}

func endsWithSpace(s string) bool {
	return strings.TrimRight(s, " \t\n\r\f") != s
}
