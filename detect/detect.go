// Package detect implements the content-to-signal pipeline. It classifies
// fetched content, extracts the filtered text, normalizes it and decides
// whether it changed since the previous check.
package detect

import (
	"context"
	"slices"
	"strings"

	"github.com/fwojciec/pagewatch"
)

// Ensure Detector implements pagewatch.ChangeDetector at compile time.
var _ pagewatch.ChangeDetector = (*Detector)(nil)

// Detector runs the change-detection pipeline using injected query,
// rendering and conversion capabilities. It holds no per-check state and is
// safe for concurrent use when its collaborators are.
type Detector struct {
	CSS       pagewatch.Selector
	XPath     pagewatch.Selector
	JSON      pagewatch.JSONQuerier
	Titles    pagewatch.TitleExtractor
	Renderer  pagewatch.TextRenderer
	Feeds     pagewatch.FeedNormalizer
	Differ    pagewatch.Differ
	Converter pagewatch.DocumentConverter
}

// Detect implements pagewatch.ChangeDetector.
func (d *Detector) Detect(
	ctx context.Context,
	watch pagewatch.Watch,
	settings pagewatch.Settings,
	fetch pagewatch.FetchResult,
	skipUnchanged bool,
) (*pagewatch.Result, error) {
	content := fetch.Content

	upd := pagewatch.Update{
		ContentType:       fetch.ContentType(),
		PrefilterChecksum: ComputeHash(content),
	}
	if skipUnchanged && upd.PrefilterChecksum == watch.PrefilterChecksum {
		return nil, pagewatch.ErrChecksumUnchanged
	}

	kind := Classify(&watch, &fetch)
	if kind == pagewatch.KindRSS {
		content = d.Feeds.Normalize(content, pagewatch.RenderOptions{
			RenderAnchors: settings.RenderAnchorTagContent,
		})
	}

	if IsPDF(&watch, &fetch) {
		markup, err := d.convertDocument(ctx, fetch.RawContent)
		if err != nil {
			return nil, err
		}
		content = markup
	}

	include := watch.AllIncludeFilters()
	if kind == pagewatch.KindJSON {
		if len(include) == 0 {
			include = append(include, pagewatch.ParseFilterRule("json:$"))
		}
		content = CanonicalJSON(content)
	}

	ex, err := d.extract(content, kind, IsPlaintext(&fetch), include, watch.AllSubtractiveSelectors(settings), settings)
	if err != nil {
		return nil, err
	}
	upd.HasLDJSONPrice = ex.hasLDJSONPrice

	text := ex.text
	upd.PrefilterText = text
	stored := text

	if watch.DiffFilter.Special() && watch.HasHistory {
		diff := d.Differ.Diff(watch.PrefilterText, text, watch.DiffFilter)
		if diff == "" && text != "" {
			// Nothing of the selected change kinds happened. Keep the new
			// baseline and skip the verdict stages.
			return &pagewatch.Result{
				Update: pagewatch.Update{
					Digest:        Digest(text, true),
					PrefilterText: text,
				},
				Text: []byte(text),
			}, nil
		}
		text = diff
		stored = diff
	}

	if kind != pagewatch.KindJSON && !settings.EmptyPagesAreChange && strings.TrimSpace(text) == "" {
		return nil, &pagewatch.NoTextError{
			StatusCode: fetch.StatusCode,
			HasFilters: len(include) > 0,
		}
	}
	upd.StatusCode = fetch.StatusCode

	text, err = StripIgnoreText(text, slices.Concat(watch.IgnoreText, settings.GlobalIgnoreText))
	if err != nil {
		return nil, err
	}

	if len(watch.ExtractText) > 0 {
		text, err = ExtractText(text, watch.ExtractText)
		if err != nil {
			return nil, err
		}
		stored = text
	}

	upd.Digest = Digest(text, settings.IgnoreWhitespace)

	blocked, err := Blocked(text, watch.TriggerText, watch.BlockText)
	if err != nil {
		return nil, err
	}
	changed := upd.Digest != watch.PreviousDigest && !blocked

	if ex.rendered && watch.Title == "" && (settings.ExtractTitleAsTitle || watch.ExtractTitle) {
		if title := d.Titles.ExtractTitle(ex.document); title != "" {
			upd.Title = &title
		}
	}

	if changed && watch.CheckUniqueLines && watch.History != nil {
		if !watch.History.HasUniqueLines(pagewatch.SplitLines(text)) {
			changed = false
		}
	}

	return &pagewatch.Result{
		Changed: changed,
		Update:  upd,
		Text:    []byte(stored),
	}, nil
}
