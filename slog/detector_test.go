package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/mock"
	pwslog "github.com/fwojciec/pagewatch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("logs verdict with digest and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ChangeDetector{
			DetectFn: func(context.Context, pagewatch.Watch, pagewatch.Settings, pagewatch.FetchResult, bool) (*pagewatch.Result, error) {
				return &pagewatch.Result{Changed: true, Update: pagewatch.Update{Digest: "abc123"}}, nil
			},
		}

		d := pwslog.NewLoggingDetector(inner, logger)
		result, err := d.Detect(context.Background(),
			pagewatch.Watch{URL: "https://example.com/shop"},
			pagewatch.Settings{},
			pagewatch.FetchResult{Content: "<p>hello</p>"},
			false,
		)

		require.NoError(t, err)
		assert.True(t, result.Changed)
		output := buf.String()
		assert.Contains(t, output, "change detection")
		assert.Contains(t, output, "url=https://example.com/shop")
		assert.Contains(t, output, "bytes=12")
		assert.Contains(t, output, "changed=true")
		assert.Contains(t, output, "digest=abc123")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ChangeDetector{
			DetectFn: func(context.Context, pagewatch.Watch, pagewatch.Settings, pagewatch.FetchResult, bool) (*pagewatch.Result, error) {
				return nil, errors.New("filter failed")
			},
		}

		d := pwslog.NewLoggingDetector(inner, logger)
		_, err := d.Detect(context.Background(), pagewatch.Watch{}, pagewatch.Settings{}, pagewatch.FetchResult{}, false)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "change detection")
		assert.Contains(t, output, "err=\"filter failed\"")
		assert.NotContains(t, output, "changed=")
	})
}
