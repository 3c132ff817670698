package pagewatch_test

import (
	"testing"

	"github.com/fwojciec/pagewatch"
	"github.com/stretchr/testify/assert"
)

func TestDiffFilter_Special(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter pagewatch.DiffFilter
		want   bool
	}{
		{name: "default", filter: pagewatch.DefaultDiffFilter(), want: false},
		{name: "none selected", filter: pagewatch.DiffFilter{}, want: false},
		{name: "added only", filter: pagewatch.DiffFilter{Added: true}, want: true},
		{name: "removed and replaced", filter: pagewatch.DiffFilter{Removed: true, Replaced: true}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.filter.Special())
		})
	}
}

func TestWatch_IsSourceType(t *testing.T) {
	t.Parallel()

	assert.True(t, (&pagewatch.Watch{URL: "source:https://example.com"}).IsSourceType())
	assert.False(t, (&pagewatch.Watch{URL: "https://example.com/source:"}).IsSourceType())
}

func TestWatch_AllIncludeFilters(t *testing.T) {
	t.Parallel()

	t.Run("orders watch rules before tag rules", func(t *testing.T) {
		t.Parallel()

		w := pagewatch.Watch{
			IncludeFilters: pagewatch.ParseFilterRules([]string{"#a"}),
			Tags: []pagewatch.Tag{
				{IncludeFilters: pagewatch.ParseFilterRules([]string{"#b"})},
				{IncludeFilters: pagewatch.ParseFilterRules([]string{"#c"})},
			},
		}

		assert.Equal(t, []string{"#a", "#b", "#c"}, pagewatch.RawFilterRules(w.AllIncludeFilters()))
	})

	t.Run("appends price rules when tracking structured data", func(t *testing.T) {
		t.Parallel()

		w := pagewatch.Watch{TrackLDJSONPrice: true}

		assert.Equal(t, []string{"json:$..offers", "json:$..Offers"}, pagewatch.RawFilterRules(w.AllIncludeFilters()))
	})

	t.Run("is empty without rules", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, (&pagewatch.Watch{}).AllIncludeFilters())
	})
}

func TestWatch_AllSubtractiveSelectors(t *testing.T) {
	t.Parallel()

	w := pagewatch.Watch{
		SubtractiveSelectors: pagewatch.ParseFilterRules([]string{"#watch"}),
		Tags:                 []pagewatch.Tag{{SubtractiveSelectors: pagewatch.ParseFilterRules([]string{"#tag"})}},
	}
	settings := pagewatch.Settings{GlobalSubtractiveSelectors: pagewatch.ParseFilterRules([]string{"#global"})}

	got := w.AllSubtractiveSelectors(settings)

	assert.Equal(t, []string{"#tag", "#watch", "#global"}, pagewatch.RawFilterRules(got))
}

func TestWatchState_ApplyTo(t *testing.T) {
	t.Parallel()

	t.Run("copies the recorded state", func(t *testing.T) {
		t.Parallel()

		s := pagewatch.WatchState{
			ID:                "id-1",
			Title:             "Recorded",
			Digest:            "digest",
			PrefilterChecksum: "sum",
			PrefilterText:     "text",
			Snapshots:         2,
		}
		var w pagewatch.Watch

		s.ApplyTo(&w)

		assert.Equal(t, "id-1", w.ID)
		assert.Equal(t, "digest", w.PreviousDigest)
		assert.Equal(t, "sum", w.PrefilterChecksum)
		assert.Equal(t, "text", w.PrefilterText)
		assert.True(t, w.HasHistory)
		assert.Equal(t, "Recorded", w.Title)
	})

	t.Run("keeps a configured title", func(t *testing.T) {
		t.Parallel()

		s := pagewatch.WatchState{Title: "Recorded"}
		w := pagewatch.Watch{Title: "Configured"}

		s.ApplyTo(&w)

		assert.Equal(t, "Configured", w.Title)
		assert.False(t, w.HasHistory)
	})
}

func TestWatchState_Validate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pagewatch.EINVALID, pagewatch.ErrorCode((&pagewatch.WatchState{URL: "u"}).Validate()))
	assert.Equal(t, pagewatch.EINVALID, pagewatch.ErrorCode((&pagewatch.WatchState{Name: "n"}).Validate()))
	assert.NoError(t, (&pagewatch.WatchState{Name: "n", URL: "u"}).Validate())
}
