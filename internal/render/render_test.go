package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/internal/preload"
	"github.com/samvad-hq/samvad-headlines/internal/reader"
	"github.com/samvad-hq/samvad-headlines/pkg/headlines"
)

func defaultFilter(t *testing.T) *Filter {
	t.Helper()
	f, err := NewFilter([]string{headlines.DefaultRemovedMarker})
	require.NoError(t, err)
	return f
}

func TestFilterExcludesIncompleteAndRemoved(t *testing.T) {
	f := defaultFilter(t)
	articles := []domain.Article{
		{Title: "keep", URL: "https://news.example.com/a"},
		{Title: "", URL: "https://news.example.com/b"},
		{Title: "no link", URL: "  "},
		{Title: "[Removed]", URL: "https://removed.com"},
		{Title: "removed www", URL: "https://www.removed.com/"},
		{Title: "keep too", URL: "https://removed.com.example.org/story"},
	}

	got := f.Apply(articles)
	require.Len(t, got, 2)
	assert.Equal(t, "keep", got[0].Title)
	assert.Equal(t, "keep too", got[1].Title)
}

func TestNewFilterRejectsBadPattern(t *testing.T) {
	_, err := NewFilter([]string{"("})
	assert.Error(t, err)
}

func TestNilFilterStillRequiresTitleAndURL(t *testing.T) {
	var f *Filter
	assert.False(t, f.Keep(domain.Article{URL: "https://a"}))
	assert.True(t, f.Keep(domain.Article{Title: "t", URL: "https://a"}))
}

func TestFormatPublished(t *testing.T) {
	ts := time.Date(2024, 5, 6, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "Monday, May 6, 2024 3:04 PM", FormatPublished(ts, time.UTC))
	assert.Equal(t, "", FormatPublished(time.Time{}, time.UTC))
}

func TestErrorTextCollapsesCauses(t *testing.T) {
	assert.Equal(t, "", ErrorText(nil))
	assert.Equal(t, FailureMessage, ErrorText(&headlines.FetchError{Status: 500, Err: errors.New("x")}))
	assert.Equal(t, FailureMessage, ErrorText(errors.New("anything")))
}

func readySnapshot() reader.Snapshot {
	return reader.Snapshot{
		State: reader.StateReady,
		Query: domain.QueryState{Query: "election", Page: 2, PageSize: 16},
		Page: domain.ResultPage{
			Articles: []domain.Article{
				{Title: "Votes counted", Description: "Results are in.", URL: "https://news.example.com/votes",
					ImageURL: "https://img.example.com/v.jpg", Source: "Wire",
					PublishedAt: time.Date(2024, 5, 6, 15, 4, 0, 0, time.UTC)},
				{Title: "Plain story", URL: "https://news.example.com/plain"},
				{Title: "[Removed]", URL: "https://removed.com"},
			},
			TotalResults: 40,
			TotalPages:   3,
			Page:         2,
			PageSize:     16,
		},
		Images: preload.Result{
			"https://img.example.com/v.jpg": {URL: "https://img.example.com/v.jpg", Loaded: true, Width: 640, Height: 480, Format: "jpeg"},
		},
	}
}

func TestPageRendersVisibleArticles(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, defaultFilter(t)).WithWidth(100).WithLocation(time.UTC)

	require.NoError(t, r.Page(readySnapshot()))
	out := buf.String()

	assert.Contains(t, out, "Votes counted")
	assert.Contains(t, out, "Monday, May 6, 2024 3:04 PM")
	assert.Contains(t, out, "640x480 jpeg")
	assert.Contains(t, out, "Plain story")
	assert.Contains(t, out, placeholderText)
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, `Search: "election"`)
	assert.NotContains(t, out, "[Removed]")
}

func TestPageRendersFailure(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, defaultFilter(t)).WithWidth(80)

	snap := reader.Snapshot{
		State: reader.StateFailed,
		Query: domain.QueryState{Page: 1, PageSize: 16},
		Err:   &headlines.FetchError{Status: 401, Err: errors.New("apiKeyInvalid")},
	}
	require.NoError(t, r.Page(snap))
	out := buf.String()

	assert.Contains(t, out, FailureMessage)
	assert.NotContains(t, out, "apiKeyInvalid")
	assert.Contains(t, out, "Page 1")
}

func TestTableListsVisibleArticles(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, defaultFilter(t)).WithLocation(time.UTC)

	require.NoError(t, r.Table(readySnapshot()))
	out := buf.String()

	assert.Contains(t, out, "Votes counted")
	assert.Contains(t, out, "https://news.example.com/plain")
	assert.NotContains(t, out, "removed.com")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "Page 2 of 3"))
}
