package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/samvad-headlines/internal/config"
	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/pkg/headlines"
)

// fakeProvider serves NewsAPI-shaped pages and records request queries.
type fakeProvider struct {
	mu      sync.Mutex
	queries []string
	status  int
}

func (p *fakeProvider) handler(imageURL func() string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".jpg") {
			http.NotFound(w, r)
			return
		}
		p.mu.Lock()
		p.queries = append(p.queries, r.URL.Path+"?"+r.URL.RawQuery)
		status := p.status
		p.mu.Unlock()

		if r.Header.Get("X-Api-Key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"status":"error","code":"unexpectedError","message":"down"}`))
			return
		}

		page := r.URL.Query().Get("page")
		fmt.Fprintf(w, `{"status":"ok","totalResults":20,"articles":[
			{"title":"Story on page %[1]s","description":"desc","url":"https://news.example.com/%[1]s","urlToImage":%[2]q,"publishedAt":"2024-05-06T07:08:09Z","source":{"name":"Wire"}},
			{"title":"[Removed]","url":"https://removed.com"}
		]}`, page, imageURL())
	})
}

func (p *fakeProvider) all() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queries...)
}

func newTestReader(t *testing.T, provider *fakeProvider) *Reader {
	t.Helper()
	var srvURL string
	srv := httptest.NewServer(provider.handler(func() string { return srvURL + "/missing.jpg" }))
	t.Cleanup(srv.Close)
	srvURL = srv.URL

	r, err := NewReader(&config.Config{
		APIKey:         "test-key",
		BaseURL:        srv.URL,
		Country:        "us",
		PageSize:       16,
		RequestTimeout: 2 * time.Second,
		ImageTimeout:   2 * time.Second,
		PreloadImages:  true,
	}, nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return r
}

func TestFetchOnceRendersTable(t *testing.T) {
	provider := &fakeProvider{}
	r := newTestReader(t, provider)

	var out bytes.Buffer
	err := r.FetchOnce(context.Background(), domain.QueryState{Query: "election", Category: domain.CategoryBusiness, Page: 2}, &out)
	if err != nil {
		t.Fatalf("FetchOnce: %v", err)
	}

	queries := provider.all()
	if len(queries) != 1 {
		t.Fatalf("expected a single provider request, got %v", queries)
	}
	if !strings.HasPrefix(queries[0], "/everything?") || !strings.Contains(queries[0], "page=2") || !strings.Contains(queries[0], "q=election") {
		t.Fatalf("unexpected request %q", queries[0])
	}
	if !strings.Contains(out.String(), "Story on page 2") {
		t.Fatalf("table missing article: %s", out.String())
	}
	if strings.Contains(out.String(), "removed.com") {
		t.Fatalf("removed article rendered: %s", out.String())
	}
}

func TestFetchOnceReportsFailure(t *testing.T) {
	provider := &fakeProvider{status: http.StatusInternalServerError}
	r := newTestReader(t, provider)

	var out bytes.Buffer
	err := r.FetchOnce(context.Background(), domain.QueryState{}, &out)
	if !errors.Is(err, headlines.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
	if !strings.Contains(out.String(), "Could not load news") {
		t.Fatalf("expected failure message, got %s", out.String())
	}
}

func TestBrowseRunsCommands(t *testing.T) {
	provider := &fakeProvider{}
	r := newTestReader(t, provider)

	in := strings.NewReader("next\nnext\nopen 1\ncategory sports\ncategory bogus\nsearch mars\nquit\nnext\n")
	var out bytes.Buffer
	if err := r.Browse(context.Background(), in, &out); err != nil {
		t.Fatalf("Browse: %v", err)
	}

	queries := provider.all()
	want := []string{
		"/top-headlines?country=us&page=1&pageSize=16",
		"/top-headlines?country=us&page=2&pageSize=16",
		"/top-headlines?category=sports&country=us&page=1&pageSize=16",
		"/everything?page=1&pageSize=16&q=mars",
	}
	if len(queries) != len(want) {
		t.Fatalf("expected %d requests, got %v", len(want), queries)
	}
	for i := range want {
		if queries[i] != want[i] {
			t.Fatalf("request %d = %q, want %q", i, queries[i], want[i])
		}
	}

	text := out.String()
	for _, s := range []string{
		"already on the last page",
		"https://news.example.com/2",
		`unknown category "bogus"`,
		`Search: "mars"`,
		"[no image]",
	} {
		if !strings.Contains(text, s) {
			t.Fatalf("output missing %q:\n%s", s, text)
		}
	}
}

func TestSplitCommand(t *testing.T) {
	cmd, arg := splitCommand("  SEARCH   climate change ")
	if cmd != "search" || arg != "climate change" {
		t.Fatalf("splitCommand = %q %q", cmd, arg)
	}
}
