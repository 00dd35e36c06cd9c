package headlines

import (
	"net/url"
	"testing"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
)

func TestSelectEndpointPriority(t *testing.T) {
	cases := []struct {
		name  string
		state domain.QueryState
		want  Endpoint
	}{
		{name: "default", state: domain.QueryState{}, want: EndpointTopHeadlines},
		{name: "category only", state: domain.QueryState{Category: domain.CategorySports}, want: EndpointCategory},
		{name: "query only", state: domain.QueryState{Query: "mars"}, want: EndpointSearch},
		{name: "query beats category", state: domain.QueryState{Query: "election", Category: domain.CategoryBusiness}, want: EndpointSearch},
		{name: "blank query falls through", state: domain.QueryState{Query: "   ", Category: domain.CategoryHealth}, want: EndpointCategory},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectEndpoint(tc.state); got != tc.want {
				t.Fatalf("SelectEndpoint = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestBuildURLDefaultPage(t *testing.T) {
	endpoint, raw, err := BuildURL(DefaultProfile(), domain.QueryState{Page: 1, PageSize: domain.DefaultPageSize})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if endpoint != EndpointTopHeadlines {
		t.Fatalf("unexpected endpoint %s", endpoint)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Path != "/v2/top-headlines" {
		t.Fatalf("unexpected path %q", u.Path)
	}
	q := u.Query()
	if q.Get("country") != "us" || q.Get("page") != "1" || q.Get("pageSize") != "16" {
		t.Fatalf("unexpected query %v", q)
	}
	if q.Has("q") || q.Has("category") {
		t.Fatalf("default endpoint must not carry filters: %v", q)
	}
}

func TestBuildURLQueryWinsOverCategory(t *testing.T) {
	state := domain.QueryState{Query: "election", Category: domain.CategoryBusiness, Page: 2}
	endpoint, raw, err := BuildURL(DefaultProfile(), state)
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if endpoint != EndpointSearch {
		t.Fatalf("unexpected endpoint %s", endpoint)
	}

	u, _ := url.Parse(raw)
	q := u.Query()
	if u.Path != "/v2/everything" {
		t.Fatalf("unexpected path %q", u.Path)
	}
	if q.Get("q") != "election" || q.Get("page") != "2" || q.Get("pageSize") != "16" {
		t.Fatalf("unexpected query %v", q)
	}
	if q.Has("category") || q.Has("country") {
		t.Fatalf("search endpoint must not carry category params: %v", q)
	}
}

func TestBuildURLCategory(t *testing.T) {
	_, raw, err := BuildURL(DefaultProfile(), domain.QueryState{Category: domain.CategoryScience, Page: 3, PageSize: 8})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	u, _ := url.Parse(raw)
	q := u.Query()
	if q.Get("category") != "science" || q.Get("country") != "us" || q.Get("page") != "3" || q.Get("pageSize") != "8" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestBuildURLEscapesQueryAndClampsPage(t *testing.T) {
	_, raw, err := BuildURL(DefaultProfile(), domain.QueryState{Query: "a&b c", Page: -4})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	u, _ := url.Parse(raw)
	if got := u.Query().Get("q"); got != "a&b c" {
		t.Fatalf("query not round-tripped, got %q", got)
	}
	if got := u.Query().Get("page"); got != "1" {
		t.Fatalf("expected page clamped to 1, got %q", got)
	}
}
