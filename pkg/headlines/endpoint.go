package headlines

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
)

// Endpoint identifies which of the three provider queries a request uses.
type Endpoint int

const (
	EndpointTopHeadlines Endpoint = iota
	EndpointCategory
	EndpointSearch
)

func (e Endpoint) String() string {
	switch e {
	case EndpointTopHeadlines:
		return "top-headlines"
	case EndpointCategory:
		return "category"
	case EndpointSearch:
		return "search"
	default:
		return "unknown"
	}
}

// SelectEndpoint picks the endpoint for a query state.
// A non-empty query wins over a category, which wins over the unfiltered default.
func SelectEndpoint(state domain.QueryState) Endpoint {
	state = state.Normalize()
	switch {
	case state.Query != "":
		return EndpointSearch
	case state.Category != domain.CategoryNone:
		return EndpointCategory
	default:
		return EndpointTopHeadlines
	}
}

// BuildURL returns the selected endpoint and the request URL for state.
// Page and page size are always present in the query string.
func BuildURL(p Profile, state domain.QueryState) (Endpoint, string, error) {
	state = state.Normalize()
	endpoint := SelectEndpoint(state)

	q := url.Values{}
	var path string
	switch endpoint {
	case EndpointSearch:
		path = p.SearchPath
		q.Set("q", state.Query)
	case EndpointCategory:
		path = p.TopHeadlinesPath
		q.Set("country", p.Country)
		q.Set("category", string(state.Category))
	default:
		path = p.TopHeadlinesPath
		q.Set("country", p.Country)
	}
	q.Set("page", strconv.Itoa(state.Page))
	q.Set("pageSize", strconv.Itoa(state.PageSize))

	u, err := url.Parse(p.BaseURL + path)
	if err != nil {
		return endpoint, "", fmt.Errorf("parse %s url: %w", endpoint, err)
	}
	u.RawQuery = q.Encode()
	return endpoint, u.String(), nil
}
