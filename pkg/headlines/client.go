package headlines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/pkg/httpclient"
)

// HTTPClient aliases the shared httpclient.Client interface for clarity within headlines.
type HTTPClient = httpclient.Client

// Fetcher loads one page of results for a query state.
type Fetcher interface {
	FetchPage(ctx context.Context, state domain.QueryState) (domain.ResultPage, error)
}

// DefaultHTTPClient returns a resty-backed client for headline requests.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(15 * time.Second) }

// Client fetches result pages from a headlines provider.
type Client struct {
	client  HTTPClient
	profile Profile
	apiKey  string
}

// NewClient builds a Client. The API key is required because the provider rejects anonymous calls.
func NewClient(client HTTPClient, profile Profile, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("headlines api key is empty")
	}
	if client == nil {
		client = DefaultHTTPClient()
	}
	profile = sanitizeProfile(profile)
	if err := validateProfile(profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return &Client{client: client, profile: profile, apiKey: apiKey}, nil
}

// Profile returns the sanitized profile in use.
func (c *Client) Profile() Profile { return c.profile }

// FetchPage issues the request selected for state and normalizes the response.
// Every failure is returned as a *FetchError.
func (c *Client) FetchPage(ctx context.Context, state domain.QueryState) (domain.ResultPage, error) {
	if c == nil || c.client == nil {
		return domain.ResultPage{}, &FetchError{Err: errors.New("headlines client is not initialized")}
	}

	state = c.normalize(state)
	endpoint, reqURL, err := BuildURL(c.profile, state)
	if err != nil {
		return domain.ResultPage{}, &FetchError{Endpoint: endpoint, Err: err}
	}

	resp, err := c.client.Get(ctx, reqURL, Headers(c.profile, c.apiKey))
	if err != nil {
		return domain.ResultPage{}, &FetchError{Endpoint: endpoint, Err: fmt.Errorf("http get: %w", err)}
	}

	body := resp.Body()
	if status := resp.StatusCode(); status < 200 || status > 299 {
		return domain.ResultPage{}, &FetchError{
			Endpoint: endpoint,
			Status:   status,
			Err:      errors.New(providerError(body)),
		}
	}

	decoded, err := decodeResponse(body)
	if err != nil {
		return domain.ResultPage{}, &FetchError{Endpoint: endpoint, Status: resp.StatusCode(), Err: err}
	}

	total := *decoded.TotalResults
	return domain.ResultPage{
		Articles:     buildArticles(decoded.Articles),
		TotalResults: total,
		TotalPages:   domain.TotalPages(total, state.PageSize),
		Page:         state.Page,
		PageSize:     state.PageSize,
	}, nil
}

func (c *Client) normalize(state domain.QueryState) domain.QueryState {
	if state.PageSize <= 0 && c.profile.PageSize > 0 {
		state.PageSize = c.profile.PageSize
	}
	return state.Normalize()
}
