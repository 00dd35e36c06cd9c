package headlines

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
)

type apiResponse struct {
	Status       string       `json:"status"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	TotalResults *int         `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

func decodeResponse(body []byte) (apiResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return apiResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if s := strings.ToLower(strings.TrimSpace(resp.Status)); s != "" && s != "ok" {
		return apiResponse{}, fmt.Errorf("provider status %q: %s", resp.Status, providerMessage(resp))
	}
	if resp.TotalResults == nil {
		return apiResponse{}, fmt.Errorf("decode response: totalResults missing")
	}
	if resp.Articles == nil {
		return apiResponse{}, fmt.Errorf("decode response: articles missing")
	}
	return resp, nil
}

// providerError extracts the provider's own error message from a failed response body.
func providerError(body []byte) string {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil || (resp.Code == "" && resp.Message == "") {
		return responseSnippet(body)
	}
	return providerMessage(resp)
}

func providerMessage(resp apiResponse) string {
	switch {
	case resp.Code != "" && resp.Message != "":
		return resp.Code + ": " + resp.Message
	case resp.Message != "":
		return resp.Message
	case resp.Code != "":
		return resp.Code
	default:
		return "no message"
	}
}

func buildArticles(raw []apiArticle) []domain.Article {
	articles := make([]domain.Article, 0, len(raw))
	for _, a := range raw {
		articles = append(articles, domain.Article{
			Title:       strings.TrimSpace(a.Title),
			Description: plainText(a.Description),
			URL:         strings.TrimSpace(a.URL),
			ImageURL:    strings.TrimSpace(a.URLToImage),
			PublishedAt: parsePublished(a.PublishedAt),
			Source:      strings.TrimSpace(a.Source.Name),
			Author:      strings.TrimSpace(a.Author),
		})
	}
	return articles
}
