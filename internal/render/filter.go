package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
)

// Filter decides which fetched articles are shown.
type Filter struct {
	removed []*regexp.Regexp
}

// NewFilter compiles the removed-content marker patterns.
func NewFilter(markers []string) (*Filter, error) {
	f := &Filter{}
	for _, m := range markers {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		re, err := regexp.Compile(m)
		if err != nil {
			return nil, fmt.Errorf("compile removed marker %q: %w", m, err)
		}
		f.removed = append(f.removed, re)
	}
	return f, nil
}

// Keep reports whether an article may be displayed: it needs a title and a
// link, and the link must not point at removed content.
func (f *Filter) Keep(a domain.Article) bool {
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.URL) == "" {
		return false
	}
	if f == nil {
		return true
	}
	u := strings.TrimSpace(a.URL)
	for _, re := range f.removed {
		if re.MatchString(u) {
			return false
		}
	}
	return true
}

// Apply returns the displayable subset of articles, preserving order.
func (f *Filter) Apply(articles []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if f.Keep(a) {
			out = append(out, a)
		}
	}
	return out
}
