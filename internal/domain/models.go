package domain

import (
	"fmt"
	"strings"
	"time"
)

// Domain contains core models shared by the reader packages.

// DefaultPageSize is the number of articles requested per page.
const DefaultPageSize = 16

type Article struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	Source      string
	Author      string
}

// Category narrows top headlines to one provider section. The zero value means no category.
type Category string

const (
	CategoryNone          Category = ""
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
)

var categories = []Category{
	CategoryBusiness,
	CategoryEntertainment,
	CategoryHealth,
	CategoryScience,
	CategorySports,
	CategoryTechnology,
}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves user input to a Category. Empty input and "none" clear the selection.
func ParseCategory(raw string) (Category, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == "none" || v == "all" {
		return CategoryNone, nil
	}
	for _, c := range categories {
		if string(c) == v {
			return c, nil
		}
	}
	return CategoryNone, fmt.Errorf("unknown category %q", raw)
}

func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	return string(c)
}

// QueryState is the UI input that selects which page to load.
type QueryState struct {
	Query    string
	Category Category
	Page     int
	PageSize int
}

// Normalize trims the query and clamps page and page size to their lower bounds.
func (q QueryState) Normalize() QueryState {
	q.Query = strings.TrimSpace(q.Query)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// ResultPage is one page of articles plus pagination metadata.
type ResultPage struct {
	Articles     []Article
	TotalResults int
	TotalPages   int
	Page         int
	PageSize     int
}

// TotalPages returns ceil(total / size), or 0 when either is non-positive.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// HasPrev reports whether a previous page exists.
func (p ResultPage) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a following page exists.
func (p ResultPage) HasNext() bool {
	return p.Page < p.TotalPages
}

// Image is the outcome of preloading one article image.
type Image struct {
	URL         string
	Loaded      bool
	Placeholder bool
	Width       int
	Height      int
	Format      string
}
