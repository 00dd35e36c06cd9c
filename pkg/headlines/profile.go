package headlines

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package headlines talks to a NewsAPI-style headlines provider.

const (
	DefaultBaseURL          = "https://newsapi.org/v2"
	DefaultCountry          = "us"
	DefaultTopHeadlinesPath = "/top-headlines"
	DefaultSearchPath       = "/everything"
	DefaultAPIKeyHeader     = "X-Api-Key"
	DefaultRemovedMarker    = `^https?://(www\.)?removed\.com/?$`
)

// Profile describes how to reach a headlines provider.
type Profile struct {
	BaseURL          string            `json:"base_url" yaml:"base_url"`
	Country          string            `json:"country" yaml:"country"`
	PageSize         int               `json:"page_size" yaml:"page_size"`
	TopHeadlinesPath string            `json:"top_headlines_path" yaml:"top_headlines_path"`
	SearchPath       string            `json:"search_path" yaml:"search_path"`
	APIKeyHeader     string            `json:"api_key_header" yaml:"api_key_header"`
	RemovedMarkers   []string          `json:"removed_markers" yaml:"removed_markers"`
	Config           map[string]string `json:"config" yaml:"config"`
}

// DefaultProfile returns the profile for newsapi.org.
func DefaultProfile() Profile {
	return sanitizeProfile(Profile{})
}

// LoadProfile reads a provider profile from a YAML or JSON file.
func LoadProfile(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Profile{}, errors.New("profile file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("open profile file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile file: %w", err)
	}

	p, err := parseProfile(raw, filepath.Ext(path))
	if err != nil {
		return Profile{}, err
	}

	p = sanitizeProfile(p)
	if err := validateProfile(p); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

func parseProfile(data []byte, ext string) (Profile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if p, err := unmarshalProfile(d.name, data, d.fn); err == nil {
			return p, nil
		}
	}

	return Profile{}, errors.New("profile file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalProfile(name string, data []byte, fn unmarshalFn) (Profile, error) {
	var wrapper struct {
		Provider Profile `json:"provider" yaml:"provider"`
	}
	if err := fn(data, &wrapper); err != nil {
		return Profile{}, fmt.Errorf("decode %s profile: %w", name, err)
	}
	return wrapper.Provider, nil
}

func sanitizeProfile(p Profile) Profile {
	p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
	p.Country = strings.ToLower(strings.TrimSpace(p.Country))
	p.TopHeadlinesPath = strings.TrimSpace(p.TopHeadlinesPath)
	p.SearchPath = strings.TrimSpace(p.SearchPath)
	p.APIKeyHeader = strings.TrimSpace(p.APIKeyHeader)

	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	if p.Country == "" {
		p.Country = DefaultCountry
	}
	if p.TopHeadlinesPath == "" {
		p.TopHeadlinesPath = DefaultTopHeadlinesPath
	}
	if p.SearchPath == "" {
		p.SearchPath = DefaultSearchPath
	}
	if p.APIKeyHeader == "" {
		p.APIKeyHeader = DefaultAPIKeyHeader
	}

	markers := make([]string, 0, len(p.RemovedMarkers))
	for _, m := range p.RemovedMarkers {
		if m = strings.TrimSpace(m); m != "" {
			markers = append(markers, m)
		}
	}
	if len(markers) == 0 {
		markers = []string{DefaultRemovedMarker}
	}
	p.RemovedMarkers = markers

	if p.Config == nil {
		p.Config = map[string]string{}
	}
	return p
}

func validateProfile(p Profile) error {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", p.BaseURL)
	}
	if p.PageSize < 0 {
		return fmt.Errorf("page_size must not be negative")
	}
	for _, m := range p.RemovedMarkers {
		if _, err := regexp.Compile(m); err != nil {
			return fmt.Errorf("removed_markers: %w", err)
		}
	}
	return nil
}
