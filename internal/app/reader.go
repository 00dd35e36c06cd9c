package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samvad-hq/samvad-headlines/internal/config"
	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/internal/logger"
	"github.com/samvad-hq/samvad-headlines/internal/preload"
	"github.com/samvad-hq/samvad-headlines/internal/reader"
	"github.com/samvad-hq/samvad-headlines/internal/render"
	"github.com/samvad-hq/samvad-headlines/pkg/headlines"
	"github.com/samvad-hq/samvad-headlines/pkg/httpclient"
)

// Reader wires the headlines client, image preloader and session together.
type Reader struct {
	cfg    *config.Config
	client headlines.Fetcher
	images reader.ImageLoader
	filter *render.Filter
	log    logger.Logger
}

// NewReader builds a reader runtime from config.
func NewReader(cfg *config.Config, log logger.Logger) (*Reader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	profile, err := buildProfile(cfg)
	if err != nil {
		return nil, fmt.Errorf("load provider profile: %w", err)
	}

	client, err := headlines.NewClient(httpclient.NewRestyClient(cfg.RequestTimeout), profile, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("init headlines client: %w", err)
	}
	profile = client.Profile()

	filter, err := render.NewFilter(profile.RemovedMarkers)
	if err != nil {
		return nil, fmt.Errorf("init article filter: %w", err)
	}

	var images reader.ImageLoader
	if cfg.PreloadImages {
		images = preload.New(httpclient.NewRestyClient(cfg.ImageTimeout), cfg.ImageTimeout, log)
	}

	log.InfoObj("reader initialized", "reader_config", map[string]any{
		"base_url":       profile.BaseURL,
		"country":        profile.Country,
		"page_size":      cfg.PageSize,
		"preload_images": cfg.PreloadImages,
		"profile_file":   cfg.ProfileFile,
	})

	return &Reader{
		cfg:    cfg,
		client: client,
		images: images,
		filter: filter,
		log:    log,
	}, nil
}

// buildProfile loads the profile file when configured, otherwise applies config overrides to the default profile.
func buildProfile(cfg *config.Config) (headlines.Profile, error) {
	if strings.TrimSpace(cfg.ProfileFile) != "" {
		return headlines.LoadProfile(cfg.ProfileFile)
	}
	p := headlines.DefaultProfile()
	if v := strings.TrimSpace(cfg.BaseURL); v != "" {
		p.BaseURL = v
	}
	if v := strings.TrimSpace(cfg.Country); v != "" {
		p.Country = v
	}
	p.PageSize = cfg.PageSize
	return p, nil
}

func (r *Reader) newSession(onChange func(reader.Snapshot)) *reader.Session {
	return reader.NewSession(r.client, r.images, reader.Options{
		PageSize: r.cfg.PageSize,
		OnChange: onChange,
		Logger:   r.log,
	})
}

// FetchOnce loads a single page for state and prints it as a table.
func (r *Reader) FetchOnce(ctx context.Context, state domain.QueryState, out io.Writer) error {
	if r == nil {
		return fmt.Errorf("reader is not initialized")
	}
	snap := r.newSession(nil).Open(ctx, state)

	if err := render.NewRenderer(out, r.filter).Table(snap); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if snap.State == reader.StateFailed {
		return snap.Err
	}
	return nil
}
