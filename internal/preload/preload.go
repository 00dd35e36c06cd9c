package preload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/errgroup"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/internal/logger"
	"github.com/samvad-hq/samvad-headlines/pkg/httpclient"
)

const (
	maxImageBodyBytes   = 8 << 20 // 8 MiB
	defaultImageTimeout = 20 * time.Second
)

// Result maps an image URL to its preload outcome.
type Result map[string]domain.Image

// For returns the outcome for an article. Articles without an image get a placeholder entry.
func (r Result) For(a domain.Article) domain.Image {
	u := strings.TrimSpace(a.ImageURL)
	if u == "" {
		return domain.Image{Placeholder: true}
	}
	if img, ok := r[u]; ok {
		return img
	}
	return domain.Image{URL: u, Placeholder: true}
}

// Preloader fetches article images ahead of rendering.
type Preloader struct {
	client httpclient.Client
	log    logger.Logger
}

// New constructs a Preloader. A nil client gets a resty client bounded by timeout.
func New(client httpclient.Client, timeout time.Duration, log logger.Logger) *Preloader {
	if timeout <= 0 {
		timeout = defaultImageTimeout
	}
	if client == nil {
		client = httpclient.NewRestyClient(timeout)
	}
	return &Preloader{client: client, log: logger.Ensure(log)}
}

// Preload loads every distinct image referenced by articles concurrently and
// returns once all of them have settled. Individual failures are recorded,
// never returned; articles without an image are complete immediately.
func (p *Preloader) Preload(ctx context.Context, articles []domain.Article) Result {
	out := make(Result, len(articles))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, art := range articles {
		u := strings.TrimSpace(art.ImageURL)
		if u == "" {
			continue
		}
		mu.Lock()
		_, started := out[u]
		if !started {
			out[u] = domain.Image{URL: u}
		}
		mu.Unlock()
		if started {
			continue
		}

		g.Go(func() error {
			img, err := p.load(gctx, u)
			if err != nil {
				p.log.DebugObj("image preload failed", "image_error", map[string]any{
					"url":   u,
					"error": err.Error(),
				})
				img = domain.Image{URL: u, Placeholder: true}
			}
			mu.Lock()
			out[u] = img
			mu.Unlock()
			return nil // non-fatal
		})
	}
	_ = g.Wait()

	return out
}

func (p *Preloader) load(ctx context.Context, u string) (domain.Image, error) {
	resp, err := p.client.Get(ctx, u, map[string]string{"Accept": "image/*"})
	if err != nil {
		return domain.Image{}, fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return domain.Image{}, fmt.Errorf("status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 {
		return domain.Image{}, fmt.Errorf("empty image body")
	}
	if len(body) > maxImageBodyBytes {
		body = body[:maxImageBodyBytes]
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return domain.Image{}, fmt.Errorf("decode image header: %w", err)
	}

	return domain.Image{
		URL:    u,
		Loaded: true,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}
