package reader

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/internal/logger"
	"github.com/samvad-hq/samvad-headlines/internal/preload"
	"github.com/samvad-hq/samvad-headlines/pkg/headlines"
)

// ErrNotAvailable is returned when a navigation control is disabled.
var ErrNotAvailable = errors.New("navigation not available")

// ImageLoader preloads images for a page of articles.
type ImageLoader interface {
	Preload(ctx context.Context, articles []domain.Article) preload.Result
}

// Options tunes a Session.
type Options struct {
	PageSize int
	// OnChange receives a snapshot on every state transition.
	OnChange func(Snapshot)
	Logger   logger.Logger
}

// Session owns the reader's query state and drives Idle -> Loading -> Ready|Failed.
// A newer load supersedes an in-flight one: the older request is cancelled and
// its result, if it still arrives, is discarded.
type Session struct {
	fetcher headlines.Fetcher
	images  ImageLoader
	log     logger.Logger

	notifyMu sync.Mutex
	onChange func(Snapshot)

	mu       sync.Mutex
	query    domain.QueryState
	page     domain.ResultPage
	imgs     preload.Result
	state    State
	err      error
	seq      uint64
	cancelFn context.CancelFunc
}

// NewSession wires a session. images may be nil to skip preloading.
func NewSession(fetcher headlines.Fetcher, images ImageLoader, opts Options) *Session {
	size := opts.PageSize
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	return &Session{
		fetcher:  fetcher,
		images:   images,
		log:      logger.Ensure(opts.Logger),
		onChange: opts.OnChange,
		query:    domain.QueryState{Page: 1, PageSize: size},
		state:    StateIdle,
	}
}

// Snapshot returns the current view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Start performs the initial unfiltered load.
func (s *Session) Start(ctx context.Context) Snapshot {
	snap, _ := s.load(ctx, func(*domain.QueryState) bool { return true })
	return snap
}

// Open loads an explicit query state, as when the reader is started with
// filters already chosen. The session's page size is kept.
func (s *Session) Open(ctx context.Context, state domain.QueryState) Snapshot {
	snap, _ := s.load(ctx, func(q *domain.QueryState) bool {
		size := q.PageSize
		*q = state
		q.PageSize = size
		*q = q.Normalize()
		return true
	})
	return snap
}

// Search sets the free-text query and returns to the first page.
func (s *Session) Search(ctx context.Context, query string) Snapshot {
	snap, _ := s.load(ctx, func(q *domain.QueryState) bool {
		q.Query = strings.TrimSpace(query)
		q.Page = 1
		return true
	})
	return snap
}

// SelectCategory sets the category filter and returns to the first page.
func (s *Session) SelectCategory(ctx context.Context, c domain.Category) Snapshot {
	snap, _ := s.load(ctx, func(q *domain.QueryState) bool {
		q.Category = c
		q.Page = 1
		return true
	})
	return snap
}

// Next loads the following page. It returns ErrNotAvailable at the last page.
func (s *Session) Next(ctx context.Context) (Snapshot, error) {
	return s.load(ctx, func(q *domain.QueryState) bool {
		if !s.snapshotLocked().HasNext() {
			return false
		}
		q.Page++
		return true
	})
}

// Prev loads the preceding page. It returns ErrNotAvailable on the first page.
func (s *Session) Prev(ctx context.Context) (Snapshot, error) {
	return s.load(ctx, func(q *domain.QueryState) bool {
		if !s.snapshotLocked().HasPrev() {
			return false
		}
		q.Page--
		return true
	})
}

// Reload fetches the current page again. Nothing is cached between loads.
func (s *Session) Reload(ctx context.Context) Snapshot {
	snap, _ := s.load(ctx, func(*domain.QueryState) bool { return true })
	return snap
}

// load applies mutate to the query state under lock and, if it reports a change,
// runs one fetch + preload cycle.
func (s *Session) load(ctx context.Context, mutate func(*domain.QueryState) bool) (Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if !mutate(&s.query) {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, ErrNotAvailable
	}
	if s.cancelFn != nil {
		s.cancelFn()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelFn = cancel
	s.seq++
	seq := s.seq
	query := s.query
	s.state = StateLoading
	loading := s.snapshotLocked()
	s.mu.Unlock()
	defer cancel()

	s.notify(loading)
	s.log.DebugObj("page load started", "load_meta", map[string]any{
		"seq":      seq,
		"query":    query.Query,
		"category": query.Category.String(),
		"page":     query.Page,
	})

	page, err := s.fetcher.FetchPage(loadCtx, query)
	if err != nil {
		return s.finish(seq, func() {
			s.state = StateFailed
			s.err = err
			s.page = domain.ResultPage{Page: query.Page, PageSize: query.PageSize}
			s.imgs = nil
			s.log.WarnObj("page load failed", "load_error", map[string]any{
				"seq":   seq,
				"page":  query.Page,
				"error": err.Error(),
			})
		}), nil
	}

	var imgs preload.Result
	if s.images != nil {
		imgs = s.images.Preload(loadCtx, page.Articles)
	}

	return s.finish(seq, func() {
		s.state = StateReady
		s.err = nil
		s.page = page
		s.imgs = imgs
		s.log.InfoObj("page load completed", "load_result", map[string]any{
			"seq":           seq,
			"page":          page.Page,
			"total_pages":   page.TotalPages,
			"total_results": page.TotalResults,
			"articles":      len(page.Articles),
		})
	}), nil
}

// finish applies a load outcome unless a newer load has started since.
func (s *Session) finish(seq uint64, apply func()) Snapshot {
	s.mu.Lock()
	if current := s.seq; seq != current {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.log.DebugObj("stale page load discarded", "load_meta", map[string]any{
			"seq":         seq,
			"current_seq": current,
		})
		return snap
	}
	apply()
	s.cancelFn = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

func (s *Session) snapshotLocked() Snapshot {
	page := s.page
	page.Articles = append([]domain.Article(nil), s.page.Articles...)
	return Snapshot{
		State:  s.state,
		Query:  s.query,
		Page:   page,
		Images: s.imgs,
		Err:    s.err,
	}
}

func (s *Session) notify(snap Snapshot) {
	if s.onChange == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.onChange(snap)
}
