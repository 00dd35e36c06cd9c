package reader

import (
	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/internal/preload"
)

// State is the lifecycle of a single page load.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session handed to renderers.
// While loading, Page still holds the previous result and Query the requested one.
type Snapshot struct {
	State  State
	Query  domain.QueryState
	Page   domain.ResultPage
	Images preload.Result
	Err    error
}

// HasPrev reports whether the Previous control is enabled.
func (s Snapshot) HasPrev() bool {
	return s.State != StateLoading && s.Query.Page > 1
}

// HasNext reports whether the Next control is enabled.
func (s Snapshot) HasNext() bool {
	return s.State == StateReady && s.Query.Page < s.Page.TotalPages
}
