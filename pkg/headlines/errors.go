package headlines

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is matched by every FetchError.
var ErrFetchFailed = errors.New("headlines fetch failed")

// FetchError is the single failure kind for a page fetch: transport error,
// non-success status or an unusable body.
type FetchError struct {
	Endpoint Endpoint
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }
