package catalog

import (
	"errors"
	"fmt"
)

// Fetch failure causes, matched with errors.Is.
var (
	ErrInvalidPage        = errors.New("page must be >= 1")
	ErrUnexpectedStatus   = errors.New("unexpected response status")
	ErrDecode             = errors.New("decode response")
	ErrUnsupportedVersion = errors.New("unsupported API version")
)

// FetchError reports a failed page fetch. StatusCode is 0 when no response was
// received.
type FetchError struct {
	Page       int
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch page %d: status %d: %v", e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
