package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API Errors
var (
	ErrUpstream = errors.New("upstream request failed")
)

// NewUpstreamError is what clients see when a third-party service fails. The
// message is fixed per service; the cause is kept for the logs.
func NewUpstreamError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        fmt.Errorf("Failed to fetch from %s", service),
		kind:       ErrUpstream,
		Details:    service,
		Cause:      cause,
	}
}

// UpstreamStatusError records a non-success status returned by a third-party service.
type UpstreamStatusError struct {
	URL        string
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}
