package board

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Messages shown in both platform panels when a load fails.
const (
	ServerErrorMessage  = "Failed to fetch departure data"
	NetworkErrorMessage = "Network error - check connection"
)

// ErrRefreshInProgress is returned by LoadDepartures when another load holds
// the guard. The call is dropped, not queued.
var ErrRefreshInProgress = errors.New("departures refresh already in progress")

// ServerError is a response from the departures endpoint outside the 2xx range.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("departures endpoint responded with status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// NetworkError is a failure to complete the request or to decode its body.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
