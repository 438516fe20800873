package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charlie0129/ftracker/pkg/types"
)

var (
	// ErrDaemonNotRunning is returned when the daemon is not running
	ErrDaemonNotRunning = errors.New("daemon not running")

	// ErrPermissionDenied is returned when the user does not have permission to perform the requested action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when 404 is returned from the daemon
	ErrNotFound = errors.New("404 not found")
)

// ResponseError is returned for non-2xx responses other than 404.
type ResponseError struct {
	StatusCode int
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("got %d: %s", e.StatusCode, e.Message())
}

// Message is the user-facing error text sent by the daemon, or the raw body.
func (e *ResponseError) Message() string {
	var resp types.ErrorResponse
	if err := json.Unmarshal(e.Body, &resp); err == nil && resp.Error != "" {
		return resp.Error
	}
	return string(e.Body)
}
