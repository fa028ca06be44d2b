package wcl

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrTransport      = errors.New("transport failed")
	ErrReportNotFound = errors.New("report not found")
	ErrFeedRejected   = errors.New("death feed rejected")
)

// TransportError describes a failed round trip: a non-2xx status, a network
// failure, or an undecodable body.
type TransportError struct {
	Op         string
	StatusCode int    // 0 when no response was received
	Status     string // e.g. "401 Unauthorized"
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: API request failed: %s", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: API request failed: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: API request failed", e.Op)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrTransport) hold for every TransportError.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }
