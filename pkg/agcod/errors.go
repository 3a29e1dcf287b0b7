package agcod

import (
	"errors"
	"fmt"
)

// UnavailableError covers transport failures, signature rejections and
// vendor-side 5xx/4xx responses. Calls are idempotent by construction
// (stable creation request ids), so these are always safe to retry.
type UnavailableError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *UnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("agcod: %s unavailable: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("agcod: %s unavailable: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ProtocolError means the vendor answered with a body we do not
// understand. That is a contract break, not a transient fault; retrying
// automatically would be pointless.
type ProtocolError struct {
	Op   string
	Body string
	Err  error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("agcod: %s protocol error: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// IsRetryable reports whether err may be retried with the same request id.
func IsRetryable(err error) bool {
	var u *UnavailableError
	return errors.As(err, &u)
}
