package sampling

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned by Send when no responder is registered.
// Callers treat it as a signal to use deterministic fallbacks.
var ErrUnavailable = errors.New("sampling unavailable: no responder registered")

// ErrTimeout is returned when the responder did not answer within the
// request's timeout window.
var ErrTimeout = errors.New("sampling request timed out")

// ParseError reports that a reply was received but could not be
// interpreted into the expected structured shape.
type ParseError struct {
	Raw    string // the reply as received
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing sampling reply: %s", e.Reason)
}

// ResponderError wraps a failure reported by the responder itself,
// whether synchronous (the request could not be sent) or asynchronous
// (the client answered with an error). Distinct from ErrTimeout.
type ResponderError struct {
	Cause error
}

func (e *ResponderError) Error() string {
	return fmt.Sprintf("sampling responder: %v", e.Cause)
}

func (e *ResponderError) Unwrap() error { return e.Cause }
