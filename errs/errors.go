// Package errs defines the error dispositions callers can branch on: each is
// a sentinel wrapped with context via fmt.Errorf("...: %w", ...) so callers
// can test with errors.Is while still getting a specific message, in place
// of exceptions-as-control-flow.
package errs

import "errors"

var (
	// ErrInvalidDate covers unparsable dates and DST-nonexistent civil times.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidZone covers an unresolvable IANA timezone identifier.
	ErrInvalidZone = errors.New("invalid timezone")
	// ErrNoRoute covers a directions lookup that returned no routes/legs.
	ErrNoRoute = errors.New("no route")
	// ErrRoutingUnavailable covers a non-OK HTTP response or status field
	// from the external routing provider.
	ErrRoutingUnavailable = errors.New("routing unavailable")
	// ErrDuplicate covers a task insertion that collided on taskId.
	ErrDuplicate = errors.New("duplicate task")
	// ErrTaskNotFound covers a GetTask miss.
	ErrTaskNotFound = errors.New("task not found")
	// ErrOriginForbidden covers a request whose Origin header failed the
	// allow-list check.
	ErrOriginForbidden = errors.New("origin forbidden")
	// ErrInvalidPayload covers malformed or failed-validation request JSON.
	ErrInvalidPayload = errors.New("invalid payload")
)

// Code returns a short machine-readable string for an error, used in log
// fields. Errors not wrapping one of the sentinels above return "internal".
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrInvalidZone):
		return "invalid_zone"
	case errors.Is(err, ErrNoRoute):
		return "no_route"
	case errors.Is(err, ErrRoutingUnavailable):
		return "routing_unavailable"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrTaskNotFound):
		return "task_not_found"
	case errors.Is(err, ErrOriginForbidden):
		return "origin_forbidden"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "internal"
	}
}
