package errs

import (
	"errors"
	"testing"
)

func TestCodeMapsEachSentinel(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrInvalidDate, "invalid_date"},
		{ErrInvalidZone, "invalid_zone"},
		{ErrNoRoute, "no_route"},
		{ErrRoutingUnavailable, "routing_unavailable"},
		{ErrDuplicate, "duplicate"},
		{ErrTaskNotFound, "task_not_found"},
		{ErrOriginForbidden, "origin_forbidden"},
		{ErrInvalidPayload, "invalid_payload"},
		{errors.New("something else"), "internal"},
	}

	for _, c := range cases {
		if got := Code(c.err); got != c.want {
			t.Errorf("Code(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestCodeUnwrapsWrappedSentinel(t *testing.T) {
	wrapped := errors.New("lookup failed")
	err := errors.Join(wrapped, ErrNoRoute)
	if got := Code(err); got != "no_route" {
		t.Errorf("Code(%v) = %q, want no_route", err, got)
	}
}
