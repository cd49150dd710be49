package tzresolver

import (
	"errors"
	"testing"

	"shuttlesched/errs"
)

func TestTimezoneFromAddressMatchesZip(t *testing.T) {
	tz, ok := TimezoneFromAddress("123 Main St, Boston, MA 02110")
	if !ok {
		t.Fatal("expected a match")
	}
	if tz != "America/New_York" {
		t.Fatalf("got %s", tz)
	}
}

func TestTimezoneFromAddressNoZip(t *testing.T) {
	if _, ok := TimezoneFromAddress("123 Main St, Boston, MA"); ok {
		t.Fatal("expected no match")
	}
}

func TestTimezoneFromAddressUsesLastFiveDigitRun(t *testing.T) {
	// "123" is a 3-digit run and doesn't count; the trailing zip does.
	tz, ok := TimezoneFromAddress("Suite 123, 1 Market St, San Francisco, CA 94105")
	if !ok {
		t.Fatal("expected a match")
	}
	if tz != "America/Los_Angeles" {
		t.Fatalf("got %s", tz)
	}
}

func TestResolveInstantOrdinaryDay(t *testing.T) {
	got, err := ResolveInstant("March 10, 2026", "09:30", "America/New_York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Fatalf("got %v", got)
	}
}

func TestResolveInstantSpringForwardGapIsInvalid(t *testing.T) {
	// 2026-03-08 02:30 America/New_York falls in the spring-forward gap
	// (clocks jump from 2:00 to 3:00).
	_, err := ResolveInstant("March 8, 2026", "02:30", "America/New_York")
	if !errors.Is(err, errs.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestResolveInstantFallBackPicksEarliestOccurrence(t *testing.T) {
	// 2026-11-01 01:30 America/New_York occurs twice (EDT then EST); the
	// earlier (EDT, UTC-4) occurrence must be chosen.
	got, err := ResolveInstant("November 1, 2026", "01:30", "America/New_York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, offset := got.Zone()
	if offset != -4*3600 {
		t.Fatalf("expected the EDT (-4h) occurrence, got offset %d", offset)
	}
}

func TestResolveInstantJustBeforeSpringForwardIsUnambiguous(t *testing.T) {
	got, err := ResolveInstant("March 8, 2026", "01:59", "America/New_York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, offset := got.Zone()
	if offset != -5*3600 {
		t.Fatalf("expected the pre-transition EST (-5h) offset, got %d", offset)
	}
}

func TestResolveInstantInvalidZone(t *testing.T) {
	_, err := ResolveInstant("March 10, 2026", "09:30", "Not/AZone")
	if !errors.Is(err, errs.ErrInvalidZone) {
		t.Fatalf("expected ErrInvalidZone, got %v", err)
	}
}

func TestResolveInstantInvalidDate(t *testing.T) {
	_, err := ResolveInstant("Marchtember 40, 2026", "09:30", "America/New_York")
	if !errors.Is(err, errs.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
