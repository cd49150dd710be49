// Package tzresolver normalizes a (date, time-of-day, address) triple into
// an absolute instant in the correct zone.
package tzresolver

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"shuttlesched/errs"
)

var lastFiveDigits = regexp.MustCompile(`\d{5}`)

// TimezoneFromAddress extracts the last 5-digit run in address and looks it
// up in the static zip-range table, returning the first matching interval's
// IANA zone. The second return value is false when no 5-digit run is found
// or none of the ranges contain it.
func TimezoneFromAddress(address string) (string, bool) {
	matches := lastFiveDigits.FindAllString(address, -1)
	if len(matches) == 0 {
		return "", false
	}
	zip, err := strconv.Atoi(matches[len(matches)-1])
	if err != nil {
		return "", false
	}
	for _, r := range zipRanges {
		if zip >= r.start && zip <= r.end {
			return r.tz, true
		}
	}
	return "", false
}

// ResolveInstant parses dateString ("Month Day, Year") and timeOfDay
// ("HH:MM"), combines them into a naive local civil time, and converts that
// civil time to an absolute instant in timezone. During a fall-back
// transition the first (chronologically earliest) occurrence of the
// ambiguous hour is chosen; a spring-forward time that never occurred fails
// with errs.ErrInvalidDate.
func ResolveInstant(dateString, timeOfDay, timezone string) (time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", errs.ErrInvalidZone, timezone, err)
	}

	date, err := time.Parse("January 2, 2006", dateString)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", errs.ErrInvalidDate, dateString, err)
	}

	tod, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q: %v", errs.ErrInvalidDate, timeOfDay, err)
	}

	instant, err := combineCivil(loc, date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q in %s", errs.ErrInvalidDate, dateString, timeOfDay, timezone)
	}
	return instant, nil
}

// combineCivil resolves a naive local wall-clock time to an absolute
// instant, handling the two DST edge cases explicitly instead of relying on
// time.Date's unspecified tie-breaking:
//   - spring-forward gap (the wall clock never occurs): returns an error.
//   - fall-back overlap (the wall clock occurs twice): returns the earlier
//     of the two candidate instants.
func combineCivil(loc *time.Location, y int, mo time.Month, d, hh, mm int) (time.Time, error) {
	// A guess built as if the wall clock were UTC; its Unix value equals the
	// "seconds since epoch" of the wall-clock digits themselves, letting us
	// reconstruct a candidate instant from any offset via subtraction.
	guess := time.Date(y, mo, d, hh, mm, 0, 0, time.UTC)

	_, offBefore := guess.Add(-3 * time.Hour).In(loc).Zone()
	_, offAfter := guess.Add(3 * time.Hour).In(loc).Zone()

	candidate := func(offsetSeconds int) time.Time {
		return time.Unix(guess.Unix()-int64(offsetSeconds), 0).In(loc)
	}
	reproduces := func(t time.Time) bool {
		return t.Year() == y && t.Month() == mo && t.Day() == d && t.Hour() == hh && t.Minute() == mm
	}

	before := candidate(offBefore)
	if offBefore == offAfter {
		if !reproduces(before) {
			return time.Time{}, errs.ErrInvalidDate
		}
		return before, nil
	}

	after := candidate(offAfter)
	validBefore := reproduces(before)
	validAfter := reproduces(after)

	switch {
	case validBefore && validAfter:
		if before.Before(after) {
			return before, nil
		}
		return after, nil
	case validBefore:
		return before, nil
	case validAfter:
		return after, nil
	default:
		return time.Time{}, errs.ErrInvalidDate
	}
}
