// Package scheduler assigns a day's bookings to the smallest feasible
// fleet of shuttles: trip construction, last-leg marking, priority
// bucketing, and a greedy per-bucket vehicle assignment pass.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"shuttlesched/errs"
	"shuttlesched/models"
	"shuttlesched/services/directions"
	"shuttlesched/services/tzresolver"
)

// Trip is the scheduler-internal object built from a booking: absolute
// instants, routing results, and the mutable scheduling outputs the
// assignment pass fills in. It is immutable after construction except for
// IsLast, AdjustedPickupTime, and EarliestArrivalTime.
type Trip struct {
	Booking *models.Booking

	PickupAddress  string
	DropoffAddress string
	Passenger      string
	Assistance     models.Assistance
	Timezone       string

	PickupTime      time.Time
	DistanceMeters  int
	DurationSeconds int

	IsLast bool

	AdjustedPickupTime  time.Time
	EarliestArrivalTime time.Time
}

// buildTrip resolves a booking's timezone and absolute pickup instant, then
// looks up the pickup-to-dropoff route. A route-less pickup/dropoff pair is
// fatal here (unlike a route-less reposition between two already-assigned
// trips, which only rules out one candidate vehicle).
func buildTrip(ctx context.Context, dateString string, b *models.Booking, dc directions.Client) (*Trip, error) {
	tz, ok := tzresolver.TimezoneFromAddress(b.PickupAddress)
	if !ok {
		tz = b.ProgramTimezone
	}

	pickupInstant, err := tzresolver.ResolveInstant(dateString, b.PickupTime, tz)
	if err != nil {
		return nil, err
	}

	distance, duration, ok, err := dc.Route(ctx, b.PickupAddress, b.DropoffAddress, pickupInstant)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", errs.ErrNoRoute, b.PickupAddress, b.DropoffAddress)
	}

	b.TravelDistance = distance
	b.TravelTime = duration

	return &Trip{
		Booking:         b,
		PickupAddress:   b.PickupAddress,
		DropoffAddress:  b.DropoffAddress,
		Passenger:       b.PassengerKey(),
		Assistance:      models.ParseAssistance(b.MobilityAssistance),
		Timezone:        tz,
		PickupTime:      pickupInstant,
		DistanceMeters:  distance,
		DurationSeconds: duration,
	}, nil
}

// LatestPickup is the deadline by which a vehicle must reach this trip's
// pickup: the requested time itself, or, for a last leg, that time plus the
// late-arrival tolerance.
func (t *Trip) LatestPickup(afterPickup time.Duration) time.Time {
	if t.IsLast {
		return t.PickupTime.Add(afterPickup)
	}
	return t.PickupTime
}

// EarliestPickup is the earliest a driver should arrive: the requested time
// minus the early-arrival margin, or, for a last leg, the requested time
// itself (no early-arrival credit on a return trip).
func (t *Trip) EarliestPickup(beforePickup time.Duration) time.Time {
	if t.IsLast {
		return t.PickupTime
	}
	return t.PickupTime.Add(-beforePickup)
}

// Dropoff is when the vehicle reaches this trip's destination, based on
// whichever pickup instant was actually assigned.
func (t *Trip) Dropoff() time.Time {
	base := t.PickupTime
	if !t.AdjustedPickupTime.IsZero() {
		base = t.AdjustedPickupTime
	}
	return base.Add(time.Duration(t.DurationSeconds) * time.Second)
}

// Finish is when the vehicle becomes free for its next trip.
func (t *Trip) Finish(dropoffUnloading time.Duration) time.Time {
	return t.Dropoff().Add(dropoffUnloading)
}
