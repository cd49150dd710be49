package scheduler

import (
	"context"
	"strconv"
	"time"

	"shuttlesched/models"
	"shuttlesched/services/directions"
)

// Vehicle is an ordered sequence of trips a single hypothetical shuttle
// serves. Trips are appended only in assignment order; nothing ever
// reorders or removes a trip once assigned.
type Vehicle struct {
	Index int
	Trips []*Trip
}

func newVehicle(index int, first *Trip) *Vehicle {
	return &Vehicle{Index: index, Trips: []*Trip{first}}
}

func (v *Vehicle) last() *Trip {
	return v.Trips[len(v.Trips)-1]
}

func (v *Vehicle) addTrip(t *Trip) {
	v.Trips = append(v.Trips, t)
}

// Name renders the synthetic vehicle identity: the 1-based index followed
// by the capability code of the union of every assigned trip's assistance
// mask.
func (v *Vehicle) Name() string {
	var mask models.Assistance
	for _, t := range v.Trips {
		mask |= t.Assistance
	}
	return strconv.Itoa(v.Index) + mask.Code()
}

// fit checks whether t can be appended to v without breaking the vehicle's
// timing contract, returning the estimated arrival instant when it can.
// A route-less reposition between the vehicle's last trip and t only rules
// out this one vehicle; it is never fatal to the request.
func fit(ctx context.Context, v *Vehicle, t *Trip, cfg Config, dc directions.Client) (time.Time, bool, error) {
	last := v.last()
	finish := last.Finish(cfg.DropoffUnloading)
	deadline := t.LatestPickup(cfg.AfterPickup)

	if finish.After(deadline) {
		return time.Time{}, false, nil
	}
	if last.DropoffAddress == t.PickupAddress {
		return finish, true, nil
	}

	_, repositionDuration, ok, err := dc.Route(ctx, last.DropoffAddress, t.PickupAddress, finish)
	if err != nil {
		return time.Time{}, false, err
	}
	if !ok {
		return time.Time{}, false, nil
	}

	arrival := finish.Add(time.Duration(repositionDuration) * time.Second)
	if arrival.After(deadline) {
		return time.Time{}, false, nil
	}
	return arrival, true, nil
}

// isBetter implements the dual arrival-preference policy: prefer a later
// arrival while comfortably inside the pickup window (less driver idle
// time), but switch to preferring an earlier arrival once the window is
// already tight.
func isBetter(incoming, current time.Time, t *Trip, cfg Config) bool {
	if t.IsLast {
		if current.After(t.PickupTime) {
			return incoming.Before(current)
		}
		return incoming.After(current)
	}

	early := t.PickupTime.Add(-cfg.BeforePickup)
	if current.After(early) {
		return incoming.Before(current)
	}
	return incoming.After(current)
}
