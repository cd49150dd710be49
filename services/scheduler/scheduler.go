package scheduler

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"shuttlesched/models"
	"shuttlesched/services/directions"
)

// Config carries the timing margins a schedule run applies. A request may
// override any of these; otherwise the process-wide defaults apply.
type Config struct {
	BeforePickup     time.Duration
	AfterPickup      time.Duration
	DropoffUnloading time.Duration
}

// Scheduler builds a plan for one scheduling request. Each invocation
// constructs its own trips and vehicles; nothing is shared across
// concurrent runs.
type Scheduler struct {
	directions directions.Client
	defaults   Config
	logger     *zap.Logger
}

// New builds a Scheduler using defaults for any margin a request doesn't
// override.
func New(dc directions.Client, defaults Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{directions: dc, defaults: defaults, logger: logger}
}

// Schedule runs trip construction, last-leg marking, priority bucketing,
// and vehicle assignment over req, producing a rendered response envelope.
func (s *Scheduler) Schedule(ctx context.Context, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	cfg := s.resolveConfig(req)

	trips, err := s.buildTrips(ctx, req)
	if err != nil {
		return nil, err
	}

	markLastLegs(trips)
	buckets := bucketByPriority(trips)

	var plan []*Vehicle
	for _, bucket := range buckets {
		for _, t := range bucket {
			var err error
			plan, err = s.assign(ctx, plan, t, cfg)
			if err != nil {
				return nil, err
			}
		}
	}

	return assemble(plan, buckets, req.Debug), nil
}

func (s *Scheduler) resolveConfig(req *models.ScheduleRequest) Config {
	cfg := s.defaults
	if req.BeforePickupTime != nil {
		cfg.BeforePickup = time.Duration(*req.BeforePickupTime) * time.Second
	}
	if req.AfterPickupTime != nil {
		cfg.AfterPickup = time.Duration(*req.AfterPickupTime) * time.Second
	}
	if req.DropoffUnloadingTime != nil {
		cfg.DropoffUnloading = time.Duration(*req.DropoffUnloadingTime) * time.Second
	}
	return cfg
}

func (s *Scheduler) buildTrips(ctx context.Context, req *models.ScheduleRequest) ([]*Trip, error) {
	trips := make([]*Trip, 0, len(req.Bookings))
	for i := range req.Bookings {
		t, err := buildTrip(ctx, req.Date, &req.Bookings[i], s.directions)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// markLastLegs sorts trips by pickup time, groups by passenger, and marks
// the latest trip of any passenger with two or more trips as IsLast. The
// ascending order it establishes is also the order priority bucketing
// preserves within each bucket.
func markLastLegs(trips []*Trip) {
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].PickupTime.Before(trips[j].PickupTime)
	})

	byPassenger := make(map[string][]*Trip)
	for _, t := range trips {
		byPassenger[t.Passenger] = append(byPassenger[t.Passenger], t)
	}
	for _, group := range byPassenger {
		if len(group) < 2 {
			continue
		}
		last := group[0]
		for _, t := range group[1:] {
			if t.PickupTime.After(last.PickupTime) {
				last = t
			}
		}
		last.IsLast = true
	}
}

// bucketByPriority partitions trips into the three mobility-priority
// buckets, preserving markLastLegs's ascending pickup-time order within
// each bucket.
func bucketByPriority(trips []*Trip) [3][]*Trip {
	var buckets [3][]*Trip
	for _, t := range trips {
		b := t.Assistance.Bucket()
		buckets[b] = append(buckets[b], t)
	}
	return buckets
}

// assign runs the fit-and-select pass for one trip against every existing
// vehicle in creation order, appending to the best fit or opening a new
// vehicle when none fits.
func (s *Scheduler) assign(ctx context.Context, plan []*Vehicle, t *Trip, cfg Config) ([]*Vehicle, error) {
	var best *Vehicle
	var bestArrival time.Time
	found := false

	for _, v := range plan {
		arrival, ok, err := fit(ctx, v, t, cfg, s.directions)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !found || isBetter(arrival, bestArrival, t, cfg) {
			best, bestArrival, found = v, arrival, true
		}
	}

	if !found {
		t.EarliestArrivalTime = t.EarliestPickup(cfg.BeforePickup)
		t.AdjustedPickupTime = maxTime(t.PickupTime, t.PickupTime)
		v := newVehicle(len(plan)+1, t)
		return append(plan, v), nil
	}

	best.addTrip(t)
	t.EarliestArrivalTime = bestArrival
	t.AdjustedPickupTime = maxTime(bestArrival, t.PickupTime)
	return plan, nil
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
