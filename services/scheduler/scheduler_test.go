package scheduler

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"shuttlesched/models"
)

type fakeRoute struct {
	distance, duration int
	ok                 bool
}

type fakeDirections struct {
	routes map[string]fakeRoute
}

func newFakeDirections() *fakeDirections {
	return &fakeDirections{routes: make(map[string]fakeRoute)}
}

func (f *fakeDirections) set(from, to string, distance, duration int) {
	f.routes[from+"|"+to] = fakeRoute{distance: distance, duration: duration, ok: true}
}

func (f *fakeDirections) Route(_ context.Context, from, to string, _ time.Time) (int, int, bool, error) {
	r, ok := f.routes[from+"|"+to]
	if !ok {
		return 0, 0, false, nil
	}
	return r.distance, r.duration, r.ok, nil
}

func booking(id, pickupAddr, dropoffAddr, pickupTime string, tags ...string) models.Booking {
	return models.Booking{
		BookingID:          id,
		FirstName:          id,
		LastName:           "P",
		PickupAddress:      pickupAddr,
		DropoffAddress:     dropoffAddr,
		PickupTime:         pickupTime,
		ProgramTimezone:    "America/New_York",
		MobilityAssistance: tags,
	}
}

func TestScheduleSingleAmbulatoryBooking(t *testing.T) {
	dc := newFakeDirections()
	dc.set("100 Main St", "200 Elm St", 10000, 900)

	req := &models.ScheduleRequest{
		Date:     "January 15, 2025",
		Bookings: []models.Booking{booking("b1", "100 Main St", "200 Elm St", "09:00")},
	}

	sched := New(dc, Config{BeforePickup: 15 * time.Minute, AfterPickup: 30 * time.Minute, DropoffUnloading: 2 * time.Minute}, zap.NewNop())
	resp, err := sched.Schedule(context.Background(), req)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	vehicles := resp.Result.Data.VehicleTripList
	if len(vehicles) != 1 {
		t.Fatalf("expected one vehicle, got %d", len(vehicles))
	}
	if vehicles[0].ShuttleName != "1AMBI" {
		t.Fatalf("expected shuttle name 1AMBI, got %s", vehicles[0].ShuttleName)
	}
	trip := vehicles[0].Trips[0]
	if trip.FirstPickupTime != "9:00 AM" {
		t.Fatalf("expected pickup 9:00 AM, got %s", trip.FirstPickupTime)
	}
	if trip.LastDropoffTime != "9:15 AM" {
		t.Fatalf("expected dropoff 9:15 AM, got %s", trip.LastDropoffTime)
	}
}

func TestScheduleBackToBackFitsOneVehicle(t *testing.T) {
	dc := newFakeDirections()
	dc.set("A", "B", 1000, 900) // 15 min
	dc.set("B", "C", 1000, 300)

	req := &models.ScheduleRequest{
		Date: "January 15, 2025",
		Bookings: []models.Booking{
			booking("b1", "A", "B", "09:00"),
			booking("b2", "B", "C", "09:30"),
		},
	}

	sched := New(dc, Config{BeforePickup: 5 * time.Minute, AfterPickup: 30 * time.Minute, DropoffUnloading: 2 * time.Minute}, zap.NewNop())
	resp, err := sched.Schedule(context.Background(), req)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	vehicles := resp.Result.Data.VehicleTripList
	if len(vehicles) != 1 {
		t.Fatalf("expected one vehicle, got %d", len(vehicles))
	}
	if len(vehicles[0].Trips) != 2 {
		t.Fatalf("expected two trips on the one vehicle, got %d", len(vehicles[0].Trips))
	}
}

func TestScheduleTightTimingForcesSecondVehicle(t *testing.T) {
	dc := newFakeDirections()
	dc.set("A", "B", 1000, 900) // 15 min, finishes at 09:17 with 2 min unloading
	dc.set("B", "C", 1000, 300)

	req := &models.ScheduleRequest{
		Date: "January 15, 2025",
		Bookings: []models.Booking{
			booking("b1", "A", "B", "09:00"),
			booking("b2", "B", "C", "09:10"),
		},
	}

	sched := New(dc, Config{BeforePickup: 5 * time.Minute, AfterPickup: 30 * time.Minute, DropoffUnloading: 2 * time.Minute}, zap.NewNop())
	resp, err := sched.Schedule(context.Background(), req)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	vehicles := resp.Result.Data.VehicleTripList
	if len(vehicles) != 2 {
		t.Fatalf("expected two vehicles, got %d", len(vehicles))
	}
	if vehicles[0].ShuttleName != "1AMBI" || vehicles[1].ShuttleName != "2AMBI" {
		t.Fatalf("unexpected shuttle names: %s, %s", vehicles[0].ShuttleName, vehicles[1].ShuttleName)
	}
}

func TestScheduleMobilityPriorityOrdersVehicles(t *testing.T) {
	dc := newFakeDirections()
	dc.set("A", "A-drop", 1000, 60)
	dc.set("B", "B-drop", 1000, 60)
	dc.set("C", "C-drop", 1000, 60)

	req := &models.ScheduleRequest{
		Date: "January 15, 2025",
		Bookings: []models.Booking{
			booking("ambi", "A", "A-drop", "09:00"),
			booking("wc", "B", "B-drop", "09:30", "wheelchair"),
			booking("gur", "C", "C-drop", "10:00", "stretcher"),
		},
	}

	sched := New(dc, Config{BeforePickup: 5 * time.Minute, AfterPickup: 30 * time.Minute, DropoffUnloading: 2 * time.Minute}, zap.NewNop())
	resp, err := sched.Schedule(context.Background(), req)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	vehicles := resp.Result.Data.VehicleTripList
	if len(vehicles) != 3 {
		t.Fatalf("expected three vehicles, got %d", len(vehicles))
	}
	if vehicles[0].ShuttleName != "1GURAMBI" {
		t.Fatalf("expected stretcher vehicle scheduled first, got %s", vehicles[0].ShuttleName)
	}
	if vehicles[1].ShuttleName != "2WC" {
		t.Fatalf("expected wheelchair vehicle scheduled second, got %s", vehicles[1].ShuttleName)
	}
	if vehicles[2].ShuttleName != "3AMBI" {
		t.Fatalf("expected ambulatory vehicle scheduled third, got %s", vehicles[2].ShuttleName)
	}
}

func TestMarkLastLegsOnlyMarksLatestOfMultiTripPassenger(t *testing.T) {
	morning := &Trip{Passenger: "p1", PickupTime: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)}
	evening := &Trip{Passenger: "p1", PickupTime: time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC)}
	other := &Trip{Passenger: "p2", PickupTime: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)}

	trips := []*Trip{evening, morning, other}
	markLastLegs(trips)

	if morning.IsLast {
		t.Fatal("expected the morning trip not to be marked as last")
	}
	if !evening.IsLast {
		t.Fatal("expected the evening trip to be marked as last")
	}
	if other.IsLast {
		t.Fatal("a single-trip passenger should never be marked as last")
	}
}
