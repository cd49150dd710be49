package scheduler

import (
	"fmt"
	"time"

	"shuttlesched/models"
)

const clockFormat = "3:04 PM"

// assemble renders a completed plan into the response envelope. When debug
// is set, message carries a per-bucket trip count summary; status, error_code
// and data are unaffected either way.
func assemble(plan []*Vehicle, buckets [3][]*Trip, debug bool) *models.ScheduleResponse {
	vehicles := make([]models.VehicleOutput, 0, len(plan))
	for _, v := range plan {
		vehicles = append(vehicles, renderVehicle(v))
	}

	message := ""
	if debug {
		message = fmt.Sprintf("buckets: stretcher=%d wheelchair=%d ambulatory=%d, vehicles=%d",
			len(buckets[0]), len(buckets[1]), len(buckets[2]), len(plan))
	}

	return &models.ScheduleResponse{
		Result: models.ScheduleResult{
			Status:    "OK",
			ErrorCode: 0,
			Message:   message,
			Data: models.ScheduleData{
				VehicleTripList: vehicles,
			},
		},
	}
}

func renderVehicle(v *Vehicle) models.VehicleOutput {
	trips := make([]models.TripOutput, 0, len(v.Trips))
	for _, t := range v.Trips {
		trips = append(trips, renderTrip(t))
	}
	return models.VehicleOutput{
		ShuttleName: v.Name(),
		Trips:       trips,
	}
}

func renderTrip(t *Trip) models.TripOutput {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		loc = time.UTC
	}

	pickup := t.AdjustedPickupTime
	dropoff := t.Dropoff()

	b := *t.Booking
	pickupClock := pickup.In(loc).Format(clockFormat)
	dropoffClock := dropoff.In(loc).Format(clockFormat)
	b.ScheduledPickupTime = pickupClock
	b.ScheduledDropoffTime = dropoffClock
	b.ActualPickupTime = nil
	b.ActualDropoffTime = nil
	b.DriverArrivalTime = nil
	b.DriverArrivalNote = nil

	return models.TripOutput{
		FirstPickupTime:       pickupClock,
		LastDropoffTime:       dropoffClock,
		FirstPickupCoordinate: b.PickupCoordinate,
		LastDropoffCoordinate: b.DropoffCoordinate,
		Bookings:              []models.Booking{b},
		DriverArrivalTime:     nil,
		ActionRequired:        nil,
	}
}
