package models

// ScheduleResponse is the response envelope returned by both the
// synchronous endpoint and, embedded, by a completed task.
type ScheduleResponse struct {
	Result ScheduleResult `json:"result"`
}

type ScheduleResult struct {
	Status    string       `json:"status"`
	ErrorCode int          `json:"error_code"`
	Message   string       `json:"message"`
	Data      ScheduleData `json:"data"`
}

type ScheduleData struct {
	VehicleTripList []VehicleOutput `json:"vehicle_trip_list"`
}

// VehicleOutput is one shuttle's row in the plan. The identity fields are
// always null: this system does not assign a real shuttle or driver to a
// plan.
type VehicleOutput struct {
	ShuttleName string       `json:"shuttle_name"`
	ShuttleID   *string      `json:"shuttle_id"`
	DriverID    *string      `json:"driver_id"`
	DriverName  *string      `json:"driver_name"`
	DriverPhone *string      `json:"driver_phone"`
	Trips       []TripOutput `json:"trips"`
}

// TripOutput is one assigned trip within a vehicle's row.
type TripOutput struct {
	FirstPickupTime       string      `json:"first_pickup_time"`
	LastDropoffTime       string      `json:"last_dropoff_time"`
	FirstPickupCoordinate *Coordinate `json:"first_pickup_coordinate,omitempty"`
	LastDropoffCoordinate *Coordinate `json:"last_dropoff_coordinate,omitempty"`
	Bookings              []Booking   `json:"bookings"`
	DriverArrivalTime     *string     `json:"driver_arrival_time"`
	ActionRequired        *string     `json:"action_required"`
}

// EnqueueResponse is returned by POST .../enqueue.
type EnqueueResponse struct {
	TaskID string `json:"taskId"`
}

// TaskStatusResponse is returned by GET .../{taskId}.
type TaskStatusResponse struct {
	TaskID string            `json:"taskId"`
	Status TaskStatus        `json:"status"`
	Result *ScheduleResponse `json:"result,omitempty"`
	Error  *string           `json:"error,omitempty"`
}
