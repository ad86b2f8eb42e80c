package models

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
)

type Seat struct {
	ID         string     `json:"id"`
	ScheduleID string     `json:"schedule_id"`
	SeatNumber string     `json:"seat_number"`
	Status     SeatStatus `json:"status"`
	// BookingID is the booking currently holding the seat, empty while available.
	BookingID string `json:"booking_id,omitempty"`
}
