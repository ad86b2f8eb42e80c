package models

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// GuestAccountID is recorded on bookings made without a session.
const GuestAccountID = "guest"

type Booking struct {
	ID             string        `json:"id"`
	AccountID      string        `json:"account_id"`
	PassengerName  string        `json:"passenger_name"`
	PassengerEmail string        `json:"passenger_email"`
	PassengerPhone string        `json:"passenger_phone"`
	ScheduleID     string        `json:"schedule_id"`
	Seats          []string      `json:"seats"`
	Amount         int64         `json:"amount"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// HasSeat reports whether seatNumber is part of the booking.
func (b *Booking) HasSeat(seatNumber string) bool {
	for _, s := range b.Seats {
		if s == seatNumber {
			return true
		}
	}
	return false
}
