package service

import (
	"context"

	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/pkg/logger"
)

// BookingRequest describes a reservation. AccountID is optional: when empty
// the booking is credited to the current session, or to the guest account
// when nobody is signed in.
type BookingRequest struct {
	AccountID      string
	ScheduleID     string
	SeatNumbers    []string
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
}

// CreateBooking reserves the requested seats on a schedule. The amount is
// fixed at the current price times the number of seats.
func (s *Store) CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	s.mu.Lock()
	defer s.unlockAndPublish()

	i := s.scheduleIndex(req.ScheduleID)
	if i < 0 {
		return nil, ErrScheduleNotFound
	}
	sch := s.schedules[i]

	if s.opts.StrictSeats {
		if err := s.checkSeatsAvailable(sch.ID, req.SeatNumbers); err != nil {
			return nil, err
		}
	}

	accountID := req.AccountID
	if accountID == "" {
		accountID = models.GuestAccountID
		if s.session != nil {
			accountID = s.session.ID
		}
	}

	seatNumbers := make([]string, len(req.SeatNumbers))
	copy(seatNumbers, req.SeatNumbers)

	booking := models.Booking{
		ID:             s.newID("b"),
		AccountID:      accountID,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		PassengerPhone: req.PassengerPhone,
		ScheduleID:     sch.ID,
		Seats:          seatNumbers,
		Amount:         sch.Price * int64(len(seatNumbers)),
		Status:         models.StatusConfirmed,
		CreatedAt:      s.now().UTC(),
	}
	s.bookings = append(s.bookings, booking)

	for j := range s.seats {
		seat := &s.seats[j]
		if seat.ScheduleID == sch.ID && booking.HasSeat(seat.SeatNumber) {
			seat.Status = models.SeatBooked
			seat.BookingID = booking.ID
		}
	}
	s.persist(ctx, KeyBookings, KeySeats)
	s.publish(EventBookingCreated, *copyBooking(&booking))

	logger.Log.Info("[store] booking confirmed",
		"booking_id", booking.ID,
		"schedule_id", sch.ID,
		"seats", len(seatNumbers),
		"amount", booking.Amount,
	)
	return copyBooking(&booking), nil
}

// checkSeatsAvailable requires every requested seat to exist on the schedule,
// be available and appear once.
func (s *Store) checkSeatsAvailable(scheduleID string, seatNumbers []string) error {
	if len(seatNumbers) == 0 {
		return ErrNoSeatsSelected
	}
	status := make(map[string]models.SeatStatus)
	for _, seat := range s.seats {
		if seat.ScheduleID == scheduleID {
			status[seat.SeatNumber] = seat.Status
		}
	}
	seen := make(map[string]bool, len(seatNumbers))
	for _, n := range seatNumbers {
		if seen[n] || status[n] != models.SeatAvailable {
			return ErrSeatUnavailable
		}
		seen[n] = true
	}
	return nil
}

// CancelBooking marks the booking cancelled and releases its seats. An
// unknown id returns ErrBookingNotFound and an already cancelled booking
// returns ErrBookingCancelled; neither changes anything.
func (s *Store) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.unlockAndPublish()

	i := s.bookingIndex(id)
	if i < 0 {
		return nil, ErrBookingNotFound
	}
	booking := &s.bookings[i]
	if booking.Status == models.StatusCancelled {
		return nil, ErrBookingCancelled
	}
	booking.Status = models.StatusCancelled

	for j := range s.seats {
		seat := &s.seats[j]
		if seat.ScheduleID != booking.ScheduleID || !booking.HasSeat(seat.SeatNumber) {
			continue
		}
		// In strict mode a seat taken over by a later booking stays with it.
		if s.opts.StrictSeats && seat.BookingID != booking.ID {
			continue
		}
		seat.Status = models.SeatAvailable
		seat.BookingID = ""
	}
	s.persist(ctx, KeyBookings, KeySeats)
	s.publish(EventBookingCancelled, *copyBooking(booking))

	logger.Log.Info("[store] booking cancelled", "booking_id", id)
	return copyBooking(booking), nil
}

func (s *Store) GetBooking(id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bookingIndex(id)
	if i < 0 {
		return nil, ErrBookingNotFound
	}
	return copyBooking(&s.bookings[i]), nil
}

func (s *Store) Bookings() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Booking, 0, len(s.bookings))
	for i := range s.bookings {
		out = append(out, *copyBooking(&s.bookings[i]))
	}
	return out
}

func (s *Store) BookingsForAccount(accountID string) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Booking, 0)
	for i := range s.bookings {
		if s.bookings[i].AccountID == accountID {
			out = append(out, *copyBooking(&s.bookings[i]))
		}
	}
	return out
}

func (s *Store) bookingIndex(id string) int {
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func copyBooking(b *models.Booking) *models.Booking {
	c := *b
	c.Seats = append([]string(nil), b.Seats...)
	return &c
}
