package service

import (
	"context"
	"strings"

	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/pkg/logger"
)

// ScheduleFilter matches origin and destination by case-insensitive
// substring and date exactly. Empty fields match everything.
type ScheduleFilter struct {
	Origin      string
	Destination string
	Date        string
}

func (f ScheduleFilter) matches(sch *models.Schedule) bool {
	if f.Origin != "" && !containsFold(sch.Origin, f.Origin) {
		return false
	}
	if f.Destination != "" && !containsFold(sch.Destination, f.Destination) {
		return false
	}
	return f.Date == "" || sch.Date == f.Date
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// CreateSchedule appends the schedule together with its full seat set.
func (s *Store) CreateSchedule(ctx context.Context, in models.ScheduleInput) *models.Schedule {
	s.mu.Lock()
	defer s.unlockAndPublish()

	sch := in.WithID(s.newID("s"))
	s.schedules = append(s.schedules, sch)
	s.seats = append(s.seats, GenerateSeats(sch.ID, sch.TotalSeats)...)
	s.persist(ctx, KeySchedules, KeySeats)
	s.publish(EventScheduleCreated, sch)

	logger.Log.Info("[store] schedule created", "schedule_id", sch.ID, "seats", sch.TotalSeats)
	return &sch
}

// UpdateSchedule replaces the stored schedule with the same id. The seat set
// is kept as generated, even if TotalSeats changed.
func (s *Store) UpdateSchedule(ctx context.Context, sch models.Schedule) (*models.Schedule, error) {
	s.mu.Lock()
	defer s.unlockAndPublish()

	i := s.scheduleIndex(sch.ID)
	if i < 0 {
		return nil, ErrScheduleNotFound
	}
	s.schedules[i] = sch
	s.persist(ctx, KeySchedules)
	s.publish(EventScheduleUpdated, sch)
	return &sch, nil
}

// DeleteSchedule removes the schedule and its seats. Bookings that refer to
// it are kept.
func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.unlockAndPublish()

	i := s.scheduleIndex(id)
	if i < 0 {
		return ErrScheduleNotFound
	}
	deleted := s.schedules[i]
	s.schedules = append(s.schedules[:i:i], s.schedules[i+1:]...)

	kept := make([]models.Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		if seat.ScheduleID != id {
			kept = append(kept, seat)
		}
	}
	s.seats = kept
	s.persist(ctx, KeySchedules, KeySeats)
	s.publish(EventScheduleDeleted, deleted)

	logger.Log.Info("[store] schedule deleted", "schedule_id", id)
	return nil
}

func (s *Store) SetSchedulePrice(ctx context.Context, id string, price int64) (*models.Schedule, error) {
	s.mu.Lock()
	defer s.unlockAndPublish()

	i := s.scheduleIndex(id)
	if i < 0 {
		return nil, ErrScheduleNotFound
	}
	s.schedules[i].Price = price
	sch := s.schedules[i]
	s.persist(ctx, KeySchedules)
	s.publish(EventSchedulePriceChange, sch)
	return &sch, nil
}

func (s *Store) GetSchedule(id string) (*models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.scheduleIndex(id)
	if i < 0 {
		return nil, ErrScheduleNotFound
	}
	sch := s.schedules[i]
	return &sch, nil
}

func (s *Store) Schedules() []models.Schedule {
	return s.SearchSchedules(ScheduleFilter{})
}

func (s *Store) SearchSchedules(filter ScheduleFilter) []models.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Schedule, 0, len(s.schedules))
	for i := range s.schedules {
		if filter.matches(&s.schedules[i]) {
			out = append(out, s.schedules[i])
		}
	}
	return out
}

func (s *Store) Seats() []models.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

// SeatsForSchedule returns the seats of a schedule in creation order.
func (s *Store) SeatsForSchedule(id string) ([]models.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduleIndex(id) < 0 {
		return nil, ErrScheduleNotFound
	}
	out := make([]models.Seat, 0)
	for _, seat := range s.seats {
		if seat.ScheduleID == id {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (s *Store) Availability(id string) models.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()

	av := models.Availability{ScheduleID: id}
	for _, seat := range s.seats {
		if seat.ScheduleID != id {
			continue
		}
		switch seat.Status {
		case models.SeatAvailable:
			av.Available++
		case models.SeatBooked:
			av.Booked++
		}
	}
	return av
}

func (s *Store) scheduleIndex(id string) int {
	for i := range s.schedules {
		if s.schedules[i].ID == id {
			return i
		}
	}
	return -1
}
