package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/internal/repository"
	"github.com/Eursukkul/eticket/pkg/logger"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email, password or role")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingCancelled   = errors.New("booking is already cancelled")
	ErrSeatUnavailable    = errors.New("one or more seats are not available")
	ErrNoSeatsSelected    = errors.New("no seats selected")
)

// Persisted keys, one per collection.
const (
	KeySession   = "session"
	KeySchedules = "schedules"
	KeySeats     = "seats"
	KeyBookings  = "bookings"
	KeyAccounts  = "accounts"
)

// Routing keys of the domain events published after each mutation.
const (
	EventAccountRegistered   = "account.registered"
	EventScheduleCreated     = "schedule.created"
	EventScheduleUpdated     = "schedule.updated"
	EventScheduleDeleted     = "schedule.deleted"
	EventSchedulePriceChange = "schedule.price_changed"
	EventBookingCreated      = "booking.created"
	EventBookingCancelled    = "booking.cancelled"
)

type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type Options struct {
	// StrictSeats makes CreateBooking reject seats that are not available and
	// makes CancelBooking release only the seats held by the cancelled booking.
	StrictSeats bool
}

type TicketService interface {
	Authenticate(ctx context.Context, email, password string, role models.Role) (*models.Session, error)
	Register(ctx context.Context, name, email, phone, password string) (*models.Session, error)
	Logout(ctx context.Context)
	CurrentSession() *models.Session
	Accounts() []models.Session

	CreateSchedule(ctx context.Context, in models.ScheduleInput) *models.Schedule
	UpdateSchedule(ctx context.Context, sch models.Schedule) (*models.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	SetSchedulePrice(ctx context.Context, id string, price int64) (*models.Schedule, error)
	GetSchedule(id string) (*models.Schedule, error)
	SearchSchedules(filter ScheduleFilter) []models.Schedule
	SeatsForSchedule(id string) ([]models.Seat, error)
	Availability(id string) models.Availability

	CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBooking(id string) (*models.Booking, error)
	Bookings() []models.Booking
	BookingsForAccount(accountID string) []models.Booking

	RevenueReport() models.RevenueReport
}

// Store owns every collection of the ticketing domain and writes each one
// back to the KV repository after it changes.
type Store struct {
	mu        sync.Mutex
	kv        repository.KVRepository
	publisher EventPublisher
	opts      Options
	now       func() time.Time
	newID     func(prefix string) string

	// pending holds events raised under mu; unlockAndPublish sends them.
	pending []pendingEvent

	session   *models.Session
	schedules []models.Schedule
	seats     []models.Seat
	bookings  []models.Booking
	accounts  []models.Account
}

// NewStore returns a store holding the seed dataset. Call Load to rehydrate
// it from kv. A nil publisher disables domain events.
func NewStore(kv repository.KVRepository, publisher EventPublisher, opts Options) *Store {
	return &Store{
		kv:        kv,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
		newID:     func(prefix string) string { return prefix + "-" + uuid.NewString() },
		schedules: seedSchedules(),
		seats:     seedSeats(),
		bookings:  []models.Booking{},
		accounts:  seedAccounts(),
	}
}

var _ TicketService = (*Store)(nil)

// Load replaces every collection with its persisted value. Missing or
// unreadable values fall back to the seed dataset.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = loadKey[*models.Session](ctx, s.kv, KeySession, nil)
	s.schedules = loadKey(ctx, s.kv, KeySchedules, seedSchedules())
	s.seats = loadKey(ctx, s.kv, KeySeats, seedSeats())
	if len(s.seats) == 0 {
		s.seats = seedSeats()
	}
	s.bookings = loadKey(ctx, s.kv, KeyBookings, []models.Booking{})
	s.accounts = loadKey(ctx, s.kv, KeyAccounts, seedAccounts())

	logger.Log.Info("[store] loaded",
		"schedules", len(s.schedules),
		"seats", len(s.seats),
		"bookings", len(s.bookings),
		"accounts", len(s.accounts),
	)
}

// Flush writes every collection and reports the failures.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range []string{KeySession, KeySchedules, KeySeats, KeyBookings, KeyAccounts} {
		if err := s.write(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func loadKey[T any](ctx context.Context, kv repository.KVRepository, key string, fallback T) T {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		logger.Log.Warn("[store] read failed, using defaults", "key", key, "error", err)
		return fallback
	}
	if !ok || len(raw) == 0 {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Log.Warn("[store] decode failed, using defaults", "key", key, "error", err)
		return fallback
	}
	return v
}

// persist writes the given collections. Failures are logged only; the
// in-memory state stays authoritative.
func (s *Store) persist(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.write(ctx, key); err != nil {
			logger.Log.Error("[store] persist failed", "key", key, "error", err)
		}
	}
}

func (s *Store) write(ctx context.Context, key string) error {
	var v any
	switch key {
	case KeySession:
		v = s.session
	case KeySchedules:
		v = s.schedules
	case KeySeats:
		v = s.seats
	case KeyBookings:
		v = s.bookings
	case KeyAccounts:
		v = s.accounts
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, raw)
}

type pendingEvent struct {
	routingKey string
	payload    any
}

// publish queues an event. Callers hold mu and release it with
// unlockAndPublish.
func (s *Store) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	s.pending = append(s.pending, pendingEvent{routingKey: routingKey, payload: payload})
}

func (s *Store) unlockAndPublish() {
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, ev := range events {
		if err := s.publisher.Publish(ev.routingKey, ev.payload); err != nil {
			logger.Log.Warn("[store] publish failed", "routing_key", ev.routingKey, "error", err)
		}
	}
}
