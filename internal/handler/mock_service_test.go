package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Eursukkul/eticket/internal/middleware"
	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// --- Mock TicketService ---

type mockTicketService struct {
	authenticateFn     func(ctx context.Context, email, password string, role models.Role) (*models.Session, error)
	registerFn         func(ctx context.Context, name, email, phone, password string) (*models.Session, error)
	logoutCalled       bool
	session            *models.Session
	accounts           []models.Session
	createScheduleFn   func(ctx context.Context, in models.ScheduleInput) *models.Schedule
	updateScheduleFn   func(ctx context.Context, sch models.Schedule) (*models.Schedule, error)
	deleteScheduleFn   func(ctx context.Context, id string) error
	setPriceFn         func(ctx context.Context, id string, price int64) (*models.Schedule, error)
	getScheduleFn      func(id string) (*models.Schedule, error)
	searchFn           func(filter service.ScheduleFilter) []models.Schedule
	seatsFn            func(id string) ([]models.Seat, error)
	createBookingFn    func(ctx context.Context, req service.BookingRequest) (*models.Booking, error)
	cancelBookingFn    func(ctx context.Context, id string) (*models.Booking, error)
	getBookingFn       func(id string) (*models.Booking, error)
	bookings           []models.Booking
	bookingsForAccount func(accountID string) []models.Booking
	report             models.RevenueReport
}

func (m *mockTicketService) Authenticate(ctx context.Context, email, password string, role models.Role) (*models.Session, error) {
	return m.authenticateFn(ctx, email, password, role)
}
func (m *mockTicketService) Register(ctx context.Context, name, email, phone, password string) (*models.Session, error) {
	return m.registerFn(ctx, name, email, phone, password)
}
func (m *mockTicketService) Logout(ctx context.Context) { m.logoutCalled = true }
func (m *mockTicketService) CurrentSession() *models.Session { return m.session }
func (m *mockTicketService) Accounts() []models.Session { return m.accounts }
func (m *mockTicketService) Availability(id string) models.Availability {
	return models.Availability{ScheduleID: id, Available: 4}
}
func (m *mockTicketService) CreateSchedule(ctx context.Context, in models.ScheduleInput) *models.Schedule {
	return m.createScheduleFn(ctx, in)
}
func (m *mockTicketService) UpdateSchedule(ctx context.Context, sch models.Schedule) (*models.Schedule, error) {
	return m.updateScheduleFn(ctx, sch)
}
func (m *mockTicketService) DeleteSchedule(ctx context.Context, id string) error {
	return m.deleteScheduleFn(ctx, id)
}
func (m *mockTicketService) SetSchedulePrice(ctx context.Context, id string, price int64) (*models.Schedule, error) {
	return m.setPriceFn(ctx, id, price)
}
func (m *mockTicketService) GetSchedule(id string) (*models.Schedule, error) {
	return m.getScheduleFn(id)
}
func (m *mockTicketService) SearchSchedules(filter service.ScheduleFilter) []models.Schedule {
	return m.searchFn(filter)
}
func (m *mockTicketService) SeatsForSchedule(id string) ([]models.Seat, error) {
	return m.seatsFn(id)
}
func (m *mockTicketService) CreateBooking(ctx context.Context, req service.BookingRequest) (*models.Booking, error) {
	return m.createBookingFn(ctx, req)
}
func (m *mockTicketService) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	return m.cancelBookingFn(ctx, id)
}
func (m *mockTicketService) GetBooking(id string) (*models.Booking, error) {
	return m.getBookingFn(id)
}
func (m *mockTicketService) Bookings() []models.Booking { return m.bookings }
func (m *mockTicketService) BookingsForAccount(accountID string) []models.Booking {
	return m.bookingsForAccount(accountID)
}
func (m *mockTicketService) RevenueReport() models.RevenueReport { return m.report }

// --- Helpers ---

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// authorize attaches a Bearer token for sess to the request.
func authorize(t *testing.T, c echo.Context, sess *models.Session) {
	t.Helper()
	token, err := testTokens().Issue(sess)
	require.NoError(t, err)
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+token)
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusOK
}
