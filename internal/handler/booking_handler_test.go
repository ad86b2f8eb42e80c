package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookingBody = `{"schedule_id":"s1","seats":["1A","1B"],"passenger_name":"Meera","passenger_email":"meera@example.com","passenger_phone":"9000000003"}`

func confirmedBooking() *models.Booking {
	return &models.Booking{
		ID:         "b-1",
		AccountID:  models.GuestAccountID,
		ScheduleID: "s1",
		Seats:      []string{"1A", "1B"},
		Amount:     2400,
		Status:     models.StatusConfirmed,
		CreatedAt:  time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC),
	}
}

func TestCreateBooking_Handler_Success(t *testing.T) {
	svc := &mockTicketService{
		createBookingFn: func(ctx context.Context, req service.BookingRequest) (*models.Booking, error) {
			assert.Equal(t, "s1", req.ScheduleID)
			assert.Equal(t, []string{"1A", "1B"}, req.SeatNumbers)
			assert.Equal(t, "Meera", req.PassengerName)
			assert.Empty(t, req.AccountID)
			return confirmedBooking(), nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/v1/bookings", bookingBody)

	err := NewBookingHandler(svc).CreateBooking(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2400), resp.Amount)
	assert.Equal(t, models.StatusConfirmed, resp.Status)
}

func TestCreateBooking_Handler_CreditsTokenAccount(t *testing.T) {
	svc := &mockTicketService{
		createBookingFn: func(ctx context.Context, req service.BookingRequest) (*models.Booking, error) {
			b := confirmedBooking()
			b.AccountID = req.AccountID
			return b, nil
		},
	}
	tokens := testTokens()
	c, rec := newContext(http.MethodPost, "/api/v1/bookings", bookingBody)
	authorize(t, c, &models.Session{ID: "u-7", Role: models.RoleTraveler})

	require.NoError(t, tokens.OptionalAuth(NewBookingHandler(svc).CreateBooking)(c))

	var resp models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u-7", resp.AccountID)
}

func TestCreateBooking_Handler_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"schedule missing", service.ErrScheduleNotFound, http.StatusNotFound},
		{"seat taken", service.ErrSeatUnavailable, http.StatusConflict},
		{"no seats", service.ErrNoSeatsSelected, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTicketService{
				createBookingFn: func(ctx context.Context, req service.BookingRequest) (*models.Booking, error) {
					return nil, tt.err
				},
			}
			c, _ := newContext(http.MethodPost, "/api/v1/bookings", bookingBody)
			assert.Equal(t, tt.want, httpCode(NewBookingHandler(svc).CreateBooking(c)))
		})
	}
}

func TestCreateBooking_Handler_EmptySeats(t *testing.T) {
	body := `{"schedule_id":"s1","seats":[],"passenger_name":"Meera","passenger_email":"meera@example.com","passenger_phone":"1"}`
	c, _ := newContext(http.MethodPost, "/api/v1/bookings", body)

	err := NewBookingHandler(nil).CreateBooking(c)

	assert.Equal(t, http.StatusBadRequest, httpCode(err))
}

func cancelRequest(t *testing.T, svc *mockTicketService, id string, caller *models.Session) (*httptest.ResponseRecorder, error) {
	t.Helper()
	tokens := testTokens()
	c, rec := newContext(http.MethodDelete, "/api/v1/bookings/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	if caller != nil {
		authorize(t, c, caller)
	}
	return rec, tokens.RequireAuth(NewBookingHandler(svc).CancelBooking)(c)
}

func TestCancelBooking_Handler(t *testing.T) {
	owned := confirmedBooking()
	owned.AccountID = "u-1"
	svc := &mockTicketService{
		getBookingFn: func(id string) (*models.Booking, error) {
			if id != "b-1" {
				return nil, service.ErrBookingNotFound
			}
			return owned, nil
		},
		cancelBookingFn: func(ctx context.Context, id string) (*models.Booking, error) {
			b := *owned
			b.Status = models.StatusCancelled
			return &b, nil
		},
	}
	traveler := &models.Session{ID: "u-1", Role: models.RoleTraveler}

	rec, err := cancelRequest(t, svc, "b-1", traveler)
	require.NoError(t, err)
	var resp models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusCancelled, resp.Status)

	_, err = cancelRequest(t, svc, "nope", traveler)
	assert.Equal(t, http.StatusNotFound, httpCode(err))
}

func TestCancelBooking_Handler_Ownership(t *testing.T) {
	cancelled := 0
	svc := &mockTicketService{
		getBookingFn: func(id string) (*models.Booking, error) {
			b := confirmedBooking()
			b.AccountID = "u-1"
			return b, nil
		},
		cancelBookingFn: func(ctx context.Context, id string) (*models.Booking, error) {
			cancelled++
			return confirmedBooking(), nil
		},
	}

	_, err := cancelRequest(t, svc, "b-1", nil)
	assert.Equal(t, http.StatusUnauthorized, httpCode(err))

	_, err = cancelRequest(t, svc, "b-1", &models.Session{ID: "u-2", Role: models.RoleTraveler})
	assert.Equal(t, http.StatusForbidden, httpCode(err))
	assert.Zero(t, cancelled)

	_, err = cancelRequest(t, svc, "b-1", &models.Session{ID: "admin1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)
}

func TestCancelBooking_Handler_AlreadyCancelled(t *testing.T) {
	svc := &mockTicketService{
		getBookingFn: func(id string) (*models.Booking, error) {
			b := confirmedBooking()
			b.AccountID = "u-1"
			b.Status = models.StatusCancelled
			return b, nil
		},
		cancelBookingFn: func(ctx context.Context, id string) (*models.Booking, error) {
			return nil, service.ErrBookingCancelled
		},
	}

	_, err := cancelRequest(t, svc, "b-1", &models.Session{ID: "u-1", Role: models.RoleTraveler})

	assert.Equal(t, http.StatusConflict, httpCode(err))
}

func TestGetTicket_Handler_OrphanedBooking(t *testing.T) {
	svc := &mockTicketService{
		getBookingFn:  func(id string) (*models.Booking, error) { return confirmedBooking(), nil },
		getScheduleFn: func(id string) (*models.Schedule, error) { return nil, service.ErrScheduleNotFound },
	}
	c, rec := newContext(http.MethodGet, "/api/v1/bookings/b-1/ticket", "")
	c.SetParamNames("id")
	c.SetParamValues("b-1")

	require.NoError(t, NewBookingHandler(svc).GetTicket(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestListAllBookings_Handler_StatusFilter(t *testing.T) {
	cancelled := confirmedBooking()
	cancelled.ID = "b-2"
	cancelled.Status = models.StatusCancelled
	svc := &mockTicketService{bookings: []models.Booking{*confirmedBooking(), *cancelled}}

	c, rec := newContext(http.MethodGet, "/api/v1/admin/bookings?status=cancelled", "")
	require.NoError(t, NewBookingHandler(svc).ListAllBookings(c))

	var resp []models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "b-2", resp[0].ID)
}

func TestListMyBookings_Handler_WithoutClaims(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/v1/me/bookings", "")

	err := NewBookingHandler(&mockTicketService{}).ListMyBookings(c)

	assert.Equal(t, http.StatusUnauthorized, httpCode(err))
}

func TestRevenue_Handler(t *testing.T) {
	svc := &mockTicketService{report: models.RevenueReport{Schedules: 6, TotalRevenue: 3100}}
	c, rec := newContext(http.MethodGet, "/api/v1/admin/reports/revenue", "")

	require.NoError(t, NewReportHandler(svc).Revenue(c))

	var resp models.RevenueReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3100), resp.TotalRevenue)
}

func TestListAccounts_Handler(t *testing.T) {
	svc := &mockTicketService{accounts: []models.Session{{ID: "admin1", Role: models.RoleAdmin}}}
	c, rec := newContext(http.MethodGet, "/api/v1/admin/accounts", "")

	require.NoError(t, NewReportHandler(svc).ListAccounts(c))

	var resp []models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "admin1", resp[0].ID)
}
