package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Eursukkul/eticket/internal/dto"
	"github.com/Eursukkul/eticket/internal/middleware"
	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/internal/service"
	"github.com/Eursukkul/eticket/internal/ticket"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.TicketService
}

func NewBookingHandler(svc service.TicketService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// RegisterRoutes mounts the booking routes. identified accepts anonymous
// callers but records the token's account when one is sent.
func (h *BookingHandler) RegisterRoutes(public, identified, authed, admin *echo.Group) {
	identified.POST("/bookings", h.CreateBooking)
	public.GET("/bookings/:id", h.GetBooking)
	public.GET("/bookings/:id/ticket", h.GetTicket)

	authed.DELETE("/bookings/:id", h.CancelBooking)
	authed.GET("/me/bookings", h.ListMyBookings)

	admin.GET("/bookings", h.ListAllBookings)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	// Without a token the store credits its current session, then the guest.
	var accountID string
	if claims := middleware.ClaimsFrom(c); claims != nil {
		accountID = claims.UserID
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.BookingRequest{
		AccountID:      accountID,
		ScheduleID:     req.ScheduleID,
		SeatNumbers:    req.Seats,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		PassengerPhone: req.PassengerPhone,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// CancelBooking is allowed for the booking's owner and for administrators.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization token missing")
	}

	existing, err := h.svc.GetBooking(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	if claims.Role != models.RoleAdmin && existing.AccountID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "booking belongs to another account")
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), existing.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

// GetTicket renders the booking as a PDF, including bookings whose schedule
// was deleted.
func (h *BookingHandler) GetTicket(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	sch, err := h.svc.GetSchedule(booking.ScheduleID)
	if err != nil && !errors.Is(err, service.ErrScheduleNotFound) {
		return toHTTPError(err)
	}

	pdf, err := ticket.Generate(booking, sch)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", booking.ID+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization token missing")
	}
	return c.JSON(http.StatusOK, h.svc.BookingsForAccount(claims.UserID))
}

func (h *BookingHandler) ListAllBookings(c echo.Context) error {
	bookings := h.svc.Bookings()
	if s := c.QueryParam("status"); s != "" {
		filtered := make([]models.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == models.BookingStatus(s) {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}
	return c.JSON(http.StatusOK, bookings)
}
