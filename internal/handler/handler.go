package handler

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/eticket/internal/middleware"
	"github.com/Eursukkul/eticket/internal/service"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the whole API on e.
func RegisterRoutes(e *echo.Echo, svc service.TicketService, tokens *middleware.TokenIssuer) {
	api := e.Group("/api/v1")
	identified := api.Group("", tokens.OptionalAuth)
	authed := api.Group("", tokens.RequireAuth)
	admin := api.Group("/admin", tokens.RequireAuth, middleware.AdminOnly)

	NewAuthHandler(svc, tokens).RegisterRoutes(api.Group("/auth"))
	NewScheduleHandler(svc).RegisterRoutes(api, admin)
	NewBookingHandler(svc).RegisterRoutes(api, identified, authed, admin)
	NewReportHandler(svc).RegisterRoutes(admin)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}

// toHTTPError maps store errors onto status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrScheduleNotFound), errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSeatUnavailable), errors.Is(err, service.ErrBookingCancelled):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoSeatsSelected):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
