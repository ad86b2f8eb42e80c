package handler

import (
	"net/http"

	"github.com/Eursukkul/eticket/internal/dto"
	"github.com/Eursukkul/eticket/internal/service"
	"github.com/labstack/echo/v4"
)

type ScheduleHandler struct {
	svc service.TicketService
}

func NewScheduleHandler(svc service.TicketService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

func (h *ScheduleHandler) RegisterRoutes(public, admin *echo.Group) {
	public.GET("/schedules", h.SearchSchedules)
	public.GET("/schedules/:id", h.GetSchedule)
	public.GET("/schedules/:id/seats", h.ListSeats)

	admin.POST("/schedules", h.CreateSchedule)
	admin.PUT("/schedules/:id", h.UpdateSchedule)
	admin.DELETE("/schedules/:id", h.DeleteSchedule)
	admin.PATCH("/schedules/:id/price", h.SetPrice)
}

func (h *ScheduleHandler) SearchSchedules(c echo.Context) error {
	schedules := h.svc.SearchSchedules(service.ScheduleFilter{
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		Date:        c.QueryParam("date"),
	})

	resp := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		resp[i] = dto.ToScheduleResponse(&schedules[i], h.svc.Availability(schedules[i].ID))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	sch, err := h.svc.GetSchedule(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToScheduleResponse(sch, h.svc.Availability(sch.ID)))
}

func (h *ScheduleHandler) ListSeats(c echo.Context) error {
	seats, err := h.svc.SeatsForSchedule(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, seats)
}

func (h *ScheduleHandler) CreateSchedule(c echo.Context) error {
	var req dto.ScheduleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sch := h.svc.CreateSchedule(c.Request().Context(), req.ToInput())
	return c.JSON(http.StatusCreated, dto.ToScheduleResponse(sch, h.svc.Availability(sch.ID)))
}

func (h *ScheduleHandler) UpdateSchedule(c echo.Context) error {
	var req dto.ScheduleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sch, err := h.svc.UpdateSchedule(c.Request().Context(), req.ToInput().WithID(c.Param("id")))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToScheduleResponse(sch, h.svc.Availability(sch.ID)))
}

func (h *ScheduleHandler) DeleteSchedule(c echo.Context) error {
	if err := h.svc.DeleteSchedule(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ScheduleHandler) SetPrice(c echo.Context) error {
	var req dto.PriceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sch, err := h.svc.SetSchedulePrice(c.Request().Context(), c.Param("id"), *req.Price)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToScheduleResponse(sch, h.svc.Availability(sch.ID)))
}
