package handler

import (
	"net/http"

	"github.com/Eursukkul/eticket/internal/service"
	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	svc service.TicketService
}

func NewReportHandler(svc service.TicketService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/reports/revenue", h.Revenue)
	admin.GET("/accounts", h.ListAccounts)
}

func (h *ReportHandler) Revenue(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.RevenueReport())
}

func (h *ReportHandler) ListAccounts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Accounts())
}
