package handler

import (
	"net/http"

	"github.com/Eursukkul/eticket/internal/dto"
	"github.com/Eursukkul/eticket/internal/middleware"
	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc    service.TicketService
	tokens *middleware.TokenIssuer
}

func NewAuthHandler(svc service.TicketService, tokens *middleware.TokenIssuer) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
	g.POST("/register", h.Register)
	g.POST("/logout", h.Logout, h.tokens.RequireAuth)
	g.GET("/session", h.Session, h.tokens.RequireAuth)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sess, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return toHTTPError(err)
	}
	return h.respondWithToken(c, http.StatusOK, sess)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sess, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return toHTTPError(err)
	}
	return h.respondWithToken(c, http.StatusCreated, sess)
}

// Logout ends the store session when it belongs to the caller. Tokens are
// stateless, so the client discards its own.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization token missing")
	}
	if sess := h.svc.CurrentSession(); sess != nil && sess.ID == claims.UserID {
		h.svc.Logout(c.Request().Context())
	}
	return c.NoContent(http.StatusNoContent)
}

// Session returns the caller's account as identified by the token.
func (h *AuthHandler) Session(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization token missing")
	}
	for _, sess := range h.svc.Accounts() {
		if sess.ID == claims.UserID {
			return c.JSON(http.StatusOK, sess)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "account not found")
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, sess *models.Session) error {
	token, err := h.tokens.Issue(sess)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(status, dto.AuthResponse{Session: sess, Token: token})
}
