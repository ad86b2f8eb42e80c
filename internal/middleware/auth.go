package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "session_claims"

var ErrInvalidToken = errors.New("invalid or expired token")

type SessionClaims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Issue(sess *models.Session) (string, error) {
	now := t.now()
	claims := SessionClaims{
		UserID: sess.ID,
		Email:  sess.Email,
		Role:   sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid Bearer token and stores the
// claims on the context.
func (t *TokenIssuer) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "authorization token missing")
		}
		if err := t.authenticate(c, tokenString); err != nil {
			return err
		}
		return next(c)
	}
}

// OptionalAuth lets anonymous requests through but still rejects a token
// that is present and invalid.
func (t *TokenIssuer) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if tokenString, ok := bearerToken(c); ok {
			if err := t.authenticate(c, tokenString); err != nil {
				return err
			}
		}
		return next(c)
	}
}

func (t *TokenIssuer) authenticate(c echo.Context, tokenString string) error {
	claims, err := t.Parse(tokenString)
	if err != nil {
		logger.Log.Warn("[auth] token rejected", "path", c.Path(), "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error())
	}
	c.Set(claimsContextKey, claims)
	return nil
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	return tokenString, ok && tokenString != ""
}

// AdminOnly must run after RequireAuth.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "administrator role required")
		}
		return next(c)
	}
}

func ClaimsFrom(c echo.Context) *SessionClaims {
	claims, _ := c.Get(claimsContextKey).(*SessionClaims)
	return claims
}
