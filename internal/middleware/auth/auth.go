package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/tokens"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

type UserLoader interface {
	ActiveUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Bearer verifies the HS256 access token from the Authorization header.
func Bearer(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    tokenKey,
		TokenLookup:   "header:Authorization:Bearer ",
		NewClaimsFunc: func(echo.Context) jwt.Claims { return new(tokens.AccessClaims) },
		ErrorHandler: func(c echo.Context, err error) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "auth.bearer")
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				l.Warn("auth_error", "status", 401, "reason", "missing token")
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}
			l.Warn("auth_error", "status", 401, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
		},
	})
}

// LoadUser resolves the token subject to an active user. Must run after Bearer.
func LoadUser(users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenKey).(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}
			claims, ok := token.Claims.(*tokens.AccessClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}
			id, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			req := c.Request()
			user, err := users.ActiveUser(req.Context(), id)
			if err != nil {
				return err
			}
			c.Set(userKey, user)

			l := logging.FromContext(req.Context()).With("user_id", user.ID.String())
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))
			return next(c)
		}
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			logging.FromContext(c.Request().Context()).Warn("auth_error", "status", 403, "reason", "admin only")
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized as admin")
		}
		return next(c)
	}
}

func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}

// UserID returns uuid.Nil when the request is unauthenticated.
func UserID(c echo.Context) uuid.UUID {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return uuid.Nil
}
