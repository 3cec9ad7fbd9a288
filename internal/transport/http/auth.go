package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/middleware/auth"
	"github.com/Skotchmaster/freshcart/internal/service"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func authBody(res *service.AuthResult) echo.Map {
	return echo.Map{"user": res.User, "tokens": res.Tokens}
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "signup", err)
	}
	res, err := h.Svc.Signup(ctx, req)
	if err != nil {
		return fail(l, "signup", err)
	}

	l.Info("signup_success", "user_id", res.User.ID.String())
	return respond(c, http.StatusCreated, "User registered successfully", authBody(res))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "login", err)
	}
	res, err := h.Svc.Login(ctx, req.Login(), req.Password)
	if err != nil {
		return fail(l, "login", err)
	}

	l.Info("login_success", "user_id", res.User.ID.String())
	return respond(c, http.StatusOK, "Login successful", authBody(res))
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	var req transport.RefreshRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "refresh", err)
	}
	res, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return fail(l, "refresh", err)
	}

	l.Info("refresh_success")
	return respond(c, http.StatusOK, "", echo.Map{"tokens": res.Tokens})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	var req transport.RefreshRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "logout", err)
	}
	if err := h.Svc.Logout(ctx, req.RefreshToken); err != nil {
		return fail(l, "logout", err)
	}

	l.Info("logout_success")
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHTTP) Me(c echo.Context) error {
	return respond(c, http.StatusOK, "", echo.Map{"user": auth.CurrentUser(c)})
}
