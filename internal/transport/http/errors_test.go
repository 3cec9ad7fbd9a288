package httpserver

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/freshcart/internal/service"
	"github.com/Skotchmaster/freshcart/internal/upload"
	"github.com/Skotchmaster/freshcart/internal/validation"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", validation.Errors{{Field: "email", Message: "is required"}}, 400, "Validation failed"},
		{"not found", &service.Error{Kind: service.ErrNotFound, Msg: "Order not found"}, 404, "Order not found"},
		{"conflict", &service.Error{Kind: service.ErrConflict, Msg: "Order has already been rated"}, 400, "Order has already been rated"},
		{"unauthorized", &service.Error{Kind: service.ErrUnauthorized, Msg: "Invalid credentials"}, 401, "Invalid credentials"},
		{"forbidden", &service.Error{Kind: service.ErrForbidden, Msg: "nope"}, 403, "nope"},
		{"upload type", upload.ErrUnsupportedType, 400, "Only image files are allowed (jpg, jpeg, png, webp, gif)"},
		{"record", gorm.ErrRecordNotFound, 404, "Resource not found"},
		{"http", echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), 429, "slow down"},
		{"http 5xx", echo.NewHTTPError(http.StatusBadGateway, "upstream said x"), 502, internalMessage},
		{"unknown", errors.New("boom"), 500, internalMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, _ := classify(tc.err)
			require.Equal(t, tc.status, status)
			require.Equal(t, tc.msg, msg)
		})
	}
}
