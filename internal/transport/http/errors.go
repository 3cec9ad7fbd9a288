package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/service"
	"github.com/Skotchmaster/freshcart/internal/upload"
	"github.com/Skotchmaster/freshcart/internal/validation"
)

const internalMessage = "Internal server error"

// classify maps err to a status, a client-safe message and field errors.
func classify(err error) (int, string, validation.Errors) {
	var (
		verrs validation.Errors
		serr  *service.Error
		herr  *echo.HTTPError
	)
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, "Validation failed", verrs
	case errors.As(err, &serr):
		return kindStatus(serr.Kind), serr.Msg, nil
	case errors.Is(err, upload.ErrUnsupportedType):
		return http.StatusBadRequest, "Only image files are allowed (jpg, jpeg, png, webp, gif)", nil
	case errors.Is(err, upload.ErrTooLarge):
		return http.StatusBadRequest, "File too large", nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Resource not found", nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusBadRequest, "Duplicate value", nil
	case errors.As(err, &herr):
		msg, ok := herr.Message.(string)
		if !ok {
			msg = fmt.Sprint(herr.Message)
		}
		if herr.Code >= http.StatusInternalServerError {
			msg = internalMessage
		}
		return herr.Code, msg, nil
	default:
		return http.StatusInternalServerError, internalMessage, nil
	}
}

func kindStatus(kind error) int {
	switch kind {
	case service.ErrValidation, service.ErrConflict:
		return http.StatusBadRequest
	case service.ErrUnauthorized:
		return http.StatusUnauthorized
	case service.ErrForbidden:
		return http.StatusForbidden
	case service.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler writes every error as {success:false, message, errors?}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, msg, fields := classify(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", status, "error", err)
	}

	body := echo.Map{"success": false, "message": msg}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response", "error", err)
	}
}
