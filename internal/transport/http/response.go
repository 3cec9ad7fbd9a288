package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/freshcart/internal/util"
)

func respond(c echo.Context, code int, msg string, data echo.Map) error {
	body := echo.Map{"success": true}
	if msg != "" {
		body["message"] = msg
	}
	for k, v := range data {
		body[k] = v
	}
	return c.JSON(code, body)
}

// respondList writes items under key with count, total and pagination.
func respondList(c echo.Context, key string, items any, count int, total int64, p util.Page, extra echo.Map) error {
	data := echo.Map{
		key:          items,
		"count":      count,
		"total":      total,
		"pagination": p.Meta(total),
	}
	for k, v := range extra {
		data[k] = v
	}
	return respond(c, http.StatusOK, "", data)
}

func pageFrom(c echo.Context) util.Page {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	return util.Calculate(page, limit)
}

func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return c.Validate(req)
}

func paramID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name).SetInternal(err)
	}
	return id, nil
}

// fail logs err for op at a level matching its status and passes it on to
// the error handler.
func fail(l *slog.Logger, op string, err error) error {
	status, reason, _ := classify(err)
	if status >= http.StatusInternalServerError {
		l.Error(op+"_error", "status", status, "error", err)
	} else {
		l.Warn(op+"_error", "status", status, "reason", reason, "error", err)
	}
	return err
}
