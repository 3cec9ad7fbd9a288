package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/middleware/auth"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/service"
)

type TransactionHTTP struct {
	Svc *service.TransactionService
}

func (h *TransactionHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "transaction.list")

	p := pageFrom(c)
	f := repo.TransactionFilter{
		UserID: auth.UserID(c),
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
	}
	items, total, err := h.Svc.List(ctx, f, p.Offset, p.Limit)
	if err != nil {
		return fail(l, "list_transactions", err)
	}
	return respondList(c, "transactions", items, len(items), total, p, nil)
}

func (h *TransactionHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "transaction.get")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "get_transaction", err)
	}
	txn, err := h.Svc.Get(ctx, auth.UserID(c), id)
	if err != nil {
		return fail(l, "get_transaction", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"transaction": txn})
}

func (h *TransactionHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "transaction.stats")

	stats, err := h.Svc.Stats(ctx, auth.UserID(c))
	if err != nil {
		return fail(l, "transaction_stats", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"stats": stats})
}
