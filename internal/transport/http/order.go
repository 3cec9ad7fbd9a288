package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/middleware/auth"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/service"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Place(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	var req transport.CreateOrderRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "place_order", err)
	}
	order, err := h.Svc.PlaceOrder(ctx, auth.UserID(c), req)
	if err != nil {
		return fail(l, "place_order", err)
	}

	l.Info("place_order_success", "order_id", order.ID.String(), "order_number", order.OrderNumber)
	return respond(c, http.StatusCreated, "Order placed successfully", echo.Map{"order": order})
}

func (h *OrderHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	p := pageFrom(c)
	f := repo.OrderFilter{UserID: auth.UserID(c), Status: c.QueryParam("status")}
	orders, total, err := h.Svc.ListOrders(ctx, f, p.Offset, p.Limit)
	if err != nil {
		return fail(l, "list_orders", err)
	}
	return respondList(c, "orders", orders, len(orders), total, p, nil)
}

// ListAll is the admin view across every user.
func (h *OrderHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_all")

	p := pageFrom(c)
	f := repo.OrderFilter{Status: c.QueryParam("status")}
	orders, total, err := h.Svc.ListOrders(ctx, f, p.Offset, p.Limit)
	if err != nil {
		return fail(l, "list_all_orders", err)
	}
	return respondList(c, "orders", orders, len(orders), total, p, nil)
}

func (h *OrderHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.stats")

	stats, err := h.Svc.Stats(ctx, auth.UserID(c))
	if err != nil {
		return fail(l, "order_stats", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"stats": stats})
}

func (h *OrderHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "get_order", err)
	}
	order, err := h.Svc.GetOrder(ctx, auth.UserID(c), id)
	if err != nil {
		return fail(l, "get_order", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"order": order})
}

func (h *OrderHTTP) Track(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.track")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "track_order", err)
	}
	tracking, err := h.Svc.Track(ctx, auth.UserID(c), id)
	if err != nil {
		return fail(l, "track_order", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"tracking": tracking})
}

func (h *OrderHTTP) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "cancel_order", err)
	}
	var req transport.CancelOrderRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "cancel_order", err)
	}
	order, err := h.Svc.CancelOrder(ctx, auth.UserID(c), id, req.Reason)
	if err != nil {
		return fail(l, "cancel_order", err)
	}

	l.Info("cancel_order_success", "order_id", id.String())
	return respond(c, http.StatusOK, "Order cancelled successfully", echo.Map{"order": order})
}

func (h *OrderHTTP) Reorder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.reorder")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "reorder", err)
	}
	res, err := h.Svc.Reorder(ctx, auth.UserID(c), id)
	if err != nil {
		return fail(l, "reorder", err)
	}

	msg := "Order placed successfully"
	if len(res.Skipped) > 0 {
		msg = "Order placed; some items were unavailable"
	}
	l.Info("reorder_success", "order_id", res.Order.ID.String(), "skipped", len(res.Skipped))
	return respond(c, http.StatusCreated, msg, echo.Map{"order": res.Order, "skippedItems": res.Skipped})
}

func (h *OrderHTTP) Rate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.rate")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "rate_order", err)
	}
	var req transport.RateOrderRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "rate_order", err)
	}
	order, err := h.Svc.RateOrder(ctx, auth.UserID(c), id, req)
	if err != nil {
		return fail(l, "rate_order", err)
	}

	l.Info("rate_order_success", "order_id", id.String(), "rating", req.Rating)
	return respond(c, http.StatusOK, "Thank you for your feedback", echo.Map{"order": order})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "update_order_status", err)
	}
	var req transport.UpdateOrderStatusRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "update_order_status", err)
	}
	order, err := h.Svc.UpdateStatus(ctx, id, req)
	if err != nil {
		return fail(l, "update_order_status", err)
	}

	l.Info("update_order_status_success", "order_id", id.String(), "order_status", order.Status)
	return respond(c, http.StatusOK, "Order status updated", echo.Map{"order": order})
}
