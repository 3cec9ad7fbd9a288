package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/middleware/auth"
	"github.com/Skotchmaster/freshcart/internal/service"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

type NotificationHTTP struct {
	Svc *service.NotificationService
}

func (h *NotificationHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notification.list")

	unreadOnly, _ := strconv.ParseBool(c.QueryParam("unread"))
	p := pageFrom(c)
	page, err := h.Svc.List(ctx, auth.UserID(c), unreadOnly, p.Offset, p.Limit)
	if err != nil {
		return fail(l, "list_notifications", err)
	}
	return respondList(c, "notifications", page.Items, len(page.Items), page.Total, p,
		echo.Map{"unreadCount": page.UnreadCount})
}

func (h *NotificationHTTP) UnreadCount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notification.unread_count")

	n, err := h.Svc.UnreadCount(ctx, auth.UserID(c))
	if err != nil {
		return fail(l, "unread_count", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"unreadCount": n})
}

func (h *NotificationHTTP) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notification.mark_read")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "mark_read", err)
	}
	n, err := h.Svc.MarkRead(ctx, auth.UserID(c), id)
	if err != nil {
		return fail(l, "mark_read", err)
	}
	return respond(c, http.StatusOK, "Notification marked as read", echo.Map{"notification": n})
}

func (h *NotificationHTTP) MarkAllRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notification.mark_all_read")

	n, err := h.Svc.MarkAllRead(ctx, auth.UserID(c))
	if err != nil {
		return fail(l, "mark_all_read", err)
	}

	l.Info("mark_all_read_success", "updated", n)
	return respond(c, http.StatusOK, "All notifications marked as read", echo.Map{"updated": n})
}

func (h *NotificationHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notification.delete")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "delete_notification", err)
	}
	if err := h.Svc.Delete(ctx, auth.UserID(c), id); err != nil {
		return fail(l, "delete_notification", err)
	}
	return respond(c, http.StatusOK, "Notification deleted", nil)
}

// DeleteMany removes the given ids, or every read notification when the
// body names none.
func (h *NotificationHTTP) DeleteMany(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notification.delete_many")

	var req transport.DeleteNotificationsRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "delete_notifications", err)
	}
	n, err := h.Svc.DeleteMany(ctx, auth.UserID(c), req.IDs)
	if err != nil {
		return fail(l, "delete_notifications", err)
	}

	l.Info("delete_notifications_success", "deleted", n)
	return respond(c, http.StatusOK, "Notifications deleted", echo.Map{"deleted": n})
}
