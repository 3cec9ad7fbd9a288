package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/middleware/auth"
	"github.com/Skotchmaster/freshcart/internal/service"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.list")

	items, err := h.Svc.List(ctx, auth.UserID(c))
	if err != nil {
		return fail(l, "list_addresses", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"addresses": items, "count": len(items)})
}

func (h *AddressHTTP) Default(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.default")

	addr, err := h.Svc.GetDefault(ctx, auth.UserID(c))
	if err != nil {
		return fail(l, "default_address", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"address": addr})
}

func (h *AddressHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.get")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "get_address", err)
	}
	addr, err := h.Svc.Get(ctx, auth.UserID(c), id)
	if err != nil {
		return fail(l, "get_address", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"address": addr})
}

func (h *AddressHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.create")

	var req transport.AddressRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "create_address", err)
	}
	addr, err := h.Svc.Create(ctx, auth.UserID(c), req)
	if err != nil {
		return fail(l, "create_address", err)
	}

	l.Info("create_address_success", "address_id", addr.ID.String())
	return respond(c, http.StatusCreated, "Address added successfully", echo.Map{"address": addr})
}

func (h *AddressHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.update")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "update_address", err)
	}
	var req transport.UpdateAddressRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "update_address", err)
	}
	addr, err := h.Svc.Update(ctx, auth.UserID(c), id, req)
	if err != nil {
		return fail(l, "update_address", err)
	}

	l.Info("update_address_success", "address_id", id.String())
	return respond(c, http.StatusOK, "Address updated successfully", echo.Map{"address": addr})
}

func (h *AddressHTTP) SetDefault(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.set_default")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "set_default_address", err)
	}
	addr, err := h.Svc.SetDefault(ctx, auth.UserID(c), id)
	if err != nil {
		return fail(l, "set_default_address", err)
	}

	l.Info("set_default_address_success", "address_id", id.String())
	return respond(c, http.StatusOK, "Default address updated", echo.Map{"address": addr})
}

func (h *AddressHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.delete")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "delete_address", err)
	}
	if err := h.Svc.Delete(ctx, auth.UserID(c), id); err != nil {
		return fail(l, "delete_address", err)
	}

	l.Info("delete_address_success", "address_id", id.String())
	return respond(c, http.StatusOK, "Address deleted successfully", nil)
}
