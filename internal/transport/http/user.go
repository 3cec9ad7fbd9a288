package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/middleware/auth"
	"github.com/Skotchmaster/freshcart/internal/service"
	"github.com/Skotchmaster/freshcart/internal/transport"
	"github.com/Skotchmaster/freshcart/internal/upload"
)

type UserHTTP struct {
	Svc     *service.UserService
	Uploads *upload.Store
}

func (h *UserHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.profile")

	user, err := h.Svc.GetProfile(ctx, auth.UserID(c))
	if err != nil {
		return fail(l, "profile", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"user": user})
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_profile")

	var req transport.UpdateProfileRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "update_profile", err)
	}
	user, err := h.Svc.UpdateProfile(ctx, auth.UserID(c), req)
	if err != nil {
		return fail(l, "update_profile", err)
	}

	l.Info("update_profile_success")
	return respond(c, http.StatusOK, "Profile updated successfully", echo.Map{"user": user})
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_password")

	var req transport.ChangePasswordRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "change_password", err)
	}
	if err := h.Svc.ChangePassword(ctx, auth.UserID(c), req); err != nil {
		return fail(l, "change_password", err)
	}

	l.Info("change_password_success")
	return respond(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *UserHTTP) UploadAvatar(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.upload_avatar")

	fh, err := c.FormFile("avatar")
	if err != nil {
		return fail(l, "upload_avatar", echo.NewHTTPError(http.StatusBadRequest, "Please upload an image").SetInternal(err))
	}
	url, err := h.Uploads.Save(upload.KindAvatars, fh)
	if err != nil {
		return fail(l, "upload_avatar", err)
	}
	user, old, err := h.Svc.SetAvatar(ctx, auth.UserID(c), url)
	if err != nil {
		_ = h.Uploads.Remove(url)
		return fail(l, "upload_avatar", err)
	}
	if err := h.Uploads.Remove(old); err != nil {
		l.Warn("remove_old_avatar_error", "url", old, "error", err)
	}

	l.Info("upload_avatar_success")
	return respond(c, http.StatusOK, "Avatar uploaded successfully", echo.Map{"user": user})
}

func (h *UserHTTP) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.deactivate")

	if err := h.Svc.Deactivate(ctx, auth.UserID(c)); err != nil {
		return fail(l, "deactivate", err)
	}

	l.Info("deactivate_success")
	return respond(c, http.StatusOK, "Account deactivated successfully", nil)
}

func (h *UserHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.stats")

	stats, err := h.Svc.Stats(ctx, auth.UserID(c))
	if err != nil {
		return fail(l, "stats", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"stats": stats})
}

func (h *UserHTTP) Favorites(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.favorites")

	items, err := h.Svc.Favorites(ctx, auth.UserID(c))
	if err != nil {
		return fail(l, "favorites", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"favorites": items, "count": len(items)})
}

func (h *UserHTTP) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.add_favorite")

	productID, err := paramID(c, "productId")
	if err != nil {
		return fail(l, "add_favorite", err)
	}
	if err := h.Svc.AddFavorite(ctx, auth.UserID(c), productID); err != nil {
		return fail(l, "add_favorite", err)
	}

	l.Info("add_favorite_success", "product_id", productID.String())
	return respond(c, http.StatusOK, "Added to favorites", nil)
}

func (h *UserHTTP) RemoveFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.remove_favorite")

	productID, err := paramID(c, "productId")
	if err != nil {
		return fail(l, "remove_favorite", err)
	}
	if err := h.Svc.RemoveFavorite(ctx, auth.UserID(c), productID); err != nil {
		return fail(l, "remove_favorite", err)
	}

	l.Info("remove_favorite_success", "product_id", productID.String())
	return respond(c, http.StatusOK, "Removed from favorites", nil)
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	p := pageFrom(c)
	users, total, err := h.Svc.ListUsers(ctx, p.Offset, p.Limit)
	if err != nil {
		return fail(l, "list_users", err)
	}
	return respondList(c, "users", users, len(users), total, p, nil)
}
