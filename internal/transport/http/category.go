package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/transport"
	"github.com/Skotchmaster/freshcart/internal/upload"
)

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return fail(l, "list_categories", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"categories": cats, "count": len(cats)})
}

func (h *CatalogHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "get_category", err)
	}
	cat, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		return fail(l, "get_category", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"category": cat})
}

func (h *CatalogHTTP) CategoryProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.products")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "category_products", err)
	}
	cat, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		return fail(l, "category_products", err)
	}
	f, err := productFilter(c)
	if err != nil {
		return fail(l, "category_products", err)
	}
	f.CategoryID = id

	p := pageFrom(c)
	items, total, err := h.Svc.ListProducts(ctx, f, p.Offset, p.Limit)
	if err != nil {
		return fail(l, "category_products", err)
	}
	return respondList(c, "products", items, len(items), total, p, echo.Map{"category": cat})
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CategoryRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "create_category", err)
	}
	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return fail(l, "create_category", err)
	}

	l.Info("create_category_success", "category_id", cat.ID.String())
	return respond(c, http.StatusCreated, "Category created successfully", echo.Map{"category": cat})
}

func (h *CatalogHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "update_category", err)
	}
	var req transport.UpdateCategoryRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "update_category", err)
	}
	cat, err := h.Svc.UpdateCategory(ctx, id, req)
	if err != nil {
		return fail(l, "update_category", err)
	}

	l.Info("update_category_success", "category_id", id.String())
	return respond(c, http.StatusOK, "Category updated successfully", echo.Map{"category": cat})
}

func (h *CatalogHTTP) UploadCategoryImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.upload_image")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "upload_category_image", err)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return fail(l, "upload_category_image", echo.NewHTTPError(http.StatusBadRequest, "Please upload an image").SetInternal(err))
	}
	url, err := h.Uploads.Save(upload.KindCategories, fh)
	if err != nil {
		return fail(l, "upload_category_image", err)
	}
	cat, old, err := h.Svc.SetCategoryImage(ctx, id, url)
	if err != nil {
		_ = h.Uploads.Remove(url)
		return fail(l, "upload_category_image", err)
	}
	if err := h.Uploads.Remove(old); err != nil {
		l.Warn("remove_old_image_error", "url", old, "error", err)
	}

	l.Info("upload_category_image_success", "category_id", id.String())
	return respond(c, http.StatusOK, "Image uploaded successfully", echo.Map{"category": cat})
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "delete_category", err)
	}
	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return fail(l, "delete_category", err)
	}

	l.Info("delete_category_success", "category_id", id.String())
	return respond(c, http.StatusOK, "Category deleted successfully", nil)
}
