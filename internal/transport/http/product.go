package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/service"
	"github.com/Skotchmaster/freshcart/internal/transport"
	"github.com/Skotchmaster/freshcart/internal/upload"
)

type CatalogHTTP struct {
	Svc     *service.CatalogService
	Uploads *upload.Store
}

var productSorts = map[string]bool{
	"":           true,
	"price_asc":  true,
	"price_desc": true,
	"newest":     true,
	"popular":    true,
	"name":       true,
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name).SetInternal(err)
	}
	return &d, nil
}

// productFilter reads the list filters shared by the product and category
// product listings.
func productFilter(c echo.Context) (repo.ProductFilter, error) {
	var f repo.ProductFilter
	var err error

	if raw := c.QueryParam("category"); raw != "" {
		if f.CategoryID, err = uuid.Parse(raw); err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "Invalid category").SetInternal(err)
		}
	}
	if f.MinPrice, err = queryDecimal(c, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryDecimal(c, "maxPrice"); err != nil {
		return f, err
	}
	if raw := c.QueryParam("inStock"); raw != "" {
		if f.InStockOnly, err = strconv.ParseBool(raw); err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "Invalid inStock").SetInternal(err)
		}
	}
	f.Sort = c.QueryParam("sort")
	if !productSorts[f.Sort] {
		return f, echo.NewHTTPError(http.StatusBadRequest, "Invalid sort")
	}
	f.Search = c.QueryParam("search")
	return f, nil
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	f, err := productFilter(c)
	if err != nil {
		return fail(l, "list_products", err)
	}
	p := pageFrom(c)
	items, total, err := h.Svc.ListProducts(ctx, f, p.Offset, p.Limit)
	if err != nil {
		return fail(l, "list_products", err)
	}
	return respondList(c, "products", items, len(items), total, p, nil)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		q = c.QueryParam("search")
	}
	p := pageFrom(c)
	items, total, err := h.Svc.SearchProducts(ctx, q, p.Offset, p.Limit)
	if err != nil {
		return fail(l, "search_products", err)
	}

	l.Info("search_products_success", "query", q, "total", total)
	return respondList(c, "products", items, len(items), total, p, nil)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "get_product", err)
	}
	product, err := h.Svc.GetProduct(ctx, id, false)
	if err != nil {
		return fail(l, "get_product", err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"product": product})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "create_product", err)
	}
	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "create_product", err)
	}

	l.Info("create_product_success", "product_id", product.ID.String())
	return respond(c, http.StatusCreated, "Product created successfully", echo.Map{"product": product})
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "update_product", err)
	}
	var req transport.UpdateProductRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "update_product", err)
	}
	product, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		return fail(l, "update_product", err)
	}

	l.Info("update_product_success", "product_id", id.String())
	return respond(c, http.StatusOK, "Product updated successfully", echo.Map{"product": product})
}

func (h *CatalogHTTP) UpdateStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_stock")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "update_stock", err)
	}
	var req transport.UpdateStockRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "update_stock", err)
	}
	product, err := h.Svc.UpdateStock(ctx, id, req)
	if err != nil {
		return fail(l, "update_stock", err)
	}

	l.Info("update_stock_success", "product_id", id.String(), "stock", product.StockCount)
	return respond(c, http.StatusOK, "Stock updated successfully", echo.Map{"product": product})
}

func (h *CatalogHTTP) UploadProductImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.upload_image")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "upload_product_image", err)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return fail(l, "upload_product_image", echo.NewHTTPError(http.StatusBadRequest, "Please upload an image").SetInternal(err))
	}
	url, err := h.Uploads.Save(upload.KindProducts, fh)
	if err != nil {
		return fail(l, "upload_product_image", err)
	}
	product, old, err := h.Svc.SetProductImage(ctx, id, url)
	if err != nil {
		_ = h.Uploads.Remove(url)
		return fail(l, "upload_product_image", err)
	}
	if err := h.Uploads.Remove(old); err != nil {
		l.Warn("remove_old_image_error", "url", old, "error", err)
	}

	l.Info("upload_product_image_success", "product_id", id.String())
	return respond(c, http.StatusOK, "Image uploaded successfully", echo.Map{"product": product})
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "delete_product", err)
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "delete_product", err)
	}

	l.Info("delete_product_success", "product_id", id.String())
	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}
