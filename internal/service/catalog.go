package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

// ProductIndex is the full-text index kept next to the products table.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SearchProducts(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error)
}

// CategoryCache caches the category listing with its product counts.
type CategoryCache interface {
	GetCategories(ctx context.Context) ([]models.Category, bool)
	SetCategories(ctx context.Context, cats []models.Category)
	Invalidate(ctx context.Context)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Index  ProductIndex
	Cache  CategoryCache
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
}

func (s *CatalogService) reindex(ctx context.Context, p *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("index_product_error", "product_id", p.ID, "error", err)
	}
}

func productEvent(kind string, p *models.Product) map[string]any {
	return map[string]any{
		"type":       kind,
		"productId":  p.ID,
		"name":       p.Name,
		"price":      p.Price,
		"stockCount": p.StockCount,
		"isActive":   p.IsActive,
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Product")
	}
	if !p.IsActive && !includeInactive {
		return nil, notFound("Product")
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) ([]models.Product, int64, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return nil, 0, validationf("minPrice must not exceed maxPrice")
	}
	return s.Repo.ListProducts(ctx, f, offset, limit)
}

// SearchProducts asks the index first and falls back to a LIKE query when no
// index is configured or it fails.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, offset, limit int) ([]models.Product, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, validationf("Search query is required")
	}

	if s.Index != nil {
		total, ids, err := s.Index.SearchProducts(ctx, query, offset, limit)
		if err == nil {
			found, err := s.Repo.GetProductsByIDs(ctx, ids)
			if err != nil {
				return nil, 0, err
			}
			out := make([]models.Product, 0, len(ids))
			for _, id := range ids {
				if p, ok := found[id]; ok && p.IsActive {
					out = append(out, p)
				}
			}
			return out, total, nil
		}
		logging.FromContext(ctx).Warn("search_index_error", "query", query, "error", err)
	}

	return s.Repo.ListProducts(ctx, repo.ProductFilter{Search: query, Sort: "popular"}, offset, limit)
}

func checkPrice(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return validationf("%s must not be negative", name)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if !req.Price.IsPositive() {
		return nil, validationf("price must be greater than 0")
	}
	if req.OriginalPrice != nil {
		if err := checkPrice("originalPrice", *req.OriginalPrice); err != nil {
			return nil, err
		}
	}
	if _, err := s.Repo.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, mapNotFound(err, "Category")
	}

	p := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Unit:        req.Unit,
		CategoryID:  req.CategoryID,
		StockCount:  req.StockCount,
		IsActive:    true,
		InStock:     true,
		Tags:        req.Tags,
	}
	p.OriginalPrice = req.Price
	if req.OriginalPrice != nil {
		p.OriginalPrice = *req.OriginalPrice
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.reindex(ctx, p)
	s.invalidate(ctx)
	publish(ctx, s.Events, TopicProductEvents, p.ID.String(), productEvent("product_created", p))
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (*models.Product, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, validationf("price must be greater than 0")
		}
		fields["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		if err := checkPrice("originalPrice", *req.OriginalPrice); err != nil {
			return nil, err
		}
		fields["original_price"] = *req.OriginalPrice
	}
	if req.Unit != nil {
		fields["unit"] = *req.Unit
	}
	if req.CategoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, mapNotFound(err, "Category")
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.StockCount != nil {
		fields["stock_count"] = *req.StockCount
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.InStock != nil {
		fields["in_stock"] = *req.InStock
	}
	if req.Tags != nil {
		fields["tags"] = *req.Tags
	}
	if len(fields) == 0 {
		return nil, validationf("Nothing to update")
	}

	return s.applyProductUpdate(ctx, id, fields, "product_updated")
}

func (s *CatalogService) UpdateStock(ctx context.Context, id uuid.UUID, req transport.UpdateStockRequest) (*models.Product, error) {
	fields := map[string]any{"stock_count": *req.StockCount}
	if req.InStock != nil {
		fields["in_stock"] = *req.InStock
	}
	return s.applyProductUpdate(ctx, id, fields, "product_stock_updated")
}

// SetProductImage stores the image URL and returns the one it replaced.
func (s *CatalogService) SetProductImage(ctx context.Context, id uuid.UUID, url string) (*models.Product, string, error) {
	cur, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, "", mapNotFound(err, "Product")
	}
	p, err := s.applyProductUpdate(ctx, id, map[string]any{"image": url}, "product_updated")
	if err != nil {
		return nil, "", err
	}
	return p, cur.Image, nil
}

// DeleteProduct hides the product; order history keeps referring to it.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.UpdateProduct(ctx, id, map[string]any{"is_active": false}); err != nil {
		return mapNotFound(err, "Product")
	}
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("unindex_product_error", "product_id", id, "error", err)
		}
	}
	s.invalidate(ctx)
	publish(ctx, s.Events, TopicProductEvents, id.String(), map[string]any{
		"type":      "product_deleted",
		"productId": id,
	})
	return nil
}

func (s *CatalogService) applyProductUpdate(ctx context.Context, id uuid.UUID, fields map[string]any, event string) (*models.Product, error) {
	if err := s.Repo.UpdateProduct(ctx, id, fields); err != nil {
		return nil, mapNotFound(err, "Product")
	}
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Product")
	}
	s.reindex(ctx, p)
	s.invalidate(ctx)
	publish(ctx, s.Events, TopicProductEvents, p.ID.String(), productEvent(event, p))
	return p, nil
}

// ListCategories returns active categories with their active product
// counts, served from the cache when one is configured.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if s.Cache != nil {
		if cats, ok := s.Cache.GetCategories(ctx); ok {
			return cats, nil
		}
	}

	cats, err := s.Repo.ListCategories(ctx, false)
	if err != nil {
		return nil, err
	}
	counts, err := s.Repo.CountActiveByCategory(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cats {
		cats[i].ProductCount = counts[cats[i].ID]
	}

	if s.Cache != nil {
		s.Cache.SetCategories(ctx, cats)
	}
	return cats, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Category")
	}
	n, err := s.Repo.CountActiveInCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.ProductCount = n
	return c, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	taken, err := s.Repo.CategoryNameTaken(ctx, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflictf("Category with this name already exists")
	}

	c := &models.Category{
		Name:        name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req transport.UpdateCategoryRequest) (*models.Category, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		taken, err := s.Repo.CategoryNameTaken(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, conflictf("Category with this name already exists")
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		return nil, validationf("Nothing to update")
	}
	if err := s.Repo.UpdateCategory(ctx, id, fields); err != nil {
		return nil, mapNotFound(err, "Category")
	}
	s.invalidate(ctx)
	return s.GetCategory(ctx, id)
}

// SetCategoryImage stores the image URL and returns the one it replaced.
func (s *CatalogService) SetCategoryImage(ctx context.Context, id uuid.UUID, url string) (*models.Category, string, error) {
	c, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, "", mapNotFound(err, "Category")
	}
	old := c.Image
	if err := s.Repo.UpdateCategory(ctx, id, map[string]any{"image": url}); err != nil {
		return nil, "", err
	}
	s.invalidate(ctx)
	c.Image = url
	return c, old, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	n, err := s.Repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflictf("Cannot delete category with %d products", n)
	}
	deleted, err := s.Repo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound("Category")
	}
	s.invalidate(ctx)
	return nil
}
