package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,min=2,max=200"`
	Description   string           `json:"description" validate:"omitempty,max=2000"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Unit          string           `json:"unit" validate:"omitempty,max=30"`
	CategoryID    uuid.UUID        `json:"categoryId" validate:"required"`
	StockCount    int              `json:"stockCount" validate:"gte=0"`
	IsActive      *bool            `json:"isActive"`
	InStock       *bool            `json:"inStock"`
	Tags          string           `json:"tags" validate:"omitempty,max=255"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Unit          *string          `json:"unit" validate:"omitempty,max=30"`
	CategoryID    *uuid.UUID       `json:"categoryId"`
	StockCount    *int             `json:"stockCount" validate:"omitempty,gte=0"`
	IsActive      *bool            `json:"isActive"`
	InStock       *bool            `json:"inStock"`
	Tags          *string          `json:"tags" validate:"omitempty,max=255"`
}

type UpdateStockRequest struct {
	StockCount *int  `json:"stockCount" validate:"required,gte=0"`
	InStock    *bool `json:"inStock"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive"`
}
