package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	Base
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"size:500" json:"description"`
	Image        string    `gorm:"size:255" json:"image"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	SortOrder    int       `gorm:"not null;default:0" json:"sortOrder"`
	ProductCount int64     `gorm:"-" json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Product struct {
	Base
	Name          string          `gorm:"size:200;not null;index" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	OriginalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"originalPrice"`
	Unit          string          `gorm:"size:30" json:"unit"`
	Image         string          `gorm:"size:255" json:"image"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"categoryId"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	StockCount    int             `gorm:"not null;default:0" json:"stockCount"`
	TotalSold     int             `gorm:"not null;default:0" json:"totalSold"`
	IsActive      bool            `gorm:"not null;index" json:"isActive"`
	InStock       bool            `gorm:"not null" json:"inStock"`
	Tags          string          `gorm:"size:255" json:"tags"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Purchasable reports whether qty units can be ordered right now.
func (p *Product) Purchasable(qty int) bool {
	return p.IsActive && p.InStock && p.StockCount >= qty
}
