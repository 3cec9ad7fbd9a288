package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/freshcart/internal/hash"
	"github.com/Skotchmaster/freshcart/internal/models"
)

type Admin struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type productSeed struct {
	Name     string
	Price    string
	Unit     string
	Stock    int
	Tags     string
	Category string
}

var categories = []models.Category{
	{Name: "Fruits", Description: "Fresh seasonal fruit", SortOrder: 1},
	{Name: "Vegetables", Description: "Farm fresh vegetables", SortOrder: 2},
	{Name: "Dairy", Description: "Milk, curd and cheese", SortOrder: 3},
	{Name: "Bakery", Description: "Bread and baked goods", SortOrder: 4},
}

var products = []productSeed{
	{Name: "Bananas", Price: "45", Unit: "1 dozen", Stock: 120, Tags: "fruit,banana", Category: "Fruits"},
	{Name: "Apples", Price: "180", Unit: "1 kg", Stock: 80, Tags: "fruit,apple", Category: "Fruits"},
	{Name: "Tomatoes", Price: "40", Unit: "1 kg", Stock: 150, Tags: "vegetable,tomato", Category: "Vegetables"},
	{Name: "Onions", Price: "35", Unit: "1 kg", Stock: 200, Tags: "vegetable,onion", Category: "Vegetables"},
	{Name: "Toned Milk", Price: "28", Unit: "500 ml", Stock: 90, Tags: "dairy,milk", Category: "Dairy"},
	{Name: "Paneer", Price: "95", Unit: "200 g", Stock: 40, Tags: "dairy,paneer", Category: "Dairy"},
	{Name: "Whole Wheat Bread", Price: "50", Unit: "400 g", Stock: 60, Tags: "bakery,bread", Category: "Bakery"},
}

// Apply inserts an admin, categories and sample products. Existing rows
// matched by email or name are left alone, so it can run repeatedly.
func Apply(ctx context.Context, db *gorm.DB, admin Admin) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAdmin(tx, admin); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}

		byName := make(map[string]*models.Category, len(categories))
		for _, c := range categories {
			c.IsActive = true
			if err := tx.Where("name = ?", c.Name).FirstOrCreate(&c).Error; err != nil {
				return fmt.Errorf("ensure category %s: %w", c.Name, err)
			}
			byName[c.Name] = &c
		}

		for _, p := range products {
			cat, ok := byName[p.Category]
			if !ok {
				return fmt.Errorf("product %s: unknown category %s", p.Name, p.Category)
			}
			price := decimal.RequireFromString(p.Price)
			row := models.Product{
				Name:          p.Name,
				Price:         price,
				OriginalPrice: price,
				Unit:          p.Unit,
				CategoryID:    cat.ID,
				StockCount:    p.Stock,
				Tags:          p.Tags,
				IsActive:      true,
				InStock:       true,
			}
			if err := tx.Where("name = ? AND category_id = ?", p.Name, cat.ID).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("ensure product %s: %w", p.Name, err)
			}
		}
		return nil
	})
}

func ensureAdmin(tx *gorm.DB, a Admin) error {
	if a.Email == "" || a.Password == "" {
		return fmt.Errorf("admin email and password are required")
	}
	pwHash, err := hash.HashPassword(a.Password)
	if err != nil {
		return err
	}
	u := models.User{
		Name:         a.Name,
		Email:        a.Email,
		Phone:        a.Phone,
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
		IsActive:     true,
		TotalSpent:   decimal.Zero,
	}
	return tx.Where("email = ?", a.Email).FirstOrCreate(&u).Error
}
