package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	Base
	Name         string          `gorm:"size:100;not null" json:"name"`
	Email        string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string          `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	PasswordHash string          `gorm:"not null" json:"-"`
	Avatar       string          `gorm:"size:255" json:"avatar"`
	Role         string          `gorm:"size:20;not null;default:user" json:"role"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	TotalOrders  int             `gorm:"not null;default:0" json:"totalOrders"`
	TotalSpent   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"totalSpent"`
	LastLoginAt  *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type RefreshToken struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	JTI       string    `gorm:"size:64;uniqueIndex;not null" json:"jti"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Favorite links a user to a product they saved.
type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Favorite) TableName() string {
	return "user_favorites"
}

const (
	AddressHome  = "home"
	AddressWork  = "work"
	AddressOther = "other"
)

type Address struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_addresses_user_default,where:is_default = true" json:"userId"`
	Label     string    `gorm:"size:20;not null;default:home" json:"label"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Street    string    `gorm:"size:255;not null" json:"street"`
	Landmark  string    `gorm:"size:255" json:"landmark"`
	City      string    `gorm:"size:100;not null" json:"city"`
	State     string    `gorm:"size:100;not null" json:"state"`
	Pincode   string    `gorm:"size:10;not null" json:"pincode"`
	IsDefault bool      `gorm:"not null;default:false" json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot copies the delivery fields that an order keeps.
func (a *Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		Label:    a.Label,
		Name:     a.Name,
		Phone:    a.Phone,
		Street:   a.Street,
		Landmark: a.Landmark,
		City:     a.City,
		State:    a.State,
		Pincode:  a.Pincode,
	}
}
