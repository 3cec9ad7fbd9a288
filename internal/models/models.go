package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the UUID primary key shared by every table.
type Base struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&Address{},
		&Category{},
		&Product{},
		&Favorite{},
		&Order{},
		&OrderItem{},
		&TrackingStep{},
		&Transaction{},
		&Notification{},
	}
}
