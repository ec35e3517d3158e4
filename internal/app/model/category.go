package model

import "time"

// Category groups a bakery's products on its storefront menu.
type Category struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	BakeryID     uint      `gorm:"not null;index" json:"bakery_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"size:255" json:"description"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
