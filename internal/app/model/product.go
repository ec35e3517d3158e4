package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	BakeryID            uint           `gorm:"not null;index" json:"bakery_id"`
	CategoryID          *uint          `gorm:"index" json:"category_id,omitempty"` // nil = 미분류
	Name                string         `gorm:"size:150;not null" json:"name"`
	Description         string         `gorm:"type:text" json:"description"`
	Price               float64        `gorm:"not null" json:"price"`
	DiscountPrice       *float64       `json:"discount_price,omitempty"`
	ImageURL            string         `gorm:"size:255" json:"image_url"`
	StockQuantity       int            `gorm:"not null;default:0" json:"stock_quantity"`
	IsAvailable         bool           `gorm:"index" json:"is_available"`
	IsVegetarian        bool           `json:"is_vegetarian"`
	PreparationTimeMins int            `gorm:"default:15" json:"preparation_time_mins"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	Bakery   *Bakery   `gorm:"foreignKey:BakeryID" json:"bakery,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// CurrentPrice is the discount price when one is set below the list price.
func (p *Product) CurrentPrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountPercentage is the whole-number percentage saved at the current price.
func (p *Product) DiscountPercentage() int {
	if p.Price <= 0 || p.CurrentPrice() == p.Price {
		return 0
	}
	return int((p.Price - p.CurrentPrice()) / p.Price * 100)
}

func (p *Product) IsInStock() bool {
	return p.IsAvailable && p.StockQuantity > 0
}
