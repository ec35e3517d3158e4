package model

import (
	"time"
)

// CartItem lives until checkout converts it into an OrderItem or the owner
// removes it. Quantity is always positive; setting it to zero deletes the row.
type CartItem struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	UserID              uint      `gorm:"not null;index" json:"user_id"`
	ProductID           uint      `gorm:"not null;index" json:"product_id"`
	Quantity            int       `gorm:"not null;default:1" json:"quantity"`
	SpecialInstructions string    `gorm:"size:500" json:"special_instructions"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal prices the line at the product's current price, rounded to the
// cent. It is zero when the product has not been loaded.
func (c *CartItem) Subtotal() float64 {
	if c.Product == nil {
		return 0
	}
	return RoundMoney(c.Product.CurrentPrice() * float64(c.Quantity))
}
