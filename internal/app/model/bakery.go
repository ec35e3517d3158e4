package model

import (
	"time"

	"gorm.io/gorm"
)

// Bakery is a seller storefront. It only appears publicly once an admin
// has approved it.
type Bakery struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	OwnerID          uint           `gorm:"not null;uniqueIndex" json:"owner_id"`
	Name             string         `gorm:"size:150;not null" json:"name"`
	Slug             string         `gorm:"size:170;uniqueIndex" json:"slug"`
	Description      string         `gorm:"type:text" json:"description"`
	Address          string         `gorm:"size:500;not null" json:"address"`
	City             string         `gorm:"size:100;not null;index" json:"city"`
	Pincode          string         `gorm:"size:10;not null" json:"pincode"`
	Phone            string         `gorm:"size:20" json:"phone"`
	LogoURL          string         `gorm:"size:255" json:"logo_url"`
	MinOrderAmount   float64        `gorm:"not null;default:0" json:"min_order_amount"`
	DeliveryFee      float64        `gorm:"not null;default:0" json:"delivery_fee"`
	DeliveryTimeMins int            `gorm:"not null;default:30" json:"delivery_time_mins"`
	Rating           float64        `gorm:"not null;default:0" json:"rating"`
	TotalReviews     int            `gorm:"not null;default:0" json:"total_reviews"`
	IsApproved       bool           `gorm:"index" json:"is_approved"`
	IsOpen           bool           `json:"is_open"`
	IsFeatured       bool           `json:"is_featured"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Bakery) TableName() string {
	return "bakeries"
}

// AcceptsOrders reports whether customers can currently check out from b.
func (b *Bakery) AcceptsOrders() bool {
	return b.IsApproved && b.IsOpen
}
