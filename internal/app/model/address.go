package model

import (
	"time"
)

type Address struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Label       string    `gorm:"size:50;default:'Home'" json:"label"` // Home, Work, Other
	FullAddress string    `gorm:"size:500;not null" json:"full_address"`
	City        string    `gorm:"size:100;not null" json:"city"`
	Pincode     string    `gorm:"size:10;not null" json:"pincode"`
	Landmark    string    `gorm:"size:200" json:"landmark"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}
