package model

import (
	"fmt"
	"math"
	"time"
)

type DiscountType string // 할인 유형

const (
	DiscountPercentage DiscountType = "percentage" // 정률 할인
	DiscountFixed      DiscountType = "fixed"      // 정액 할인
)

func (d DiscountType) Valid() bool {
	return d == DiscountPercentage || d == DiscountFixed
}

// Coupon is a discount code, either platform-wide (BakeryID nil) or scoped
// to one bakery. UsageLimit nil means unlimited; UsedCount never exceeds it.
type Coupon struct {
	ID             uint         `gorm:"primarykey" json:"id"`
	BakeryID       *uint        `gorm:"index" json:"bakery_id,omitempty"`               // 매장 전용 쿠폰 (nil = 전체)
	Code           string       `gorm:"size:50;uniqueIndex;not null" json:"code"`       // 쿠폰 코드 (대문자)
	Description    string       `gorm:"size:255" json:"description"`                    // 설명
	DiscountType   DiscountType `gorm:"type:varchar(20);not null" json:"discount_type"` // 할인 유형
	DiscountValue  float64      `gorm:"not null" json:"discount_value"`                 // 할인 값
	MinOrderAmount float64      `gorm:"not null;default:0" json:"min_order_amount"`     // 최소 주문 금액
	MaxDiscount    *float64     `json:"max_discount,omitempty"`                         // 정률 할인 상한
	UsageLimit     *int         `json:"usage_limit,omitempty"`                          // 사용 한도 (nil = 무제한)
	UsedCount      int          `gorm:"not null;default:0" json:"used_count"`           // 사용 횟수
	ValidFrom      time.Time    `json:"valid_from"`                                     // 시작 시각
	ValidUntil     *time.Time   `gorm:"index" json:"valid_until,omitempty"`             // 만료 시각
	IsActive       bool         `gorm:"index" json:"is_active"`                         // 활성 여부
	CreatedAt      time.Time    `json:"created_at"`                                     // 생성 시각
	UpdatedAt      time.Time    `json:"updated_at"`                                     // 수정 시각
}

func (Coupon) TableName() string {
	return "coupons"
}

// Check runs the coupon's eligibility rules against an order. The first
// failing rule wins, in this order: active, validity window, usage limit,
// minimum amount, bakery scope. bakeryID 0 skips the scope rule.
func (c *Coupon) Check(orderAmount float64, bakeryID uint, now time.Time) (bool, string) {
	if !c.IsActive {
		return false, "Coupon is not active"
	}
	if !c.ValidFrom.IsZero() && now.Before(c.ValidFrom) {
		return false, "Coupon is not yet valid"
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false, "Coupon has expired"
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false, "Coupon usage limit reached"
	}
	if orderAmount < c.MinOrderAmount {
		return false, fmt.Sprintf("Minimum order amount is %.2f", c.MinOrderAmount)
	}
	if c.BakeryID != nil && bakeryID != 0 && *c.BakeryID != bakeryID {
		return false, "Coupon is not valid for this bakery"
	}
	return true, "Coupon is valid"
}

// CalculateDiscount never returns more than orderAmount.
func (c *Coupon) CalculateDiscount(orderAmount float64) float64 {
	if orderAmount <= 0 {
		return 0
	}
	var discount float64
	switch c.DiscountType {
	case DiscountPercentage:
		discount = orderAmount * c.DiscountValue / 100
		if c.MaxDiscount != nil {
			discount = math.Min(discount, *c.MaxDiscount)
		}
	default:
		discount = c.DiscountValue
	}
	discount = math.Min(discount, orderAmount)
	if discount < 0 {
		return 0
	}
	return RoundMoney(discount)
}

// RoundMoney rounds to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
