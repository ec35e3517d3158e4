package model

import (
	"time"
)

// Review 주문 리뷰 모델 (배달 완료된 주문당 1개)
type Review struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`        // 작성자 ID
	BakeryID  uint       `gorm:"not null;index" json:"bakery_id"`      // 매장 ID
	OrderID   uint       `gorm:"not null;uniqueIndex" json:"order_id"` // 주문 ID
	Rating    int        `gorm:"not null" json:"rating"`               // 평점 (1-5)
	Comment   string     `gorm:"type:text" json:"comment"`             // 리뷰 내용
	Reply     string     `gorm:"type:text" json:"reply,omitempty"`     // 사장님 답글
	ReplyAt   *time.Time `json:"reply_at,omitempty"`                   // 답글 작성 시각
	IsVisible bool       `gorm:"index" json:"is_visible"`              // 노출 여부
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) HasReply() bool {
	return r.ReplyAt != nil
}
