package model

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationTypeOrder  NotificationType = "order"
	NotificationTypePromo  NotificationType = "promo"
	NotificationTypeSystem NotificationType = "system"
)

// Notification 알림 모델
type Notification struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Title     string           `gorm:"size:200;not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"type:varchar(20);not null;default:'system';index" json:"type"`
	Link      string           `gorm:"size:255" json:"link,omitempty"`
	IsRead    bool             `gorm:"index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

var orderStatusMessages = map[OrderStatus]string{
	OrderStatusConfirmed:      "Your order has been confirmed by the bakery!",
	OrderStatusPreparing:      "The bakery is preparing your order.",
	OrderStatusReady:          "Your order is ready for pickup/delivery!",
	OrderStatusOutForDelivery: "Your order is on its way!",
	OrderStatusDelivered:      "Your order has been delivered. Enjoy!",
	OrderStatusCancelled:      "Your order has been cancelled.",
}

// NewOrderNotification builds the customer-facing notice for an order
// entering status.
func NewOrderNotification(userID uint, orderNumber string, status OrderStatus) *Notification {
	message, ok := orderStatusMessages[status]
	switch {
	case status == OrderStatusPending:
		message = fmt.Sprintf("Your order #%s has been placed successfully!", orderNumber)
	case !ok:
		message = fmt.Sprintf("Order status updated to: %s", status)
	}
	return &Notification{
		UserID:  userID,
		Title:   fmt.Sprintf("Order %s", orderNumber),
		Message: message,
		Type:    NotificationTypeOrder,
		Link:    fmt.Sprintf("/orders/%s", orderNumber),
	}
}
