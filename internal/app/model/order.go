package model

import (
	"time"
)

type OrderStatus string   // 주문 상태 코드
type PaymentMethod string // 결제 수단
type PaymentStatus string // 결제 상태 코드

const (
	OrderStatusPending        OrderStatus = "pending"          // 주문 접수
	OrderStatusConfirmed      OrderStatus = "confirmed"        // 주문 확정
	OrderStatusPreparing      OrderStatus = "preparing"        // 준비 중
	OrderStatusReady          OrderStatus = "ready"            // 준비 완료
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // 배달 중
	OrderStatusDelivered      OrderStatus = "delivered"        // 배달 완료
	OrderStatusCancelled      OrderStatus = "cancelled"        // 주문 취소

	PaymentMethodCOD    PaymentMethod = "cod"    // 현장 결제
	PaymentMethodOnline PaymentMethod = "online" // 온라인 결제

	PaymentStatusPending  PaymentStatus = "pending"  // 결제 대기
	PaymentStatusPaid     PaymentStatus = "paid"     // 결제 완료
	PaymentStatusFailed   PaymentStatus = "failed"   // 결제 실패
	PaymentStatusRefunded PaymentStatus = "refunded" // 환불 완료
)

// orderTransitions lists every legal status change. Statuses absent as keys
// are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusDelivered},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

// ParseOrderStatus accepts only the seven known statuses.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns a copy of the statuses reachable from s.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := orderTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

type Order struct {
	ID                  uint          `gorm:"primarykey" json:"id"`                                              // 주문 ID
	OrderNumber         string        `gorm:"size:32;uniqueIndex;not null" json:"order_number"`                  // 주문 번호 (LC...)
	CustomerID          uint          `gorm:"not null;index" json:"customer_id"`                                 // 주문자 ID
	BakeryID            uint          `gorm:"not null;index" json:"bakery_id"`                                   // 매장 ID
	DeliveryAddressID   *uint         `json:"delivery_address_id,omitempty"`                                     // 배송지 ID
	CouponID            *uint         `gorm:"index" json:"coupon_id,omitempty"`                                  // 적용 쿠폰 ID
	Subtotal            float64       `gorm:"not null;default:0" json:"subtotal"`                                // 상품 금액 합계
	DeliveryFee         float64       `gorm:"not null;default:0" json:"delivery_fee"`                            // 배달비
	Discount            float64       `gorm:"not null;default:0" json:"discount"`                                // 할인 금액
	TotalAmount         float64       `gorm:"not null" json:"total_amount"`                                      // 총 결제 금액
	Status              OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`   // 주문 상태
	PaymentMethod       PaymentMethod `gorm:"type:varchar(20);not null;default:'cod'" json:"payment_method"`     // 결제 수단
	PaymentStatus       PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"` // 결제 상태
	SpecialInstructions string        `gorm:"type:text" json:"special_instructions,omitempty"`                   // 요청 사항
	CancellationReason  string        `gorm:"size:500" json:"cancellation_reason,omitempty"`                     // 취소 사유
	EstimatedDelivery   *time.Time    `json:"estimated_delivery,omitempty"`                                      // 예상 도착 시각
	DeliveredAt         *time.Time    `json:"delivered_at,omitempty"`                                            // 배달 완료 시각
	CreatedAt           time.Time     `gorm:"index" json:"created_at"`                                           // 생성 시각
	UpdatedAt           time.Time     `json:"updated_at"`                                                        // 수정 시각

	Customer        *User                `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`                                // 주문자 정보
	Bakery          *Bakery              `gorm:"foreignKey:BakeryID" json:"bakery,omitempty"`                                    // 매장 정보
	DeliveryAddress *Address             `gorm:"foreignKey:DeliveryAddressID" json:"delivery_address,omitempty"`                 // 배송지 정보
	Items           []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`          // 주문 항목
	StatusHistory   []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"status_history,omitempty"` // 상태 이력
}

func (Order) TableName() string {
	return "orders"
}

// CanCancel reports whether the customer may still cancel the order.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// OrderItem is a frozen snapshot of a cart line at checkout. Later product
// edits never change it.
type OrderItem struct {
	ID                  uint    `gorm:"primarykey" json:"id"`                           // 주문 항목 ID
	OrderID             uint    `gorm:"not null;index" json:"order_id"`                 // 주문 ID
	ProductID           uint    `gorm:"not null;index" json:"product_id"`               // 상품 ID
	ProductName         string  `gorm:"size:150;not null" json:"product_name"`          // 상품명 스냅샷
	Quantity            int     `gorm:"not null" json:"quantity"`                       // 수량
	UnitPrice           float64 `gorm:"not null" json:"unit_price"`                     // 단가 스냅샷
	Subtotal            float64 `gorm:"not null" json:"subtotal"`                       // 소계
	SpecialInstructions string  `gorm:"size:500" json:"special_instructions,omitempty"` // 요청 사항
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderStatusHistory is append-only: rows are inserted on every transition
// and never updated or deleted.
type OrderStatusHistory struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	OrderID     uint        `gorm:"not null;index" json:"order_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Notes       string      `gorm:"size:500" json:"notes,omitempty"`
	ChangedByID uint        `json:"changed_by_id"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}
