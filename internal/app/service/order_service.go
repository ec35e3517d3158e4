package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lacreme/bakery-backend/config"
	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

const defaultCancelReason = "Cancelled by customer"

type PlaceOrderInput struct {
	AddressID           uint
	PaymentMethod       model.PaymentMethod
	CouponCode          string
	SpecialInstructions string
}

// PlaceOrderResult carries the committed order. CouponWarning is set when a
// coupon was supplied but not applied.
type PlaceOrderResult struct {
	Order         *model.Order
	CouponWarning string
}

type ReorderResult struct {
	Added   int
	Skipped []string
}

type OrderService interface {
	PlaceOrder(ctx context.Context, actor Actor, input PlaceOrderInput) (*PlaceOrderResult, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uint, status model.OrderStatus, notes string) (*model.Order, error)
	CancelOrder(ctx context.Context, actor Actor, orderNumber, reason string) (*model.Order, error)
	GetOrderByNumber(ctx context.Context, actor Actor, orderNumber string) (*model.Order, error)
	GetOrderHistory(ctx context.Context, actor Actor, orderNumber string) ([]model.OrderStatusHistory, error)
	ListCustomerOrders(ctx context.Context, actor Actor, page repository.Page) ([]model.Order, int64, error)
	ListBakeryOrders(ctx context.Context, actor Actor, status model.OrderStatus, page repository.Page) ([]model.Order, int64, error)
	ListAllOrders(ctx context.Context, actor Actor, status model.OrderStatus, page repository.Page) ([]model.Order, int64, error)
	Reorder(ctx context.Context, actor Actor, orderNumber string) (*ReorderResult, error)
}

type OrderOption func(*orderService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) OrderOption {
	return func(s *orderService) { s.now = now }
}

func WithOrderNumberFunc(fn OrderNumberFunc) OrderOption {
	return func(s *orderService) { s.orderNumber = fn }
}

func WithCheckoutLocker(locker CheckoutLocker) OrderOption {
	return func(s *orderService) {
		if locker != nil {
			s.locker = locker
		}
	}
}

func WithNotifier(notifier OrderNotifier) OrderOption {
	return func(s *orderService) { s.notifier = notifier }
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	addressRepo repository.AddressRepository
	bakeryRepo  repository.BakeryRepository
	cfg         config.OrderConfig

	notifier    OrderNotifier
	locker      CheckoutLocker
	now         func() time.Time
	orderNumber OrderNumberFunc
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	addressRepo repository.AddressRepository,
	bakeryRepo repository.BakeryRepository,
	cfg config.OrderConfig,
	opts ...OrderOption,
) OrderService {
	if cfg.NumberRetries < 1 {
		cfg.NumberRetries = 1
	}
	s := &orderService{
		db:          db,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		addressRepo: addressRepo,
		bakeryRepo:  bakeryRepo,
		cfg:         cfg,
		locker:      noopLocker{},
		now:         time.Now,
		orderNumber: NewOrderNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *orderService) PlaceOrder(ctx context.Context, actor Actor, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if !actor.IsCustomer() {
		return nil, ErrAccessDenied
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = model.PaymentMethodCOD
	}
	if !input.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	logger.Info("Placing order", map[string]interface{}{
		"user_id":        actor.UserID,
		"address_id":     input.AddressID,
		"payment_method": input.PaymentMethod,
		"coupon_code":    input.CouponCode,
	})

	// 락은 중복 제출 방지용. 재고/쿠폰은 조건부 UPDATE로 보호되므로 Redis 장애 시 락 없이 진행
	release, ok, err := s.locker.Acquire(ctx, actor.UserID, s.cfg.CheckoutLockTTL)
	if err != nil {
		logger.Warn("Checkout lock unavailable, continuing without it", map[string]interface{}{
			"user_id": actor.UserID,
			"error":   err.Error(),
		})
		release, ok = func() {}, true
	}
	if !ok {
		logger.Warn("Checkout already in progress", map[string]interface{}{
			"user_id": actor.UserID,
		})
		return nil, ErrCheckoutInProgress
	}
	defer release()

	var (
		order   *model.Order
		warning string
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		order, warning, txErr = s.placeOrderTx(tx, actor, input)
		return txErr
	})
	if err != nil {
		logger.Warn("Order rejected", map[string]interface{}{
			"user_id": actor.UserID,
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      actor.UserID,
		"bakery_id":    order.BakeryID,
		"total_amount": order.TotalAmount,
	})

	s.notify(ctx, order.CustomerID, order.OrderNumber, model.OrderStatusPending)

	if committed, err := s.orderRepo.FindByID(ctx, order.ID); err == nil {
		order = committed
	}
	return &PlaceOrderResult{Order: order, CouponWarning: warning}, nil
}

func (s *orderService) placeOrderTx(tx *gorm.DB, actor Actor, input PlaceOrderInput) (*model.Order, string, error) {
	items, err := s.cartRepo.FindByUserIDTx(tx, actor.UserID)
	if err != nil {
		return nil, "", err
	}
	if len(items) == 0 {
		return nil, "", ErrEmptyCart
	}

	bakeryID := uint(0)
	for i := range items {
		product := items[i].Product
		if product == nil {
			return nil, "", fmt.Errorf("%w: product %d", ErrProductUnavailable, items[i].ProductID)
		}
		if bakeryID != 0 && product.BakeryID != bakeryID {
			return nil, "", ErrMixedBakeryCart
		}
		bakeryID = product.BakeryID
	}

	bakery := items[0].Product.Bakery
	if bakery == nil {
		return nil, "", ErrBakeryUnavailable
	}

	orderItems, err := buildOrderItems(items)
	if err != nil {
		return nil, "", err
	}
	subtotal := itemsSubtotal(orderItems)
	if subtotal < bakery.MinOrderAmount {
		return nil, "", ErrBelowMinimumOrder
	}

	address, err := s.addressRepo.FindByIDForUser(tx, input.AddressID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidAddress
		}
		return nil, "", err
	}

	if !bakery.AcceptsOrders() {
		return nil, "", ErrBakeryUnavailable
	}

	now := s.now()
	coupon, discount, warning, err := s.resolveCoupon(tx, input.CouponCode, subtotal, bakery.ID, now)
	if err != nil {
		return nil, "", err
	}
	quote := newQuote(subtotal, bakery.DeliveryFee, discount)

	orderNumber, err := s.allocateOrderNumber(tx, now)
	if err != nil {
		return nil, "", err
	}

	eta := now.Add(time.Duration(bakery.DeliveryTimeMins) * time.Minute)
	order := &model.Order{
		OrderNumber:         orderNumber,
		CustomerID:          actor.UserID,
		BakeryID:            bakery.ID,
		DeliveryAddressID:   &address.ID,
		Subtotal:            quote.Subtotal,
		DeliveryFee:         quote.DeliveryFee,
		Discount:            quote.Discount,
		TotalAmount:         quote.Total,
		Status:              model.OrderStatusPending,
		PaymentMethod:       input.PaymentMethod,
		PaymentStatus:       model.PaymentStatusPending,
		SpecialInstructions: input.SpecialInstructions,
		EstimatedDelivery:   &eta,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
	}

	order.Items = orderItems

	if err := s.orderRepo.Create(tx, order); err != nil {
		return nil, "", err
	}

	if err := s.decrementStock(tx, items); err != nil {
		return nil, "", err
	}

	if err := s.orderRepo.AddHistory(tx, &model.OrderStatusHistory{
		OrderID:     order.ID,
		Status:      model.OrderStatusPending,
		Notes:       "Order placed",
		ChangedByID: actor.UserID,
	}); err != nil {
		return nil, "", err
	}

	if coupon != nil {
		if err := s.couponRepo.IncrementUsage(tx, coupon.ID); err != nil {
			if errors.Is(err, repository.ErrConditionNotMet) {
				return nil, "", ErrCouponUsageConflict
			}
			return nil, "", err
		}
	}

	if err := s.cartRepo.DeleteByUserIDTx(tx, actor.UserID); err != nil {
		return nil, "", err
	}

	return order, warning, nil
}

// resolveCoupon never fails the checkout for an unusable coupon; the reason
// is returned as a warning and the order proceeds without a discount.
func (s *orderService) resolveCoupon(tx *gorm.DB, code string, subtotal float64, bakeryID uint, now time.Time) (*model.Coupon, float64, string, error) {
	if code == "" {
		return nil, 0, "", nil
	}

	coupon, err := s.couponRepo.FindByCodeTx(tx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, "Invalid coupon code", nil
		}
		return nil, 0, "", err
	}

	if valid, reason := coupon.Check(subtotal, bakeryID, now); !valid {
		return nil, 0, reason, nil
	}
	return coupon, coupon.CalculateDiscount(subtotal), "", nil
}

func (s *orderService) allocateOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	for attempt := 1; attempt <= s.cfg.NumberRetries; attempt++ {
		candidate := s.orderNumber(now)
		exists, err := s.orderRepo.ExistsByNumber(tx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		logger.Warn("Order number collision", map[string]interface{}{
			"order_number": candidate,
			"attempt":      attempt,
		})
	}
	return "", ErrOrderNumberExhausted
}

// decrementStock walks products in id order so concurrent checkouts lock
// rows in the same sequence.
func (s *orderService) decrementStock(tx *gorm.DB, items []model.CartItem) error {
	sorted := make([]model.CartItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	for _, item := range sorted {
		if err := s.productRepo.DecrementStock(tx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, repository.ErrConditionNotMet) {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.Product.Name)
			}
			return err
		}
	}
	return nil
}

func (s *orderService) UpdateStatus(ctx context.Context, actor Actor, orderID uint, status model.OrderStatus, notes string) (*model.Order, error) {
	if _, ok := model.ParseOrderStatus(string(status)); !ok {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	switch {
	case actor.ManagesBakery(order.Bakery):
	case actor.IsCustomer() && order.CustomerID == actor.UserID && status == model.OrderStatusCancelled:
		if !order.CanCancel() {
			return nil, ErrOrderNotCancelable
		}
		if notes == "" {
			notes = defaultCancelReason
		}
	default:
		logger.Warn("Order status change denied", map[string]interface{}{
			"order_id": orderID,
			"user_id":  actor.UserID,
			"role":     actor.Role,
		})
		return nil, ErrOrderAccessDenied
	}

	return s.transition(ctx, actor, order, status, notes)
}

func (s *orderService) CancelOrder(ctx context.Context, actor Actor, orderNumber, reason string) (*model.Order, error) {
	order, err := s.findOwnedByCustomer(ctx, actor, orderNumber)
	if err != nil {
		return nil, err
	}
	if !order.CanCancel() {
		return nil, ErrOrderNotCancelable
	}
	if reason == "" {
		reason = defaultCancelReason
	}
	return s.transition(ctx, actor, order, model.OrderStatusCancelled, reason)
}

// transition moves order to next inside one transaction. The status update
// is conditional on the status read earlier, so of two concurrent
// transitions from the same status only one commits.
func (s *orderService) transition(ctx context.Context, actor Actor, order *model.Order, next model.OrderStatus, notes string) (*model.Order, error) {
	from := order.Status
	if !from.CanTransitionTo(next) {
		logger.Warn("Invalid order status transition", map[string]interface{}{
			"order_id": order.ID,
			"from":     from,
			"to":       next,
		})
		return nil, ErrInvalidTransition
	}

	now := s.now()
	updates := map[string]interface{}{"status": next}
	switch next {
	case model.OrderStatusDelivered:
		updates["delivered_at"] = now
		if order.PaymentMethod == model.PaymentMethodCOD {
			updates["payment_status"] = model.PaymentStatusPaid
		}
	case model.OrderStatusCancelled:
		updates["cancellation_reason"] = notes
		if order.PaymentStatus == model.PaymentStatusPaid {
			updates["payment_status"] = model.PaymentStatusRefunded
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.TransitionStatus(tx, order.ID, from, updates); err != nil {
			if errors.Is(err, repository.ErrConditionNotMet) {
				return ErrOrderConflict
			}
			return err
		}

		if err := s.orderRepo.AddHistory(tx, &model.OrderStatusHistory{
			OrderID:     order.ID,
			Status:      next,
			Notes:       notes,
			ChangedByID: actor.UserID,
		}); err != nil {
			return err
		}

		if next == model.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := s.productRepo.RestoreStock(tx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"from":         from,
		"to":           next,
		"changed_by":   actor.UserID,
	})

	s.notify(ctx, order.CustomerID, order.OrderNumber, next)

	return s.orderRepo.FindByID(ctx, order.ID)
}

func (s *orderService) GetOrderByNumber(ctx context.Context, actor Actor, orderNumber string) (*model.Order, error) {
	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.CustomerID != actor.UserID && !actor.ManagesBakery(order.Bakery) {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *orderService) GetOrderHistory(ctx context.Context, actor Actor, orderNumber string) ([]model.OrderStatusHistory, error) {
	order, err := s.GetOrderByNumber(ctx, actor, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindHistory(ctx, order.ID)
}

func (s *orderService) ListCustomerOrders(ctx context.Context, actor Actor, page repository.Page) ([]model.Order, int64, error) {
	return s.orderRepo.List(ctx, repository.OrderFilter{CustomerID: actor.UserID}, page)
}

func (s *orderService) ListBakeryOrders(ctx context.Context, actor Actor, status model.OrderStatus, page repository.Page) ([]model.Order, int64, error) {
	if !actor.IsBaker() {
		return nil, 0, ErrAccessDenied
	}
	if status != "" {
		if _, ok := model.ParseOrderStatus(string(status)); !ok {
			return nil, 0, ErrInvalidStatus
		}
	}

	bakery, err := s.bakeryRepo.FindByOwnerID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrBakeryNotFound
		}
		return nil, 0, err
	}
	return s.orderRepo.List(ctx, repository.OrderFilter{BakeryID: bakery.ID, Status: status}, page)
}

func (s *orderService) ListAllOrders(ctx context.Context, actor Actor, status model.OrderStatus, page repository.Page) ([]model.Order, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrAccessDenied
	}
	if status != "" {
		if _, ok := model.ParseOrderStatus(string(status)); !ok {
			return nil, 0, ErrInvalidStatus
		}
	}
	return s.orderRepo.List(ctx, repository.OrderFilter{Status: status}, page)
}

// Reorder replaces the customer's cart with the items of a past order whose
// products are still available.
func (s *orderService) Reorder(ctx context.Context, actor Actor, orderNumber string) (*ReorderResult, error) {
	order, err := s.findOwnedByCustomer(ctx, actor, orderNumber)
	if err != nil {
		return nil, err
	}

	result := &ReorderResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cartRepo.DeleteByUserIDTx(tx, actor.UserID); err != nil {
			return err
		}
		for _, item := range order.Items {
			product, err := s.productRepo.FindByIDTx(tx, item.ProductID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if product == nil || !product.IsAvailable {
				result.Skipped = append(result.Skipped, item.ProductName)
				continue
			}
			if err := tx.Create(&model.CartItem{
				UserID:              actor.UserID,
				ProductID:           item.ProductID,
				Quantity:            item.Quantity,
				SpecialInstructions: item.SpecialInstructions,
			}).Error; err != nil {
				return err
			}
			result.Added++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order items copied to cart", map[string]interface{}{
		"order_number": orderNumber,
		"user_id":      actor.UserID,
		"added":        result.Added,
		"skipped":      len(result.Skipped),
	})
	return result, nil
}

// findOwnedByCustomer hides other customers' orders behind ErrOrderNotFound.
func (s *orderService) findOwnedByCustomer(ctx context.Context, actor Actor, orderNumber string) (*model.Order, error) {
	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.CustomerID != actor.UserID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) notify(ctx context.Context, userID uint, orderNumber string, status model.OrderStatus) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyOrderStatus(ctx, userID, orderNumber, status); err != nil {
		logger.Error("Failed to emit order notification", err, map[string]interface{}{
			"order_number": orderNumber,
			"status":       status,
		})
	}
}
