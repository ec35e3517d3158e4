package repository

import (
	"context"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

// OrderFilter narrows order listings. Zero values mean no restriction.
type OrderFilter struct {
	CustomerID uint
	BakeryID   uint
	Status     model.OrderStatus
}

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	ExistsByNumber(tx *gorm.DB, orderNumber string) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter, page Page) ([]model.Order, int64, error)
	TransitionStatus(tx *gorm.DB, id uint, from model.OrderStatus, updates map[string]interface{}) error
	AddHistory(tx *gorm.DB, entry *model.OrderStatusHistory) error
	FindHistory(ctx context.Context, orderID uint) ([]model.OrderStatusHistory, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Bakery").Preload("DeliveryAddress")
}

// Create inserts the order together with its items.
func (r *orderRepository) Create(tx *gorm.DB, order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"order_number": order.OrderNumber,
		"customer_id":  order.CustomerID,
		"total_amount": order.TotalAmount,
	})

	if err := tx.Omit("Customer", "Bakery", "DeliveryAddress", "StatusHistory").Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"order_number": order.OrderNumber,
			"customer_id":  order.CustomerID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) ExistsByNumber(tx *gorm.DB, orderNumber string) (bool, error) {
	var count int64
	if err := tx.Model(&model.Order{}).Where("order_number = ?", orderNumber).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

func (r *orderRepository) FindByIDTx(tx *gorm.DB, id uint) (*model.Order, error) {
	var order model.Order
	if err := preloadOrder(tx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := preloadOrder(r.db.WithContext(ctx)).
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter, page Page) ([]model.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.BakeryID != 0 {
		query = query.Where("bakery_id = ?", filter.BakeryID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count orders", err)
		return nil, 0, err
	}

	var orders []model.Order
	err := preloadOrder(query).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list orders", err, map[string]interface{}{
			"customer_id": filter.CustomerID,
			"bakery_id":   filter.BakeryID,
			"status":      filter.Status,
		})
		return nil, 0, err
	}
	return orders, total, nil
}

// TransitionStatus applies updates only if the order is still in status
// from. Losing that race returns ErrConditionNotMet.
func (r *orderRepository) TransitionStatus(tx *gorm.DB, id uint, from model.OrderStatus, updates map[string]interface{}) error {
	result := tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to update order status in database", result.Error, map[string]interface{}{
			"order_id": id,
			"from":     from,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConditionNotMet
	}
	return nil
}

func (r *orderRepository) AddHistory(tx *gorm.DB, entry *model.OrderStatusHistory) error {
	return tx.Create(entry).Error
}

func (r *orderRepository) FindHistory(ctx context.Context, orderID uint) ([]model.OrderStatusHistory, error) {
	var history []model.OrderStatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&history).Error
	return history, err
}
