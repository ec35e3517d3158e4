package repository

import (
	"context"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows a bakery's product listing. Zero values match all.
type ProductFilter struct {
	AvailableOnly bool
	CategoryID    uint
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByBakeryID(ctx context.Context, bakeryID uint, filter ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	SetAvailable(ctx context.Context, id uint, available bool) error
	Delete(ctx context.Context, id uint) error
	FindByIDTx(tx *gorm.DB, id uint) (*model.Product, error)
	DecrementStock(tx *gorm.DB, id uint, quantity int) error
	RestoreStock(tx *gorm.DB, id uint, quantity int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	if err := r.db.WithContext(ctx).Omit("Bakery", "Category").Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"bakery_id": product.BakeryID,
			"name":      product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

// FindByIDTx loads the product with its bakery using the given handle, which
// may be an open transaction.
func (r *productRepository) FindByIDTx(tx *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	if err := tx.Preload("Bakery").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByBakeryID(ctx context.Context, bakeryID uint, filter ProductFilter) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Where("bakery_id = ?", bakeryID)
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var products []model.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products by bakery", err, map[string]interface{}{
			"bakery_id": bakeryID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	if err := r.db.WithContext(ctx).Omit("Bakery", "Category").Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) SetAvailable(ctx context.Context, id uint, available bool) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("is_available", available)
	if result.Error != nil {
		logger.Error("Failed to update product availability", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes the product. Order items keep their snapshot and
// RestoreStock still reaches the row through Unscoped.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete product", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock subtracts quantity only when enough stock remains. A
// shortfall returns ErrConditionNotMet and leaves the row untouched.
func (r *productRepository) DecrementStock(tx *gorm.DB, id uint, quantity int) error {
	result := tx.Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		logger.Error("Failed to decrement product stock", result.Error, map[string]interface{}{
			"product_id": id,
			"quantity":   quantity,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConditionNotMet
	}

	logger.Debug("Product stock decremented", map[string]interface{}{
		"product_id": id,
		"quantity":   quantity,
	})
	return nil
}

func (r *productRepository) RestoreStock(tx *gorm.DB, id uint, quantity int) error {
	err := tx.Unscoped().Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error
	if err != nil {
		logger.Error("Failed to restore product stock", err, map[string]interface{}{
			"product_id": id,
			"quantity":   quantity,
		})
	}
	return err
}
