package repository

import (
	"context"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	FindByBakeryID(ctx context.Context, bakeryID uint, activeOnly bool) ([]model.Category, error)
	CountByBakeryID(ctx context.Context, bakeryID uint) (int64, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"bakery_id": category.BakeryID,
			"name":      category.Name,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByBakeryID(ctx context.Context, bakeryID uint, activeOnly bool) ([]model.Category, error) {
	query := r.db.WithContext(ctx).Where("bakery_id = ?", bakeryID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []model.Category
	if err := query.Order("display_order ASC, id ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories by bakery", err, map[string]interface{}{
			"bakery_id": bakeryID,
		})
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) CountByBakeryID(ctx context.Context, bakeryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("bakery_id = ?", bakeryID).Count(&count).Error
	return count, err
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

// Delete removes the category and leaves its products uncategorised.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			logger.Error("Failed to uncategorise products", err, map[string]interface{}{
				"category_id": id,
			})
			return err
		}

		result := tx.Delete(&model.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
