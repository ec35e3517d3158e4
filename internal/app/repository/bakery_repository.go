package repository

import (
	"context"
	"math"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

type BakeryRepository interface {
	Create(ctx context.Context, bakery *model.Bakery) error
	FindByID(ctx context.Context, id uint) (*model.Bakery, error)
	FindBySlug(ctx context.Context, slug string) (*model.Bakery, error)
	FindByOwnerID(ctx context.Context, ownerID uint) (*model.Bakery, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	RecalculateRating(tx *gorm.DB, bakeryID uint) (float64, int64, error)
}

type bakeryRepository struct {
	db *gorm.DB
}

func NewBakeryRepository(db *gorm.DB) BakeryRepository {
	return &bakeryRepository{db: db}
}

func (r *bakeryRepository) Create(ctx context.Context, bakery *model.Bakery) error {
	if err := r.db.WithContext(ctx).Omit("Owner").Create(bakery).Error; err != nil {
		logger.Error("Failed to create bakery in database", err, map[string]interface{}{
			"owner_id": bakery.OwnerID,
			"slug":     bakery.Slug,
		})
		return err
	}
	return nil
}

func (r *bakeryRepository) FindByID(ctx context.Context, id uint) (*model.Bakery, error) {
	var bakery model.Bakery
	if err := r.db.WithContext(ctx).First(&bakery, id).Error; err != nil {
		return nil, err
	}
	return &bakery, nil
}

func (r *bakeryRepository) FindBySlug(ctx context.Context, slug string) (*model.Bakery, error) {
	var bakery model.Bakery
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&bakery).Error; err != nil {
		return nil, err
	}
	return &bakery, nil
}

func (r *bakeryRepository) FindByOwnerID(ctx context.Context, ownerID uint) (*model.Bakery, error) {
	var bakery model.Bakery
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&bakery).Error; err != nil {
		return nil, err
	}
	return &bakery, nil
}

func (r *bakeryRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Bakery{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		logger.Error("Failed to update bakery", result.Error, map[string]interface{}{
			"bakery_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes the bakery. Its products stay in place for order history.
func (r *bakeryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Bakery{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete bakery", result.Error, map[string]interface{}{
			"bakery_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecalculateRating stores the mean and count of the bakery's visible
// reviews. A bakery without visible reviews is reset to 0/0.
func (r *bakeryRepository) RecalculateRating(tx *gorm.DB, bakeryID uint) (float64, int64, error) {
	var agg struct {
		Average float64
		Count   int64
	}
	err := tx.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("bakery_id = ? AND is_visible = ?", bakeryID, true).
		Scan(&agg).Error
	if err != nil {
		logger.Error("Failed to aggregate bakery rating", err, map[string]interface{}{
			"bakery_id": bakeryID,
		})
		return 0, 0, err
	}

	rating := math.Round(agg.Average*100) / 100
	err = tx.Model(&model.Bakery{}).Where("id = ?", bakeryID).Updates(map[string]interface{}{
		"rating":        rating,
		"total_reviews": agg.Count,
	}).Error
	if err != nil {
		return 0, 0, err
	}
	return rating, agg.Count, nil
}
