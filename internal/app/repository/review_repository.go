package repository

import (
	"context"
	"time"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) CreateReview(tx *gorm.DB, review *model.Review) error {
	return tx.Omit("User").Create(review).Error
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ExistsForOrder(tx *gorm.DB, orderID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.Review{}).Where("order_id = ?", orderID).Count(&count).Error
	return count > 0, err
}

// GetReviewsByBakeryID lists reviews newest first. Hidden reviews are
// included only when includeHidden is set.
func (r *ReviewRepository) GetReviewsByBakeryID(ctx context.Context, bakeryID uint, includeHidden bool, page Page) ([]model.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Review{}).Where("bakery_id = ?", bakeryID)
	if !includeHidden {
		query = query.Where("is_visible = ?", true)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	err := query.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// SetReply stores the bakery's reply once. A review that already has a
// reply returns ErrConditionNotMet.
func (r *ReviewRepository) SetReply(ctx context.Context, id uint, reply string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ? AND reply_at IS NULL", id).
		Updates(map[string]interface{}{"reply": reply, "reply_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConditionNotMet
	}
	return nil
}

func (r *ReviewRepository) SetVisible(tx *gorm.DB, id uint, visible bool) error {
	return tx.Model(&model.Review{}).Where("id = ?", id).Update("is_visible", visible).Error
}

func (r *ReviewRepository) DeleteReview(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Review{}, id).Error
}
