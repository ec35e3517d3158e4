package repository

import (
	"context"
	"strings"
	"time"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

// CouponFilter narrows coupon listings. A nil BakeryID with PlatformOnly
// false lists every coupon.
type CouponFilter struct {
	BakeryID     *uint
	PlatformOnly bool
	ActiveOnly   bool
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByID(ctx context.Context, id uint) (*model.Coupon, error)
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindByCodeTx(tx *gorm.DB, code string) (*model.Coupon, error)
	List(ctx context.Context, filter CouponFilter) ([]model.Coupon, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	IncrementUsage(tx *gorm.DB, id uint) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

// NormalizeCouponCode is the canonical stored form of a coupon code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	coupon.Code = NormalizeCouponCode(coupon.Code)
	if err := r.db.WithContext(ctx).Create(coupon).Error; err != nil {
		logger.Error("Failed to create coupon in database", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}
	return nil
}

func (r *couponRepository) FindByID(ctx context.Context, id uint) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return r.FindByCodeTx(r.db.WithContext(ctx), code)
}

func (r *couponRepository) FindByCodeTx(tx *gorm.DB, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := tx.Where("code = ?", NormalizeCouponCode(code)).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) List(ctx context.Context, filter CouponFilter) ([]model.Coupon, error) {
	query := r.db.WithContext(ctx).Model(&model.Coupon{})
	switch {
	case filter.BakeryID != nil:
		query = query.Where("bakery_id = ?", *filter.BakeryID)
	case filter.PlatformOnly:
		query = query.Where("bakery_id IS NULL")
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var coupons []model.Coupon
	if err := query.Order("created_at DESC").Find(&coupons).Error; err != nil {
		logger.Error("Failed to list coupons", err)
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).Model(&model.Coupon{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Coupon{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete coupon", result.Error, map[string]interface{}{
			"coupon_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementUsage consumes one use of the coupon. When the usage limit is
// already reached it returns ErrConditionNotMet without touching the row.
func (r *couponRepository) IncrementUsage(tx *gorm.DB, id uint) error {
	result := tx.Model(&model.Coupon{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		logger.Error("Failed to increment coupon usage", result.Error, map[string]interface{}{
			"coupon_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConditionNotMet
	}
	return nil
}

func (r *couponRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("is_active = ? AND valid_until IS NOT NULL AND valid_until < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired coupons", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
