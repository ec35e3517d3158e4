package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

// CouponCheck is the outcome of a read-only coupon validation.
type CouponCheck struct {
	Valid    bool    `json:"valid"`
	Reason   string  `json:"reason"`
	Discount float64 `json:"discount"`
}

type CreateCouponInput struct {
	Code           string
	Description    string
	DiscountType   model.DiscountType
	DiscountValue  float64
	MinOrderAmount float64
	MaxDiscount    *float64
	UsageLimit     *int
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	// BakeryID is ignored for bakers, whose coupons are always scoped to
	// their own bakery. Admins may leave it nil for a platform-wide coupon.
	BakeryID *uint
}

type CouponService interface {
	ValidateCoupon(ctx context.Context, code string, orderAmount float64, bakeryID uint) (*CouponCheck, error)
	CreateCoupon(ctx context.Context, actor Actor, input CreateCouponInput) (*model.Coupon, error)
	ListCoupons(ctx context.Context, actor Actor) ([]model.Coupon, error)
	SetCouponActive(ctx context.Context, actor Actor, couponID uint, active bool) error
	DeleteCoupon(ctx context.Context, actor Actor, couponID uint) error
	DeactivateExpired(ctx context.Context) (int64, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
	bakeryRepo repository.BakeryRepository
	now        func() time.Time
}

func NewCouponService(couponRepo repository.CouponRepository, bakeryRepo repository.BakeryRepository) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		bakeryRepo: bakeryRepo,
		now:        time.Now,
	}
}

func (s *couponService) ValidateCoupon(ctx context.Context, code string, orderAmount float64, bakeryID uint) (*CouponCheck, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CouponCheck{Valid: false, Reason: "Invalid coupon code"}, nil
		}
		return nil, err
	}

	valid, reason := coupon.Check(orderAmount, bakeryID, s.now())
	check := &CouponCheck{Valid: valid, Reason: reason}
	if valid {
		check.Discount = coupon.CalculateDiscount(orderAmount)
	}
	return check, nil
}

func (s *couponService) CreateCoupon(ctx context.Context, actor Actor, input CreateCouponInput) (*model.Coupon, error) {
	if err := validateCouponInput(input); err != nil {
		return nil, err
	}

	bakeryID := input.BakeryID
	switch {
	case actor.IsAdmin():
	case actor.IsBaker():
		bakery, err := s.ownBakery(ctx, actor)
		if err != nil {
			return nil, err
		}
		bakeryID = &bakery.ID
	default:
		return nil, ErrAccessDenied
	}

	if _, err := s.couponRepo.FindByCode(ctx, input.Code); err == nil {
		return nil, ErrCouponCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	validFrom := s.now()
	if input.ValidFrom != nil {
		validFrom = *input.ValidFrom
	}
	coupon := &model.Coupon{
		BakeryID:       bakeryID,
		Code:           input.Code,
		Description:    input.Description,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		MinOrderAmount: input.MinOrderAmount,
		MaxDiscount:    input.MaxDiscount,
		UsageLimit:     input.UsageLimit,
		ValidFrom:      validFrom,
		ValidUntil:     input.ValidUntil,
		IsActive:       true,
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	logger.Info("Coupon created", map[string]interface{}{
		"coupon_id":  coupon.ID,
		"code":       coupon.Code,
		"bakery_id":  coupon.BakeryID,
		"created_by": actor.UserID,
	})
	return coupon, nil
}

func validateCouponInput(input CreateCouponInput) error {
	if strings.TrimSpace(input.Code) == "" || !input.DiscountType.Valid() || input.DiscountValue <= 0 {
		return ErrInvalidCoupon
	}
	if input.DiscountType == model.DiscountPercentage && input.DiscountValue > 100 {
		return ErrInvalidCoupon
	}
	if input.UsageLimit != nil && *input.UsageLimit < 1 {
		return ErrInvalidCoupon
	}
	if input.ValidFrom != nil && input.ValidUntil != nil && input.ValidUntil.Before(*input.ValidFrom) {
		return ErrInvalidCoupon
	}
	return nil
}

func (s *couponService) ListCoupons(ctx context.Context, actor Actor) ([]model.Coupon, error) {
	switch {
	case actor.IsAdmin():
		return s.couponRepo.List(ctx, repository.CouponFilter{})
	case actor.IsBaker():
		bakery, err := s.ownBakery(ctx, actor)
		if err != nil {
			return nil, err
		}
		return s.couponRepo.List(ctx, repository.CouponFilter{BakeryID: &bakery.ID})
	}
	return nil, ErrAccessDenied
}

func (s *couponService) SetCouponActive(ctx context.Context, actor Actor, couponID uint, active bool) error {
	if _, err := s.managedCoupon(ctx, actor, couponID); err != nil {
		return err
	}
	return s.couponRepo.SetActive(ctx, couponID, active)
}

func (s *couponService) DeleteCoupon(ctx context.Context, actor Actor, couponID uint) error {
	coupon, err := s.managedCoupon(ctx, actor, couponID)
	if err != nil {
		return err
	}
	if err := s.couponRepo.Delete(ctx, couponID); err != nil {
		return err
	}

	logger.Info("Coupon deleted", map[string]interface{}{
		"coupon_id":  couponID,
		"code":       coupon.Code,
		"deleted_by": actor.UserID,
	})
	return nil
}

func (s *couponService) DeactivateExpired(ctx context.Context) (int64, error) {
	return s.couponRepo.DeactivateExpired(ctx, s.now())
}

// managedCoupon loads a coupon the actor may modify. Bakers may only touch
// coupons scoped to their own bakery.
func (s *couponService) managedCoupon(ctx context.Context, actor Actor, couponID uint) (*model.Coupon, error) {
	if !actor.IsAdmin() && !actor.IsBaker() {
		return nil, ErrAccessDenied
	}

	coupon, err := s.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	if actor.IsAdmin() {
		return coupon, nil
	}

	bakery, err := s.ownBakery(ctx, actor)
	if err != nil {
		return nil, err
	}
	if coupon.BakeryID == nil || *coupon.BakeryID != bakery.ID {
		return nil, ErrAccessDenied
	}
	return coupon, nil
}

func (s *couponService) ownBakery(ctx context.Context, actor Actor) (*model.Bakery, error) {
	bakery, err := s.bakeryRepo.FindByOwnerID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBakeryNotFound
		}
		return nil, err
	}
	return bakery, nil
}
