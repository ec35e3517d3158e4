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

type CreateReviewInput struct {
	OrderID uint
	Rating  int
	Comment string
}

type ReviewService struct {
	db         *gorm.DB
	reviewRepo *repository.ReviewRepository
	orderRepo  repository.OrderRepository
	bakeryRepo repository.BakeryRepository
	now        func() time.Time
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo *repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	bakeryRepo repository.BakeryRepository,
) *ReviewService {
	return &ReviewService{
		db:         db,
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		bakeryRepo: bakeryRepo,
		now:        time.Now,
	}
}

// CreateReview 배달 완료된 본인 주문에 대한 리뷰 작성 (주문당 1개)
func (s *ReviewService) CreateReview(ctx context.Context, actor Actor, input CreateReviewInput) (*model.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.CustomerID != actor.UserID {
		return nil, ErrOrderNotFound
	}
	if order.Status != model.OrderStatusDelivered {
		return nil, ErrReviewNotAllowed
	}

	review := &model.Review{
		UserID:    actor.UserID,
		BakeryID:  order.BakeryID,
		OrderID:   order.ID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		IsVisible: true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.reviewRepo.ExistsForOrder(tx, order.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrReviewAlreadyExists
		}
		if err := s.reviewRepo.CreateReview(tx, review); err != nil {
			return err
		}
		_, _, err = s.bakeryRepo.RecalculateRating(tx, order.BakeryID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"order_id":  order.ID,
		"bakery_id": order.BakeryID,
		"rating":    review.Rating,
	})
	return review, nil
}

// ReplyToReview 사장님 답글 (리뷰당 1회)
func (s *ReviewService) ReplyToReview(ctx context.Context, actor Actor, reviewID uint, reply string) (*model.Review, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	bakery, err := s.bakeryRepo.FindByID(ctx, review.BakeryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBakeryNotFound
		}
		return nil, err
	}
	if !actor.IsBaker() || bakery.OwnerID != actor.UserID {
		return nil, ErrAccessDenied
	}
	if review.HasReply() {
		return nil, ErrReviewAlreadyReplied
	}

	if err := s.reviewRepo.SetReply(ctx, review.ID, strings.TrimSpace(reply), s.now()); err != nil {
		if errors.Is(err, repository.ErrConditionNotMet) {
			return nil, ErrReviewAlreadyReplied
		}
		return nil, err
	}
	return s.reviewRepo.GetReviewByID(ctx, review.ID)
}

// SetVisibility 관리자 리뷰 노출 여부 변경
func (s *ReviewService) SetVisibility(ctx context.Context, actor Actor, reviewID uint, visible bool) error {
	if !actor.IsAdmin() {
		return ErrAccessDenied
	}
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.SetVisible(tx, review.ID, visible); err != nil {
			return err
		}
		_, _, err := s.bakeryRepo.RecalculateRating(tx, review.BakeryID)
		return err
	})
}

// DeleteReview 작성자 또는 관리자만 삭제 가능
func (s *ReviewService) DeleteReview(ctx context.Context, actor Actor, reviewID uint) error {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actor.UserID && !actor.IsAdmin() {
		return ErrAccessDenied
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.DeleteReview(tx, review.ID); err != nil {
			return err
		}
		_, _, err := s.bakeryRepo.RecalculateRating(tx, review.BakeryID)
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("Review deleted", map[string]interface{}{
		"review_id":  review.ID,
		"bakery_id":  review.BakeryID,
		"deleted_by": actor.UserID,
	})
	return nil
}

// GetBakeryReviews 매장별 공개 리뷰 목록 조회
func (s *ReviewService) GetBakeryReviews(ctx context.Context, bakeryID uint, page repository.Page) ([]model.Review, int64, error) {
	if _, err := s.bakeryRepo.FindByID(ctx, bakeryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrBakeryNotFound
		}
		return nil, 0, err
	}
	return s.reviewRepo.GetReviewsByBakeryID(ctx, bakeryID, false, page)
}

func (s *ReviewService) findReview(ctx context.Context, id uint) (*model.Review, error) {
	review, err := s.reviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}
