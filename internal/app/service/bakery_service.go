package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

type BakeryService interface {
	GetBySlug(ctx context.Context, slug string) (*model.Bakery, error)
	GetByOwner(ctx context.Context, actor Actor) (*model.Bakery, error)
	Approve(ctx context.Context, actor Actor, bakeryID uint) error
	Suspend(ctx context.Context, actor Actor, bakeryID uint) error
	Reject(ctx context.Context, actor Actor, bakeryID uint, reason string) error
	SetFeatured(ctx context.Context, actor Actor, bakeryID uint, featured bool) error
	SetOpen(ctx context.Context, actor Actor, open bool) error
}

type bakeryService struct {
	bakeryRepo repository.BakeryRepository
	notifier   NotificationService
}

func NewBakeryService(bakeryRepo repository.BakeryRepository, notifier NotificationService) BakeryService {
	return &bakeryService{
		bakeryRepo: bakeryRepo,
		notifier:   notifier,
	}
}

// GetBySlug hides bakeries that are not approved yet.
func (s *bakeryService) GetBySlug(ctx context.Context, slug string) (*model.Bakery, error) {
	bakery, err := s.bakeryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBakeryNotFound
		}
		return nil, err
	}
	if !bakery.IsApproved {
		return nil, ErrBakeryNotFound
	}
	return bakery, nil
}

func (s *bakeryService) GetByOwner(ctx context.Context, actor Actor) (*model.Bakery, error) {
	if !actor.IsBaker() {
		return nil, ErrAccessDenied
	}
	bakery, err := s.bakeryRepo.FindByOwnerID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBakeryNotFound
		}
		return nil, err
	}
	return bakery, nil
}

func (s *bakeryService) Approve(ctx context.Context, actor Actor, bakeryID uint) error {
	return s.setApproval(ctx, actor, bakeryID, true)
}

// Suspend withdraws approval and closes the bakery.
func (s *bakeryService) Suspend(ctx context.Context, actor Actor, bakeryID uint) error {
	return s.setApproval(ctx, actor, bakeryID, false)
}

// Reject turns down a pending application. The bakery is removed and the
// owner is told why.
func (s *bakeryService) Reject(ctx context.Context, actor Actor, bakeryID uint, reason string) error {
	if !actor.IsAdmin() {
		return ErrAccessDenied
	}

	bakery, err := s.bakeryRepo.FindByID(ctx, bakeryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBakeryNotFound
		}
		return err
	}
	// 승인된 매장은 reject 대신 suspend
	if bakery.IsApproved {
		return ErrBakeryNotPending
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Application rejected"
	}

	if err := s.bakeryRepo.Delete(ctx, bakery.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBakeryNotFound
		}
		return err
	}

	logger.Info("Bakery application rejected", map[string]interface{}{
		"bakery_id":   bakery.ID,
		"owner_id":    bakery.OwnerID,
		"rejected_by": actor.UserID,
	})

	s.notifyOwner(ctx, bakery, "Bakery Application Update",
		fmt.Sprintf("Your bakery \"%s\" application was not approved. Reason: %s", bakery.Name, reason), "")
	return nil
}

func (s *bakeryService) setApproval(ctx context.Context, actor Actor, bakeryID uint, approved bool) error {
	if !actor.IsAdmin() {
		return ErrAccessDenied
	}

	bakery, err := s.bakeryRepo.FindByID(ctx, bakeryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBakeryNotFound
		}
		return err
	}

	fields := map[string]interface{}{"is_approved": approved}
	if !approved {
		fields["is_open"] = false
		fields["is_featured"] = false
	}
	if err := s.bakeryRepo.UpdateFields(ctx, bakeryID, fields); err != nil {
		return err
	}

	logger.Info("Bakery approval changed", map[string]interface{}{
		"bakery_id":  bakeryID,
		"approved":   approved,
		"changed_by": actor.UserID,
	})

	title, message := "Bakery Approved!", fmt.Sprintf("Congratulations! Your bakery \"%s\" has been approved. You can now start selling!", bakery.Name)
	if !approved {
		title, message = "Bakery Suspended", fmt.Sprintf("Your bakery \"%s\" has been suspended. Please contact support.", bakery.Name)
	}
	s.notifyOwner(ctx, bakery, title, message, "/baker/dashboard")
	return nil
}

// notifyOwner 알림 실패는 로그만 남긴다
func (s *bakeryService) notifyOwner(ctx context.Context, bakery *model.Bakery, title, message, link string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, &model.Notification{
		UserID:  bakery.OwnerID,
		Title:   title,
		Message: message,
		Type:    model.NotificationTypeSystem,
		Link:    link,
	}); err != nil {
		logger.Error("Failed to notify bakery owner", err, map[string]interface{}{
			"bakery_id": bakery.ID,
		})
	}
}

func (s *bakeryService) SetFeatured(ctx context.Context, actor Actor, bakeryID uint, featured bool) error {
	if !actor.IsAdmin() {
		return ErrAccessDenied
	}
	if err := s.bakeryRepo.UpdateFields(ctx, bakeryID, map[string]interface{}{"is_featured": featured}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBakeryNotFound
		}
		return err
	}
	return nil
}

// SetOpen toggles whether the baker's own bakery takes orders right now.
func (s *bakeryService) SetOpen(ctx context.Context, actor Actor, open bool) error {
	bakery, err := s.GetByOwner(ctx, actor)
	if err != nil {
		return err
	}
	return s.bakeryRepo.UpdateFields(ctx, bakery.ID, map[string]interface{}{"is_open": open})
}
