package service

import (
	"context"
	"errors"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

// UserService 관리자 회원 관리. 로그인/가입은 외부 인증 서비스 담당
type UserService interface {
	ListUsers(ctx context.Context, actor Actor, filter repository.UserFilter, page repository.Page) ([]model.User, int64, error)
	SetUserActive(ctx context.Context, actor Actor, userID uint, active bool) (*model.User, error)
	IsActive(ctx context.Context, userID uint) (bool, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) ListUsers(ctx context.Context, actor Actor, filter repository.UserFilter, page repository.Page) ([]model.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrAccessDenied
	}
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, 0, ErrInvalidRole
	}
	return s.userRepo.List(ctx, filter, page)
}

// SetUserActive activates or deactivates an account. Admins cannot lock
// themselves out.
func (s *userService) SetUserActive(ctx context.Context, actor Actor, userID uint, active bool) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	if userID == actor.UserID && !active {
		return nil, ErrCannotDeactivateSelf
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("User status changed", map[string]interface{}{
		"user_id":    userID,
		"is_active":  active,
		"changed_by": actor.UserID,
	})
	return user, nil
}

// IsActive backs the auth middleware's per-request account check.
func (s *userService) IsActive(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return user.IsActive, nil
}
