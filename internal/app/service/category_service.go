package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string
	Description string
	IsActive    bool
}

// CategoryService 매장 메뉴 카테고리 관리
type CategoryService interface {
	ListBakeryCategories(ctx context.Context, bakeryID uint) ([]model.Category, error)
	ListMyCategories(ctx context.Context, actor Actor) ([]model.Category, error)
	CreateCategory(ctx context.Context, actor Actor, input CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, actor Actor, categoryID uint, input CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, actor Actor, categoryID uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	bakeryRepo   repository.BakeryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, bakeryRepo repository.BakeryRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		bakeryRepo:   bakeryRepo,
	}
}

// ListBakeryCategories 공개 메뉴. 승인된 매장의 활성 카테고리만
func (s *categoryService) ListBakeryCategories(ctx context.Context, bakeryID uint) ([]model.Category, error) {
	bakery, err := s.bakeryRepo.FindByID(ctx, bakeryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBakeryNotFound
		}
		return nil, err
	}
	if !bakery.IsApproved {
		return nil, ErrBakeryNotFound
	}
	return s.categoryRepo.FindByBakeryID(ctx, bakeryID, true)
}

func (s *categoryService) ListMyCategories(ctx context.Context, actor Actor) ([]model.Category, error) {
	bakery, err := s.ownBakery(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.FindByBakeryID(ctx, bakery.ID, false)
}

// CreateCategory 새 카테고리는 목록 맨 뒤에 붙는다
func (s *categoryService) CreateCategory(ctx context.Context, actor Actor, input CategoryInput) (*model.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrInvalidCategory
	}

	bakery, err := s.ownBakery(ctx, actor)
	if err != nil {
		return nil, err
	}

	count, err := s.categoryRepo.CountByBakeryID(ctx, bakery.ID)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		BakeryID:     bakery.ID,
		Name:         input.Name,
		Description:  input.Description,
		DisplayOrder: int(count),
		IsActive:     true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"bakery_id":   bakery.ID,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, actor Actor, categoryID uint, input CategoryInput) (*model.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrInvalidCategory
	}

	category, err := s.ownCategory(ctx, actor, categoryID)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	category.IsActive = input.IsActive
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 소속 상품은 삭제하지 않고 미분류로 돌린다
func (s *categoryService) DeleteCategory(ctx context.Context, actor Actor, categoryID uint) error {
	category, err := s.ownCategory(ctx, actor, categoryID)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id": category.ID,
		"bakery_id":   category.BakeryID,
	})
	return nil
}

func (s *categoryService) ownBakery(ctx context.Context, actor Actor) (*model.Bakery, error) {
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

// ownCategory 다른 매장의 카테고리는 존재하지 않는 것으로 취급
func (s *categoryService) ownCategory(ctx context.Context, actor Actor, categoryID uint) (*model.Category, error) {
	bakery, err := s.ownBakery(ctx, actor)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.BakeryID != bakery.ID {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}
