package service

import (
	"context"
	"errors"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidProduct = errors.New("invalid product")

type ProductInput struct {
	CategoryID          *uint
	Name                string
	Description         string
	Price               float64
	DiscountPrice       *float64
	ImageURL            string
	StockQuantity       int
	IsAvailable         bool
	IsVegetarian        bool
	PreparationTimeMins int
}

type ProductService interface {
	ListBakeryProducts(ctx context.Context, bakeryID, categoryID uint) ([]model.Product, error)
	ListMyProducts(ctx context.Context, actor Actor) ([]model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	CreateProduct(ctx context.Context, actor Actor, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, actor Actor, productID uint, input ProductInput) (*model.Product, error)
	SetAvailability(ctx context.Context, actor Actor, productID uint, available bool) error
	DeleteProduct(ctx context.Context, actor Actor, productID uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	bakeryRepo   repository.BakeryRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	bakeryRepo repository.BakeryRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		bakeryRepo:   bakeryRepo,
		categoryRepo: categoryRepo,
	}
}

// ListBakeryProducts returns the available catalogue of an approved bakery,
// optionally narrowed to one category (0 = all).
func (s *productService) ListBakeryProducts(ctx context.Context, bakeryID, categoryID uint) ([]model.Product, error) {
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
	return s.productRepo.FindByBakeryID(ctx, bakeryID, repository.ProductFilter{AvailableOnly: true, CategoryID: categoryID})
}

func (s *productService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, actor Actor, input ProductInput) (*model.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
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

	if err := s.checkCategory(ctx, bakery.ID, input.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{BakeryID: bakery.ID}
	applyProductInput(product, input)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"bakery_id":  bakery.ID,
	})
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, actor Actor, productID uint, input ProductInput) (*model.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !actor.ManagesBakery(product.Bakery) {
		return nil, ErrAccessDenied
	}
	if err := s.checkCategory(ctx, product.BakeryID, input.CategoryID); err != nil {
		return nil, err
	}

	applyProductInput(product, input)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListMyProducts is the baker's full catalogue, unavailable items included.
func (s *productService) ListMyProducts(ctx context.Context, actor Actor) ([]model.Product, error) {
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
	return s.productRepo.FindByBakeryID(ctx, bakery.ID, repository.ProductFilter{})
}

func (s *productService) SetAvailability(ctx context.Context, actor Actor, productID uint, available bool) error {
	product, err := s.managedProduct(ctx, actor, productID)
	if err != nil {
		return err
	}
	if err := s.productRepo.SetAvailable(ctx, product.ID, available); err != nil {
		return err
	}

	logger.Info("Product availability changed", map[string]interface{}{
		"product_id": product.ID,
		"available":  available,
		"changed_by": actor.UserID,
	})
	return nil
}

// DeleteProduct soft-deletes the product. Past orders keep their item
// snapshots, and carts still holding it fail checkout as unavailable.
func (s *productService) DeleteProduct(ctx context.Context, actor Actor, productID uint) error {
	product, err := s.managedProduct(ctx, actor, productID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": product.ID,
		"bakery_id":  product.BakeryID,
		"deleted_by": actor.UserID,
	})
	return nil
}

func (s *productService) managedProduct(ctx context.Context, actor Actor, productID uint) (*model.Product, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !actor.ManagesBakery(product.Bakery) {
		return nil, ErrAccessDenied
	}
	return product, nil
}

// checkCategory rejects categories of other bakeries.
func (s *productService) checkCategory(ctx context.Context, bakeryID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categoryRepo.FindByID(ctx, *categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if category.BakeryID != bakeryID {
		return ErrCategoryNotFound
	}
	return nil
}

func validateProductInput(input ProductInput) error {
	if input.Name == "" || input.Price <= 0 || input.StockQuantity < 0 {
		return ErrInvalidProduct
	}
	if input.DiscountPrice != nil && (*input.DiscountPrice <= 0 || *input.DiscountPrice >= input.Price) {
		return ErrInvalidProduct
	}
	return nil
}

func applyProductInput(p *model.Product, input ProductInput) {
	p.CategoryID = input.CategoryID
	p.Name = input.Name
	p.Description = input.Description
	p.Price = input.Price
	p.DiscountPrice = input.DiscountPrice
	p.ImageURL = input.ImageURL
	p.StockQuantity = input.StockQuantity
	p.IsAvailable = input.IsAvailable
	p.IsVegetarian = input.IsVegetarian
	if input.PreparationTimeMins > 0 {
		p.PreparationTimeMins = input.PreparationTimeMins
	}
}
