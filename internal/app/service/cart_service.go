package service

import (
	"context"
	"errors"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddToCartInput struct {
	ProductID           uint
	Quantity            int
	SpecialInstructions string
	// ReplaceCart clears a cart holding another bakery's items instead of
	// rejecting the add.
	ReplaceCart bool
}

type CartView struct {
	Items     []model.CartItem `json:"items"`
	Bakery    *model.Bakery    `json:"bakery,omitempty"`
	Subtotal  float64          `json:"subtotal"`
	ItemCount int              `json:"item_count"`
}

type CartService interface {
	GetCart(ctx context.Context, actor Actor) (*CartView, error)
	AddToCart(ctx context.Context, actor Actor, input AddToCartInput) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, actor Actor, cartItemID uint, quantity int) error
	RemoveItem(ctx context.Context, actor Actor, cartItemID uint) error
	ClearCart(ctx context.Context, actor Actor) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetCart(ctx context.Context, actor Actor) (*CartView, error) {
	items, err := s.cartRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: items, Subtotal: cartSubtotal(items)}
	for i := range items {
		view.ItemCount += items[i].Quantity
		if view.Bakery == nil && items[i].Product != nil {
			view.Bakery = items[i].Product.Bakery
		}
	}
	return view, nil
}

func (s *cartService) AddToCart(ctx context.Context, actor Actor, input AddToCartInput) (*model.CartItem, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    actor.UserID,
		"product_id": input.ProductID,
		"quantity":   input.Quantity,
	})

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": input.ProductID,
		})
		return nil, err
	}
	if !product.IsAvailable || product.Bakery == nil || !product.Bakery.IsApproved {
		logger.Warn("Cannot add to cart: product unavailable", map[string]interface{}{
			"user_id":    actor.UserID,
			"product_id": input.ProductID,
		})
		return nil, ErrProductUnavailable
	}

	items, err := s.cartRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	var existing *model.CartItem
	for i := range items {
		if items[i].Product != nil && items[i].Product.BakeryID != product.BakeryID {
			if !input.ReplaceCart {
				return nil, ErrCartBakeryMismatch
			}
			if err := s.cartRepo.DeleteByUserID(ctx, actor.UserID); err != nil {
				return nil, err
			}
			logger.Info("Cart replaced with items from another bakery", map[string]interface{}{
				"user_id":   actor.UserID,
				"bakery_id": product.BakeryID,
			})
			existing = nil
			break
		}
		if items[i].ProductID == product.ID {
			existing = &items[i]
		}
	}

	requested := input.Quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if requested > product.StockQuantity {
		logger.Warn("Cannot add to cart: insufficient product stock", map[string]interface{}{
			"user_id":    actor.UserID,
			"product_id": product.ID,
			"requested":  requested,
			"available":  product.StockQuantity,
		})
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		existing.Quantity = requested
		if input.SpecialInstructions != "" {
			existing.SpecialInstructions = input.SpecialInstructions
		}
		if err := s.cartRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &model.CartItem{
		UserID:              actor.UserID,
		ProductID:           product.ID,
		Quantity:            input.Quantity,
		SpecialInstructions: input.SpecialInstructions,
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// UpdateQuantity deletes the line when quantity drops to zero or below.
func (s *cartService) UpdateQuantity(ctx context.Context, actor Actor, cartItemID uint, quantity int) error {
	item, err := s.ownedItem(ctx, actor, cartItemID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		return s.cartRepo.Delete(ctx, item.ID)
	}
	if item.Product != nil && quantity > item.Product.StockQuantity {
		return ErrInsufficientStock
	}

	item.Quantity = quantity
	return s.cartRepo.Update(ctx, item)
}

func (s *cartService) RemoveItem(ctx context.Context, actor Actor, cartItemID uint) error {
	item, err := s.ownedItem(ctx, actor, cartItemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, item.ID)
}

func (s *cartService) ClearCart(ctx context.Context, actor Actor) error {
	return s.cartRepo.DeleteByUserID(ctx, actor.UserID)
}

func (s *cartService) ownedItem(ctx context.Context, actor Actor, cartItemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != actor.UserID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}
