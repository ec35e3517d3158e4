package service

import (
	"fmt"
	"math"

	"github.com/lacreme/bakery-backend/internal/app/model"
)

// Quote is the price breakdown of an order.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// cartSubtotal sums the rounded cart lines at current product prices.
func cartSubtotal(items []model.CartItem) float64 {
	var subtotal float64
	for i := range items {
		subtotal += items[i].Subtotal()
	}
	return model.RoundMoney(subtotal)
}

// buildOrderItems snapshots each cart line at the product's current price.
func buildOrderItems(items []model.CartItem) ([]model.OrderItem, error) {
	orderItems := make([]model.OrderItem, 0, len(items))
	for i := range items {
		product := items[i].Product
		if !product.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
		}
		orderItems = append(orderItems, model.OrderItem{
			ProductID:           product.ID,
			ProductName:         product.Name,
			Quantity:            items[i].Quantity,
			UnitPrice:           product.CurrentPrice(),
			Subtotal:            items[i].Subtotal(),
			SpecialInstructions: items[i].SpecialInstructions,
		})
	}
	return orderItems, nil
}

// itemsSubtotal adds up already rounded line subtotals so the order subtotal
// always equals the sum of its items.
func itemsSubtotal(items []model.OrderItem) float64 {
	var subtotal float64
	for i := range items {
		subtotal += items[i].Subtotal
	}
	return model.RoundMoney(subtotal)
}

// newQuote clamps the total at zero.
func newQuote(subtotal, deliveryFee, discount float64) Quote {
	total := math.Max(subtotal+deliveryFee-discount, 0)
	return Quote{
		Subtotal:    model.RoundMoney(subtotal),
		DeliveryFee: model.RoundMoney(deliveryFee),
		Discount:    model.RoundMoney(discount),
		Total:       model.RoundMoney(total),
	}
}
