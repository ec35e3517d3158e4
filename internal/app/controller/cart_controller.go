package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID           uint   `json:"product_id" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required"`
	SpecialInstructions string `json:"special_instructions" binding:"max=500"`
	ReplaceCart         bool   `json:"replace_cart"`
}

// Quantity 0 removes the line.
type UpdateCartRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart returns user's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.GetCart(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddToCart adds item to cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.cartService.AddToCart(c.Request.Context(), actor, service.AddToCartInput{
		ProductID:           req.ProductID,
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
		ReplaceCart:         req.ReplaceCart,
	})
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"user_id":    actor.UserID,
		"product_id": req.ProductID,
		"quantity":   item.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to cart",
		"item":    item,
	})
}

// UpdateCartItem changes the quantity of a cart line
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCartRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.cartService.UpdateQuantity(c.Request.Context(), actor, id, *req.Quantity); err != nil {
		respondServiceError(c, err, "cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
	})
}

// RemoveFromCart removes a cart line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.ClearCart(c.Request.Context(), actor); err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
