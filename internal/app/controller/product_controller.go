package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	CategoryID          *uint    `json:"category_id"`
	Name                string   `json:"name" binding:"required,max=150"`
	Description         string   `json:"description"`
	Price               float64  `json:"price" binding:"required,gt=0"`
	DiscountPrice       *float64 `json:"discount_price"`
	ImageURL            string   `json:"image_url" binding:"max=255"`
	StockQuantity       int      `json:"stock_quantity" binding:"gte=0"`
	IsAvailable         *bool    `json:"is_available"`
	IsVegetarian        bool     `json:"is_vegetarian"`
	PreparationTimeMins int      `json:"preparation_time_mins" binding:"gte=0"`
}

func (r ProductRequest) toInput() service.ProductInput {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return service.ProductInput{
		CategoryID:          r.CategoryID,
		Name:                r.Name,
		Description:         r.Description,
		Price:               r.Price,
		DiscountPrice:       r.DiscountPrice,
		ImageURL:            r.ImageURL,
		StockQuantity:       r.StockQuantity,
		IsAvailable:         available,
		IsVegetarian:        r.IsVegetarian,
		PreparationTimeMins: r.PreparationTimeMins,
	}
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// ListBakeryProducts handles GET /api/v1/bakeries/:id/products?category_id=
func (ctrl *ProductController) ListBakeryProducts(c *gin.Context) {
	bakeryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	categoryID, ok := parseOptionalIDQuery(c, "category_id")
	if !ok {
		return
	}

	products, err := ctrl.productService.ListBakeryProducts(c.Request.Context(), bakeryID, categoryID)
	if err != nil {
		respondServiceError(c, err, "products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID handles GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":             product,
		"current_price":       product.CurrentPrice(),
		"discount_percentage": product.DiscountPercentage(),
		"in_stock":            product.IsInStock(),
	})
}

// CreateProduct handles POST /api/v1/baker/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), actor, req.toInput())
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"bakery_id":  product.BakeryID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
		"product": product,
	})
}

// UpdateProduct handles PUT /api/v1/baker/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), actor, id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated",
		"product": product,
	})
}

// ListMyProducts handles GET /api/v1/baker/products
// 판매 중지 상품까지 모두 포함
func (ctrl *ProductController) ListMyProducts(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	products, err := ctrl.productService.ListMyProducts(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// SetProductAvailability handles PUT /api/v1/baker/products/:id/availability
func (ctrl *ProductController) SetProductAvailability(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.productService.SetAvailability(c.Request.Context(), actor, id, *req.IsAvailable); err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id":   id,
		"is_available": *req.IsAvailable,
	})
}

// DeleteProduct handles DELETE /api/v1/baker/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
		"user_id":    actor.UserID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}
