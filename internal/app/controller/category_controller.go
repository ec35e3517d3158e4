package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/service"
)

// CategoryController 매장 메뉴 카테고리
type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
	IsActive    *bool  `json:"is_active"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    active,
	}
}

// ListBakeryCategories GET /api/v1/bakeries/:id/categories
func (ctrl *CategoryController) ListBakeryCategories(c *gin.Context) {
	bakeryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	categories, err := ctrl.categoryService.ListBakeryCategories(c.Request.Context(), bakeryID)
	if err != nil {
		respondServiceError(c, err, "categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// ListMyCategories GET /api/v1/baker/categories
func (ctrl *CategoryController) ListMyCategories(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	categories, err := ctrl.categoryService.ListMyCategories(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// CreateCategory POST /api/v1/baker/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := ctrl.categoryService.CreateCategory(c.Request.Context(), actor, req.toInput())
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created",
		"category": category,
	})
}

// UpdateCategory PUT /api/v1/baker/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(c.Request.Context(), actor, id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated",
		"category": category,
	})
}

// DeleteCategory DELETE /api/v1/baker/categories/:id
// 소속 상품은 미분류로 남는다
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted",
	})
}
