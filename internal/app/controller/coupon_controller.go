package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/middleware"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{
		couponService: couponService,
	}
}

type ValidateCouponRequest struct {
	Code        string  `json:"code" binding:"required,max=50"`
	OrderAmount float64 `json:"order_amount" binding:"gte=0"`
	BakeryID    uint    `json:"bakery_id"`
}

type CreateCouponRequest struct {
	Code           string             `json:"code" binding:"required,max=50"`
	Description    string             `json:"description" binding:"max=255"`
	DiscountType   model.DiscountType `json:"discount_type" binding:"required"`
	DiscountValue  float64            `json:"discount_value" binding:"required,gt=0"`
	MinOrderAmount float64            `json:"min_order_amount" binding:"gte=0"`
	MaxDiscount    *float64           `json:"max_discount"`
	UsageLimit     *int               `json:"usage_limit"`
	ValidFrom      *time.Time         `json:"valid_from"`
	ValidUntil     *time.Time         `json:"valid_until"`
	BakeryID       *uint              `json:"bakery_id"`
}

type SetCouponActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ValidateCoupon checks a code against an order amount without using it
// POST /api/v1/coupons/validate
func (ctrl *CouponController) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	check, err := ctrl.couponService.ValidateCoupon(c.Request.Context(), req.Code, req.OrderAmount, req.BakeryID)
	if err != nil {
		respondServiceError(c, err, "coupon")
		return
	}

	c.JSON(http.StatusOK, check)
}

// ListCoupons lists coupons the caller manages
// GET /api/v1/baker/coupons, GET /api/v1/admin/coupons
func (ctrl *CouponController) ListCoupons(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	coupons, err := ctrl.couponService.ListCoupons(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "coupons")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupons": coupons,
		"count":   len(coupons),
	})
}

// CreateCoupon creates a platform or bakery coupon
// POST /api/v1/baker/coupons, POST /api/v1/admin/coupons
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	coupon, err := ctrl.couponService.CreateCoupon(c.Request.Context(), actor, service.CreateCouponInput{
		Code:           req.Code,
		Description:    req.Description,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		UsageLimit:     req.UsageLimit,
		ValidFrom:      req.ValidFrom,
		ValidUntil:     req.ValidUntil,
		BakeryID:       req.BakeryID,
	})
	if err != nil {
		respondServiceError(c, err, "coupon")
		return
	}

	log.Info("Coupon created successfully", map[string]interface{}{
		"coupon_id": coupon.ID,
		"user_id":   actor.UserID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon created",
		"coupon":  coupon,
	})
}

// SetCouponActive toggles a coupon
// PATCH /api/v1/{baker,admin}/coupons/:id
func (ctrl *CouponController) SetCouponActive(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetCouponActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.couponService.SetCouponActive(c.Request.Context(), actor, id, *req.IsActive); err != nil {
		respondServiceError(c, err, "coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon updated",
	})
}

// DeleteCoupon deletes a coupon
// DELETE /api/v1/{baker,admin}/coupons/:id
func (ctrl *CouponController) DeleteCoupon(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.couponService.DeleteCoupon(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon deleted",
	})
}
