package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/middleware"
)

// BakeryController 매장 조회와 승인/운영 상태 관리
type BakeryController struct {
	bakeryService service.BakeryService
}

func NewBakeryController(bakeryService service.BakeryService) *BakeryController {
	return &BakeryController{
		bakeryService: bakeryService,
	}
}

type SetOpenRequest struct {
	IsOpen *bool `json:"is_open" binding:"required"`
}

type RejectBakeryRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type SetFeaturedRequest struct {
	IsFeatured *bool `json:"is_featured" binding:"required"`
}

// GetBakery GET /api/v1/bakeries/:id
// 같은 위치의 다른 라우트와 와일드카드 이름을 맞추기 위해 :id 자리에 slug를 받는다
func (ctrl *BakeryController) GetBakery(c *gin.Context) {
	bakery, err := ctrl.bakeryService.GetBySlug(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "bakery")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bakery":         bakery,
		"accepts_orders": bakery.AcceptsOrders(),
	})
}

// GetMyBakery GET /api/v1/baker/bakery
func (ctrl *BakeryController) GetMyBakery(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	bakery, err := ctrl.bakeryService.GetByOwner(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "bakery")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bakery": bakery,
	})
}

// SetOpen PUT /api/v1/baker/bakery/open
func (ctrl *BakeryController) SetOpen(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req SetOpenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.bakeryService.SetOpen(c.Request.Context(), actor, *req.IsOpen); err != nil {
		respondServiceError(c, err, "bakery")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_open": *req.IsOpen,
	})
}

// ApproveBakery POST /api/v1/admin/bakeries/:id/approve
func (ctrl *BakeryController) ApproveBakery(c *gin.Context) {
	ctrl.changeApproval(c, true)
}

// SuspendBakery POST /api/v1/admin/bakeries/:id/suspend
func (ctrl *BakeryController) SuspendBakery(c *gin.Context) {
	ctrl.changeApproval(c, false)
}

func (ctrl *BakeryController) changeApproval(c *gin.Context, approve bool) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var err error
	if approve {
		err = ctrl.bakeryService.Approve(c.Request.Context(), actor, id)
	} else {
		err = ctrl.bakeryService.Suspend(c.Request.Context(), actor, id)
	}
	if err != nil {
		respondServiceError(c, err, "bakery")
		return
	}

	log.Info("Bakery approval changed", map[string]interface{}{
		"bakery_id": id,
		"approved":  approve,
		"admin_id":  actor.UserID,
	})

	c.JSON(http.StatusOK, gin.H{
		"bakery_id":   id,
		"is_approved": approve,
	})
}

// RejectBakery POST /api/v1/admin/bakeries/:id/reject
// 승인 대기 중인 신청만 거절 가능
func (ctrl *BakeryController) RejectBakery(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectBakeryRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.bakeryService.Reject(c.Request.Context(), actor, id, req.Reason); err != nil {
		respondServiceError(c, err, "bakery")
		return
	}

	log.Info("Bakery application rejected", map[string]interface{}{
		"bakery_id": id,
		"admin_id":  actor.UserID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":   "Bakery application rejected",
		"bakery_id": id,
	})
}

// SetFeatured PUT /api/v1/admin/bakeries/:id/featured
func (ctrl *BakeryController) SetFeatured(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetFeaturedRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.bakeryService.SetFeatured(c.Request.Context(), actor, id, *req.IsFeatured); err != nil {
		respondServiceError(c, err, "bakery")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bakery_id":   id,
		"is_featured": *req.IsFeatured,
	})
}
