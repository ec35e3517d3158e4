package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/middleware"
)

// ReviewController 리뷰 컨트롤러
type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

type ReplyReviewRequest struct {
	Reply string `json:"reply" binding:"required,max=1000"`
}

type ReviewVisibilityRequest struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
}

// CreateReview 배달 완료 주문 리뷰 작성
// POST /api/v1/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := ctrl.reviewService.CreateReview(c.Request.Context(), actor, service.CreateReviewInput{
		OrderID: req.OrderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}

	log.Info("Review created successfully", map[string]interface{}{
		"review_id": review.ID,
		"user_id":   actor.UserID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted",
		"review":  review,
	})
}

// GetBakeryReviews 매장 리뷰 목록
// GET /api/v1/bakeries/:id/reviews
func (ctrl *ReviewController) GetBakeryReviews(c *gin.Context) {
	bakeryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page := pageFromQuery(c)
	reviews, total, err := ctrl.reviewService.GetBakeryReviews(c.Request.Context(), bakeryID, page)
	if err != nil {
		respondServiceError(c, err, "reviews")
		return
	}

	c.JSON(http.StatusOK, paginated(reviews, total, page))
}

// ReplyToReview 사장님 답글
// POST /api/v1/baker/reviews/:id/reply
func (ctrl *ReviewController) ReplyToReview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReplyReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := ctrl.reviewService.ReplyToReview(c.Request.Context(), actor, id, req.Reply)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reply posted",
		"review":  review,
	})
}

// SetReviewVisibility 관리자 리뷰 숨김/노출
// PATCH /api/v1/admin/reviews/:id
func (ctrl *ReviewController) SetReviewVisibility(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewVisibilityRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.reviewService.SetVisibility(c.Request.Context(), actor, id, *req.IsVisible); err != nil {
		respondServiceError(c, err, "review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated",
	})
}

// DeleteReview 리뷰 삭제 (작성자 또는 관리자)
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.reviewService.DeleteReview(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted",
	})
}
