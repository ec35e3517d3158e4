package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/service"
)

// NotificationController 알림 컨트롤러
type NotificationController struct {
	service service.NotificationService
}

// NewNotificationController 알림 컨트롤러 생성자
func NewNotificationController(service service.NotificationService) *NotificationController {
	return &NotificationController{
		service: service,
	}
}

// MarkReadRequest 비어 있는 ids는 전체 읽음 처리
type MarkReadRequest struct {
	IDs []uint `json:"ids"`
}

// GetNotifications 최신 알림 목록과 안읽은 개수
// GET /api/v1/notifications?limit=
func (ctrl *NotificationController) GetNotifications(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	notifications, unread, err := ctrl.service.List(c.Request.Context(), actor.UserID, limit)
	if err != nil {
		respondServiceError(c, err, "notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":         notifications,
		"unread_count": unread,
	})
}

// MarkAsRead 알림 읽음 처리
// POST /api/v1/notifications/read
func (ctrl *NotificationController) MarkAsRead(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req MarkReadRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	updated, err := ctrl.service.MarkRead(c.Request.Context(), actor.UserID, req.IDs)
	if err != nil {
		respondServiceError(c, err, "notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated": updated,
	})
}
