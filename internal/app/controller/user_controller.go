package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/middleware"
)

// UserController 관리자 회원 관리
type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ListUsers GET /api/v1/admin/users?role=&search=&page=
func (ctrl *UserController) ListUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	filter := repository.UserFilter{
		Role:   model.UserRole(c.Query("role")),
		Search: c.Query("search"),
	}
	page := pageFromQuery(c)

	users, total, err := ctrl.userService.ListUsers(c.Request.Context(), actor, filter, page)
	if err != nil {
		respondServiceError(c, err, "users")
		return
	}

	c.JSON(http.StatusOK, paginated(users, total, page))
}

// SetUserActive PUT /api/v1/admin/users/:id/active
func (ctrl *UserController) SetUserActive(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetUserActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.userService.SetUserActive(c.Request.Context(), actor, id, *req.IsActive)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	log.Info("User status changed", map[string]interface{}{
		"user_id":   id,
		"is_active": user.IsActive,
		"admin_id":  actor.UserID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}
