package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/service"
	apperrors "github.com/lacreme/bakery-backend/internal/errors"
	"github.com/lacreme/bakery-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CreateOrderRequest struct {
	AddressID           uint                `json:"address_id" binding:"required"`
	PaymentMethod       model.PaymentMethod `json:"payment_method"`
	CouponCode          string              `json:"coupon_code" binding:"max=50"`
	SpecialInstructions string              `json:"special_instructions" binding:"max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=500"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// CreateOrder checks out the customer's cart
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := ctrl.orderService.PlaceOrder(c.Request.Context(), actor, service.PlaceOrderInput{
		AddressID:           req.AddressID,
		PaymentMethod:       req.PaymentMethod,
		CouponCode:          req.CouponCode,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	log.Info("Order created successfully", map[string]interface{}{
		"user_id":      actor.UserID,
		"order_number": result.Order.OrderNumber,
		"total_amount": result.Order.TotalAmount,
	})

	resp := gin.H{
		"message": "Order placed successfully",
		"order":   result.Order,
	}
	if result.CouponWarning != "" {
		resp["coupon_warning"] = result.CouponWarning
	}
	c.JSON(http.StatusCreated, resp)
}

// GetOrders returns the customer's own orders
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	page := pageFromQuery(c)
	orders, total, err := ctrl.orderService.ListCustomerOrders(c.Request.Context(), actor, page)
	if err != nil {
		respondServiceError(c, err, "orders")
		return
	}

	c.JSON(http.StatusOK, paginated(orders, total, page))
}

// GetOrder returns one order by its number
// GET /api/v1/orders/:number
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByNumber(c.Request.Context(), actor, c.Param("number"))
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":         order,
		"next_statuses": order.Status.NextStatuses(),
	})
}

// GetOrderHistory returns the status timeline of an order
// GET /api/v1/orders/:number/history
func (ctrl *OrderController) GetOrderHistory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	history, err := ctrl.orderService.GetOrderHistory(c.Request.Context(), actor, c.Param("number"))
	if err != nil {
		respondServiceError(c, err, "order history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
	})
}

// CancelOrder lets the customer cancel a pending or confirmed order
// POST /api/v1/orders/:number/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CancelOrderRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	order, err := ctrl.orderService.CancelOrder(c.Request.Context(), actor, c.Param("number"), req.Reason)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled",
		"order":   order,
	})
}

// Reorder refills the cart from a previous order
// POST /api/v1/orders/:number/reorder
func (ctrl *OrderController) Reorder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := ctrl.orderService.Reorder(c.Request.Context(), actor, c.Param("number"))
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Items added to cart",
		"added":   result.Added,
		"skipped": result.Skipped,
	})
}

// UpdateOrderStatus moves an order along its lifecycle (baker or admin)
// PUT /api/v1/baker/orders/:id/status
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, valid := model.ParseOrderStatus(req.Status)
	if !valid {
		apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Invalid order status")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(c.Request.Context(), actor, id, status, req.Notes)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	log.Info("Order status updated successfully", map[string]interface{}{
		"order_id":   id,
		"status":     status,
		"changed_by": actor.UserID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// GetBakeryOrders lists orders of the baker's own bakery
// GET /api/v1/baker/orders?status=
func (ctrl *OrderController) GetBakeryOrders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	status, ok := statusFilter(c)
	if !ok {
		return
	}

	page := pageFromQuery(c)
	orders, total, err := ctrl.orderService.ListBakeryOrders(c.Request.Context(), actor, status, page)
	if err != nil {
		respondServiceError(c, err, "orders")
		return
	}

	c.JSON(http.StatusOK, paginated(orders, total, page))
}

// GetAllOrders lists every order (admin)
// GET /api/v1/admin/orders?status=
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	status, ok := statusFilter(c)
	if !ok {
		return
	}

	page := pageFromQuery(c)
	orders, total, err := ctrl.orderService.ListAllOrders(c.Request.Context(), actor, status, page)
	if err != nil {
		respondServiceError(c, err, "orders")
		return
	}

	c.JSON(http.StatusOK, paginated(orders, total, page))
}

func statusFilter(c *gin.Context) (model.OrderStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return "", true
	}
	status, valid := model.ParseOrderStatus(raw)
	if !valid {
		apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Invalid order status")
		return "", false
	}
	return status, true
}
