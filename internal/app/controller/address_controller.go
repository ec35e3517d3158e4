package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	Label       string `json:"label" binding:"max=50"`
	FullAddress string `json:"full_address" binding:"required,max=500"`
	City        string `json:"city" binding:"required,max=100"`
	Pincode     string `json:"pincode" binding:"required,max=10"`
	Landmark    string `json:"landmark" binding:"max=200"`
	IsDefault   bool   `json:"is_default"`
}

func (r AddressRequest) toModel() *model.Address {
	return &model.Address{
		Label:       r.Label,
		FullAddress: r.FullAddress,
		City:        r.City,
		Pincode:     r.Pincode,
		Landmark:    r.Landmark,
		IsDefault:   r.IsDefault,
	}
}

// GetAddresses 배송지 목록
// GET /api/v1/addresses
func (ctrl *AddressController) GetAddresses(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	addresses, err := ctrl.addressService.GetUserAddresses(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// CreateAddress 배송지 추가
// POST /api/v1/addresses
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	address := req.toModel()
	if err := ctrl.addressService.CreateAddress(c.Request.Context(), actor, address); err != nil {
		respondServiceError(c, err, "address")
		return
	}

	log.Info("Address created", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    actor.UserID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address added",
		"address": address,
	})
}

// UpdateAddress 배송지 수정
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	address := req.toModel()
	if err := ctrl.addressService.UpdateAddress(c.Request.Context(), actor, id, address); err != nil {
		respondServiceError(c, err, "address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated",
		"address": address,
	})
}

// DeleteAddress 배송지 삭제
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addressService.DeleteAddress(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted",
	})
}

// SetDefaultAddress 기본 배송지 지정
// PUT /api/v1/addresses/:id/default
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addressService.SetDefaultAddress(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Default address updated",
	})
}
