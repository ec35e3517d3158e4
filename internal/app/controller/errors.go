package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/service"
	apperrors "github.com/lacreme/bakery-backend/internal/errors"
	"github.com/lacreme/bakery-backend/internal/middleware"
	"github.com/lacreme/bakery-backend/internal/storage"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// 서비스 sentinel → HTTP 상태/에러 코드. 먼저 매칭되는 항목이 우선한다
var errorTable = []errorMapping{
	{service.ErrAccessDenied, http.StatusForbidden, apperrors.AuthzAccessDenied},
	{service.ErrOrderAccessDenied, http.StatusForbidden, apperrors.AuthzAccessDenied},

	{service.ErrEmptyCart, http.StatusBadRequest, apperrors.CartEmpty},
	{service.ErrMixedBakeryCart, http.StatusBadRequest, apperrors.BakeryMixed},
	{service.ErrBelowMinimumOrder, http.StatusBadRequest, apperrors.BakeryMinOrder},
	{service.ErrInvalidAddress, http.StatusBadRequest, apperrors.OrderInvalidAddress},
	{service.ErrInvalidPaymentMethod, http.StatusBadRequest, apperrors.OrderInvalidPayment},
	{service.ErrBakeryUnavailable, http.StatusBadRequest, apperrors.BakeryUnavailable},
	{service.ErrProductUnavailable, http.StatusBadRequest, apperrors.ProductUnavailable},
	{service.ErrInvalidStatus, http.StatusBadRequest, apperrors.OrderInvalidStatus},
	{service.ErrInvalidTransition, http.StatusBadRequest, apperrors.OrderInvalidTransition},
	{service.ErrOrderNotCancelable, http.StatusBadRequest, apperrors.OrderNotCancelable},
	{service.ErrInvalidQuantity, http.StatusBadRequest, apperrors.CartInvalidQty},
	{service.ErrInvalidCoupon, http.StatusBadRequest, apperrors.CouponInvalid},
	{service.ErrInvalidRating, http.StatusBadRequest, apperrors.ReviewInvalidRating},
	{service.ErrReviewNotAllowed, http.StatusBadRequest, apperrors.ReviewNotAllowed},
	{service.ErrInvalidProduct, http.StatusBadRequest, apperrors.ProductInvalid},
	{service.ErrInvalidCategory, http.StatusBadRequest, apperrors.CategoryInvalid},
	{service.ErrCannotDeactivateSelf, http.StatusBadRequest, apperrors.UserSelfDeactivate},
	{service.ErrInvalidRole, http.StatusBadRequest, apperrors.ValidationInvalidInput},
	{storage.ErrUnknownFolder, http.StatusBadRequest, apperrors.ValidationInvalidInput},
	{storage.ErrUnsupportedContentType, http.StatusBadRequest, apperrors.UploadInvalidFileType},

	{service.ErrOrderNotFound, http.StatusNotFound, apperrors.OrderNotFound},
	{service.ErrProductNotFound, http.StatusNotFound, apperrors.ProductNotFound},
	{service.ErrCartItemNotFound, http.StatusNotFound, apperrors.CartItemNotFound},
	{service.ErrCouponNotFound, http.StatusNotFound, apperrors.CouponNotFound},
	{service.ErrReviewNotFound, http.StatusNotFound, apperrors.ReviewNotFound},
	{service.ErrBakeryNotFound, http.StatusNotFound, apperrors.BakeryNotFound},
	{service.ErrAddressNotFound, http.StatusNotFound, apperrors.AddressNotFound},
	{service.ErrCategoryNotFound, http.StatusNotFound, apperrors.CategoryNotFound},
	{service.ErrUserNotFound, http.StatusNotFound, apperrors.UserNotFound},

	{service.ErrInsufficientStock, http.StatusConflict, apperrors.StockInsufficient},
	{service.ErrCouponUsageConflict, http.StatusConflict, apperrors.CouponUsageConflict},
	{service.ErrOrderConflict, http.StatusConflict, apperrors.OrderConflict},
	{service.ErrCheckoutInProgress, http.StatusConflict, apperrors.OrderCheckoutBusy},
	{service.ErrCartBakeryMismatch, http.StatusConflict, apperrors.CartBakeryMismatch},
	{service.ErrCouponCodeExists, http.StatusConflict, apperrors.CouponCodeExists},
	{service.ErrReviewAlreadyExists, http.StatusConflict, apperrors.ReviewAlreadyExists},
	{service.ErrReviewAlreadyReplied, http.StatusConflict, apperrors.ReviewAlreadyReplied},
	{service.ErrBakeryNotPending, http.StatusConflict, apperrors.BakeryNotPending},

	{service.ErrOrderNumberExhausted, http.StatusServiceUnavailable, apperrors.OrderNumberExhausted},
}

// respondServiceError 서비스 에러를 HTTP 응답으로 변환
// 매핑되지 않은 에러는 로그를 남기고 ParseError로 처리한다
func respondServiceError(c *gin.Context, err error, resource string) {
	log := middleware.GetLoggerFromContext(c)

	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			if m.status >= http.StatusInternalServerError {
				log.Error("Request failed", err, map[string]interface{}{"resource": resource})
			}
			apperrors.RespondWithError(c, m.status, m.code, userMessage(err))
			return
		}
	}

	log.Error("Unhandled service error", err, map[string]interface{}{
		"resource": resource,
	})
	apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, resource)
}

func userMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
