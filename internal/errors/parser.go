package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError 서비스 sentinel로 분류되지 않은 에러(주로 DB 에러)를 코드와 메시지로 변환
// 민감한 정보(쿼리, 제약조건 이름)는 응답에 포함하지 않는다
func ParseError(err error, resource string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(resource)}
	}

	errLower := strings.ToLower(err.Error())

	// PostgreSQL 23505 / SQLite UNIQUE
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	// PostgreSQL 23503 / SQLite FOREIGN KEY
	if strings.Contains(errLower, "foreign key constraint") {
		if strings.Contains(errLower, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "This record is still in use and cannot be deleted"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
	}

	if strings.Contains(errLower, "violates not-null constraint") || strings.Contains(errLower, "not null constraint") {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "A required field is missing"}
	}

	if strings.Contains(errLower, "check constraint") {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "A value is outside the allowed range"}
	}

	// 네트워크/연결 에러
	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(resource)}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "order_number"):
		return ErrorInfo{Code: OrderConflict, Message: "Order number already in use. Please try again"}
	case strings.Contains(errLower, "coupons") || strings.Contains(errLower, "code"):
		return ErrorInfo{Code: CouponCodeExists, Message: "Coupon code already exists"}
	case strings.Contains(errLower, "reviews") || strings.Contains(errLower, "order_id"):
		return ErrorInfo{Code: ReviewAlreadyExists, Message: "This order has already been reviewed"}
	case strings.Contains(errLower, "slug"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This bakery URL is already taken"}
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Email already registered"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
}

func notFoundMessage(resource string) string {
	if resource == "" {
		return "Not found"
	}
	return strings.ToUpper(resource[:1]) + resource[1:] + " not found"
}

func defaultMessage(resource string) string {
	if resource == "" {
		return "Something went wrong. Please try again later"
	}
	return "Failed to process " + resource + ". Please try again later"
}

// ParseAndRespond 에러를 파싱하여 바로 응답
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, resource string) {
	info := ParseError(err, resource)
	c.JSON(statusCode, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}
