package service

import "errors"

var (
	ErrAccessDenied = errors.New("access denied")

	// checkout
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMixedBakeryCart      = errors.New("cart contains items from more than one bakery")
	ErrBelowMinimumOrder    = errors.New("order is below the bakery's minimum order amount")
	ErrInvalidAddress       = errors.New("delivery address not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrBakeryUnavailable    = errors.New("bakery is not accepting orders")
	ErrProductUnavailable   = errors.New("product is unavailable")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrCouponUsageConflict  = errors.New("coupon usage limit reached during checkout")
	ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")
	ErrCheckoutInProgress   = errors.New("checkout already in progress")

	// order lifecycle
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAccessDenied  = errors.New("order access denied")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrOrderConflict      = errors.New("order was modified concurrently")
	ErrOrderNotCancelable = errors.New("order can no longer be cancelled")

	// cart
	ErrProductNotFound    = errors.New("product not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrCartBakeryMismatch = errors.New("cart already holds items from another bakery")

	// coupons
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponCodeExists = errors.New("coupon code already exists")
	ErrInvalidCoupon    = errors.New("invalid coupon definition")

	// reviews
	ErrReviewNotFound       = errors.New("review not found")
	ErrReviewAlreadyExists  = errors.New("order has already been reviewed")
	ErrReviewNotAllowed     = errors.New("only delivered orders can be reviewed")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrReviewAlreadyReplied = errors.New("review already has a reply")

	// bakeries
	ErrBakeryNotFound   = errors.New("bakery not found")
	ErrBakeryNotPending = errors.New("bakery is not awaiting approval")

	// categories
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidCategory  = errors.New("category name is required")

	// users
	ErrUserNotFound         = errors.New("user not found")
	ErrCannotDeactivateSelf = errors.New("admins cannot deactivate their own account")
	ErrInvalidRole          = errors.New("unknown user role")
)
