package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized    = "AUTH_UNAUTHORIZED"     // 로그인 필요
	AuthTokenExpired    = "AUTH_TOKEN_EXPIRED"    // 토큰 만료
	AuthTokenInvalid    = "AUTH_TOKEN_INVALID"    // 잘못된 토큰
	AuthAccountDisabled = "AUTH_ACCOUNT_DISABLED" // 비활성화된 계정

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // 접근 권한 없음
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"  // 작업 권한 없음
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // 권한 정보 없음

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 매장 (BAKERY_) ====================
	BakeryNotFound    = "BAKERY_NOT_FOUND"   // 매장 없음
	BakeryUnavailable = "BAKERY_UNAVAILABLE" // 주문 불가 매장 (미승인/영업 종료)
	BakeryMinOrder    = "BAKERY_MIN_ORDER"   // 최소 주문 금액 미달
	BakeryMixed       = "BAKERY_MIXED"       // 여러 매장 상품 혼합
	BakeryNotPending  = "BAKERY_NOT_PENDING" // 승인 대기 상태 아님

	// ==================== 상품/재고 (PRODUCT_, STOCK_) ====================
	ProductNotFound    = "PRODUCT_NOT_FOUND"   // 상품 없음
	ProductUnavailable = "PRODUCT_UNAVAILABLE" // 판매 중지 상품
	ProductInvalid     = "PRODUCT_INVALID"     // 잘못된 상품 정보
	StockInsufficient  = "STOCK_INSUFFICIENT"  // 재고 부족

	// ==================== 카테고리 (CATEGORY_) ====================
	CategoryNotFound = "CATEGORY_NOT_FOUND" // 카테고리 없음
	CategoryInvalid  = "CATEGORY_INVALID"   // 잘못된 카테고리 정보

	// ==================== 회원 (USER_) ====================
	UserNotFound       = "USER_NOT_FOUND"       // 회원 없음
	UserSelfDeactivate = "USER_SELF_DEACTIVATE" // 본인 계정 비활성화 불가

	// ==================== 장바구니 (CART_) ====================
	CartEmpty          = "CART_EMPTY"            // 장바구니 비어 있음
	CartItemNotFound   = "CART_ITEM_NOT_FOUND"   // 장바구니 항목 없음
	CartBakeryMismatch = "CART_BAKERY_MISMATCH"  // 다른 매장 상품 존재
	CartInvalidQty     = "CART_INVALID_QUANTITY" // 잘못된 수량

	// ==================== 주문 (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"            // 주문 없음
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION"   // 허용되지 않은 상태 변경
	OrderInvalidStatus     = "ORDER_INVALID_STATUS"       // 알 수 없는 상태
	OrderNotCancelable     = "ORDER_NOT_CANCELABLE"       // 취소 불가 상태
	OrderConflict          = "ORDER_CONFLICT"             // 동시 변경 충돌
	OrderInvalidAddress    = "ORDER_INVALID_ADDRESS"      // 잘못된 배송지
	OrderInvalidPayment    = "ORDER_INVALID_PAYMENT"      // 잘못된 결제 수단
	OrderCheckoutBusy      = "ORDER_CHECKOUT_IN_PROGRESS" // 결제 진행 중
	OrderNumberExhausted   = "ORDER_NUMBER_EXHAUSTED"     // 주문번호 생성 실패

	// ==================== 쿠폰 (COUPON_) ====================
	CouponNotFound      = "COUPON_NOT_FOUND"      // 쿠폰 없음
	CouponInvalid       = "COUPON_INVALID"        // 잘못된 쿠폰 정보
	CouponCodeExists    = "COUPON_CODE_EXISTS"    // 쿠폰 코드 중복
	CouponUsageConflict = "COUPON_USAGE_CONFLICT" // 사용 한도 경합

	// ==================== 리뷰 (REVIEW_) ====================
	ReviewNotFound       = "REVIEW_NOT_FOUND"       // 리뷰 없음
	ReviewInvalidRating  = "REVIEW_INVALID_RATING"  // 잘못된 평점
	ReviewAlreadyExists  = "REVIEW_ALREADY_EXISTS"  // 이미 리뷰 작성함
	ReviewNotAllowed     = "REVIEW_NOT_ALLOWED"     // 배달 완료 전 리뷰 불가
	ReviewAlreadyReplied = "REVIEW_ALREADY_REPLIED" // 이미 답글 작성함

	// ==================== 배송지 (ADDRESS_) ====================
	AddressNotFound = "ADDRESS_NOT_FOUND" // 배송지 없음

	// ==================== 업로드 (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // 잘못된 파일 형식
	UploadFailed          = "UPLOAD_FAILED"            // 업로드 실패

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류
)
