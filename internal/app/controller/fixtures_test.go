package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/config"
	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/db"
	"github.com/lacreme/bakery-backend/internal/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiEnv struct {
	t  *testing.T
	db *gorm.DB

	cart         *CartController
	order        *OrderController
	coupon       *CouponController
	review       *ReviewController
	notification *NotificationController
	bakery       *BakeryController
	product      *ProductController
	category     *CategoryController
	address      *AddressController
	users        *UserController

	bakeryService service.BakeryService

	customer    *model.User
	baker       *model.User
	admin       *model.User
	bakeryModel *model.Bakery
	addr        *model.Address
}

func setupAPI(t *testing.T) *apiEnv {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	bakeryRepo := repository.NewBakeryRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)

	notifications := service.NewNotificationService(repository.NewNotificationRepository(testDB), nil)
	orders := service.NewOrderService(testDB, orderRepo, cartRepo, productRepo, couponRepo, addressRepo, bakeryRepo,
		config.OrderConfig{NumberRetries: 3, CheckoutLockTTL: time.Second},
		service.WithNotifier(notifications))
	bakeries := service.NewBakeryService(bakeryRepo, notifications)

	env := &apiEnv{
		t:             t,
		db:            testDB,
		cart:          NewCartController(service.NewCartService(cartRepo, productRepo)),
		order:         NewOrderController(orders),
		coupon:        NewCouponController(service.NewCouponService(couponRepo, bakeryRepo)),
		review:        NewReviewController(service.NewReviewService(testDB, repository.NewReviewRepository(testDB), orderRepo, bakeryRepo)),
		notification:  NewNotificationController(notifications),
		bakery:        NewBakeryController(bakeries),
		product:       NewProductController(service.NewProductService(productRepo, bakeryRepo, categoryRepo)),
		category:      NewCategoryController(service.NewCategoryService(categoryRepo, bakeryRepo)),
		address:       NewAddressController(service.NewAddressService(addressRepo)),
		users:         NewUserController(service.NewUserService(repository.NewUserRepository(testDB))),
		bakeryService: bakeries,
	}

	env.customer = env.user("customer@example.com", model.RoleCustomer)
	env.baker = env.user("baker@example.com", model.RoleBaker)
	env.admin = env.user("admin@example.com", model.RoleAdmin)
	env.bakeryModel = &model.Bakery{
		OwnerID:          env.baker.ID,
		Name:             "Morning Crust",
		Slug:             "morning-crust",
		Address:          "1 Baker Street",
		City:             "Pune",
		Pincode:          "411001",
		MinOrderAmount:   100,
		DeliveryFee:      30,
		DeliveryTimeMins: 45,
		IsApproved:       true,
		IsOpen:           true,
	}
	require.NoError(t, testDB.Create(env.bakeryModel).Error)
	env.addr = &model.Address{UserID: env.customer.ID, Label: "Home", FullAddress: "12 MG Road", City: "Pune", Pincode: "411001", IsDefault: true}
	require.NoError(t, testDB.Create(env.addr).Error)
	return env
}

func (e *apiEnv) user(email string, role model.UserRole) *model.User {
	u := &model.User{Email: email, PasswordHash: "hash", Name: email, Role: role, IsActive: true}
	require.NoError(e.t, e.db.Create(u).Error)
	return u
}

func (e *apiEnv) newProduct(name string, price float64, stock int) *model.Product {
	p := &model.Product{BakeryID: e.bakeryModel.ID, Name: name, Price: price, StockQuantity: stock, IsAvailable: true}
	require.NoError(e.t, e.db.Create(p).Error)
	return p
}

func (e *apiEnv) addToCart(p *model.Product, qty int) {
	require.NoError(e.t, e.db.Create(&model.CartItem{UserID: e.customer.ID, ProductID: p.ID, Quantity: qty}).Error)
}

func (e *apiEnv) placeOrder() *model.Order {
	result, err := e.order.orderService.PlaceOrder(context.Background(),
		service.Actor{UserID: e.customer.ID, Role: model.RoleCustomer},
		service.PlaceOrderInput{AddressID: e.addr.ID, PaymentMethod: model.PaymentMethodCOD})
	require.NoError(e.t, err)
	return result.Order
}

// asUser stands in for the JWT middleware.
func asUser(u *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set(middleware.UserIDKey, u.ID)
			c.Set(middleware.UserRoleKey, u.Role)
		}
		c.Next()
	}
}

func newEngine(u *model.User, method, path string, handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Handle(method, path, asUser(u), handler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, id)
}

