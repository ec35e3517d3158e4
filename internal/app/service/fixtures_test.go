package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lacreme/bakery-backend/config"
	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 5, 14, 23, 1, 0, 0, time.UTC)

type notifiedEvent struct {
	UserID      uint
	OrderNumber string
	Status      model.OrderStatus
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notifiedEvent
	err    error
}

func (n *recordingNotifier) NotifyOrderStatus(_ context.Context, userID uint, orderNumber string, status model.OrderStatus) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifiedEvent{UserID: userID, OrderNumber: orderNumber, Status: status})
	return n.err
}

func (n *recordingNotifier) Events() []notifiedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifiedEvent(nil), n.events...)
}

type testEnv struct {
	t        *testing.T
	db       *gorm.DB
	ctx      context.Context
	orders   OrderService
	carts    CartService
	coupons  CouponService
	reviews  *ReviewService
	notifier *recordingNotifier

	customer *model.User
	baker    *model.User
	admin    *model.User
	bakery   *model.Bakery
	address  *model.Address
}

func newTestEnv(t *testing.T, opts ...OrderOption) *testEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return newTestEnvOn(t, testDB, opts...)
}

// newConcurrentTestEnv runs on a file-backed database with several pooled
// connections, so checkouts started from different goroutines overlap.
func newConcurrentTestEnv(t *testing.T, opts ...OrderOption) *testEnv {
	testDB, err := db.SetupFileTestDB(t.TempDir(), 4)
	require.NoError(t, err)
	return newTestEnvOn(t, testDB, opts...)
}

func newTestEnvOn(t *testing.T, testDB *gorm.DB, opts ...OrderOption) *testEnv {
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	env := &testEnv{t: t, db: testDB, ctx: context.Background(), notifier: &recordingNotifier{}}

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	bakeryRepo := repository.NewBakeryRepository(testDB)

	base := []OrderOption{
		WithClock(func() time.Time { return testNow }),
		WithNotifier(env.notifier),
	}
	env.orders = NewOrderService(testDB, orderRepo, cartRepo, productRepo, couponRepo, addressRepo, bakeryRepo,
		config.OrderConfig{NumberRetries: 3, CheckoutLockTTL: time.Second}, append(base, opts...)...)
	env.carts = NewCartService(cartRepo, productRepo)
	coupons := NewCouponService(couponRepo, bakeryRepo).(*couponService)
	coupons.now = func() time.Time { return testNow }
	env.coupons = coupons
	env.reviews = NewReviewService(testDB, repository.NewReviewRepository(testDB), orderRepo, bakeryRepo)

	env.customer = env.user("customer@example.com", model.RoleCustomer)
	env.baker = env.user("baker@example.com", model.RoleBaker)
	env.admin = env.user("admin@example.com", model.RoleAdmin)
	env.bakery = env.newBakery(env.baker)
	env.address = env.newAddress(env.customer)
	return env
}

func (e *testEnv) user(email string, role model.UserRole) *model.User {
	u := &model.User{Email: email, PasswordHash: "hash", Name: email, Role: role, IsActive: true}
	require.NoError(e.t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) newBakery(owner *model.User) *model.Bakery {
	b := &model.Bakery{
		OwnerID:          owner.ID,
		Name:             fmt.Sprintf("Bakery %d", owner.ID),
		Slug:             fmt.Sprintf("bakery-%d", owner.ID),
		Address:          "1 Baker Street",
		City:             "Pune",
		Pincode:          "411001",
		MinOrderAmount:   100,
		DeliveryFee:      30,
		DeliveryTimeMins: 45,
		IsApproved:       true,
		IsOpen:           true,
	}
	require.NoError(e.t, e.db.Create(b).Error)
	return b
}

func (e *testEnv) newAddress(owner *model.User) *model.Address {
	a := &model.Address{UserID: owner.ID, Label: "Home", FullAddress: "12 MG Road", City: "Pune", Pincode: "411001", IsDefault: true}
	require.NoError(e.t, e.db.Create(a).Error)
	return a
}

func (e *testEnv) product(bakery *model.Bakery, name string, price float64, stock int) *model.Product {
	p := &model.Product{BakeryID: bakery.ID, Name: name, Price: price, StockQuantity: stock, IsAvailable: true}
	require.NoError(e.t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) addToCart(user *model.User, product *model.Product, qty int) {
	require.NoError(e.t, e.db.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: qty}).Error)
}

func (e *testEnv) coupon(c *model.Coupon) *model.Coupon {
	if c.ValidFrom.IsZero() {
		c.ValidFrom = testNow.Add(-24 * time.Hour)
	}
	require.NoError(e.t, repository.NewCouponRepository(e.db).Create(e.ctx, c))
	return c
}

func (e *testEnv) stock(product *model.Product) int {
	var p model.Product
	require.NoError(e.t, e.db.First(&p, product.ID).Error)
	return p.StockQuantity
}

func (e *testEnv) cartCount(user *model.User) int64 {
	var n int64
	require.NoError(e.t, e.db.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&n).Error)
	return n
}

func (e *testEnv) orderCount() int64 {
	var n int64
	require.NoError(e.t, e.db.Model(&model.Order{}).Count(&n).Error)
	return n
}

func (e *testEnv) placeOrder(user *model.User, couponCode string) (*PlaceOrderResult, error) {
	addressID := e.address.ID
	if user.ID != e.customer.ID {
		addressID = e.newAddress(user).ID
	}
	return e.orders.PlaceOrder(e.ctx, actorOf(user), PlaceOrderInput{
		AddressID:     addressID,
		PaymentMethod: model.PaymentMethodCOD,
		CouponCode:    couponCode,
	})
}

func actorOf(u *model.User) Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
