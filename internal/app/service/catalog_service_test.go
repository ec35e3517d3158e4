package service

import (
	"testing"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductServiceForTest(env *testEnv) ProductService {
	return NewProductService(repository.NewProductRepository(env.db), repository.NewBakeryRepository(env.db),
		repository.NewCategoryRepository(env.db))
}

func TestProductService_CreateAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	svc := newProductServiceForTest(env)

	created, err := svc.CreateProduct(env.ctx, actorOf(env.baker), ProductInput{
		Name:          "Pain au Chocolat",
		Price:         90,
		StockQuantity: 24,
		IsAvailable:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, env.bakery.ID, created.BakeryID)

	_, err = svc.CreateProduct(env.ctx, actorOf(env.customer), ProductInput{Name: "Bun", Price: 10})
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = svc.CreateProduct(env.ctx, actorOf(env.baker), ProductInput{Name: "Bun", Price: 10, DiscountPrice: floatPtr(12)})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	rival := env.user("rival@example.com", model.RoleBaker)
	env.newBakery(rival)
	_, err = svc.UpdateProduct(env.ctx, actorOf(rival), created.ID, ProductInput{Name: "Stolen", Price: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	updated, err := svc.UpdateProduct(env.ctx, actorOf(env.admin), created.ID, ProductInput{
		Name:          "Pain au Chocolat",
		Price:         90,
		DiscountPrice: floatPtr(75),
		StockQuantity: 10,
		IsAvailable:   false,
	})
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.CurrentPrice())

	listed, err := svc.ListBakeryProducts(env.ctx, env.bakery.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = svc.GetProduct(env.ctx, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddressService_DefaultHandling(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAddressService(repository.NewAddressRepository(env.db))
	newcomer := actorOf(env.user("newcomer@example.com", model.RoleCustomer))

	first := &model.Address{FullAddress: " 4 Park Lane ", City: "Pune", Pincode: "411002"}
	require.NoError(t, svc.CreateAddress(env.ctx, newcomer, first))
	assert.True(t, first.IsDefault)
	assert.Equal(t, "4 Park Lane", first.FullAddress)
	assert.Equal(t, "Home", first.Label)

	second := &model.Address{Label: "Work", FullAddress: "9 FC Road", City: "Pune", Pincode: "411004"}
	require.NoError(t, svc.CreateAddress(env.ctx, newcomer, second))
	assert.False(t, second.IsDefault)

	require.NoError(t, svc.SetDefaultAddress(env.ctx, newcomer, second.ID))
	addresses, err := svc.GetUserAddresses(env.ctx, newcomer)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, second.ID, addresses[0].ID)
	assert.False(t, addresses[1].IsDefault)

	assert.ErrorIs(t, svc.SetDefaultAddress(env.ctx, newcomer, env.address.ID), ErrAddressNotFound)
	assert.ErrorIs(t, svc.DeleteAddress(env.ctx, newcomer, env.address.ID), ErrAddressNotFound)
	require.NoError(t, svc.DeleteAddress(env.ctx, newcomer, first.ID))
}

func TestProductService_AvailabilityAndDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := newProductServiceForTest(env)
	loaf := env.product(env.bakery, "Sourdough", 120, 5)
	bun := env.product(env.bakery, "Bun", 20, 50)

	rival := env.user("rival@example.com", model.RoleBaker)
	env.newBakery(rival)
	assert.ErrorIs(t, svc.SetAvailability(env.ctx, actorOf(rival), loaf.ID, false), ErrAccessDenied)
	assert.ErrorIs(t, svc.DeleteProduct(env.ctx, actorOf(env.customer), loaf.ID), ErrAccessDenied)

	require.NoError(t, svc.SetAvailability(env.ctx, actorOf(env.baker), loaf.ID, false))
	listed, err := svc.ListBakeryProducts(env.ctx, env.bakery.ID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, bun.ID, listed[0].ID)

	// 판매 중지 상품도 사장님 목록에는 보인다
	mine, err := svc.ListMyProducts(env.ctx, actorOf(env.baker))
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	env.addToCart(env.customer, bun, 6)
	require.NoError(t, svc.DeleteProduct(env.ctx, actorOf(env.admin), bun.ID))
	_, err = svc.GetProduct(env.ctx, bun.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(env.ctx, actorOf(env.baker), bun.ID), ErrProductNotFound)

	// 삭제된 상품이 담긴 장바구니는 결제 불가
	_, err = env.placeOrder(env.customer, "")
	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Equal(t, int64(0), env.orderCount())
}

func TestAddressService_UpdateAddress(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAddressService(repository.NewAddressRepository(env.db))
	customer := actorOf(env.customer)

	work := &model.Address{Label: "Work", FullAddress: "9 FC Road", City: "Pune", Pincode: "411004"}
	require.NoError(t, svc.CreateAddress(env.ctx, customer, work))
	require.False(t, work.IsDefault)

	edit := &model.Address{FullAddress: " 10 FC Road ", City: "Pune", Pincode: "411004"}
	require.NoError(t, svc.UpdateAddress(env.ctx, customer, work.ID, edit))
	assert.Equal(t, "10 FC Road", edit.FullAddress)
	assert.Equal(t, "Home", edit.Label)
	assert.False(t, edit.IsDefault)

	edit = &model.Address{Label: "Work", FullAddress: "10 FC Road", City: "Pune", Pincode: "411004", IsDefault: true}
	require.NoError(t, svc.UpdateAddress(env.ctx, customer, work.ID, edit))
	assert.True(t, edit.IsDefault)

	addresses, err := svc.GetUserAddresses(env.ctx, customer)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, work.ID, addresses[0].ID)
	assert.False(t, addresses[1].IsDefault)

	// 기본 해제는 무시, 기존 기본 배송지 유지
	edit = &model.Address{Label: "Work", FullAddress: "10 FC Road", City: "Pune", Pincode: "411004", IsDefault: false}
	require.NoError(t, svc.UpdateAddress(env.ctx, customer, work.ID, edit))
	assert.True(t, edit.IsDefault)

	stranger := actorOf(env.user("stranger@example.com", model.RoleCustomer))
	err = svc.UpdateAddress(env.ctx, stranger, work.ID, &model.Address{FullAddress: "x", City: "y", Pincode: "1"})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}
