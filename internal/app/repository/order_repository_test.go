package repository

import (
	"context"
	"testing"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createOrder(t *testing.T, repo OrderRepository, testDB *gorm.DB, number string, customer *model.User, bakery *model.Bakery, product *model.Product) *model.Order {
	order := &model.Order{
		OrderNumber:   number,
		CustomerID:    customer.ID,
		BakeryID:      bakery.ID,
		Subtotal:      240,
		DeliveryFee:   30,
		TotalAmount:   270,
		Status:        model.OrderStatusPending,
		PaymentMethod: model.PaymentMethodCOD,
		PaymentStatus: model.PaymentStatusPending,
		Items: []model.OrderItem{
			{ProductID: product.ID, ProductName: product.Name, Quantity: 2, UnitPrice: 120, Subtotal: 240},
		},
	}
	require.NoError(t, repo.Create(testDB, order))
	return order
}

func TestOrderRepository_CreateWithItems(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewOrderRepository(testDB)
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)
	product := createProduct(t, testDB, bakery, 120, 10)

	order := createOrder(t, repo, testDB, "LC202405142301A1B2C3", customer, bakery, product)
	assert.NotZero(t, order.ID)

	found, err := repo.FindByNumber(context.Background(), "LC202405142301A1B2C3")
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Sourdough Loaf", found.Items[0].ProductName)
	require.NotNil(t, found.Bakery)
	assert.Equal(t, bakery.ID, found.Bakery.ID)

	exists, err := repo.ExistsByNumber(testDB, "LC202405142301A1B2C3")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNumber(testDB, "LC202405142301FFFFFF")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOrderRepository_TransitionStatusIsConditional(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewOrderRepository(testDB)
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)
	order := createOrder(t, repo, testDB, "LC202405142301000001", customer, bakery, createProduct(t, testDB, bakery, 120, 10))

	err := repo.TransitionStatus(testDB, order.ID, model.OrderStatusPending, map[string]interface{}{
		"status": model.OrderStatusConfirmed,
	})
	require.NoError(t, err)

	// a second writer that still believes the order is pending loses
	err = repo.TransitionStatus(testDB, order.ID, model.OrderStatusPending, map[string]interface{}{
		"status": model.OrderStatusCancelled,
	})
	assert.ErrorIs(t, err, ErrConditionNotMet)

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, found.Status)
}

func TestOrderRepository_HistoryIsAscending(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewOrderRepository(testDB)
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)
	order := createOrder(t, repo, testDB, "LC202405142301000002", customer, bakery, createProduct(t, testDB, bakery, 120, 10))

	for _, status := range []model.OrderStatus{model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusPreparing} {
		require.NoError(t, repo.AddHistory(testDB, &model.OrderStatusHistory{OrderID: order.ID, Status: status}))
	}

	history, err := repo.FindHistory(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, model.OrderStatusPending, history[0].Status)
	assert.Equal(t, model.OrderStatusPreparing, history[2].Status)
}

func TestOrderRepository_ListFilters(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewOrderRepository(testDB)
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	other := createUser(t, testDB, "other@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)
	product := createProduct(t, testDB, bakery, 120, 10)

	createOrder(t, repo, testDB, "LC202405142301000010", customer, bakery, product)
	createOrder(t, repo, testDB, "LC202405142301000011", customer, bakery, product)
	third := createOrder(t, repo, testDB, "LC202405142301000012", other, bakery, product)
	require.NoError(t, repo.TransitionStatus(testDB, third.ID, model.OrderStatusPending, map[string]interface{}{
		"status": model.OrderStatusConfirmed,
	}))

	ctx := context.Background()

	mine, total, err := repo.List(ctx, OrderFilter{CustomerID: customer.ID}, Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, mine, 2)

	confirmed, total, err := repo.List(ctx, OrderFilter{BakeryID: bakery.ID, Status: model.OrderStatusConfirmed}, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, confirmed, 1)
	assert.Equal(t, third.ID, confirmed[0].ID)

	paged, total, err := repo.List(ctx, OrderFilter{}, Page{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, paged, 1)
}
