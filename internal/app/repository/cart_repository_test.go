package repository

import (
	"context"
	"testing"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_FindByUserIDPreloadsBakery(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewCartRepository(testDB)
	ctx := context.Background()
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)
	product := createProduct(t, testDB, bakery, 80, 5)

	require.NoError(t, repo.Create(ctx, &model.CartItem{UserID: customer.ID, ProductID: product.ID, Quantity: 2}))

	items, err := repo.FindByUserID(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	require.NotNil(t, items[0].Product.Bakery)
	assert.Equal(t, bakery.ID, items[0].Product.Bakery.ID)
	assert.Equal(t, 160.0, items[0].Subtotal())
}

func TestCartRepository_FindByUserAndProduct(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewCartRepository(testDB)
	ctx := context.Background()
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	product := createProduct(t, testDB, createBakery(t, testDB, baker), 80, 5)

	_, err := repo.FindByUserAndProduct(ctx, customer.ID, product.ID)
	assert.Error(t, err)

	item := &model.CartItem{UserID: customer.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.Create(ctx, item))

	found, err := repo.FindByUserAndProduct(ctx, customer.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
}

func TestCartRepository_DeleteByUserID(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewCartRepository(testDB)
	ctx := context.Background()
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	other := createUser(t, testDB, "other@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	product := createProduct(t, testDB, createBakery(t, testDB, baker), 80, 5)

	require.NoError(t, repo.Create(ctx, &model.CartItem{UserID: customer.ID, ProductID: product.ID, Quantity: 1}))
	require.NoError(t, repo.Create(ctx, &model.CartItem{UserID: other.ID, ProductID: product.ID, Quantity: 1}))

	require.NoError(t, repo.DeleteByUserID(ctx, customer.ID))

	items, err := repo.FindByUserID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = repo.FindByUserID(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
