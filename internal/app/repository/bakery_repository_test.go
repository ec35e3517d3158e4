package repository

import (
	"context"
	"testing"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBakeryRepository_RecalculateRating(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewBakeryRepository(testDB)
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)

	reviews := []*model.Review{
		{UserID: customer.ID, BakeryID: bakery.ID, OrderID: 1, Rating: 5, IsVisible: true},
		{UserID: customer.ID, BakeryID: bakery.ID, OrderID: 2, Rating: 4, IsVisible: true},
		{UserID: customer.ID, BakeryID: bakery.ID, OrderID: 3, Rating: 3, IsVisible: true},
	}
	for _, r := range reviews {
		require.NoError(t, testDB.Create(r).Error)
	}

	rating, count, err := repo.RecalculateRating(testDB, bakery.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, int64(3), count)

	require.NoError(t, testDB.Model(reviews[2]).Update("is_visible", false).Error)
	rating, count, err = repo.RecalculateRating(testDB, bakery.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating)
	assert.Equal(t, int64(2), count)

	stored, err := repo.FindByID(context.Background(), bakery.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stored.Rating)
	assert.Equal(t, 2, stored.TotalReviews)
}

func TestBakeryRepository_RecalculateRatingWithoutReviews(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewBakeryRepository(testDB)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)

	rating, count, err := repo.RecalculateRating(testDB, bakery.ID)
	require.NoError(t, err)
	assert.Zero(t, rating)
	assert.Zero(t, count)
}

func TestBakeryRepository_Lookups(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewBakeryRepository(testDB)
	ctx := context.Background()
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)

	byOwner, err := repo.FindByOwnerID(ctx, baker.ID)
	require.NoError(t, err)
	assert.Equal(t, bakery.ID, byOwner.ID)

	bySlug, err := repo.FindBySlug(ctx, bakery.Slug)
	require.NoError(t, err)
	assert.Equal(t, bakery.ID, bySlug.ID)

	require.NoError(t, repo.UpdateFields(ctx, bakery.ID, map[string]interface{}{"is_open": false}))
	updated, err := repo.FindByID(ctx, bakery.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsOpen)

	assert.Error(t, repo.UpdateFields(ctx, 9999, map[string]interface{}{"is_open": false}))
}

func TestBakeryRepository_DeleteHidesBakery(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewBakeryRepository(testDB)
	ctx := context.Background()
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)

	require.NoError(t, repo.Delete(ctx, bakery.ID))

	_, err := repo.FindByID(ctx, bakery.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindByOwnerID(ctx, baker.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 두 번째 삭제는 대상 없음
	assert.ErrorIs(t, repo.Delete(ctx, bakery.ID), gorm.ErrRecordNotFound)
}
