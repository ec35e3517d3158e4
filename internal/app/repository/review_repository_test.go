package repository

import (
	"context"
	"testing"
	"time"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_SetReplyOnce(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewReviewRepository(testDB)
	ctx := context.Background()
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)

	review := &model.Review{UserID: customer.ID, BakeryID: bakery.ID, OrderID: 7, Rating: 5, IsVisible: true}
	require.NoError(t, repo.CreateReview(testDB, review))

	require.NoError(t, repo.SetReply(ctx, review.ID, "Thank you!", time.Now()))
	assert.ErrorIs(t, repo.SetReply(ctx, review.ID, "Again", time.Now()), ErrConditionNotMet)

	found, err := repo.GetReviewByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thank you!", found.Reply)
	assert.True(t, found.HasReply())
}

func TestReviewRepository_OnePerOrder(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewReviewRepository(testDB)
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)

	require.NoError(t, repo.CreateReview(testDB, &model.Review{UserID: customer.ID, BakeryID: bakery.ID, OrderID: 7, Rating: 4, IsVisible: true}))

	exists, err := repo.ExistsForOrder(testDB, 7)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Error(t, repo.CreateReview(testDB, &model.Review{UserID: customer.ID, BakeryID: bakery.ID, OrderID: 7, Rating: 2, IsVisible: true}))
}

func TestReviewRepository_GetReviewsByBakeryIDHidesInvisible(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewReviewRepository(testDB)
	ctx := context.Background()
	customer := createUser(t, testDB, "customer@example.com", model.RoleCustomer)
	baker := createUser(t, testDB, "baker@example.com", model.RoleBaker)
	bakery := createBakery(t, testDB, baker)

	visible := &model.Review{UserID: customer.ID, BakeryID: bakery.ID, OrderID: 1, Rating: 5, IsVisible: true}
	hidden := &model.Review{UserID: customer.ID, BakeryID: bakery.ID, OrderID: 2, Rating: 1, IsVisible: false}
	require.NoError(t, repo.CreateReview(testDB, visible))
	require.NoError(t, repo.CreateReview(testDB, hidden))

	public, total, err := repo.GetReviewsByBakeryID(ctx, bakery.ID, false, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, public, 1)
	assert.Equal(t, visible.ID, public[0].ID)
	require.NotNil(t, public[0].User)

	all, total, err := repo.GetReviewsByBakeryID(ctx, bakery.ID, true, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}
