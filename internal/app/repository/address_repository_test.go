package repository

import (
	"context"
	"testing"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressRepository_FindByIDForUser(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewAddressRepository(testDB)
	ctx := context.Background()
	owner := createUser(t, testDB, "owner@example.com", model.RoleCustomer)
	other := createUser(t, testDB, "other@example.com", model.RoleCustomer)

	address := &model.Address{UserID: owner.ID, Label: "Home", FullAddress: "12 MG Road", City: "Pune", Pincode: "411001"}
	require.NoError(t, repo.Create(ctx, address))

	found, err := repo.FindByIDForUser(testDB, address.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "12 MG Road", found.FullAddress)

	_, err = repo.FindByIDForUser(testDB, address.ID, other.ID)
	assert.Error(t, err)
}

func TestAddressRepository_SetDefault(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewAddressRepository(testDB)
	ctx := context.Background()
	user := createUser(t, testDB, "owner@example.com", model.RoleCustomer)

	home := &model.Address{UserID: user.ID, Label: "Home", FullAddress: "12 MG Road", City: "Pune", Pincode: "411001", IsDefault: true}
	work := &model.Address{UserID: user.ID, Label: "Work", FullAddress: "4 FC Road", City: "Pune", Pincode: "411004"}
	require.NoError(t, repo.Create(ctx, home))
	require.NoError(t, repo.Create(ctx, work))

	require.NoError(t, repo.SetDefault(ctx, user.ID, work.ID))

	addresses, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, work.ID, addresses[0].ID)
	assert.True(t, addresses[0].IsDefault)
	assert.False(t, addresses[1].IsDefault)
}

func TestAddressRepository_UpdateKeepsDefaultAndOwner(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewAddressRepository(testDB)
	ctx := context.Background()
	owner := createUser(t, testDB, "owner@example.com", model.RoleCustomer)
	other := createUser(t, testDB, "other@example.com", model.RoleCustomer)

	address := &model.Address{UserID: owner.ID, Label: "Home", FullAddress: "12 MG Road", City: "Pune", Pincode: "411001", Landmark: "Near park", IsDefault: true}
	require.NoError(t, repo.Create(ctx, address))

	edit := &model.Address{ID: address.ID, UserID: owner.ID, Label: "Work", FullAddress: "4 FC Road", City: "Pune", Pincode: "411004"}
	require.NoError(t, repo.Update(ctx, edit))
	assert.Equal(t, "4 FC Road", edit.FullAddress)
	assert.Empty(t, edit.Landmark)
	assert.True(t, edit.IsDefault)

	// 다른 사용자의 배송지는 수정 불가
	steal := &model.Address{ID: address.ID, UserID: other.ID, FullAddress: "elsewhere", City: "Mumbai", Pincode: "400001"}
	assert.Error(t, repo.Update(ctx, steal))

	found, err := repo.FindByIDForUser(testDB, address.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", found.Label)
	assert.Equal(t, "411004", found.Pincode)
}
