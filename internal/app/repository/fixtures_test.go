package repository

import (
	"fmt"
	"testing"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func createUser(t *testing.T, testDB *gorm.DB, email string, role model.UserRole) *model.User {
	user := &model.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createBakery(t *testing.T, testDB *gorm.DB, owner *model.User) *model.Bakery {
	bakery := &model.Bakery{
		OwnerID:          owner.ID,
		Name:             "Crumb & Co",
		Slug:             fmt.Sprintf("crumb-%d", owner.ID),
		City:             "Pune",
		MinOrderAmount:   100,
		DeliveryFee:      30,
		DeliveryTimeMins: 45,
		IsApproved:       true,
		IsOpen:           true,
	}
	require.NoError(t, testDB.Create(bakery).Error)
	return bakery
}

func createProduct(t *testing.T, testDB *gorm.DB, bakery *model.Bakery, price float64, stock int) *model.Product {
	product := &model.Product{
		BakeryID:      bakery.ID,
		Name:          "Sourdough Loaf",
		Price:         price,
		StockQuantity: stock,
		IsAvailable:   true,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}
