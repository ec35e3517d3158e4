package repository

import (
	"context"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	FindByUserID(ctx context.Context, userID uint) ([]model.Address, error)
	FindByIDForUser(tx *gorm.DB, id, userID uint) (*model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, id, userID uint) error
	SetDefault(ctx context.Context, userID, addressID uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, address *model.Address) error {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"user_id": address.UserID,
			"label":   address.Label,
		})
		return err
	}

	logger.Debug("Address created in database", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    address.UserID,
	})
	return nil
}

func (r *addressRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		logger.Error("Failed to find addresses by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return addresses, nil
}

// FindByIDForUser returns gorm.ErrRecordNotFound when the address exists but
// belongs to someone else.
func (r *addressRepository) FindByIDForUser(tx *gorm.DB, id, userID uint) (*model.Address, error) {
	var address model.Address
	if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// Update rewrites the editable fields of the user's address and reloads it
// into address. The default flag is left to SetDefault.
func (r *addressRepository) Update(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.FindByIDForUser(tx, address.ID, address.UserID)
		if err != nil {
			return err
		}

		current.Label = address.Label
		current.FullAddress = address.FullAddress
		current.City = address.City
		current.Pincode = address.Pincode
		current.Landmark = address.Landmark
		err = tx.Model(current).
			Select("label", "full_address", "city", "pincode", "landmark").
			Updates(current).Error
		if err != nil {
			logger.Error("Failed to update address", err, map[string]interface{}{
				"address_id": address.ID,
				"user_id":    address.UserID,
			})
			return err
		}

		*address = *current
		return nil
	})
}

func (r *addressRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *addressRepository) SetDefault(ctx context.Context, userID, addressID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.FindByIDForUser(tx, addressID, userID); err != nil {
			return err
		}
		if err := tx.Model(&model.Address{}).Where("user_id = ?", userID).Update("is_default", false).Error; err != nil {
			logger.Error("Failed to unset default addresses", err, map[string]interface{}{
				"user_id": userID,
			})
			return err
		}
		return tx.Model(&model.Address{}).Where("id = ?", addressID).Update("is_default", true).Error
	})
}
