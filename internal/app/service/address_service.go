package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressService interface {
	GetUserAddresses(ctx context.Context, actor Actor) ([]model.Address, error)
	CreateAddress(ctx context.Context, actor Actor, address *model.Address) error
	UpdateAddress(ctx context.Context, actor Actor, addressID uint, address *model.Address) error
	DeleteAddress(ctx context.Context, actor Actor, addressID uint) error
	SetDefaultAddress(ctx context.Context, actor Actor, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{
		addressRepo: addressRepo,
	}
}

func (s *addressService) GetUserAddresses(ctx context.Context, actor Actor) ([]model.Address, error) {
	return s.addressRepo.FindByUserID(ctx, actor.UserID)
}

// CreateAddress makes the first address of a user the default one.
func (s *addressService) CreateAddress(ctx context.Context, actor Actor, address *model.Address) error {
	address.ID = 0
	address.UserID = actor.UserID
	address.FullAddress = strings.TrimSpace(address.FullAddress)
	if address.Label == "" {
		address.Label = "Home"
	}

	existing, err := s.addressRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	makeDefault := address.IsDefault || len(existing) == 0
	address.IsDefault = false

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return err
	}
	if makeDefault {
		if err := s.addressRepo.SetDefault(ctx, actor.UserID, address.ID); err != nil {
			return err
		}
		address.IsDefault = true
	}

	logger.Info("Address created", map[string]interface{}{
		"user_id":    actor.UserID,
		"address_id": address.ID,
		"is_default": address.IsDefault,
	})
	return nil
}

// UpdateAddress edits one of the actor's addresses. IsDefault set to true
// moves the default here; false leaves the current default alone.
func (s *addressService) UpdateAddress(ctx context.Context, actor Actor, addressID uint, address *model.Address) error {
	makeDefault := address.IsDefault
	address.ID = addressID
	address.UserID = actor.UserID
	address.FullAddress = strings.TrimSpace(address.FullAddress)
	if address.Label == "" {
		address.Label = "Home"
	}

	if err := s.addressRepo.Update(ctx, address); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	if makeDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(ctx, actor.UserID, address.ID); err != nil {
			return err
		}
		address.IsDefault = true
	}

	logger.Info("Address updated", map[string]interface{}{
		"user_id":    actor.UserID,
		"address_id": address.ID,
		"is_default": address.IsDefault,
	})
	return nil
}

func (s *addressService) DeleteAddress(ctx context.Context, actor Actor, addressID uint) error {
	if err := s.addressRepo.Delete(ctx, addressID, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	return nil
}

func (s *addressService) SetDefaultAddress(ctx context.Context, actor Actor, addressID uint) error {
	if err := s.addressRepo.SetDefault(ctx, actor.UserID, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	return nil
}
