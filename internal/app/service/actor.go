package service

import "github.com/lacreme/bakery-backend/internal/app/model"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   model.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

func (a Actor) IsBaker() bool {
	return a.Role == model.RoleBaker
}

func (a Actor) IsCustomer() bool {
	return a.Role == model.RoleCustomer
}

// ManagesBakery reports whether the actor may act on behalf of bakery.
func (a Actor) ManagesBakery(bakery *model.Bakery) bool {
	if a.IsAdmin() {
		return true
	}
	return bakery != nil && a.IsBaker() && bakery.OwnerID == a.UserID
}
