package service

import (
	"testing"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_ListUsers(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(repository.NewUserRepository(env.db))

	users, total, err := svc.ListUsers(env.ctx, actorOf(env.admin), repository.UserFilter{Role: model.RoleBaker}, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, env.baker.ID, users[0].ID)

	_, _, err = svc.ListUsers(env.ctx, actorOf(env.baker), repository.UserFilter{}, repository.Page{})
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, _, err = svc.ListUsers(env.ctx, actorOf(env.admin), repository.UserFilter{Role: "owner"}, repository.Page{})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserService_SetUserActive(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(repository.NewUserRepository(env.db))

	user, err := svc.SetUserActive(env.ctx, actorOf(env.admin), env.customer.ID, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	active, err := svc.IsActive(env.ctx, env.customer.ID)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = svc.SetUserActive(env.ctx, actorOf(env.admin), env.customer.ID, true)
	require.NoError(t, err)
	active, err = svc.IsActive(env.ctx, env.customer.ID)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = svc.SetUserActive(env.ctx, actorOf(env.admin), env.admin.ID, false)
	assert.ErrorIs(t, err, ErrCannotDeactivateSelf)
	_, err = svc.SetUserActive(env.ctx, actorOf(env.baker), env.customer.ID, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = svc.SetUserActive(env.ctx, actorOf(env.admin), 9999, false)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.IsActive(env.ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
