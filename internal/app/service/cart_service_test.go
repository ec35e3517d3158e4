package service

import (
	"testing"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddToCart_MergesLines(t *testing.T) {
	env := newTestEnv(t)
	loaf := env.product(env.bakery, "Loaf", 120, 10)
	actor := actorOf(env.customer)

	_, err := env.carts.AddToCart(env.ctx, actor, AddToCartInput{ProductID: loaf.ID, Quantity: 2})
	require.NoError(t, err)
	item, err := env.carts.AddToCart(env.ctx, actor, AddToCartInput{ProductID: loaf.ID, Quantity: 3, SpecialInstructions: "Sliced"})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	cart, err := env.carts.GetCart(env.ctx, actor)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Sliced", cart.Items[0].SpecialInstructions)
	assert.Equal(t, 600.0, cart.Subtotal)
	assert.Equal(t, 5, cart.ItemCount)
	require.NotNil(t, cart.Bakery)
	assert.Equal(t, env.bakery.ID, cart.Bakery.ID)
}

func TestCartService_AddToCart_Rejections(t *testing.T) {
	env := newTestEnv(t)
	actor := actorOf(env.customer)
	loaf := env.product(env.bakery, "Loaf", 120, 3)
	hidden := env.product(env.bakery, "Seasonal Stollen", 400, 3)
	require.NoError(t, env.db.Model(hidden).Update("is_available", false).Error)

	pendingBaker := env.user("new@example.com", model.RoleBaker)
	pendingBakery := env.newBakery(pendingBaker)
	require.NoError(t, env.db.Model(pendingBakery).Update("is_approved", false).Error)
	unapproved := env.product(pendingBakery, "Bun", 30, 10)

	tests := []struct {
		name    string
		input   AddToCartInput
		wantErr error
	}{
		{name: "Zero quantity", input: AddToCartInput{ProductID: loaf.ID, Quantity: 0}, wantErr: ErrInvalidQuantity},
		{name: "Missing product", input: AddToCartInput{ProductID: 9999, Quantity: 1}, wantErr: ErrProductNotFound},
		{name: "Unavailable product", input: AddToCartInput{ProductID: hidden.ID, Quantity: 1}, wantErr: ErrProductUnavailable},
		{name: "Unapproved bakery", input: AddToCartInput{ProductID: unapproved.ID, Quantity: 1}, wantErr: ErrProductUnavailable},
		{name: "More than stock", input: AddToCartInput{ProductID: loaf.ID, Quantity: 4}, wantErr: ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.carts.AddToCart(env.ctx, actor, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCartService_AddToCart_SingleBakeryPolicy(t *testing.T) {
	env := newTestEnv(t)
	actor := actorOf(env.customer)
	loaf := env.product(env.bakery, "Loaf", 120, 10)
	rival := env.newBakery(env.user("rival@example.com", model.RoleBaker))
	bun := env.product(rival, "Bun", 30, 10)

	_, err := env.carts.AddToCart(env.ctx, actor, AddToCartInput{ProductID: loaf.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = env.carts.AddToCart(env.ctx, actor, AddToCartInput{ProductID: bun.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrCartBakeryMismatch)

	_, err = env.carts.AddToCart(env.ctx, actor, AddToCartInput{ProductID: bun.ID, Quantity: 2, ReplaceCart: true})
	require.NoError(t, err)

	cart, err := env.carts.GetCart(env.ctx, actor)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, bun.ID, cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	env := newTestEnv(t)
	actor := actorOf(env.customer)
	loaf := env.product(env.bakery, "Loaf", 120, 10)

	item, err := env.carts.AddToCart(env.ctx, actor, AddToCartInput{ProductID: loaf.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, env.carts.UpdateQuantity(env.ctx, actor, item.ID, 4))
	cart, err := env.carts.GetCart(env.ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	assert.ErrorIs(t, env.carts.UpdateQuantity(env.ctx, actor, item.ID, 11), ErrInsufficientStock)

	stranger := actorOf(env.user("stranger@example.com", model.RoleCustomer))
	assert.ErrorIs(t, env.carts.UpdateQuantity(env.ctx, stranger, item.ID, 2), ErrCartItemNotFound)

	require.NoError(t, env.carts.UpdateQuantity(env.ctx, actor, item.ID, 0))
	assert.Zero(t, env.cartCount(env.customer))
}

func TestCartService_RemoveAndClear(t *testing.T) {
	env := newTestEnv(t)
	actor := actorOf(env.customer)
	loaf := env.product(env.bakery, "Loaf", 120, 10)
	tart := env.product(env.bakery, "Tart", 90, 10)

	item, err := env.carts.AddToCart(env.ctx, actor, AddToCartInput{ProductID: loaf.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = env.carts.AddToCart(env.ctx, actor, AddToCartInput{ProductID: tart.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, env.carts.RemoveItem(env.ctx, actor, item.ID))
	assert.Equal(t, int64(1), env.cartCount(env.customer))
	assert.ErrorIs(t, env.carts.RemoveItem(env.ctx, actor, item.ID), ErrCartItemNotFound)

	require.NoError(t, env.carts.ClearCart(env.ctx, actor))
	assert.Zero(t, env.cartCount(env.customer))
}
