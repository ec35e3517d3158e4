package service

import (
	"testing"
	"time"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponService_ValidateCoupon(t *testing.T) {
	env := newTestEnv(t)
	env.coupon(&model.Coupon{Code: "FRESH10", DiscountType: model.DiscountPercentage, DiscountValue: 10, MinOrderAmount: 200, IsActive: true})
	env.coupon(&model.Coupon{Code: "SHOPONLY", BakeryID: &env.bakery.ID, DiscountType: model.DiscountFixed, DiscountValue: 40, IsActive: true})

	tests := []struct {
		name     string
		code     string
		amount   float64
		bakeryID uint
		want     CouponCheck
	}{
		{name: "Valid percentage", code: "fresh10", amount: 450, want: CouponCheck{Valid: true, Reason: "Coupon is valid", Discount: 45}},
		{name: "Below minimum", code: "FRESH10", amount: 150, want: CouponCheck{Reason: "Minimum order amount is 200.00"}},
		{name: "Unknown", code: "MISSING", amount: 450, want: CouponCheck{Reason: "Invalid coupon code"}},
		{name: "Scoped to this bakery", code: "SHOPONLY", amount: 100, bakeryID: env.bakery.ID, want: CouponCheck{Valid: true, Reason: "Coupon is valid", Discount: 40}},
		{name: "Scoped to another bakery", code: "SHOPONLY", amount: 100, bakeryID: env.bakery.ID + 1, want: CouponCheck{Reason: "Coupon is not valid for this bakery"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := env.coupons.ValidateCoupon(env.ctx, tt.code, tt.amount, tt.bakeryID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *check)
		})
	}
}

func TestCouponService_ValidateCouponDoesNotMutate(t *testing.T) {
	env := newTestEnv(t)
	c := env.coupon(&model.Coupon{Code: "ONCE", DiscountType: model.DiscountFixed, DiscountValue: 10, UsageLimit: intPtr(1), IsActive: true})

	for i := 0; i < 3; i++ {
		check, err := env.coupons.ValidateCoupon(env.ctx, "ONCE", 500, 0)
		require.NoError(t, err)
		assert.True(t, check.Valid)
	}

	var stored model.Coupon
	require.NoError(t, env.db.First(&stored, c.ID).Error)
	assert.Zero(t, stored.UsedCount)
}

func TestCouponService_CreateCoupon(t *testing.T) {
	env := newTestEnv(t)

	platform, err := env.coupons.CreateCoupon(env.ctx, actorOf(env.admin), CreateCouponInput{
		Code:          "welcome",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME", platform.Code)
	assert.Nil(t, platform.BakeryID)
	assert.True(t, platform.IsActive)
	assert.Equal(t, testNow, platform.ValidFrom)

	otherBakery := uint(4242)
	scoped, err := env.coupons.CreateCoupon(env.ctx, actorOf(env.baker), CreateCouponInput{
		Code:          "LOAF5",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 5,
		BakeryID:      &otherBakery,
	})
	require.NoError(t, err)
	require.NotNil(t, scoped.BakeryID)
	assert.Equal(t, env.bakery.ID, *scoped.BakeryID)

	_, err = env.coupons.CreateCoupon(env.ctx, actorOf(env.admin), CreateCouponInput{
		Code:          "Welcome",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 5,
	})
	assert.ErrorIs(t, err, ErrCouponCodeExists)

	_, err = env.coupons.CreateCoupon(env.ctx, actorOf(env.customer), CreateCouponInput{
		Code:          "MINE",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 5,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCouponService_CreateCouponValidation(t *testing.T) {
	env := newTestEnv(t)
	from := testNow
	until := testNow.Add(-time.Hour)

	invalid := []CreateCouponInput{
		{Code: "", DiscountType: model.DiscountFixed, DiscountValue: 5},
		{Code: "X", DiscountType: "bogus", DiscountValue: 5},
		{Code: "X", DiscountType: model.DiscountFixed, DiscountValue: 0},
		{Code: "X", DiscountType: model.DiscountPercentage, DiscountValue: 120},
		{Code: "X", DiscountType: model.DiscountFixed, DiscountValue: 5, UsageLimit: intPtr(0)},
		{Code: "X", DiscountType: model.DiscountFixed, DiscountValue: 5, ValidFrom: &from, ValidUntil: &until},
	}
	for _, input := range invalid {
		_, err := env.coupons.CreateCoupon(env.ctx, actorOf(env.admin), input)
		assert.ErrorIs(t, err, ErrInvalidCoupon)
	}
}

func TestCouponService_ManageScope(t *testing.T) {
	env := newTestEnv(t)
	platform := env.coupon(&model.Coupon{Code: "ALL", DiscountType: model.DiscountFixed, DiscountValue: 5, IsActive: true})
	mine := env.coupon(&model.Coupon{Code: "MINE", BakeryID: &env.bakery.ID, DiscountType: model.DiscountFixed, DiscountValue: 5, IsActive: true})
	baker := actorOf(env.baker)

	listed, err := env.coupons.ListCoupons(env.ctx, baker)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)

	all, err := env.coupons.ListCoupons(env.ctx, actorOf(env.admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, env.coupons.SetCouponActive(env.ctx, baker, platform.ID, false), ErrAccessDenied)
	assert.ErrorIs(t, env.coupons.DeleteCoupon(env.ctx, baker, platform.ID), ErrAccessDenied)
	assert.ErrorIs(t, env.coupons.DeleteCoupon(env.ctx, baker, 9999), ErrCouponNotFound)

	require.NoError(t, env.coupons.SetCouponActive(env.ctx, baker, mine.ID, false))
	check, err := env.coupons.ValidateCoupon(env.ctx, "MINE", 500, env.bakery.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coupon is not active", check.Reason)

	require.NoError(t, env.coupons.DeleteCoupon(env.ctx, actorOf(env.admin), platform.ID))
	all, err = env.coupons.ListCoupons(env.ctx, actorOf(env.admin))
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCouponService_DeactivateExpired(t *testing.T) {
	env := newTestEnv(t)
	past := testNow.Add(-time.Minute)
	env.coupon(&model.Coupon{Code: "OLD", DiscountType: model.DiscountFixed, DiscountValue: 5, ValidUntil: &past, IsActive: true})

	n, err := env.coupons.DeactivateExpired(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
