package service

import (
	"fmt"
	"testing"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) orderWithStatus(customer *model.User, status model.OrderStatus) *model.Order {
	var n int64
	require.NoError(e.t, e.db.Model(&model.Order{}).Count(&n).Error)
	order := &model.Order{
		OrderNumber:   fmt.Sprintf("LC202405142301R%05d", n+1),
		CustomerID:    customer.ID,
		BakeryID:      e.bakery.ID,
		Subtotal:      200,
		DeliveryFee:   30,
		TotalAmount:   230,
		Status:        status,
		PaymentMethod: model.PaymentMethodCOD,
		PaymentStatus: model.PaymentStatusPending,
	}
	require.NoError(e.t, e.db.Create(order).Error)
	return order
}

func (e *testEnv) bakeryRating() (float64, int) {
	var b model.Bakery
	require.NoError(e.t, e.db.First(&b, e.bakery.ID).Error)
	return b.Rating, b.TotalReviews
}

func TestReviewService_RatingAggregate(t *testing.T) {
	env := newTestEnv(t)

	var reviews []*model.Review
	for i, rating := range []int{5, 4, 3} {
		customer := env.user(fmt.Sprintf("reviewer%d@example.com", i), model.RoleCustomer)
		order := env.orderWithStatus(customer, model.OrderStatusDelivered)
		review, err := env.reviews.CreateReview(env.ctx, actorOf(customer), CreateReviewInput{
			OrderID: order.ID,
			Rating:  rating,
			Comment: "  Crusty and warm  ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Crusty and warm", review.Comment)
		reviews = append(reviews, review)
	}

	rating, total := env.bakeryRating()
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 3, total)

	require.NoError(t, env.reviews.SetVisibility(env.ctx, actorOf(env.admin), reviews[2].ID, false))
	rating, total = env.bakeryRating()
	assert.Equal(t, 4.5, rating)
	assert.Equal(t, 2, total)

	listed, count, err := env.reviews.GetBakeryReviews(env.ctx, env.bakery.ID, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, listed, 2)

	require.NoError(t, env.reviews.DeleteReview(env.ctx, actorOf(env.admin), reviews[0].ID))
	rating, total = env.bakeryRating()
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 1, total)
}

func TestReviewService_CreateReviewRejections(t *testing.T) {
	env := newTestEnv(t)
	delivered := env.orderWithStatus(env.customer, model.OrderStatusDelivered)
	preparing := env.orderWithStatus(env.customer, model.OrderStatusPreparing)
	stranger := env.user("stranger@example.com", model.RoleCustomer)

	_, err := env.reviews.CreateReview(env.ctx, actorOf(env.customer), CreateReviewInput{OrderID: delivered.ID, Rating: 5})
	require.NoError(t, err)

	tests := []struct {
		name    string
		actor   Actor
		input   CreateReviewInput
		wantErr error
	}{
		{name: "Rating too low", actor: actorOf(env.customer), input: CreateReviewInput{OrderID: delivered.ID, Rating: 0}, wantErr: ErrInvalidRating},
		{name: "Rating too high", actor: actorOf(env.customer), input: CreateReviewInput{OrderID: delivered.ID, Rating: 6}, wantErr: ErrInvalidRating},
		{name: "Missing order", actor: actorOf(env.customer), input: CreateReviewInput{OrderID: 9999, Rating: 4}, wantErr: ErrOrderNotFound},
		{name: "Someone else's order", actor: actorOf(stranger), input: CreateReviewInput{OrderID: delivered.ID, Rating: 4}, wantErr: ErrOrderNotFound},
		{name: "Not delivered", actor: actorOf(env.customer), input: CreateReviewInput{OrderID: preparing.ID, Rating: 4}, wantErr: ErrReviewNotAllowed},
		{name: "Second review", actor: actorOf(env.customer), input: CreateReviewInput{OrderID: delivered.ID, Rating: 1}, wantErr: ErrReviewAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.reviews.CreateReview(env.ctx, tt.actor, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	rating, total := env.bakeryRating()
	assert.Equal(t, 5.0, rating)
	assert.Equal(t, 1, total)
}

func TestReviewService_ReplyOnce(t *testing.T) {
	env := newTestEnv(t)
	order := env.orderWithStatus(env.customer, model.OrderStatusDelivered)
	review, err := env.reviews.CreateReview(env.ctx, actorOf(env.customer), CreateReviewInput{OrderID: order.ID, Rating: 4})
	require.NoError(t, err)

	otherBaker := env.user("other@example.com", model.RoleBaker)
	env.newBakery(otherBaker)

	_, err = env.reviews.ReplyToReview(env.ctx, actorOf(otherBaker), review.ID, "Thanks!")
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = env.reviews.ReplyToReview(env.ctx, actorOf(env.customer), review.ID, "Thanks!")
	assert.ErrorIs(t, err, ErrAccessDenied)

	replied, err := env.reviews.ReplyToReview(env.ctx, actorOf(env.baker), review.ID, " Thanks for ordering! ")
	require.NoError(t, err)
	assert.Equal(t, "Thanks for ordering!", replied.Reply)
	assert.True(t, replied.HasReply())

	_, err = env.reviews.ReplyToReview(env.ctx, actorOf(env.baker), review.ID, "Again")
	assert.ErrorIs(t, err, ErrReviewAlreadyReplied)

	_, err = env.reviews.ReplyToReview(env.ctx, actorOf(env.baker), 9999, "Hello")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_DeleteAndVisibilityAccess(t *testing.T) {
	env := newTestEnv(t)
	order := env.orderWithStatus(env.customer, model.OrderStatusDelivered)
	review, err := env.reviews.CreateReview(env.ctx, actorOf(env.customer), CreateReviewInput{OrderID: order.ID, Rating: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, env.reviews.SetVisibility(env.ctx, actorOf(env.baker), review.ID, false), ErrAccessDenied)
	assert.ErrorIs(t, env.reviews.DeleteReview(env.ctx, actorOf(env.baker), review.ID), ErrAccessDenied)

	require.NoError(t, env.reviews.DeleteReview(env.ctx, actorOf(env.customer), review.ID))
	rating, total := env.bakeryRating()
	assert.Zero(t, rating)
	assert.Zero(t, total)

	assert.ErrorIs(t, env.reviews.DeleteReview(env.ctx, actorOf(env.customer), review.ID), ErrReviewNotFound)

	_, _, err = env.reviews.GetBakeryReviews(env.ctx, 9999, repository.Page{})
	assert.ErrorIs(t, err, ErrBakeryNotFound)
}
