package service

import (
	"context"
	"time"
)

// CheckoutLocker serialises checkouts per customer. Acquire returns false
// when another checkout for the same customer holds the lock. An error means
// the lock backend is unreachable; the order service then proceeds unlocked.
type CheckoutLocker interface {
	Acquire(ctx context.Context, userID uint, ttl time.Duration) (release func(), ok bool, err error)
}

type noopLocker struct{}

func (noopLocker) Acquire(context.Context, uint, time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}
