package scheduler

import (
	"context"
	"time"

	"github.com/lacreme/bakery-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = time.Minute

// CouponExpirer deactivates coupons whose validity window has passed.
type CouponExpirer interface {
	DeactivateExpired(ctx context.Context) (int64, error)
}

// CouponExpiryScheduler 만료 쿠폰 자동 비활성화 스케줄러
type CouponExpiryScheduler struct {
	cron    *cron.Cron
	spec    string
	expirer CouponExpirer
}

// NewCouponExpiryScheduler spec은 robfig/cron 표현식 (예: "@hourly")
func NewCouponExpiryScheduler(spec string, expirer CouponExpirer) *CouponExpiryScheduler {
	return &CouponExpiryScheduler{
		cron:    cron.New(),
		spec:    spec,
		expirer: expirer,
	}
}

// Start 스케줄러 시작
func (s *CouponExpiryScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.Sweep); err != nil {
		logger.Error("Failed to add cron job for coupon expiry", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Coupon expiry scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// Sweep 만료 쿠폰 1회 정리
func (s *CouponExpiryScheduler) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.expirer.DeactivateExpired(ctx)
	if err != nil {
		logger.Error("Failed to deactivate expired coupons", err)
		return
	}
	if n > 0 {
		logger.Info("Expired coupons deactivated", map[string]interface{}{
			"count": n,
		})
	}
}

// Stop 스케줄러 중지. 실행 중인 작업이 끝날 때까지 기다린다
func (s *CouponExpiryScheduler) Stop() {
	logger.Info("Stopping coupon expiry scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Coupon expiry scheduler stopped", nil)
}
