package service

import (
	"context"
	"fmt"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/pkg/logger"
)

// OrderNotifier receives order lifecycle events after they are committed.
type OrderNotifier interface {
	NotifyOrderStatus(ctx context.Context, userID uint, orderNumber string, status model.OrderStatus) error
}

// Pusher delivers a payload to a connected user. Offline users are skipped.
type Pusher interface {
	SendToUser(userID uint, message interface{}) error
}

// NotificationService 알림 서비스 인터페이스
type NotificationService interface {
	OrderNotifier
	Notify(ctx context.Context, notification *model.Notification) error
	List(ctx context.Context, userID uint, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, userID uint, ids []uint) (int64, error)
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher Pusher
}

// NewNotificationService 알림 서비스 생성자. pusher는 nil일 수 있다.
func NewNotificationService(repo repository.NotificationRepository, pusher Pusher) NotificationService {
	return &notificationService{
		repo:   repo,
		pusher: pusher,
	}
}

// NotifyOrderStatus 주문 상태 변경 알림 생성
func (s *notificationService) NotifyOrderStatus(ctx context.Context, userID uint, orderNumber string, status model.OrderStatus) error {
	return s.Notify(ctx, model.NewOrderNotification(userID, orderNumber, status))
}

// Notify 알림 저장 후 접속 중인 사용자에게 실시간 전송
func (s *notificationService) Notify(ctx context.Context, notification *model.Notification) error {
	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}

	if s.pusher != nil {
		wsMessage := map[string]interface{}{
			"type":         "notification",
			"notification": notification,
		}
		if err := s.pusher.SendToUser(notification.UserID, wsMessage); err != nil {
			logger.Warn("Failed to push notification", map[string]interface{}{
				"user_id":         notification.UserID,
				"notification_id": notification.ID,
				"error":           err.Error(),
			})
		}
	}
	return nil
}

// List 최신 알림 목록과 안읽은 개수 조회
func (s *notificationService) List(ctx context.Context, userID uint, limit int) ([]model.Notification, int64, error) {
	notifications, err := s.repo.GetNotifications(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead 알림 읽음 처리 (ids가 비어 있으면 전체)
func (s *notificationService) MarkRead(ctx context.Context, userID uint, ids []uint) (int64, error) {
	return s.repo.MarkAsRead(ctx, userID, ids)
}
