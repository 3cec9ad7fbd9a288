package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
)

type NotificationService struct {
	Repo *repo.GormRepo
}

type NotificationPage struct {
	Items       []models.Notification
	Total       int64
	UnreadCount int64
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, offset, limit int) (*NotificationPage, error) {
	items, total, err := s.Repo.ListNotifications(ctx, userID, unreadOnly, offset, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.Repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{Items: items, Total: total, UnreadCount: unread}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.Repo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*models.Notification, error) {
	n, err := s.Repo.MarkNotificationRead(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, notFound("Notification")
	}
	out, err := s.Repo.GetNotification(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err, "Notification")
	}
	return out, nil
}

// MarkAllRead returns how many notifications changed state.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.Repo.MarkAllNotificationsRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.Repo.DeleteNotifications(ctx, userID, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("Notification")
	}
	return nil
}

// DeleteMany removes the listed notifications, or all read ones when ids
// is empty.
func (s *NotificationService) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	return s.Repo.DeleteNotifications(ctx, userID, ids)
}
