package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"learnly.id/gamification/internal/entity"
	notifRepo "learnly.id/gamification/internal/modules/notification/repository"
)

// ChannelFor is the redis pub/sub channel carrying a student's live
// notifications to the websocket handler.
func ChannelFor(studentID uuid.UUID) string {
	return fmt.Sprintf("student_notifications:%s", studentID)
}

type NotificationService interface {
	Notify(ctx context.Context, studentID uuid.UUID, notificationType, message string, data map[string]any) error
	List(ctx context.Context, studentID uuid.UUID, page, limit int) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, studentID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, studentID uuid.UUID) error
	MarkAllRead(ctx context.Context, studentID uuid.UUID) error
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *notificationService) Notify(ctx context.Context, studentID uuid.UUID, notificationType, message string, data map[string]any) error {
	notification := &entity.Notification{
		StudentID: studentID,
		Type:      notificationType,
		Message:   message,
	}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			encoded := string(raw)
			notification.Data = &encoded
		}
	}

	// 1. Save to DB
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	// 2. Publish to Redis if Redis is available, subscribers catch up over
	// REST when it is not.
	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			if err := s.redisClient.Publish(ctx, ChannelFor(studentID), payload).Err(); err != nil {
				log.Printf("notification: publish failed for %s: %v", studentID, err)
			}
		}
	}

	return nil
}

func (s *notificationService) List(ctx context.Context, studentID uuid.UUID, page, limit int) ([]entity.Notification, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return s.repo.GetByStudentID(ctx, studentID, limit, (page-1)*limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, studentID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, studentID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, studentID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, studentID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, studentID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, studentID)
}
