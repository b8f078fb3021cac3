package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/sirupsen/logrus"
)

// Publisher is satisfied by the kafka producer and the amqp publisher.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type NotificationUseCase interface {
	Notify(ctx context.Context, userID int64, message string) error
	List(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id int64) (*domain.Notification, error)
}

type NotificationService struct {
	repo      repository.NotificationRepository
	publisher Publisher
	topic     string
	log       *logrus.Logger
}

type NotificationServiceOption func(*NotificationService)

// WithPublisher fans persisted notifications out to a broker topic.
func WithPublisher(p Publisher, topic string) NotificationServiceOption {
	return func(s *NotificationService) {
		s.publisher = p
		s.topic = topic
	}
}

func NewNotificationService(repo repository.NotificationRepository, log *logrus.Logger, opts ...NotificationServiceOption) *NotificationService {
	s := &NotificationService{repo: repo, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify persists a message for the user. Broker failures are logged only.
func (s *NotificationService) Notify(ctx context.Context, userID int64, message string) error {
	n := &domain.Notification{UserID: userID, Message: message}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if s.publisher == nil || s.topic == "" {
		return nil
	}
	event := domain.NotificationEvent{ID: n.ID, UserID: n.UserID, Message: n.Message, CreatedAt: n.CreatedAt}
	if err := s.publisher.Publish(ctx, s.topic, strconv.FormatInt(userID, 10), event); err != nil {
		s.log.WithError(err).WithField("notification_id", n.ID).Warn("failed to publish notification event")
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID int64) ([]domain.Notification, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "failed to list notifications", err)
	}
	return list, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id int64) (*domain.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewError(domain.KindNotFound, "notification not found")
		}
		return nil, domain.Wrap(domain.KindInternal, "failed to load notification", err)
	}
	if n.UserID != userID {
		return nil, domain.NewError(domain.KindForbidden, "notification belongs to another user")
	}
	if n.Read {
		return n, nil
	}

	updated, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "failed to update notification", err)
	}
	return updated, nil
}

var _ NotificationUseCase = (*NotificationService)(nil)
