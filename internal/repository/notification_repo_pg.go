package repository

import (
	"context"

	"github.com/Domenick1991/travelbooking/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64) (*domain.Notification, error)
}

type PGNotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) NotificationRepository {
	return &PGNotificationRepository{db: db}
}

func (r *PGNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.QueryRow(ctx, `INSERT INTO notifications (user_id, message) VALUES ($1, $2) RETURNING id, read, created_at`, n.UserID, n.Message).
		Scan(&n.ID, &n.Read, &n.CreatedAt)
}

func (r *PGNotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.db.QueryRow(ctx, `SELECT id, user_id, message, read, created_at FROM notifications WHERE id=$1`, id).
		Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &n, nil
}

func (r *PGNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, message, read, created_at FROM notifications WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PGNotificationRepository) MarkRead(ctx context.Context, id int64) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.db.QueryRow(ctx, `UPDATE notifications SET read=true WHERE id=$1 RETURNING id, user_id, message, read, created_at`, id).
		Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &n, nil
}

var _ NotificationRepository = (*PGNotificationRepository)(nil)
