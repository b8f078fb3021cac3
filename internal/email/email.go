package email

import (
	"context"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/sirupsen/logrus"
)

// Sender delivers notification events to the user's mailbox. Delivery is logged only.
type Sender struct {
	log *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event domain.NotificationEvent) error {
	s.log.WithFields(logrus.Fields{
		"notification_id": event.ID,
		"user_id":         event.UserID,
	}).Infof("send email: %s", event.Message)
	return nil
}
