package booking

import "context"

type note struct {
	userID  int64
	message string
}

// outbox holds notifications until the transaction that produced them commits.
type outbox []note

func (o *outbox) add(userID int64, message string) {
	*o = append(*o, note{userID: userID, message: message})
}

// reset drops notes from an attempt that is being retried.
func (o *outbox) reset() {
	*o = (*o)[:0]
}

func (s *BookingService) flush(ctx context.Context, notes outbox) {
	for _, n := range notes {
		s.notify(ctx, n.userID, n.message)
	}
}

func (s *BookingService) notify(ctx context.Context, userID int64, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, message); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to emit notification")
	}
}
