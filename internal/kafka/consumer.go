package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Consumer struct {
	reader *kafka.Reader
	log    *logrus.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *logrus.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks until ctx is canceled or the handler fails.
// Messages that cannot be decoded are logged and skipped.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, domain.NotificationEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, ok := decode(msg.Value, c.log)
		if !ok {
			continue
		}
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decode(value []byte, log *logrus.Logger) (domain.NotificationEvent, bool) {
	var event domain.NotificationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.WithError(err).Warn("skip undecodable notification event")
		return event, false
	}
	return event, true
}
