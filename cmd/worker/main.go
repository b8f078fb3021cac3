package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/amqp"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/email"
	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type consumer interface {
	Consume(ctx context.Context, handler func(context.Context, domain.NotificationEvent) error) error
}

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var c consumer
	switch cfg.Notifications.Broker {
	case config.BrokerKafka:
		kc := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
		defer kc.Close()
		c = kc
	case config.BrokerAMQP:
		c = amqp.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Queue, log)
	default:
		log.Info("notification broker disabled, nothing to consume")
		return
	}

	sender := email.NewSender(log)
	log.WithField("broker", cfg.Notifications.Broker).Info("notification worker started")

	if err := c.Consume(ctx, sender.Send); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("consumer stopped")
		return
	}
	log.Info("notification worker stopped")
}
