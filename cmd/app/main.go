package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/travelbooking/api"
	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/amqp"
	"github.com/Domenick1991/travelbooking/internal/auth"
	"github.com/Domenick1991/travelbooking/internal/bootstrap"
	"github.com/Domenick1991/travelbooking/internal/cache"
	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/Domenick1991/travelbooking/internal/notification"
	"github.com/Domenick1991/travelbooking/internal/provider"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real environment variables win.
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	var searchCache flights.SearchCache
	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.FlightsCacheTTLDuration())
	if err := redisCache.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, flight search cache disabled")
		_ = redisCache.Close()
	} else {
		searchCache = redisCache
		defer redisCache.Close()
	}

	notifyOpts, closePublisher := publisherOptions(cfg, log)
	defer closePublisher()

	store := repository.NewStore(pool, cfg.Booking.TxMaxAttempts)
	notifications := notification.NewNotificationService(repository.NewNotificationRepository(pool), log, notifyOpts...)
	providerClient := provider.NewClient(cfg.Provider)

	bookingService := booking.NewBookingService(store, notifications, providerClient, log,
		booking.WithDirectConfirm(cfg.Booking.AllowDirectConfirm),
	)
	flightService := flights.NewFlightService(providerClient, searchCache, log)

	services := api.Services{
		Bookings:      bookingService,
		Flights:       flightService,
		Notifications: notifications,
		Auth:          auth.NewAuthenticator(cfg.Auth.JWTSecret),
	}

	if err := bootstrap.Run(ctx, cfg, services, log); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// publisherOptions selects the notification broker.
func publisherOptions(cfg *config.Config, log *logrus.Logger) ([]notification.NotificationServiceOption, func()) {
	switch cfg.Notifications.Broker {
	case config.BrokerKafka:
		p := kafka.NewProducer(cfg.Kafka.Brokers, log)
		return []notification.NotificationServiceOption{notification.WithPublisher(p, cfg.Kafka.NotificationsTopic)}, func() { _ = p.Close() }
	case config.BrokerAMQP:
		p := amqp.NewPublisher(cfg.AMQP.URL, log)
		return []notification.NotificationServiceOption{notification.WithPublisher(p, cfg.AMQP.Queue)}, func() { _ = p.Close() }
	default:
		log.Info("notification broker disabled")
		return nil, func() {}
	}
}
