package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"bella-vista/internal/config"
	"bella-vista/internal/database"
	"bella-vista/internal/logger"
	"bella-vista/internal/menu"
	"bella-vista/internal/messaging"
	"bella-vista/internal/services/feedback"
	"bella-vista/internal/services/notify"
	"bella-vista/internal/services/order"
	"bella-vista/internal/services/reservation"
	"bella-vista/internal/session"
	"bella-vista/internal/view"
	"bella-vista/internal/web"
)

func main() {
	var (
		mode       = flag.String("mode", "web", "Service mode (web, notifier)")
		configPath = flag.String("config", "config.yaml", "Path to the config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("service_started", requestID, fmt.Sprintf("Starting %s", *mode), map[string]interface{}{
		"mode": *mode,
	})

	switch *mode {
	case "web":
		err = runWeb(ctx, cfg, log, requestID)
	case "notifier":
		err = runNotifier(ctx, cfg, log)
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s (web, notifier)\n", *mode)
		os.Exit(1)
	}

	if err != nil {
		log.Error("service_failed", requestID, fmt.Sprintf("%s failed", *mode), err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", requestID, "Service stopped gracefully", nil)
}

// runWeb starts the customer-facing web application
func runWeb(ctx context.Context, cfg *config.Config, log *logger.Logger, requestID string) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", requestID, "Connected to PostgreSQL database", nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	carts, err := newCartStore(ctx, cfg)
	if err != nil {
		return err
	}

	var publisher order.EventPublisher
	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()
		log.Info("rabbitmq_connected", requestID, "Connected to RabbitMQ", nil)
		publisher = messaging.NewPublisher(conn, log)
	}

	renderer, err := view.New(log)
	if err != nil {
		return fmt.Errorf("failed to initialize templates: %w", err)
	}

	catalog := menu.Default()
	sessions := session.NewManager(carts)

	orderSvc := order.NewService(order.NewRepository(db), catalog, carts, publisher, log)
	orderHandler := order.NewHandler(orderSvc, catalog, sessions, renderer, log)

	reservationSvc := reservation.NewService(reservation.NewRepository(db))
	reservationHandler := reservation.NewHandler(reservationSvc, renderer, log)

	feedbackSvc := feedback.NewService(feedback.NewRepository(db))
	feedbackHandler := feedback.NewHandler(feedbackSvc, renderer, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: web.NewRouter(orderHandler, reservationHandler, feedbackHandler, log),
	}

	go func() {
		log.Info("http_listening", requestID, fmt.Sprintf("Web application listening on port %d", cfg.Server.Port), map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", requestID, "HTTP server failed", err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runNotifier starts the order event subscriber
func runNotifier(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.OrderEventsQueue, "notifier")
	subscriber := notify.NewSubscriber(consumer, log)

	if err := subscriber.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// newCartStore builds the session cart store selected in config.
func newCartStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return session.NewRedisStore(client, ttl), nil
	case "memory", "":
		store := session.NewMemoryStore(ttl)
		store.StartSweeper(ctx, time.Minute)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.Session.Backend)
	}
}
