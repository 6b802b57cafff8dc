package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/LiamF-2261667/fruckr-sub001/internal/config"
	"github.com/LiamF-2261667/fruckr-sub001/internal/db"
	"github.com/LiamF-2261667/fruckr-sub001/internal/events"
	"github.com/LiamF-2261667/fruckr-sub001/internal/foodtruck"
	httpapi "github.com/LiamF-2261667/fruckr-sub001/internal/http"
	"github.com/LiamF-2261667/fruckr-sub001/internal/invitation"
	"github.com/LiamF-2261667/fruckr-sub001/internal/mail"
	"github.com/LiamF-2261667/fruckr-sub001/internal/order"
	"github.com/LiamF-2261667/fruckr-sub001/internal/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	// --- Redis sessions ---
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatalf("redis connect: %v", err)
	}
	sessions := session.NewRedisStore(redisClient, cfg.SessionTTL)

	// --- Repositories ---
	trucks := foodtruck.NewPostgresRepository(pool)
	orders := order.NewPostgresRepository(pool)
	invites := invitation.NewPostgresRepository(pool)

	// --- AMQP (optional) ---
	var publisher interface {
		order.Publisher
		invitation.Publisher
	} = events.NopPublisher{}
	if cfg.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("rabbit connect: %v", err)
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn, "")
		if err != nil {
			logger.Fatalf("rabbit publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	} else {
		logger.Printf("RABBIT_URL not set, events disabled")
	}

	// --- Mail (optional) ---
	var mailer invitation.Mailer = &mail.LogMailer{Logger: logger}
	if cfg.SendgridAPIKey != "" {
		mailer = mail.NewSendgridMailer(cfg.SendgridAPIKey, cfg.EmailSender, "Fruckr")
	} else {
		logger.Printf("SENDGRID_API_KEY not set, invitation links logged instead of mailed")
	}

	// --- Services ---
	orderSvc := order.NewService(orders, trucks, sessions, publisher, logger)
	inviteSvc := invitation.NewService(invites, trucks, sessions, mailer, publisher, cfg.PublicBaseURL, logger)

	// --- HTTP ---
	router := httpapi.NewRouter(httpapi.Handlers{
		Foodtruck: httpapi.NewFoodtruckHandler(trucks, logger, cfg.IsDevelopment()),
		Cart:      httpapi.NewCartHandler(trucks, sessions, logger, cfg.IsDevelopment()),
		Order:     httpapi.NewOrderHandler(orderSvc, logger, cfg.IsDevelopment()),
		Staff:     httpapi.NewStaffHandler(inviteSvc, logger, cfg.IsDevelopment()),
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = httpServer.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}
