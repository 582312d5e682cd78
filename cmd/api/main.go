package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/doctorsportal/booking-api/internal/config"
	"github.com/doctorsportal/booking-api/internal/email"
	"github.com/doctorsportal/booking-api/internal/handler"
	accountHandler "github.com/doctorsportal/booking-api/internal/handler/account"
	bookingHandler "github.com/doctorsportal/booking-api/internal/handler/booking"
	catalogHandler "github.com/doctorsportal/booking-api/internal/handler/catalog"
	doctorHandler "github.com/doctorsportal/booking-api/internal/handler/doctor"
	ledgerHandler "github.com/doctorsportal/booking-api/internal/handler/ledger"
	reviewHandler "github.com/doctorsportal/booking-api/internal/handler/review"
	"github.com/doctorsportal/booking-api/internal/middleware"
	"github.com/doctorsportal/booking-api/internal/repository/mongodb"
	"github.com/doctorsportal/booking-api/internal/router"
	accountService "github.com/doctorsportal/booking-api/internal/service/account"
	bookingService "github.com/doctorsportal/booking-api/internal/service/booking"
	catalogService "github.com/doctorsportal/booking-api/internal/service/catalog"
	doctorService "github.com/doctorsportal/booking-api/internal/service/doctor"
	ledgerService "github.com/doctorsportal/booking-api/internal/service/ledger"
	reviewService "github.com/doctorsportal/booking-api/internal/service/review"
	"github.com/doctorsportal/booking-api/pkg/auth"
	"github.com/doctorsportal/booking-api/pkg/locker"
	"github.com/doctorsportal/booking-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	ctx := context.Background()

	db, err := mongodb.NewDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect mongodb")
		}
	}()

	// Ledger locks are redis-backed when a URL is configured and
	// in-process otherwise.
	ledgerLocks := locker.NewMemoryLocker()
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse redis URL")
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		ledgerLocks = locker.NewRedisLocker(redisClient)
	}

	// Repositories
	serviceRepo := mongodb.NewServiceRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	doctorRepo := mongodb.NewDoctorRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db)
	userTokenRepo := mongodb.NewUserTokenRepository(db)
	walletRepo := mongodb.NewWalletRepository(db)

	// Services
	tokenSvc := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryMinutes)*time.Minute)
	mailer := email.NewSender(cfg.SMTP)
	catalogSvc := catalogService.NewService(serviceRepo)
	bookingSvc := bookingService.NewService(bookingRepo, serviceRepo, userRepo, mailer)
	accountSvc := accountService.NewService(userRepo, tokenSvc)
	doctorSvc := doctorService.NewService(doctorRepo)
	reviewSvc := reviewService.NewService(reviewRepo)
	ledgerSvc := ledgerService.NewService(tokenRepo, userTokenRepo, walletRepo, bookingRepo, ledgerLocks)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc, userRepo)

	// Handlers
	h := handler.NewHandler()

	r := router.NewRouter(
		authMiddleware,
		h,
		router.RouterConfig{
			RateLimiter:   middleware.DefaultRateLimiterConfig(),
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "booking_api",
		},
		catalogHandler.NewHandler(catalogSvc),
		bookingHandler.NewHandler(bookingSvc),
		accountHandler.NewHandler(accountSvc),
		doctorHandler.NewHandler(doctorSvc),
		reviewHandler.NewHandler(reviewSvc),
		ledgerHandler.NewHandler(ledgerSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
