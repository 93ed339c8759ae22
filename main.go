package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"conciergerie-backend/cache"
	"conciergerie-backend/config"
	"conciergerie-backend/controllers"
	"conciergerie-backend/events"
	"conciergerie-backend/repository"
	"conciergerie-backend/routes"
	"conciergerie-backend/services"
	"conciergerie-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("❌ config", zap.Error(err))
	}

	log := config.NewLogger(cfg.Env)
	defer func() { _ = log.Sync() }()

	if err := utils.RegisterValidators(); err != nil {
		log.Fatal("❌ register validators", zap.Error(err))
	}

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.Fatal("❌ Database connect failed", zap.Error(err))
	}
	log.Info("✅ Database connection established and migrations applied", zap.String("driver", cfg.DBDriver))

	if cfg.SeedDatabase {
		if err := config.SeedDatabase(context.Background(), db, log); err != nil {
			log.Fatal("❌ seed failed", zap.Error(err))
		}
	}

	bookingOpts := []services.BookingOption{
		services.WithMailer(utils.NewMailer(cfg.SMTP, cfg.FrontendURL, log)),
	}

	rdb, err := config.ConnectRedis(context.Background(), cfg.RedisURL, log)
	if err != nil {
		log.Warn("⚠️  Redis unavailable, booked dates are read from the database", zap.Error(err))
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		bookingOpts = append(bookingOpts, services.WithBookedDatesCache(cache.NewBookedDates(rdb, cfg.BookedDatesTTL)))
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic, log)
		if err != nil {
			log.Fatal("❌ kafka publisher", zap.Error(err))
		}
		publisher = kp
		log.Info("🔧 Kafka publisher initialized", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaBookingTopic))
	}
	defer func() { _ = publisher.Close() }()
	bookingOpts = append(bookingOpts, services.WithEventPublisher(publisher))

	// Initialize services
	bookingService := services.NewBookingService(repository.NewBookingRepository(db), log, bookingOpts...)
	propertyService := services.NewPropertyService(db)
	userService := services.NewUserService(db)
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
	paymentService := services.NewPaymentService(db)

	router := routes.SetupRouter(routes.Controllers{
		Bookings:   controllers.NewBookingController(bookingService),
		Properties: controllers.NewPropertyController(propertyService),
		Users:      controllers.NewUserController(userService),
		Auth:       controllers.NewAuthController(authService),
		Payments:   controllers.NewPaymentController(paymentService),
	}, authService, cfg.CORSOrigins, log)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("🚀 Server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ ListenAndServe", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("✅ Server stopped gracefully")
}
