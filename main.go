package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"hotel-reservations/config"
	"hotel-reservations/controllers"
	"hotel-reservations/events"
	"hotel-reservations/logger"
	"hotel-reservations/metrics"
	"hotel-reservations/routes"
	"hotel-reservations/services"
)

func main() {
	cfg, envLoaded := config.LoadConfig()

	log := logger.NewLogger(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if !envLoaded {
		log.Info(".env not found or couldn't load it; continuing with environment variables")
	}

	gin.SetMode(cfg.GinMode)

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.Fatal("database setup failed", "error", err)
	}

	m := metrics.NewMetrics(cfg.MetricsPrefix, prometheus.DefaultRegisterer)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		amqpPublisher := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventsQueue)
		amqpPublisher.DialTimeout = cfg.EventsDialTimeout
		publisher = amqpPublisher
		log.Info("reservation events enabled", "queue", cfg.EventsQueue)
	}

	// Initialize services
	store := services.NewGormReservationStore(db)
	reservationService := services.NewReservationService(store, publisher, m, log, cfg.StrictStatusTransitions)

	// Initialize controllers
	reservationController := controllers.NewReservationController(reservationService, log)
	healthController := controllers.NewHealthController(reservationService, cfg.ServerName, cfg.Port)

	router := routes.SetupRouter(routes.RouterDeps{
		Reservations: reservationController,
		Health:       healthController,
		Metrics:      m,
		Gatherer:     prometheus.DefaultGatherer,
		Log:          log,
		CORSOrigins:  routes.ParseCorsOrigins(cfg.CORSOrigins),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	go func() {
		log.Info("server starting", "addr", addr, "strict_status_transitions", cfg.StrictStatusTransitions)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe failed", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped gracefully")
}
