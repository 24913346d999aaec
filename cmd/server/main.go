package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"registrar/internal/admin"
	adminhandler "registrar/internal/admin/handler"
	adminstore "registrar/internal/admin/store"
	moderationhandler "registrar/internal/moderation/handler"
	"registrar/internal/notify"
	notifyhandler "registrar/internal/notify/handler"
	"registrar/internal/platform/config"
	"registrar/internal/platform/database"
	"registrar/internal/platform/health"
	"registrar/internal/platform/httpserver"
	"registrar/internal/platform/logger"
	"registrar/internal/platform/metrics"
	"registrar/internal/platform/redis"
	registrationhandler "registrar/internal/registration/handler"
	"registrar/internal/registration/service"
	registrationstore "registrar/internal/registration/store"
	transporthttp "registrar/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	healthHandler := health.New(cfg.Environment)

	// Registration storage: Postgres when configured, otherwise in-memory
	// for local development.
	var regStore registrationstore.Store
	pool, err := database.New(database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		if err := database.Migrate(pool.DB()); err != nil {
			log.Error("database migration failed", "error", err)
			os.Exit(1)
		}
		regStore = registrationstore.NewPostgres(pool.DB())
		healthHandler.RegisterCheck("database", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(ctx)
		})
		log.Info("using postgres registration store")
	} else {
		regStore = registrationstore.NewInMemory()
		log.Warn("DATABASE_URL not set, registrations are held in memory only")
	}

	// Admin sessions: Redis when configured, otherwise in-process.
	var sessionStore adminstore.Store
	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessionStore = adminstore.NewRedis(redisClient)
		healthHandler.RegisterCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(ctx)
		})
		log.Info("using redis session store")
	} else {
		sessionStore = adminstore.NewInMemory()
		log.Info("using in-memory session store")
	}

	adminPasswordHash := cfg.AdminPasswordHash
	if adminPasswordHash == "" {
		if cfg.Environment != "development" {
			log.Error("ADMIN_PASSWORD_HASH is required outside development")
			os.Exit(1)
		}
		adminPasswordHash, err = admin.HashPassword("admin")
		if err != nil {
			log.Error("hash default admin password", "error", err)
			os.Exit(1)
		}
		log.Warn("ADMIN_PASSWORD_HASH not set, using default development credentials")
	}

	adminService := admin.New(
		admin.Credentials{Username: cfg.AdminUsername, PasswordHash: adminPasswordHash},
		cfg.JWTSigningKey,
		cfg.SessionTTL,
		sessionStore,
		log,
		m,
	)

	var sender notify.Sender
	if cfg.SMTP.Host != "" {
		sender = notify.NewSMTPSender(cfg.SMTP)
	} else {
		sender = notify.NewLogSender(log)
		log.Warn("SMTP_HOST not set, confirmation emails are logged only")
	}

	dispatcher := notify.NewDispatcher(sender, cfg.NotifyWorkers, cfg.NotifyQueueSize, log, m)
	dispatcher.Start(context.Background())

	registrationService := service.New(regStore, dispatcher, log, m)

	router := transporthttp.NewRouter(transporthttp.Handlers{
		Registration: registrationhandler.New(registrationService, log),
		Moderation:   moderationhandler.New(registrationService, log),
		Notify:       notifyhandler.New(sender, log),
		Admin:        adminhandler.New(adminService, log),
		Health:       healthHandler,
	}, adminService, log, m)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server starting", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	dispatcher.Close()
	log.Info("shutdown complete")
}
