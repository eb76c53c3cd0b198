package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/calclone-api/api/swagger"
	"github.com/noah-isme/calclone-api/internal/handler"
	"github.com/noah-isme/calclone-api/internal/middleware"
	"github.com/noah-isme/calclone-api/internal/repository"
	"github.com/noah-isme/calclone-api/internal/service"
	"github.com/noah-isme/calclone-api/pkg/cache"
	"github.com/noah-isme/calclone-api/pkg/config"
	"github.com/noah-isme/calclone-api/pkg/database"
	"github.com/noah-isme/calclone-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/calclone-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/calclone-api/pkg/middleware/requestid"
)

// @title CalClone API
// @version 1.0.0
// @description Scheduling backend: event types, weekly availability, open slots and bookings
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logr.Sugar().Fatalw("failed to run migrations", "error", err)
		}
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Slots.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, running without slot cache", "error", err)
		} else {
			redisRepo := repository.NewCacheRepository(redisClient, logr)
			defer redisRepo.Close() //nolint:errcheck
			cacheRepo = redisRepo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Slots.CacheTTL, logr, cacheRepo != nil)

	eventTypeRepo := repository.NewEventTypeRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	notificationSvc := service.NewNotificationService(cfg.Notifications, logr)
	notificationSvc.Start(ctx)
	defer notificationSvc.Stop()

	eventTypeSvc := service.NewEventTypeService(eventTypeRepo, bookingRepo, cacheSvc, nil, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, cacheSvc, nil, logr, cfg.Scheduling.DefaultTimezone)
	slotSvc := service.NewSlotService(eventTypeRepo, availabilityRepo, bookingRepo, cacheSvc, metricsSvc, nil, logr)
	bookingSvc := service.NewBookingService(bookingRepo, eventTypeRepo, availabilityRepo, notificationSvc, cacheSvc, metricsSvc, nil, logr)
	exportSvc := service.NewExportService(bookingRepo)

	eventTypeHandler := handler.NewEventTypeHandler(eventTypeSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, exportSvc)
	publicHandler := handler.NewPublicHandler(eventTypeSvc, slotSvc, bookingSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, eventTypeHandler, availabilityHandler, bookingHandler, publicHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
	logr.Info("server stopped", zap.String("addr", addr))
}
