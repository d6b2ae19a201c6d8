package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/emsgrid/hotspot_detection_system/internal/alert"
	"github.com/emsgrid/hotspot_detection_system/internal/config"
	v1 "github.com/emsgrid/hotspot_detection_system/internal/handler/http/v1"
	"github.com/emsgrid/hotspot_detection_system/internal/locationstore"
	"github.com/emsgrid/hotspot_detection_system/internal/repository"
	"github.com/emsgrid/hotspot_detection_system/internal/service"
	"github.com/emsgrid/hotspot_detection_system/pkg/logger"
	"github.com/emsgrid/hotspot_detection_system/pkg/postgres"
	redisclient "github.com/emsgrid/hotspot_detection_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/emsgrid/hotspot_detection_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Hotspot Detection System API
// @version 1.0
// @description Incident correlation and hotspot detection engine API server.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// startSweepTicker запускает периодический проход детекции хотспотов,
// если интервал задан в конфигурации. Внешний планировщик может вместо этого
// дергать POST /hotspots/detect.
func startSweepTicker(ctx context.Context, hotspots service.HotspotService, log *logrus.Logger, cfg *config.Config) {
	if cfg.SweepIntervalMinutes <= 0 {
		log.Info("Sweep ticker disabled, expecting external detection triggers")
		return
	}

	interval := time.Duration(cfg.SweepIntervalMinutes) * time.Minute
	log.Infof("Starting hotspot sweep ticker with interval %v", interval)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info("Stopping hotspot sweep ticker.")
				return
			case <-ticker.C:
				sweepCtx, cancel := context.WithTimeout(ctx, cfg.SweepTimeout)
				if _, err := hotspots.SweepDetect(sweepCtx, ""); err != nil {
					log.WithError(err).Error("Scheduled hotspot sweep failed")
				}
				cancel()
			}
		}
	}()
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация издателя оповещений
	alertPublisher := alert.NewRedisPublisher(redisClient)

	// Инициализация и запуск воркера доставки оповещений
	alertWorker := alert.NewWorker(redisClient, log, cfg)
	alertWorker.Start(ctx)

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool)
	hotspotRepo := repository.NewHotspotRepository(dbpool, redisClient)

	// Хранилище позиций живет в памяти процесса
	locations := locationstore.New()

	// Инициализация сервисов
	correlator := service.NewClusterCorrelator(incidentRepo, log, cfg)
	hotspotService := service.NewHotspotService(hotspotRepo, incidentRepo, alertPublisher, log, cfg)
	incidentService := service.NewIncidentService(incidentRepo, correlator, hotspotService, log, cfg)
	locationService := service.NewLocationService(locations, incidentRepo, log, cfg)

	// Периодический проход детекции
	startSweepTicker(ctx, hotspotService, log, cfg)

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, hotspotService, locationService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	if len(cfg.APIKeys) > 0 {
		api.Use(v1.APIKeyAuthMiddleware(cfg, log))
	}
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
