package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"aicare-epro/internal/config"
	"aicare-epro/internal/database"
	httpapi "aicare-epro/internal/http"
	"aicare-epro/internal/logger"
	"aicare-epro/internal/notifier"
	"aicare-epro/internal/repository"
	"aicare-epro/internal/service"
	"aicare-epro/internal/session"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "aicare-epro")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	// 3. 仓库：默认内存（演示环境），DB_ENABLED 时切 PostgreSQL
	var alertsRepo repository.AlertsRepository
	var reportsRepo repository.SymptomReportsRepository
	if cfg.DBEnabled {
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect database", zap.Error(err))
		}
		defer database.Close(db)
		alertsRepo = repository.NewPostgresAlertsRepo(db, log)
		reportsRepo = repository.NewPostgresSymptomReportsRepo(db, log)
		log.Info("Using PostgreSQL repositories")
	} else {
		memAlerts := repository.NewMemoryAlertsRepo()
		for _, alert := range repository.DemoAlerts(time.Now()) {
			copied := alert
			if err := memAlerts.CreateAlert(context.Background(), &copied); err != nil {
				log.Warn("Failed to seed demo alert", zap.String("alert_id", copied.AlertID), zap.Error(err))
			}
		}
		alertsRepo = memAlerts
		reportsRepo = repository.NewMemorySymptomReportsRepo()
		log.Info("Using in-memory repositories with demo data")
	}

	patientsRepo := repository.NewMemoryPatientsRepo()
	patientsRepo.SeedPatients(repository.DemoPatients())

	interventionsRepo := repository.NewMemoryInterventionsRepo()
	for _, record := range repository.DemoInterventions(time.Now()) {
		copied := record
		if err := interventionsRepo.CreateRecord(context.Background(), &copied); err != nil {
			log.Warn("Failed to seed demo intervention", zap.String("record_id", copied.RecordID), zap.Error(err))
		}
	}

	// 4. 会话历史与通知通道：REDIS_ENABLED 时用 Redis + Streams
	var historyStore session.HistoryStore = session.NewMemoryHistoryStore()
	notifiers := []notifier.Notifier{}
	if cfg.RedisEnabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect redis", zap.Error(err))
		}
		defer redisClient.Close()

		historyStore = session.NewRedisHistoryStore(redisClient, cfg.Chat.KeyPrefix,
			time.Duration(cfg.Chat.TTLSeconds)*time.Second)
		notifiers = append(notifiers, notifier.NewStreamNotifier(redisClient, cfg.Alert.Stream, log))
		log.Info("Redis enabled", zap.String("addr", cfg.Redis.Addr))
	}
	if cfg.Alert.WebhookURL != "" {
		notifiers = append(notifiers, notifier.NewWebhookNotifier(cfg.Alert.WebhookURL, log))
		log.Info("Alert webhook enabled", zap.String("url", cfg.Alert.WebhookURL))
	}

	var alertNotifier notifier.Notifier
	switch len(notifiers) {
	case 0:
		alertNotifier = notifier.NewNopNotifier()
	case 1:
		alertNotifier = notifiers[0]
	default:
		alertNotifier = notifier.NewMultiNotifier(log, notifiers...)
	}

	// 5. 服务与路由
	alertService := service.NewAlertService(alertsRepo, log)
	triageService := service.NewTriageService(patientsRepo, reportsRepo, alertService, historyStore, alertNotifier, log)

	router := httpapi.NewRouter(log)
	router.RegisterPatientRoutes(
		httpapi.NewChatHandler(triageService, log),
		httpapi.NewPatientHandler(patientsRepo, reportsRepo, log),
	)
	router.RegisterManagerRoutes(
		httpapi.NewAlertHandler(alertService, patientsRepo, log),
		httpapi.NewManagerHandler(patientsRepo, interventionsRepo, log),
	)
	router.RegisterDataRoutes(httpapi.NewDataHandler(patientsRepo, log))

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	// 6. 启动 HTTP 服务
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	// 7. 等待信号（优雅关闭）
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErrChan:
		log.Fatal("HTTP server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Graceful shutdown failed", zap.Error(err))
	}

	log.Info("ePRO service stopped")
}
