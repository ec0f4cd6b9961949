package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crmgate/retailcrm-gateway/config"
	"github.com/crmgate/retailcrm-gateway/internal/api/rest"
	"github.com/crmgate/retailcrm-gateway/internal/integration/retailcrm"
	"github.com/crmgate/retailcrm-gateway/internal/metrics"
	"github.com/crmgate/retailcrm-gateway/internal/service"
	"github.com/crmgate/retailcrm-gateway/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func init() {
	// Загружаем переменные окружения; отсутствие .env файла не ошибка
	_ = godotenv.Load()
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("failed to load configuration", zap.Error(err))
	}

	// Инициализация логгера
	log, err := logger.New(cfg.Logging.Level, cfg.App.Env)
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Инициализация Prometheus
	promRegistry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promRegistry, log)
	systemMetrics := metrics.NewSystemMetrics(promRegistry, log)

	// Запускаем сбор системных метрик
	systemMetrics.StartRecording(15 * time.Second)
	defer systemMetrics.Stop()

	// Клиент RetailCRM создается один раз и передается в сервисы
	crmClient := retailcrm.NewClient(retailcrm.Config{
		APIURL:  cfg.RetailCRM.APIURL,
		APIKey:  cfg.RetailCRM.APIKey,
		Timeout: time.Duration(cfg.RetailCRM.Timeout) * time.Second,
	}, log)

	customerService := service.NewCustomerService(crmClient, log)
	orderService := service.NewOrderService(crmClient, log)

	// Установка режима Gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Настройка маршрутизатора
	router := rest.SetupRouter(cfg, customerService, orderService, httpMetrics, promRegistry, log)

	// Создание и запуск HTTP сервера
	server := rest.NewServer(router, cfg, log)

	// Запуск сервера в горутине
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped gracefully")
}
