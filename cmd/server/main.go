package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/marketplace-backend/internal/config"
	"github.com/ignatzorin/marketplace-backend/internal/db"
	httpHandlers "github.com/ignatzorin/marketplace-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/marketplace-backend/internal/http/router"
	"github.com/ignatzorin/marketplace-backend/internal/logger"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
	"github.com/ignatzorin/marketplace-backend/internal/service"
	"github.com/ignatzorin/marketplace-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Репозитории.
	accountRepo := repository.NewAccountRepository(dbConn)
	listingRepo := repository.NewListingRepository(dbConn)
	orderRepo := repository.NewOrderRepository(dbConn)
	ledgerRepo := repository.NewLedgerRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	go hub.Run()

	// Сервисы.
	authService := service.NewAuthService(accountRepo, tokenManager)
	listingService := service.NewListingService(listingRepo, hub)
	orderService := service.NewOrderService(orderRepo, hub)
	ledgerService := service.NewLedgerService(ledgerRepo, hub)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	listingHandler := httpHandlers.NewListingHandler(listingService)
	orderHandler := httpHandlers.NewOrderHandler(orderService)
	ledgerHandler := httpHandlers.NewLedgerHandler(ledgerService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, listingHandler, orderHandler, ledgerHandler, wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
