package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pharmastock/internal/handler"
	"pharmastock/internal/repository"
	"pharmastock/internal/service"
	"pharmastock/internal/ws"
	"pharmastock/pkg/config"
	"pharmastock/pkg/database"
	"pharmastock/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	zapLogger, err := logger.Init(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zapLogger.Sync()

	if !cfg.EnvFileLoaded {
		zap.L().Warn(".env file not found, using environment only")
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zap.L().Fatal("database migration failed", zap.Error(err))
	}
	zap.L().Info("database ready", zap.String("driver", cfg.DB.Driver))

	// 3. Setup WebSocket Hub
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	// 4. Wiring layers
	productRepo := repository.NewProductRepo(db)
	invService := service.NewInventoryService(productRepo, db, wsHub)
	dashService := service.NewDashboardService(invService)

	alertJob := service.NewAlertJob(invService, wsHub)
	if err := alertJob.Start(cfg.AlertCron); err != nil {
		zap.L().Fatal("alert job", zap.Error(err))
	}

	app := handler.NewApp(invService, dashService, wsHub)

	// 5. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zap.L().Panic("server stopped", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down server")
	<-alertJob.Stop().Done()
	if err := app.Shutdown(); err != nil {
		zap.L().Error("server forced to shutdown", zap.Error(err))
	}
	cancel()

	zap.L().Info("server exited")
}
