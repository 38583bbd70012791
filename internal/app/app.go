package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hudada-hub/duanju-admin-sub001/internal/config"
	"github.com/hudada-hub/duanju-admin-sub001/internal/database"
	"github.com/hudada-hub/duanju-admin-sub001/internal/gateway"
	"github.com/hudada-hub/duanju-admin-sub001/internal/handlers"
	"github.com/hudada-hub/duanju-admin-sub001/internal/logger"
	"github.com/hudada-hub/duanju-admin-sub001/internal/repository"
	"github.com/hudada-hub/duanju-admin-sub001/internal/service"
	"go.uber.org/zap"
)

type App struct {
	server     *http.Server
	db         *sql.DB
	reconciler *service.Reconciler
}

func NewApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ParseFlags()

	if err := logger.Initialize("debug"); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Error("Database connection failed", zap.Error(err))
		return nil, err
	}

	taskRepo := repository.NewTaskRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	userRepo := repository.NewUserRepository(db)

	gatewayClient := gateway.NewClient(cfg.GatewayAddress, cfg.GatewayAppID)
	verifier := gateway.NewSignatureVerifier(cfg.GatewayPublicKey)

	userService := service.NewUserService(userRepo)
	withdrawalService := service.NewWithdrawalService(taskRepo, withdrawalRepo, gatewayClient, verifier)
	pointsService := service.NewPointsService(pointsRepo)
	reconciler := service.NewReconciler(withdrawalRepo, gatewayClient, cfg.ReconcileInterval, cfg.StalenessWindow)

	handler := handlers.NewHandler(userService, withdrawalService, pointsService, cfg.SecretKey)
	r := handlers.NewRouter(handler, cfg.SecretKey)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	return &App{
		server:     server,
		db:         db,
		reconciler: reconciler,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go a.reconciler.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed to start", zap.Error(err))
		}
	}()
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logger.Log.Info("shutting down server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server shutdown failed", zap.Error(err))
		return err
	}

	logger.Log.Info("closing database connection...")
	if err := a.db.Close(); err != nil {
		logger.Log.Error("failed to close database", zap.Error(err))
		return err
	}

	return nil
}
