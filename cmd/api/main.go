package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/application/service"
	"github.com/sangkips/clockshop-api/internal/config"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/internal/infrastructure/cache"
	"github.com/sangkips/clockshop-api/internal/infrastructure/database"
	"github.com/sangkips/clockshop-api/internal/infrastructure/logger"
	"github.com/sangkips/clockshop-api/internal/infrastructure/repository"
	"github.com/sangkips/clockshop-api/internal/presentation/http/handler"
	"github.com/sangkips/clockshop-api/internal/presentation/http/routes"
	"github.com/sangkips/clockshop-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg := config.Load()
	logg := logger.New(cfg.Log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database, cfg.Tracing.Enabled, logg)
	if err != nil {
		logg.WithError(err).Fatal("Failed to connect to database")
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			logg.WithError(err).Fatal("Failed to run migrations")
		}
	}
	if err := database.SeedDefaultData(db, logg); err != nil {
		logg.WithError(err).Warn("Failed to seed default data")
	}

	locker := domainRepo.Locker(cache.NewNoopLocker())
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logg.WithError(err).Fatal("Failed to connect to redis")
		}
		defer rdb.Close()
		locker = cache.NewRedisLocker(rdb, cfg.Redis.LockTTL, cfg.Redis.LockWait, logg)
		logg.WithField("addr", cfg.Redis.Addr).Info("Batch locks are shared through redis")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)

	store := repository.NewStore(db, cfg.Ledger.LockTimeout)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	numbers := service.NewNumberGenerator(time.Now)

	auditService := service.NewAuditService(store.AuditLogs(), cfg.Ledger.AuditEnabled, logg)
	catalogService := service.NewCatalogService(store, auditService)
	inventoryService := service.NewInventoryService(store, numbers, auditService)
	saleService := service.NewSaleService(store, numbers, locker, auditService)
	customerService := service.NewCustomerService(store, auditService)
	transferService := service.NewTransferService(store, numbers, locker, auditService)
	stockOutService := service.NewStockOutService(store, numbers, locker, auditService)

	handlers := &routes.Handlers{
		Catalog:   handler.NewCatalogHandler(catalogService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Sale:      handler.NewSaleHandler(saleService),
		Customer:  handler.NewCustomerHandler(customerService),
		Movement:  handler.NewMovementHandler(transferService, stockOutService),
		Audit:     handler.NewAuditHandler(auditService),
	}

	router := routes.Setup(ctx, handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logg,
	})

	go purgeExpiredKeys(ctx, idempotencyRepo, cfg.Ledger.IdempotencyCleanupEvery, logg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.WithFields(logrus.Fields{
			"port": port,
			"env":  cfg.App.Env,
			"db":   cfg.Database.Driver,
		}).Infof("Starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	logg.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.WithError(err).Error("Server shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// purgeExpiredKeys deletes expired idempotency keys every interval until ctx is done
func purgeExpiredKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, every time.Duration, logg *logrus.Logger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx, time.Now())
			if err != nil {
				logger.LogError(logg, "main", "purgeExpiredKeys", "delete expired idempotency keys", nil, err)
				continue
			}
			if n > 0 {
				logg.WithField("deleted", n).Debug("Expired idempotency keys removed")
			}
		}
	}
}
