package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/config"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/domain/ports/repository"
	pg "github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/db/postgres"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/logging"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/metrics"
	red "github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/redis"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/web"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Repositories ----
	var payRepo repository.PaymentRepository = pg.NewPaymentRepo(pool)
	txnRepo := pg.NewTransactionRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Redis (optional stats cache) ----
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		payRepo = pg.NewPaymentRepoCacheDecorator(payRepo, redisClient, cfg.Redis.StatsTTL)
		logger.Info().Dur("ttl", cfg.Redis.StatsTTL).Msg("payment stats cache enabled")
	} else {
		logger.Warn().Msg("redis.url not set; payment stats cache disabled")
	}

	// ---- Use cases ----
	paymentUC := usecase.NewPaymentUseCase(payRepo, tm, logger)
	transactionUC := usecase.NewTransactionUseCase(txnRepo, tm, logger)
	reportUC := usecase.NewReportUseCase(payRepo)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Admin.JWTSecret, cfg.Admin.SecureCookie, cfg.Admin.CookieDomain, cfg.Admin.SessionTTL)
	srv := web.NewServer(paymentUC, transactionUC, reportUC, auth, cfg.Admin.APIKey, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
