package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/arriendo/lease-engine/internal/cache"
	"github.com/arriendo/lease-engine/internal/config"
	"github.com/arriendo/lease-engine/internal/handler"
	"github.com/arriendo/lease-engine/internal/logger"
	"github.com/arriendo/lease-engine/internal/repository"
	"github.com/arriendo/lease-engine/internal/service"
	"github.com/arriendo/lease-engine/pkg/response"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Server.Env)

	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Repositories
	tenantRepo := repository.NewTenantRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	contractRepo := repository.NewContractRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	txManager := repository.NewTxManager(db)

	// Services
	scheduleService := service.NewScheduleService(contractRepo, paymentRepo)
	contractService := service.NewContractService(contractRepo, tenantRepo, propertyRepo, scheduleService, txManager, log)
	paymentService := service.NewPaymentService(paymentRepo, contractRepo, cfg.Lease.GracePeriodDays, log)
	tenantService := service.NewTenantService(tenantRepo, contractRepo, log)
	propertyService := service.NewPropertyService(propertyRepo, log)
	debtService := service.NewDebtService(tenantRepo, contractRepo, paymentRepo, cache.NewRedis(redisClient), cfg.Lease.DebtCacheTTL, log)
	reportService := service.NewReportService(paymentRepo)

	// Handlers
	tenantHandler := handler.NewTenantHandler(tenantService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	contractHandler := handler.NewContractHandler(contractService, scheduleService, cfg.Lease.ExpiringSoonDays)
	paymentHandler := handler.NewPaymentHandler(paymentService, debtService)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(tenantHandler, propertyHandler, contractHandler, paymentHandler, reportHandler, healthHandler)
	router.Use(response.LoggingMiddleware(log))

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	tenantHandler *handler.TenantHandler,
	propertyHandler *handler.PropertyHandler,
	contractHandler *handler.ContractHandler,
	paymentHandler *handler.PaymentHandler,
	reportHandler *handler.ReportHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/tenants", tenantHandler.Create).Methods("POST")
	api.HandleFunc("/tenants/national-id/{nationalId}", tenantHandler.GetByNationalID).Methods("GET")
	api.HandleFunc("/tenants/{tenantId}", tenantHandler.Get).Methods("GET")
	api.HandleFunc("/tenants/{tenantId}", tenantHandler.Update).Methods("PUT")
	api.HandleFunc("/tenants/{tenantId}/activate", tenantHandler.Activate).Methods("PATCH")

	api.HandleFunc("/properties", propertyHandler.Create).Methods("POST")
	api.HandleFunc("/properties/{propertyId}", propertyHandler.Get).Methods("GET")
	api.HandleFunc("/properties/{propertyId}", propertyHandler.Update).Methods("PUT")

	api.HandleFunc("/contracts", contractHandler.Create).Methods("POST")
	api.HandleFunc("/contracts", contractHandler.List).Methods("GET")
	api.HandleFunc("/contracts/active", contractHandler.ListActive).Methods("GET")
	api.HandleFunc("/contracts/expiring", contractHandler.ListExpiring).Methods("GET")
	api.HandleFunc("/contracts/{contractId}", contractHandler.Get).Methods("GET")
	api.HandleFunc("/contracts/{contractId}", contractHandler.Update).Methods("PUT")
	api.HandleFunc("/contracts/{contractId}", contractHandler.Delete).Methods("DELETE")
	api.HandleFunc("/contracts/{contractId}/payments", paymentHandler.ListByContract).Methods("GET")
	api.HandleFunc("/contracts/{contractId}/payments/generate", contractHandler.GeneratePayments).Methods("POST")

	api.HandleFunc("/payments", paymentHandler.Create).Methods("POST")
	api.HandleFunc("/payments", paymentHandler.Search).Methods("GET")
	api.HandleFunc("/payments/stats", paymentHandler.Stats).Methods("GET")
	api.HandleFunc("/payments/state/{state}", paymentHandler.ListByState).Methods("GET")
	api.HandleFunc("/payments/sweep", paymentHandler.RunSweep).Methods("POST")
	api.HandleFunc("/payments/{paymentId}", paymentHandler.Get).Methods("GET")
	api.HandleFunc("/payments/{paymentId}", paymentHandler.Update).Methods("PUT")
	api.HandleFunc("/payments/{paymentId}/abono", paymentHandler.RecordAbono).Methods("POST")

	api.HandleFunc("/debts/{nationalId}", paymentHandler.DebtByNationalID).Methods("GET")

	api.HandleFunc("/reports/income/monthly", reportHandler.MonthlyIncome).Methods("GET")
	api.HandleFunc("/reports/income/annual", reportHandler.AnnualIncome).Methods("GET")

	return router
}
