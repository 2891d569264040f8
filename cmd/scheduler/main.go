package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/arriendo/lease-engine/internal/config"
	"github.com/arriendo/lease-engine/internal/logger"
	"github.com/arriendo/lease-engine/internal/repository"
	"github.com/arriendo/lease-engine/internal/service"
	"github.com/arriendo/lease-engine/pkg/utils"

	"github.com/jmoiron/sqlx"
)

const jobTimeout = 5 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Server.Env)
	log.Info().Msg("starting lease scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	tenantRepo := repository.NewTenantRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	contractRepo := repository.NewContractRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	txManager := repository.NewTxManager(db)

	scheduleService := service.NewScheduleService(contractRepo, paymentRepo)
	contractService := service.NewContractService(contractRepo, tenantRepo, propertyRepo, scheduleService, txManager, log)
	paymentService := service.NewPaymentService(paymentRepo, contractRepo, cfg.Lease.GracePeriodDays, log)

	c := cron.New(cron.WithSeconds())
	setupCronJobs(c, cfg, log, contractService, paymentService, paymentRepo)

	c.Start()
	log.Info().Msg("scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down scheduler")
	<-c.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

func setupCronJobs(
	c *cron.Cron,
	cfg *config.Config,
	log zerolog.Logger,
	contractService *service.ContractService,
	paymentService *service.PaymentService,
	paymentRepo repository.PaymentRepository,
) {
	// Daily overdue sweep at midnight.
	_, err := c.AddFunc("0 0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		result, err := paymentService.RunOverdueSweep(ctx)
		if err != nil {
			log.Error().Err(err).Msg("overdue sweep failed")
			return
		}
		log.Info().
			Int("processed", result.Processed).
			Int("overdue", result.OverdueCount).
			Msg("overdue sweep finished")
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to schedule overdue sweep")
	}

	// Daily payment reminders at 9 AM.
	_, err = c.AddFunc("0 0 9 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		sendPaymentReminders(ctx, cfg, log, paymentRepo)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to schedule payment reminders")
	}

	// Daily contract expiration check at 10 AM.
	_, err = c.AddFunc("0 0 10 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		checkExpiringContracts(ctx, cfg, log, contractService)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to schedule contract expiration check")
	}

	log.Info().Msg("cron jobs scheduled")
}

// sendPaymentReminders surfaces installments coming due within the lead
// window. Delivery is an external concern; each hit is logged for the
// notification pipeline to pick up.
func sendPaymentReminders(ctx context.Context, cfg *config.Config, log zerolog.Logger, paymentRepo repository.PaymentRepository) {
	dueDate := utils.DateOnly(time.Now().UTC()).AddDate(0, 0, cfg.Lease.ReminderLeadDays)

	payments, err := paymentRepo.ListDueOn(ctx, dueDate)
	if err != nil {
		log.Error().Err(err).Msg("payment reminder lookup failed")
		return
	}

	for _, payment := range payments {
		log.Info().
			Str("payment_id", payment.ID.String()).
			Str("contract_id", payment.ContractID.String()).
			Str("expected_date", payment.ExpectedDate.Format("2006-01-02")).
			Str("amount", payment.TotalAmount.String()).
			Msg("payment due soon")
	}

	log.Info().Int("count", len(payments)).Msg("payment reminder job finished")
}

func checkExpiringContracts(ctx context.Context, cfg *config.Config, log zerolog.Logger, contractService *service.ContractService) {
	contracts, err := contractService.ListExpiringWithin(ctx, cfg.Lease.ExpiringSoonDays)
	if err != nil {
		log.Error().Err(err).Msg("contract expiration lookup failed")
		return
	}

	for _, contract := range contracts {
		log.Info().
			Str("contract_id", contract.ID.String()).
			Str("end_date", contract.EndDate.Format("2006-01-02")).
			Msg("contract expiring soon")
	}

	log.Info().Int("count", len(contracts)).Msg("contract expiration check finished")
}
