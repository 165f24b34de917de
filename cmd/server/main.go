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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appbilling "github.com/venturehub/backend/internal/application/billing"
	appincubation "github.com/venturehub/backend/internal/application/incubation"
	appmentorship "github.com/venturehub/backend/internal/application/mentorship"
	appordering "github.com/venturehub/backend/internal/application/ordering"
	appticketing "github.com/venturehub/backend/internal/application/ticketing"
	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/infrastructure/cache"
	"github.com/venturehub/backend/internal/infrastructure/config"
	"github.com/venturehub/backend/internal/infrastructure/event"
	"github.com/venturehub/backend/internal/infrastructure/logger"
	"github.com/venturehub/backend/internal/infrastructure/persistence"
	"github.com/venturehub/backend/internal/infrastructure/ticketdelivery"
	"github.com/venturehub/backend/internal/interfaces/http/handler"
	"github.com/venturehub/backend/internal/interfaces/http/middleware"
	"github.com/venturehub/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer logger.Sync(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	idempotencyStore, err := newIdempotencyStore(cfg, log)
	if err != nil {
		return err
	}
	defer idempotencyStore.Close()

	bus := event.NewInMemoryEventBus(log)
	if err := bus.Start(context.Background()); err != nil {
		return err
	}
	defer bus.Stop(context.Background())

	taxRate, err := decimal.NewFromString(cfg.Booking.TaxRate)
	if err != nil {
		return errors.New("invalid booking tax rate: " + cfg.Booking.TaxRate)
	}

	// Application services, one transaction scope per bounded context.
	eventService := appticketing.NewEventService(
		persistence.NewGormBookingTransactionScope(db.DB), log)
	bookingService := appticketing.NewBookingService(
		persistence.NewGormBookingTransactionScope(db.DB),
		ticketdelivery.NewLogTicketIssuer(log),
		idempotencyStore,
		taxRate,
		log,
	)
	bookingService.SetIdempotencyConfig(shared.IdempotencyConfig{
		TTL:     cfg.Booking.IdempotencyTTL,
		Enabled: true,
	})
	orderService := appordering.NewOrderService(
		persistence.NewGormOrderTransactionScope(db.DB), log)
	cohortService := appincubation.NewCohortService(
		persistence.NewGormIncubationTransactionScope(db.DB), log)
	applicationService := appincubation.NewApplicationService(
		persistence.NewGormIncubationTransactionScope(db.DB), log)
	schedulerService := appmentorship.NewSchedulerService(
		persistence.NewGormMentorshipTransactionScope(db.DB), log)
	invoiceService := appbilling.NewInvoiceService(
		persistence.NewGormBillingTransactionScope(db.DB), log)

	eventService.SetEventPublisher(bus)
	bookingService.SetEventPublisher(bus)
	orderService.SetEventPublisher(bus)
	applicationService.SetEventPublisher(bus)
	schedulerService.SetEventPublisher(bus)
	invoiceService.SetEventPublisher(bus)

	engine := newEngine(cfg, log)
	router.NewRouter(engine).Register(
		handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env),
		handler.NewEventHandler(eventService),
		handler.NewBookingHandler(bookingService),
		handler.NewOrderHandler(orderService),
		handler.NewIncubationHandler(cohortService, applicationService),
		handler.NewMentorshipHandler(schedulerService),
		handler.NewInvoiceHandler(invoiceService),
	).Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func newIdempotencyStore(cfg *config.Config, log *zap.Logger) (shared.IdempotencyStore, error) {
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		log.Info("using redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
		return store, nil
	}
	log.Info("using in-memory idempotency store")
	return cache.NewInMemoryIdempotencyStore(), nil
}

func newEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))

	return engine
}
