package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-idcheck/contracts"
	validationshandler "github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/handler"
	validationsrepo "github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/repo"
	validationsservice "github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/service"
	platformlogging "github.com/zenGate-Global/palmyra-idcheck/platform/go/logging"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/metrics"
	platformmiddleware "github.com/zenGate-Global/palmyra-idcheck/platform/go/middleware"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/payloadschema"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/persistence"
)

type config struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL     string        `env:"DATABASE_URL"`                               // in-memory journal when empty
	JournalSalt     string        `env:"JOURNAL_SALT,required"`                      // keys value digests
	JournalCapacity int           `env:"JOURNAL_MEMORY_CAPACITY" envDefault:"10000"` // used without DATABASE_URL
	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`
}

func main() {
	ctx := context.Background()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := platformlogging.NewLogger(platformlogging.Config{
		Component: "idcheck-api",
		Level:     cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var journal validationsservice.Journal
	ready := func(context.Context) error { return nil }

	if cfg.DatabaseURL != "" {
		pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: cfg.DatabaseURL})
		if err != nil {
			logger.Fatal("init postgres pool", zap.Error(err))
		}
		defer persistence.ClosePool(pool)

		if err := persistence.Bootstrap(ctx, pool); err != nil {
			logger.Fatal("bootstrap journal schema", zap.Error(err))
		}

		store, err := persistence.NewValidationEventStore(ctx, pool)
		if err != nil {
			logger.Fatal("init validation event store", zap.Error(err))
		}
		journal = validationsrepo.NewPostgresJournal(store)
		ready = pool.Ping
	} else {
		logger.Warn("DATABASE_URL not set, validation journal is kept in memory",
			zap.Int("capacity", cfg.JournalCapacity))
		journal = validationsrepo.NewMemoryJournal(cfg.JournalCapacity)
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	svc := validationsservice.New(journal, payloadschema.NewValidator(contracts.Registrations), validationsservice.Config{
		DigestSalt: []byte(cfg.JournalSalt),
		Logger:     logger,
		Metrics:    m,
	})

	contract, err := platformmiddleware.LoadContract(ctx, contracts.ValidationsYAML)
	if err != nil {
		logger.Fatal("load validations contract", zap.Error(err))
	}

	rootRouter := newRouter(routerConfig{
		Logger:         logger,
		Handler:        validationshandler.New(svc, logger),
		Contract:       contract,
		Metrics:        m,
		Ready:          ready,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rootRouter,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("starting api server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
