// Package app wires the configured store, event publisher and logger into a ledger.
package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/bank-client-ledger/internal/config"
	"github.com/sheikh-saqib/bank-client-ledger/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/bank-client-ledger/internal/interfaces"
	"github.com/sheikh-saqib/bank-client-ledger/internal/ledger"
	"github.com/sheikh-saqib/bank-client-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/bank-client-ledger/internal/storage/postgres"
)

type App struct {
	Ledger  *ledger.Ledger
	Logger  *zap.SugaredLogger
	Backend string // config.BackendMemory or config.BackendPostgres

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	a := &App{Logger: logger, Backend: cfg.StoreBackend}

	var store interfaces.ClientStore
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pg, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pg.Close)
		store = pg
	default:
		a.Backend = config.BackendMemory
		store = memory.NewClientStore()
	}
	logger.Infow("client store ready", "backend", cfg.StoreBackend)

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		a.closers = append(a.closers, p.Close)
		publisher = p
		logger.Infow("publishing events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	a.Ledger = ledger.NewLedger(store, publisher, logger)
	return a, nil
}

// Close releases resources in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}
