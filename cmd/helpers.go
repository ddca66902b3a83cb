package cmd

import (
	"fmt"

	"github.com/ecotrace/wastewatch/internal/config"
	"github.com/ecotrace/wastewatch/internal/db"
	"github.com/ecotrace/wastewatch/internal/sampling"
	"github.com/ecotrace/wastewatch/internal/store"
)

// loadConfig reads and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured database and wraps it in a store. The
// caller owns the returned DB and must close it.
func openStore(cfg *config.Config) (*db.DB, *store.Store, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, store.New(database), nil
}

// newBroker builds a sampling broker from the configured timeout, with
// an optional event sink.
func newBroker(cfg *config.Config, sink sampling.EventSink) *sampling.Broker {
	opts := []sampling.Option{sampling.WithTimeout(cfg.SamplingTimeout())}
	if sink != nil {
		opts = append(opts, sampling.WithEventSink(sink))
	}
	return sampling.New(opts...)
}
