package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/maxwharris/Produck/internal/config"
	"github.com/maxwharris/Produck/internal/database"
	"github.com/maxwharris/Produck/internal/store"
	"github.com/maxwharris/Produck/internal/store/memstore"
	"github.com/maxwharris/Produck/internal/store/mongostore"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.DevMode {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// openStore returns the configured store. Mongo indexes are ensured on the
// way; a failure there is logged and the store is still returned. Requested
// transactions are dropped when the deployment is standalone.
func openStore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (store.Store, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warnw("using in-memory store, data is lost on exit")
		return memstore.New(), nil
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.DBName)

	transactions := cfg.Transactions
	if transactions {
		ok, err := database.SupportsTransactions(ctx, client)
		if err != nil || !ok {
			log.Warnw("transactions unavailable, writing without them", "error", err)
			transactions = false
		}
	}
	log.Infow("mongo connected", "database", db.Name(), "transactions", transactions)

	if err := database.EnsureIndexes(ctx, db, log); err != nil {
		log.Warnw("index setup incomplete", "error", err)
	}
	return mongostore.New(db, transactions), nil
}

// loadConfig loads and validates configuration, applying overrides first.
func loadConfig(opts *rootOptions, override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
