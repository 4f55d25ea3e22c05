package commands

import (
	"context"
	"fmt"

	"github.com/CRONANANI/ezana/backend/internal/dashboard"
	"github.com/CRONANANI/ezana/backend/internal/portfolio"
	"github.com/CRONANANI/ezana/backend/internal/scoringconfig"
	"github.com/CRONANANI/ezana/backend/pkg/config"
	"github.com/CRONANANI/ezana/backend/pkg/database"
	"github.com/CRONANANI/ezana/backend/pkg/logger"
	"github.com/CRONANANI/ezana/backend/pkg/redis"
)

// deps holds everything a long-running command wires together
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *database.DB
	redis   *redis.Client
	scoring *scoringconfig.Config
	service *dashboard.Service
}

// newDeps loads config and connects to Postgres and Redis.
// An unreachable Redis degrades to the disabled client instead of failing.
func newDeps(ctx context.Context) (*deps, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Scoring profile
	path := cfg.Dashboard.ScoringConfigPath
	if scoringFile != "" {
		path = scoringFile
	}
	scoring, err := scoringconfig.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("load scoring config: %w", err)
	}
	for _, w := range scoringconfig.Warn(scoring) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	// 4. Connect to database
	db, err := database.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 5. Connect to redis
	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, caching and distributed rate limiting disabled")
		rdb = redis.Disabled()
	}

	// 6. Dashboard service
	loader := portfolio.NewRepository(db.Pool, cfg.Dashboard.BenchmarkSymbol, scoring.Risk.LookbackDays)
	store := dashboard.NewRepository(db.Pool)
	builder := dashboard.NewBuilder(scoring)
	service := dashboard.NewService(loader, store, redis.NewCache(rdb), builder, cfg.Dashboard.CacheTTL, log)

	hash, _ := scoringconfig.Hash(scoring)
	log.WithFields(map[string]interface{}{
		"profile": scoring.Meta.ProfileID,
		"version": scoring.Meta.Version,
		"hash":    shortHash(hash),
		"redis":   rdb.Enabled(),
	}).Info("Dashboard dependencies initialized")

	return &deps{
		cfg:     cfg,
		log:     log,
		db:      db,
		redis:   rdb,
		scoring: scoring,
		service: service,
	}, nil
}

// Close releases connections
func (d *deps) Close() {
	if err := d.redis.Close(); err != nil {
		d.log.WithError(err).Warn("Failed to close redis")
	}
	d.db.Close()
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
