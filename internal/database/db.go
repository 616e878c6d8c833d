package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"kasjer/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPingTimeout  = 5 * time.Second
	defaultMaxConns     = 10
	defaultMinConns     = 0
	defaultConnMaxIdle  = 2 * time.Minute
	defaultConnMaxLife  = 30 * time.Minute
	defaultConnectLimit = 5 * time.Second
)

// Open builds the process-wide pool from the endpoint and credential. It
// returns ErrUnavailable without dialing when either is missing. A failed
// ping is logged but the pool is still returned; pgx reconnects lazily.
func Open(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	if !cfg.Configured() {
		return nil, ErrUnavailable
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("invalid db.source: %w", err)
	}
	poolCfg.ConnConfig.Password = cfg.Password
	poolCfg.ConnConfig.ConnectTimeout = defaultConnectLimit
	poolCfg.MaxConns = defaultMaxConns
	poolCfg.MinConns = defaultMinConns
	poolCfg.MaxConnIdleTime = defaultConnMaxIdle
	poolCfg.MaxConnLifetime = defaultConnMaxLife

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Printf("WARN: database ping failed, continuing with lazy connections: %v", err)
	}

	return pool, nil
}
