// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookverse/bookverse-core/internal/logging"
	"github.com/bookverse/bookverse-core/internal/monitoring"
	"github.com/bookverse/bookverse-core/internal/tracing"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

var _ DBClientInterface = (*DBClient)(nil)

type DBClient struct {
	pool *pgxpool.Pool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *DBClient) Pool() *pgxpool.Pool {
	return c.pool
}

func (c *DBClient) Ping(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "db.DBClient.Ping")
	defer span.End()

	err := c.pool.Ping(ctx)

	availability := 1.0
	if err != nil {
		availability = 0.0
	}
	if merr := c.monitor.SetDependencyAvailability(map[string]string{"dependency": "postgres"}, availability); merr != nil {
		c.logger.Errorf("failed to record db availability: %v", merr)
	}

	return err
}

func (c *DBClient) Close() {
	c.pool.Close()
}

func NewDBClient(config Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	if config.DSN == "" {
		return nil, fmt.Errorf("db: empty DSN")
	}

	poolConfig, err := pgxpool.ParseConfig(config.DSN)
	if err != nil {
		return nil, fmt.Errorf("db: invalid DSN: %w", err)
	}

	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	if config.MinConns > 0 {
		poolConfig.MinConns = config.MinConns
	}
	if config.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = config.MaxConnLifetime
	}
	if config.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = config.MaxConnIdleTime
	}

	if config.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("db: failed to create pool: %w", err)
	}

	return &DBClient{
		pool:    pool,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}, nil
}
