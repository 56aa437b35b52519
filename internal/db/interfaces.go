// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBClientInterface is the shared connection-pool handle services receive.
// The pool is the only stateful resource; no query helpers live here.
type DBClientInterface interface {
	Pool() *pgxpool.Pool
	Ping(ctx context.Context) error
	Close()
}
