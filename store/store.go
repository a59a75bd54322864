// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
)

// Failure taxonomy. Handlers map these onto HTTP statuses; nothing in this
// package is fatal to the process. Validation failures are returned as
// *validate.Error values alongside these sentinels.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrSourceInUse        = fmt.Errorf("%w: source is referenced by a dashboard", ErrConflict)
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrRateLimited        = errors.New("rate limited")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Rate limiter buckets. Creates, updates, and configuration saves share a
// bucket per entity kind; deletes and reads are never limited.
const (
	actionDashboardWrite = "dashboard:write"
	actionSourceWrite    = "source:write"
	actionConfigWrite    = "configuration:write"
)

// RateLimiter is consulted before every mutating operation. A false result
// fails the operation without touching storage.
type RateLimiter interface {
	Allow(principal int64, action string) bool
}

// Store implements the entity repository over a relational database.
// All operations are scoped to the principal id passed in; no method ever
// returns or mutates another user's rows.
type Store struct {
	db      *sql.DB
	limiter RateLimiter
}

func New(db *sql.DB, limiter RateLimiter) *Store {
	return &Store{db: db, limiter: limiter}
}

// queryer abstracts *sql.DB and *sql.Tx so guards and lookups run inside
// or outside a transaction.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) allow(principal int64, action string) error {
	if s.limiter != nil && !s.limiter.Allow(principal, action) {
		return ErrRateLimited
	}
	return nil
}

// storageErr maps driver and context failures onto the taxonomy. Timeouts
// and cancellations are the transient class callers may retry; constraint
// violations become conflicts (the declarative backstop for races the
// explicit checks cannot close).
func storageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
		}
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == 19 { // SQLITE_CONSTRAINT
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func (s *Store) begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	return tx, nil
}
