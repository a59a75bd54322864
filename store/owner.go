// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
)

// The ownership guard runs before every mutating or detail-revealing
// operation. It trusts only the session principal: for composite-keyed
// sources the owner half of the key is always the principal id, so a
// client-supplied owner field can never reach a query.

// guardDashboard confirms the principal owns the dashboard. ErrNotFound if
// no such row, ErrUnauthorized if it belongs to someone else.
func (s *Store) guardDashboard(ctx context.Context, q queryer, principal, dashboardID int64) error {
	var owner int64
	err := q.QueryRowContext(ctx,
		`SELECT created_by FROM dashboards WHERE id = $1`, dashboardID).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return storageErr(err)
	}
	if owner != principal {
		return ErrUnauthorized
	}
	return nil
}

// guardSource confirms a source (name, principal) exists. Because the
// owner id is part of the primary key, absence and lack of ownership are
// the same condition: another user's source with the same name is simply
// not found here.
func (s *Store) guardSource(ctx context.Context, q queryer, principal int64, name string) error {
	var one int
	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM sources WHERE name = $1 AND created_by = $2`, name, principal).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return storageErr(err)
	}
	return nil
}
