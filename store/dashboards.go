// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/dashforge/models"
	"github.com/danielhkuo/dashforge/validate"
)

// MaxConfigurationBytes caps the serialized dashboard configuration blob.
const MaxConfigurationBytes = 1 << 20 // 1 MiB

// CreateDashboard validates the fields, resolves the referenced source
// under the principal's ownership, and inserts the dashboard. Returns the
// new dashboard id.
func (s *Store) CreateDashboard(ctx context.Context, principal int64, name, description, sourceName string) (int64, error) {
	if err := s.allow(principal, actionDashboardWrite); err != nil {
		return 0, err
	}

	name, err := validate.DashboardName(name)
	if err != nil {
		return 0, err
	}
	description, err = validate.Description(description)
	if err != nil {
		return 0, err
	}
	sourceName, err = validate.SourceName(sourceName)
	if err != nil {
		return 0, err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// The dashboard and its source must share an owner (the principal),
	// so the source lookup is keyed by the session principal.
	if err := s.guardSource(ctx, tx, principal, sourceName); err != nil {
		if err == ErrNotFound {
			return 0, fmt.Errorf("source %q: %w", sourceName, ErrNotFound)
		}
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO dashboards (created_by, name, description, source_name, source_created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, principal, name, description, sourceName, principal, time.Now()).Scan(&id)
	if err != nil {
		return 0, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr(err)
	}
	return id, nil
}

// UpdateDashboard applies a partial update: only supplied fields that
// differ from the stored values are written. If nothing is dirty the call
// is a no-op success. A changed source_name is re-validated for existence
// under the principal before it is accepted.
func (s *Store) UpdateDashboard(ctx context.Context, principal, dashboardID int64, req models.UpdateDashboardRequest) error {
	if err := s.allow(principal, actionDashboardWrite); err != nil {
		return err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.guardDashboard(ctx, tx, principal, dashboardID); err != nil {
		return err
	}

	var current struct {
		name        string
		description sql.NullString
		sourceName  string
	}
	err = tx.QueryRowContext(ctx, `
		SELECT name, description, source_name
		FROM dashboards
		WHERE id = $1 AND created_by = $2
	`, dashboardID, principal).Scan(&current.name, &current.description, &current.sourceName)
	if err != nil {
		return storageErr(err)
	}

	var p patch
	if req.Name != nil {
		name, err := validate.DashboardName(*req.Name)
		if err != nil {
			return err
		}
		if name != current.name {
			p.set("name", name)
		}
	}
	if req.Description != nil {
		description, err := validate.Description(*req.Description)
		if err != nil {
			return err
		}
		if description != current.description.String {
			p.set("description", description)
		}
	}
	if req.SourceName != nil {
		sourceName, err := validate.SourceName(*req.SourceName)
		if err != nil {
			return err
		}
		if sourceName != current.sourceName {
			if err := s.guardSource(ctx, tx, principal, sourceName); err != nil {
				if err == ErrNotFound {
					return fmt.Errorf("source %q: %w", sourceName, ErrNotFound)
				}
				return err
			}
			p.set("source_name", sourceName)
		}
	}

	// Nothing changed - succeed without writing
	if p.empty() {
		return nil
	}

	query, args := p.sql("dashboards", []string{"id", "created_by"}, []any{dashboardID, principal})
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

// DeleteDashboard removes a dashboard. Dashboards carry no downstream
// references, so deletion is unconditional once ownership holds.
func (s *Store) DeleteDashboard(ctx context.Context, principal, dashboardID int64) error {
	if err := s.guardDashboard(ctx, s.db, principal, dashboardID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM dashboards WHERE id = $1 AND created_by = $2`, dashboardID, principal)
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// SaveConfiguration replaces the stored configuration blob wholesale
// (last-write-wins, no merge). The blob must be valid JSON and is
// size-bounded.
func (s *Store) SaveConfiguration(ctx context.Context, principal, dashboardID int64, configuration []byte) error {
	if err := s.allow(principal, actionConfigWrite); err != nil {
		return err
	}

	if len(configuration) > MaxConfigurationBytes {
		return fmt.Errorf("%w: configuration exceeds %s",
			ErrPayloadTooLarge, humanize.IBytes(MaxConfigurationBytes))
	}
	if !json.Valid(configuration) {
		return &validate.Error{Field: "configuration", Reason: "must be valid JSON"}
	}

	if err := s.guardDashboard(ctx, s.db, principal, dashboardID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE dashboards SET configuration = $1 WHERE id = $2 AND created_by = $3
	`, string(configuration), dashboardID, principal)
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// GetDashboard returns a dashboard owned by the principal, including its
// configuration blob.
func (s *Store) GetDashboard(ctx context.Context, principal, dashboardID int64) (models.Dashboard, error) {
	if err := s.guardDashboard(ctx, s.db, principal, dashboardID); err != nil {
		return models.Dashboard{}, err
	}

	d, err := scanDashboard(s.db.QueryRowContext(ctx, `
		SELECT id, created_by, name, description, source_name, configuration, created_at
		FROM dashboards
		WHERE id = $1 AND created_by = $2
	`, dashboardID, principal))
	if err != nil {
		return models.Dashboard{}, storageErr(err)
	}
	return d, nil
}

// ListDashboards returns all dashboards owned by the principal.
func (s *Store) ListDashboards(ctx context.Context, principal int64) ([]models.Dashboard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_by, name, description, source_name, configuration, created_at
		FROM dashboards
		WHERE created_by = $1
		ORDER BY id
	`, principal)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	dashboards := []models.Dashboard{}
	for rows.Next() {
		d, err := scanDashboard(rows)
		if err != nil {
			return nil, storageErr(err)
		}
		dashboards = append(dashboards, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return dashboards, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDashboard(row rowScanner) (models.Dashboard, error) {
	var d models.Dashboard
	var description, configuration sql.NullString
	err := row.Scan(&d.ID, &d.CreatedBy, &d.Name, &description,
		&d.SourceName, &configuration, &d.CreatedAt)
	if err != nil {
		return models.Dashboard{}, err
	}
	d.Description = description.String
	if configuration.Valid {
		d.Configuration = json.RawMessage(configuration.String)
	}
	return d, nil
}
