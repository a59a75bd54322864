// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/danielhkuo/dashforge/models"
	"github.com/danielhkuo/dashforge/validate"
)

// CreateSource inserts a source under the principal and then its subroute
// paths. Subroute inserts follow a partial-success policy: a failed path
// is reported back to the caller but does not roll back the source or the
// other subroutes.
func (s *Store) CreateSource(ctx context.Context, principal int64, name, route string, subroutePaths []string) ([]models.SubrouteFailure, error) {
	if err := s.allow(principal, actionSourceWrite); err != nil {
		return nil, err
	}

	name, err := validate.SourceName(name)
	if err != nil {
		return nil, err
	}
	route, err = validate.Route(route)
	if err != nil {
		return nil, err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM sources WHERE name = $1 AND created_by = $2`, name, principal).Scan(&one)
	if err == nil {
		return nil, ErrConflict
	}
	if err != sql.ErrNoRows {
		return nil, storageErr(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sources (name, created_by, route, created_at)
		VALUES ($1, $2, $3, $4)
	`, name, principal, route, time.Now())
	if err != nil {
		return nil, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}

	failed := s.insertSubroutes(ctx, models.SourceKey{Name: name, Owner: principal}, subroutePaths)
	return failed, nil
}

// UpdateSource applies a partial update to the source identified by its
// original name, then replaces the full subroute set. Subroutes are a
// value, not mutable records: the stored set is deleted and the supplied
// paths reinserted against the (possibly renamed) source.
func (s *Store) UpdateSource(ctx context.Context, principal int64, originalName string, req models.UpdateSourceRequest) ([]models.SubrouteFailure, error) {
	if err := s.allow(principal, actionSourceWrite); err != nil {
		return nil, err
	}

	originalName, err := validate.SourceName(originalName)
	if err != nil {
		return nil, err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.guardSource(ctx, tx, principal, originalName); err != nil {
		return nil, err
	}

	var currentRoute string
	err = tx.QueryRowContext(ctx,
		`SELECT route FROM sources WHERE name = $1 AND created_by = $2`,
		originalName, principal).Scan(&currentRoute)
	if err != nil {
		return nil, storageErr(err)
	}

	finalName := originalName
	var p patch
	if req.Name != nil {
		newName, err := validate.SourceName(*req.Name)
		if err != nil {
			return nil, err
		}
		if newName != originalName {
			// The new name must be free under this owner
			var one int
			err := tx.QueryRowContext(ctx,
				`SELECT 1 FROM sources WHERE name = $1 AND created_by = $2`,
				newName, principal).Scan(&one)
			if err == nil {
				return nil, ErrConflict
			}
			if err != sql.ErrNoRows {
				return nil, storageErr(err)
			}
			p.set("name", newName)
			finalName = newName
		}
	}
	if req.Route != nil {
		newRoute, err := validate.Route(*req.Route)
		if err != nil {
			return nil, err
		}
		if newRoute != currentRoute {
			p.set("route", newRoute)
		}
	}

	// Replace-all: drop the old set under the original key before any
	// rename, reinsert against the final key after commit.
	_, err = tx.ExecContext(ctx,
		`DELETE FROM subroutes WHERE source_name = $1 AND source_created_by = $2`,
		originalName, principal)
	if err != nil {
		return nil, storageErr(err)
	}

	if !p.empty() {
		query, args := p.sql("sources", []string{"name", "created_by"}, []any{originalName, principal})
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, storageErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}

	failed := s.insertSubroutes(ctx, models.SourceKey{Name: finalName, Owner: principal}, req.SubroutePaths)
	return failed, nil
}

// DeleteSource refuses to delete a source any dashboard still references;
// a dangling dashboard reference would otherwise go unnoticed. On success
// the subroutes go first, then the source - an explicit two-step so the
// cascade never depends on the storage backend.
func (s *Store) DeleteSource(ctx context.Context, principal int64, name string) error {
	name, err := validate.SourceName(name)
	if err != nil {
		return err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.guardSource(ctx, tx, principal, name); err != nil {
		return err
	}

	var inUse int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dashboards WHERE source_name = $1 AND source_created_by = $2
	`, name, principal).Scan(&inUse)
	if err != nil {
		return storageErr(err)
	}
	if inUse > 0 {
		return ErrSourceInUse
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM subroutes WHERE source_name = $1 AND source_created_by = $2`, name, principal)
	if err != nil {
		return storageErr(err)
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM sources WHERE name = $1 AND created_by = $2`, name, principal)
	if err != nil {
		return storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

// GetSource returns a source owned by the principal with its subroutes.
func (s *Store) GetSource(ctx context.Context, principal int64, name string) (models.Source, error) {
	name, err := validate.SourceName(name)
	if err != nil {
		return models.Source{}, err
	}

	var src models.Source
	err = s.db.QueryRowContext(ctx, `
		SELECT name, created_by, route, created_at
		FROM sources
		WHERE name = $1 AND created_by = $2
	`, name, principal).Scan(&src.Name, &src.CreatedBy, &src.Route, &src.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Source{}, ErrNotFound
	}
	if err != nil {
		return models.Source{}, storageErr(err)
	}

	src.Subroutes, err = s.subroutePaths(ctx, src.Key())
	if err != nil {
		return models.Source{}, err
	}
	return src, nil
}

// ListSources returns all sources owned by the principal, each with its
// subroutes.
func (s *Store) ListSources(ctx context.Context, principal int64) ([]models.Source, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, created_by, route, created_at
		FROM sources
		WHERE created_by = $1
		ORDER BY name
	`, principal)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	sources := []models.Source{}
	for rows.Next() {
		var src models.Source
		if err := rows.Scan(&src.Name, &src.CreatedBy, &src.Route, &src.CreatedAt); err != nil {
			return nil, storageErr(err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}

	for i := range sources {
		sources[i].Subroutes, err = s.subroutePaths(ctx, sources[i].Key())
		if err != nil {
			return nil, err
		}
	}
	return sources, nil
}

// insertSubroutes validates and inserts each non-empty path, collecting
// per-path failures instead of aborting.
func (s *Store) insertSubroutes(ctx context.Context, key models.SourceKey, paths []string) []models.SubrouteFailure {
	failed := []models.SubrouteFailure{}
	for _, raw := range paths {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		path, err := validate.SubroutePath(raw)
		if err != nil {
			var verr *validate.Error
			reason := "invalid path"
			if errors.As(err, &verr) {
				reason = verr.Reason
			}
			failed = append(failed, models.SubrouteFailure{Path: raw, Reason: reason})
			continue
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO subroutes (path, source_name, source_created_by)
			VALUES ($1, $2, $3)
		`, path, key.Name, key.Owner)
		if err != nil {
			failed = append(failed, models.SubrouteFailure{Path: raw, Reason: "could not be saved"})
		}
	}
	return failed
}

func (s *Store) subroutePaths(ctx context.Context, key models.SourceKey) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path FROM subroutes
		WHERE source_name = $1 AND source_created_by = $2
		ORDER BY path
	`, key.Name, key.Owner)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, storageErr(err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return paths, nil
}
