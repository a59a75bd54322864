// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/danielhkuo/dashforge/models"
	"github.com/danielhkuo/dashforge/validate"
)

// CreateUser registers a new account. The password must already be hashed
// by the caller; plaintext never reaches this package.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	email, err := validate.Email(email)
	if err != nil {
		return 0, err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = $1`, email).Scan(&one)
	if err == nil {
		return 0, ErrConflict
	}
	if err != sql.ErrNoRows {
		return 0, storageErr(err)
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, passwordHash, time.Now()).Scan(&id)
	if err != nil {
		return 0, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr(err)
	}
	return id, nil
}

// UserByEmail looks up an account for login.
func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	email, err := validate.Email(email)
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	err = s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, storageErr(err)
	}
	return u, nil
}

// UserByID looks up an account by primary key.
func (s *Store) UserByID(ctx context.Context, userID int64) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, userID).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, storageErr(err)
	}
	return u, nil
}

// UpdatePassword replaces the stored hash. The password is the only
// mutable field on a user.
func (s *Store) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return storageErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
