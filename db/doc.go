// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables for the configured backend:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: registered accounts (unique email, bcrypt password hash)
  - sources: named data endpoints, composite primary key (name, created_by)
  - subroutes: sub-paths under a source, composite foreign key
  - dashboards: user dashboards referencing a source, opaque configuration

# Relationships

	users 1──* sources
	users 1──* dashboards
	sources 1──* subroutes   (ON UPDATE CASCADE, ON DELETE CASCADE)
	sources 1──* dashboards  (ON UPDATE CASCADE, no delete cascade)

The dashboards foreign key intentionally has no ON DELETE CASCADE: deleting
a source that a dashboard still references must fail, not silently orphan
the dashboard. The store checks the reference count before deleting; the
constraint is the backstop against a concurrent insert racing that check.
*/
package db
