// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the entity repository for users, dashboards,
sources, and subroutes.

# Ownership

Every operation takes the authenticated principal id as its first argument
and is scoped to it. Dashboards are guarded by primary key, sources by the
composite key (name, principal) - the owner half of that key is always the
session principal, never a client-supplied field, so one user can never
reach another user's rows (not even to learn they exist).

# Referential Integrity

	dashboards ──(source_name, source_created_by)──> sources 1──* subroutes

  - Creating or retargeting a dashboard requires the referenced source to
    exist under the same owner.
  - Deleting a source any dashboard references fails with ErrSourceInUse;
    the count check and the deletes share one transaction, and the
    dashboards->sources foreign key backstops the check-then-act race.
  - Deleting a source removes its subroutes first, then the source.

# Partial Updates

Updates are dynamic: current values are read inside the transaction, only
supplied fields that actually differ are written, and an update with no
dirty fields is a no-op success. The patch builder produces one
parameterized UPDATE whose column names come exclusively from call-site
literals.

# Subroutes

The subroute set of a source is treated as a value: UpdateSource deletes
the stored set and reinserts the supplied paths. Individual subroute
failures (bad path, duplicate) are collected and returned alongside the
successful parent write, never rolled into it.

# Rate Limiting

An injected RateLimiter is consulted before creates, updates, and
configuration saves; a denied request fails with ErrRateLimited before
storage is touched.

# Errors

ErrNotFound, ErrUnauthorized, ErrConflict (with ErrSourceInUse as the
in-use flavor), ErrPayloadTooLarge, ErrRateLimited, ErrStorageUnavailable
(transient; context timeouts map here), plus *validate.Error for rejected
input. Match with errors.Is / errors.As.
*/
package store
