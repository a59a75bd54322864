// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Field length caps. Sized for form inputs, not prose.
const (
	MaxNameLen        = 64
	MaxDescriptionLen = 256
	MaxRouteLen       = 256
	MaxPathLen        = 256
	MaxEmailLen       = 254
)

var (
	// Dashboard and source names: display strings
	namePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)
	// Routes and subroute paths: URL-path-ish strings
	routePattern = regexp.MustCompile(`^[A-Za-z0-9/_.-]+$`)
)

// Error reports a rejected field. It satisfies the error interface so it
// can travel through the store's error returns and be matched with
// errors.As at the HTTP layer.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Field trims surrounding whitespace and checks the result against the
// given max length and optional character-class pattern. Returns the
// trimmed value on success. Every user-supplied string must pass through
// here before it is stored or used in a query.
func Field(value, field string, pattern *regexp.Regexp, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &Error{Field: field, Reason: "must not be empty"}
	}
	if len(trimmed) > maxLen {
		return "", &Error{Field: field, Reason: fmt.Sprintf("must be at most %d characters", maxLen)}
	}
	if pattern != nil && !pattern.MatchString(trimmed) {
		return "", &Error{Field: field, Reason: "contains disallowed characters"}
	}
	return trimmed, nil
}

// DashboardName allows alphanumerics, spaces, hyphens, and underscores.
func DashboardName(value string) (string, error) {
	return Field(value, "name", namePattern, MaxNameLen)
}

// Description is free-form but must be non-empty and bounded.
func Description(value string) (string, error) {
	return Field(value, "description", nil, MaxDescriptionLen)
}

// SourceName allows the same character class as dashboard names.
func SourceName(value string) (string, error) {
	return Field(value, "source_name", namePattern, MaxNameLen)
}

// Route allows alphanumerics, hyphens, underscores, slashes, and dots.
func Route(value string) (string, error) {
	return Field(value, "route", routePattern, MaxRouteLen)
}

// SubroutePath allows the same character class as routes.
func SubroutePath(value string) (string, error) {
	return Field(value, "subroute_path", routePattern, MaxPathLen)
}

// Email is shape-checked by the request validator; this only normalizes
// and bounds it.
func Email(value string) (string, error) {
	return Field(value, "email", nil, MaxEmailLen)
}
