// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"reflect"
	"testing"
)

func TestPatchSQL(t *testing.T) {
	var p patch
	p.set("name", "weather-v2")
	p.set("route", "/v2/weather")

	query, args := p.sql("sources", []string{"name", "created_by"}, []any{"weather", int64(1)})

	wantQuery := "UPDATE sources SET name = $1, route = $2 WHERE name = $3 AND created_by = $4"
	if query != wantQuery {
		t.Errorf("sql() query = %q, want %q", query, wantQuery)
	}

	wantArgs := []any{"weather-v2", "/v2/weather", "weather", int64(1)}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("sql() args = %v, want %v", args, wantArgs)
	}
}

func TestPatchSingleColumn(t *testing.T) {
	var p patch
	p.set("description", "new text")

	query, args := p.sql("dashboards", []string{"id", "created_by"}, []any{int64(7), int64(2)})

	wantQuery := "UPDATE dashboards SET description = $1 WHERE id = $2 AND created_by = $3"
	if query != wantQuery {
		t.Errorf("sql() query = %q, want %q", query, wantQuery)
	}
	if len(args) != 3 {
		t.Errorf("sql() returned %d args, want 3", len(args))
	}
}

func TestPatchEmpty(t *testing.T) {
	var p patch
	if !p.empty() {
		t.Error("new patch should be empty")
	}
	p.set("name", "x")
	if p.empty() {
		t.Error("patch with a column should not be empty")
	}
}
