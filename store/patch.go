// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"strings"
)

// patch accumulates dirty columns for a single parameterized UPDATE.
// Column names come only from call-site literals - user input never
// reaches an identifier position.
type patch struct {
	columns []string
	args    []any
}

func (p *patch) set(column string, value any) {
	p.columns = append(p.columns, column)
	p.args = append(p.args, value)
}

func (p *patch) empty() bool {
	return len(p.columns) == 0
}

// sql renders the UPDATE statement and its argument list. Placeholders are
// numbered in order of appearance: SET columns first, then the WHERE key.
func (p *patch) sql(table string, whereColumns []string, whereArgs []any) (string, []any) {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")

	n := 1
	for i, col := range p.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s = $%d", col, n)
		n++
	}

	b.WriteString(" WHERE ")
	for i, col := range whereColumns {
		if i > 0 {
			b.WriteString(" AND ")
		}
		fmt.Fprintf(&b, "%s = $%d", col, n)
		n++
	}

	args := make([]any, 0, len(p.args)+len(whereArgs))
	args = append(args, p.args...)
	args = append(args, whereArgs...)
	return b.String(), args
}
