// Package querybuilder renders the small set of Postgres statements the user store needs,
// numbering placeholders as $1, $2, ...
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type Condition interface {
	render(w *writer)
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) render(w *writer) {
	w.sql.WriteString(c.column)
	w.sql.WriteString(" = ")
	w.bind(c.value)
}

type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Where adds conditions joined with AND.
func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w writer
	fmt.Fprintf(&w.sql, "SELECT %s FROM %s", strings.Join(b.columns, ", "), b.table)
	for i, cond := range b.where {
		if i == 0 {
			w.sql.WriteString(" WHERE ")
		} else {
			w.sql.WriteString(" AND ")
		}
		cond.render(&w)
	}
	if b.limit > 0 {
		w.sql.WriteString(" LIMIT ")
		w.sql.WriteString(strconv.Itoa(b.limit))
	}
	return w.sql.String(), w.args, nil
}

// Insert renders a single-row INSERT. suffix is appended verbatim, e.g. an
// ON CONFLICT or RETURNING clause.
func Insert(table string, columns []string, values []any, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(columns) != len(values) {
		return "", nil, fmt.Errorf("insert has %d values for %d columns", len(values), len(columns))
	}

	var w writer
	fmt.Fprintf(&w.sql, "INSERT INTO %s (%s) VALUES (", table, strings.Join(columns, ", "))
	for i, value := range values {
		if i > 0 {
			w.sql.WriteString(", ")
		}
		w.bind(value)
	}
	w.sql.WriteString(")")
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		w.sql.WriteString(" ")
		w.sql.WriteString(suffix)
	}
	return w.sql.String(), w.args, nil
}
