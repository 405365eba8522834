package sqldb

import (
	"fmt"
	"strings"
	"time"

	"github.com/martijn/lexdesk/internal/api/util"
	"github.com/martijn/lexdesk/internal/core/repository"
	"github.com/martijn/lexdesk/pkg/civildate"
)

// normalizeValue brings operands from internal callers to the form the
// parser produces: stored days for date columns, UTC instants for
// timestamps. Timestamps are bound as time.Time so PostgreSQL never reads a
// zone-less string in the session TimeZone.
func normalizeValue(field string, value interface{}) interface{} {
	switch util.KindOf(field) {
	case util.KindDate:
		if s, ok := value.(string); ok {
			if d, err := civildate.ParseInput(s); err == nil {
				return d.String()
			}
		}
	case util.KindTimestamp:
		switch v := value.(type) {
		case time.Time:
			return v.UTC()
		case string:
			if t, err := util.ParseTimestamp(v); err == nil {
				return t
			}
		}
	}
	return value
}

// BuildFilterClause builds a SQL WHERE clause from a QueryFilter
func BuildFilterClause(f util.QueryFilter) (string, []interface{}) {
	value := normalizeValue(f.Field, f.Value)

	switch f.Operator {
	case util.OpEq:
		return fmt.Sprintf("%s = ?", f.Field), []interface{}{value}
	case util.OpNe:
		return fmt.Sprintf("%s != ?", f.Field), []interface{}{value}
	case util.OpGt:
		return fmt.Sprintf("%s > ?", f.Field), []interface{}{value}
	case util.OpGte:
		return fmt.Sprintf("%s >= ?", f.Field), []interface{}{value}
	case util.OpLt:
		return fmt.Sprintf("%s < ?", f.Field), []interface{}{value}
	case util.OpLte:
		return fmt.Sprintf("%s <= ?", f.Field), []interface{}{value}
	case util.OpLike:
		if strVal, ok := value.(string); ok {
			return fmt.Sprintf("LOWER(CAST(%s AS TEXT)) LIKE ?", f.Field), []interface{}{"%" + strings.ToLower(strVal) + "%"}
		}
		return "", nil
	case util.OpIsNull:
		return fmt.Sprintf("%s IS NULL", f.Field), nil
	case util.OpIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", f.Field), nil
	case util.OpIn, util.OpNin:
		values, ok := f.Value.([]string)
		if !ok || len(values) == 0 {
			return "", nil
		}
		placeholders := make([]string, len(values))
		args := make([]interface{}, len(values))
		for i, v := range values {
			placeholders[i] = "?"
			args[i] = normalizeValue(f.Field, v)
		}
		keyword := "IN"
		if f.Operator == util.OpNin {
			keyword = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)", f.Field, keyword, strings.Join(placeholders, ", ")), args
	default:
		return "", nil
	}
}

// ApplyFilters applies QueryFilters to a query and returns the modified query and args
func ApplyFilters(query string, args []interface{}, filters []util.QueryFilter) (string, []interface{}) {
	for _, f := range filters {
		clause, filterArgs := BuildFilterClause(f)
		if clause != "" {
			query += " AND " + clause
			args = append(args, filterArgs...)
		}
	}
	return query, args
}

// ApplySearch matches term case-insensitively against any of fields.
func ApplySearch(query string, args []interface{}, term string, fields []string) (string, []interface{}) {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return query, args
	}

	pattern := "%" + strings.ToLower(term) + "%"
	clauses := make([]string, len(fields))
	for i, f := range fields {
		clauses[i] = fmt.Sprintf("LOWER(COALESCE(%s, '')) LIKE ?", f)
		args = append(args, pattern)
	}
	return query + " AND (" + strings.Join(clauses, " OR ") + ")", args
}

// ApplyOrdering applies OrderClauses to a query
func ApplyOrdering(query string, orders []util.OrderClause, defaultOrder string) string {
	if len(orders) > 0 {
		orderClauses := make([]string, 0, len(orders))
		for _, o := range orders {
			direction := "ASC"
			if o.Direction == util.OrderDesc {
				direction = "DESC"
			}
			orderClauses = append(orderClauses, fmt.Sprintf("%s %s", o.Field, direction))
		}
		return query + " ORDER BY " + strings.Join(orderClauses, ", ")
	}
	return query + " ORDER BY " + defaultOrder
}

// ApplyPagination applies page/perPage to a query
func ApplyPagination(query string, args []interface{}, page, perPage int) (string, []interface{}) {
	if perPage > 0 {
		query += " LIMIT ?"
		args = append(args, perPage)

		if page > 1 {
			offset := (page - 1) * perPage
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}
	return query, args
}

// listSpec describes how a resource is listed. source is a table name or a
// derived table exposing every filterable column unqualified.
type listSpec struct {
	source       string
	ownerColumn  string
	searchFields []string
	defaultOrder string
}

func (s listSpec) where(ownerID string, opts repository.ListOptions) (string, []interface{}) {
	query := " WHERE 1=1"
	var args []interface{}
	if s.ownerColumn != "" {
		query += " AND " + s.ownerColumn + " = ?"
		args = append(args, ownerID)
	}
	query, args = ApplyFilters(query, args, opts.Filters)
	return ApplySearch(query, args, opts.Search, s.searchFields)
}

func (s listSpec) selectQuery(ownerID string, opts repository.ListOptions) (string, []interface{}) {
	where, args := s.where(ownerID, opts)
	query := "SELECT * FROM " + s.source + where
	query = ApplyOrdering(query, opts.Order, s.defaultOrder)
	return ApplyPagination(query, args, opts.Page, opts.PerPage)
}

func (s listSpec) countQuery(ownerID string, opts repository.ListOptions) (string, []interface{}) {
	where, args := s.where(ownerID, opts)
	return "SELECT COUNT(*) FROM " + s.source + where, args
}
