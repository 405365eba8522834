package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/martijn/lexdesk/pkg/civildate"
)

// QueryOperator represents a filter operator
type QueryOperator string

const (
	OpEq        QueryOperator = "eq"
	OpNe        QueryOperator = "ne"
	OpGt        QueryOperator = "gt"
	OpGte       QueryOperator = "gte"
	OpLt        QueryOperator = "lt"
	OpLte       QueryOperator = "lte"
	OpIn        QueryOperator = "in"
	OpNin       QueryOperator = "nin"
	OpIsNull    QueryOperator = "isnull"
	OpIsNotNull QueryOperator = "isnotnull"
	OpLike      QueryOperator = "like"
)

// QueryFilter is one condition of a list query. Value holds the decoded
// operand: a string (text and calendar days), float64 (numbers), time.Time
// in UTC (timestamps), []string for in/nin, or nil for the null checks.
type QueryFilter struct {
	Field    string
	Operator QueryOperator
	Value    interface{}
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// OrderClause represents a single order by clause
type OrderClause struct {
	Field     string
	Direction OrderDirection
}

// FieldKind tells how a column's values are written and compared.
type FieldKind int

const (
	KindText FieldKind = iota
	// KindDate is a calendar day stored as YYYY-MM-DD.
	KindDate
	// KindTimestamp is an instant stored in UTC.
	KindTimestamp
	KindNumber
)

var fieldKinds = map[string]FieldKind{
	"data_registro":    KindDate,
	"ultimo_contato":   KindDate,
	"data_inicio":      KindDate,
	"data_limite":      KindDate,
	"data":             KindDate,
	"data_conclusao":   KindDate,
	"data_vencimento":  KindDate,
	"data_pagamento":   KindDate,
	"data_admissao":    KindDate,
	"created_at":       KindTimestamp,
	"updated_at":       KindTimestamp,
	"expires_at":       KindTimestamp,
	"valor":            KindNumber,
	"valor_causa":      KindNumber,
	"salario":          KindNumber,
	"processos_ativos": KindNumber,
	"tamanho":          KindNumber,
}

// KindOf returns the kind of a list column. Unknown columns are text.
func KindOf(field string) FieldKind {
	return fieldKinds[field]
}

var validOperators = map[string]QueryOperator{
	"eq":        OpEq,
	"ne":        OpNe,
	"gt":        OpGt,
	"gte":       OpGte,
	"lt":        OpLt,
	"lte":       OpLte,
	"in":        OpIn,
	"nin":       OpNin,
	"isnull":    OpIsNull,
	"isnotnull": OpIsNotNull,
	"like":      OpLike,
}

// FilterError reports a malformed condition of the query or order parameter.
type FilterError struct {
	Param   string
	Field   string
	Message string
}

func (e *FilterError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
	}
	return fmt.Sprintf("invalid %s on %s: %s", e.Param, e.Field, e.Message)
}

func queryErr(field, format string, args ...interface{}) *FilterError {
	return &FilterError{Param: "query", Field: field, Message: fmt.Sprintf(format, args...)}
}

// ParseQueryString parses the query parameter into filter conditions.
// Supports formats:
//   - field|value (defaults to eq operator)
//   - field|isnull or field|isnotnull (null checks)
//   - field|operator|value (explicit operator)
//   - field|like|text (case-insensitive substring match, text columns only)
//
// Multiple conditions are comma-separated. The value of in/nin is a
// semicolon-separated list, e.g. status|in|Pago;Pendente,cliente_id|abc.
// Values are decoded by column kind: calendar days accept whatever a date
// picker sends and become YYYY-MM-DD, timestamps become UTC instants and
// numbers are parsed, so a bad operand fails here instead of in SQL.
func ParseQueryString(queryStr string) ([]QueryFilter, error) {
	if queryStr == "" {
		return nil, nil
	}

	var filters []QueryFilter
	for _, pair := range strings.Split(queryStr, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		filter, err := parseCondition(pair)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
	}

	return filters, nil
}

func parseCondition(pair string) (QueryFilter, error) {
	parts := strings.Split(pair, "|")
	field := strings.TrimSpace(parts[0])
	if field == "" {
		return QueryFilter{}, queryErr("", "missing field in %q", pair)
	}

	var op QueryOperator
	var raw string
	switch len(parts) {
	case 2:
		// field|value (eq) or field|isnull/isnotnull
		switch potentialOp := QueryOperator(strings.ToLower(parts[1])); potentialOp {
		case OpIsNull, OpIsNotNull:
			return QueryFilter{Field: field, Operator: potentialOp}, nil
		default:
			op, raw = OpEq, parts[1]
		}
	case 3:
		var valid bool
		op, valid = validOperators[strings.ToLower(parts[1])]
		if !valid {
			return QueryFilter{}, queryErr(field, "unknown operator %q", parts[1])
		}
		raw = parts[2]
	default:
		return QueryFilter{}, queryErr(field, "expected field|value or field|operator|value, got %q", pair)
	}

	kind := KindOf(field)
	switch op {
	case OpIsNull, OpIsNotNull:
		return QueryFilter{Field: field, Operator: op}, nil
	case OpLike:
		if kind != KindText {
			return QueryFilter{}, queryErr(field, "like only applies to text fields")
		}
		return QueryFilter{Field: field, Operator: op, Value: raw}, nil
	case OpIn, OpNin:
		if kind == KindTimestamp || kind == KindNumber {
			return QueryFilter{}, queryErr(field, "%s only applies to text and date fields", op)
		}
		var values []string
		for _, item := range strings.Split(raw, ";") {
			v, err := decodeValue(field, kind, item)
			if err != nil {
				return QueryFilter{}, err
			}
			values = append(values, v.(string))
		}
		return QueryFilter{Field: field, Operator: op, Value: values}, nil
	}

	value, err := decodeValue(field, kind, raw)
	if err != nil {
		return QueryFilter{}, err
	}
	return QueryFilter{Field: field, Operator: op, Value: value}, nil
}

func decodeValue(field string, kind FieldKind, raw string) (interface{}, error) {
	switch kind {
	case KindDate:
		d, err := civildate.ParseInput(raw)
		if err != nil {
			return nil, queryErr(field, "expected a date (YYYY-MM-DD)")
		}
		return d.String(), nil
	case KindTimestamp:
		t, err := ParseTimestamp(raw)
		if err != nil {
			return nil, queryErr(field, "expected a timestamp (RFC 3339 or YYYY-MM-DD)")
		}
		return t, nil
	case KindNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, queryErr(field, "expected a number")
		}
		return n, nil
	default:
		return raw, nil
	}
}

// ParseTimestamp reads a timestamp operand. Values without an offset, and
// bare days, are read in the civil timezone. The result is in UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}

	cal := civildate.Default()
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, raw, cal.Location()); err == nil {
			return t.UTC(), nil
		}
	}
	if d, err := civildate.Parse(raw); err == nil {
		return cal.Time(d).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

// ParseOrderString parses an order string into order clauses.
// Format: field|direction (direction is asc or desc)
// Multiple clauses are comma-separated.
func ParseOrderString(orderStr string) ([]OrderClause, error) {
	if orderStr == "" {
		return nil, nil
	}

	var orders []OrderClause

	for _, pair := range strings.Split(orderStr, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.Split(pair, "|")
		if len(parts) != 2 {
			return nil, &FilterError{Param: "order", Message: fmt.Sprintf("expected field|direction, got %q", pair)}
		}

		direction := OrderDirection(strings.ToLower(parts[1]))
		if direction != OrderAsc && direction != OrderDesc {
			return nil, &FilterError{Param: "order", Field: parts[0], Message: "direction must be asc or desc"}
		}

		orders = append(orders, OrderClause{Field: parts[0], Direction: direction})
	}

	return orders, nil
}

// ValidateFilterFields validates that all filter fields are in the allowed set
func ValidateFilterFields(filters []QueryFilter, allowedFields []string) error {
	for _, filter := range filters {
		if !contains(allowedFields, filter.Field) {
			return &FilterError{Param: "query", Field: filter.Field,
				Message: "not filterable (valid fields: " + strings.Join(allowedFields, ", ") + ")"}
		}
	}
	return nil
}

// ValidateOrderFields validates that all order fields are in the allowed set
func ValidateOrderFields(orders []OrderClause, allowedFields []string) error {
	for _, order := range orders {
		if !contains(allowedFields, order.Field) {
			return &FilterError{Param: "order", Field: order.Field,
				Message: "not sortable (valid fields: " + strings.Join(allowedFields, ", ") + ")"}
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
