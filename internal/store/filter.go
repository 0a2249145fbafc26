package store

import (
	"reflect"
	"strings"

	sq "github.com/Masterminds/squirrel"

	srvErrors "github.com/kubev2v/resort-catalog/pkg/errors"
)

type Operator string

const (
	OpEq    Operator = "="
	OpNotEq Operator = "!="
	OpLt    Operator = "<"
	OpLtEq  Operator = "<="
	OpGt    Operator = ">"
	OpGtEq  Operator = ">="
	OpLike  Operator = "LIKE"
	OpIn    Operator = "IN"
)

// Condition is a single column comparison. Value is always bound as a
// query argument.
type Condition struct {
	Column string
	Op     Operator
	Value  any
}

func Eq(column string, value any) Condition {
	return Condition{Column: column, Op: OpEq, Value: value}
}

// ParseOperator maps the textual forms accepted from callers to an Operator.
func ParseOperator(s string) (Operator, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "=", "==":
		return OpEq, true
	case "!=", "<>":
		return OpNotEq, true
	case "<":
		return OpLt, true
	case "<=":
		return OpLtEq, true
	case ">":
		return OpGt, true
	case ">=":
		return OpGtEq, true
	case "LIKE":
		return OpLike, true
	case "IN":
		return OpIn, true
	default:
		return "", false
	}
}

// columnSet maps a filterable column name to the expression used in SQL.
type columnSet map[string]string

// where translates conditions into a single AND predicate. Column names are
// checked against columns and operators against the supported set.
func (columns columnSet) where(conds []Condition) (sq.And, error) {
	pred := make(sq.And, 0, len(conds))
	for _, c := range conds {
		col, ok := columns[c.Column]
		if !ok {
			return nil, srvErrors.NewInvalidColumnError(c.Column)
		}
		p, err := predicate(col, c)
		if err != nil {
			return nil, err
		}
		pred = append(pred, p)
	}
	return pred, nil
}

func predicate(col string, c Condition) (sq.Sqlizer, error) {
	op, ok := ParseOperator(string(c.Op))
	if !ok {
		return nil, srvErrors.NewInvalidOperatorError(c.Column, string(c.Op))
	}

	if op != OpIn && isList(c.Value) {
		return nil, srvErrors.NewInvalidOperatorError(c.Column, string(c.Op))
	}

	switch op {
	case OpEq:
		return sq.Eq{col: c.Value}, nil
	case OpNotEq:
		return sq.NotEq{col: c.Value}, nil
	case OpLt:
		return sq.Lt{col: c.Value}, nil
	case OpLtEq:
		return sq.LtOrEq{col: c.Value}, nil
	case OpGt:
		return sq.Gt{col: c.Value}, nil
	case OpGtEq:
		return sq.GtOrEq{col: c.Value}, nil
	case OpLike:
		return sq.Like{col: c.Value}, nil
	case OpIn:
		if !isList(c.Value) {
			return nil, srvErrors.NewInvalidValueError(c.Column, string(c.Op))
		}
		return sq.Eq{col: c.Value}, nil
	}

	return nil, srvErrors.NewInvalidOperatorError(c.Column, string(c.Op))
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}
