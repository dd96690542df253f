package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// toDecimal attempts to coerce v into a decimal.Decimal. It never errors:
// a value that cannot be coerced yields (zero, false), and callers treat
// that as "comparison cannot succeed", never as an error.
func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case *decimal.Decimal:
		if t == nil {
			return decimal.Zero, false
		}
		return *t, true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case float64:
		return decimal.NewFromFloat(t), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// toStringValue renders any supported profile/threshold value as its
// trimmed, lower-cased string form, used by the string-compare fallback
// path of eq/neq/in/not_in.
func toStringValue(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(t)), true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	case decimal.Decimal:
		return strings.ToLower(t.String()), true
	case nil:
		return "", false
	default:
		return strings.ToLower(fmt.Sprintf("%v", t)), true
	}
}

// toBool coerces native bools and the exact truthy/falsy string token set
// {true,1,yes} / {false,0,no}.
func toBool(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
	}
	return false, false
}

// toList parses v as a JSON-ish array literal ("[a, b]") or a plain
// comma-separated list, falling back to a single-element list. Every
// element is trimmed and lower-cased for membership comparison.
func toList(v interface{}) []string {
	s, ok := v.(string)
	if !ok {
		single, ok := toStringValue(v)
		if !ok {
			return nil
		}
		return []string{single}
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p == "" {
			continue
		}
		out = append(out, strings.ToLower(p))
	}
	return out
}

func opGT(profileValue, threshold interface{}) bool {
	a, ok1 := toDecimal(profileValue)
	b, ok2 := toDecimal(threshold)
	if !ok1 || !ok2 {
		return false
	}
	return a.GreaterThan(b)
}

func opGTE(profileValue, threshold interface{}) bool {
	a, ok1 := toDecimal(profileValue)
	b, ok2 := toDecimal(threshold)
	if !ok1 || !ok2 {
		return false
	}
	return a.GreaterThanOrEqual(b)
}

func opLT(profileValue, threshold interface{}) bool {
	a, ok1 := toDecimal(profileValue)
	b, ok2 := toDecimal(threshold)
	if !ok1 || !ok2 {
		return false
	}
	return a.LessThan(b)
}

func opLTE(profileValue, threshold interface{}) bool {
	a, ok1 := toDecimal(profileValue)
	b, ok2 := toDecimal(threshold)
	if !ok1 || !ok2 {
		return false
	}
	return a.LessThanOrEqual(b)
}

func opEQ(profileValue, threshold interface{}) bool {
	if a, ok1 := toDecimal(profileValue); ok1 {
		if b, ok2 := toDecimal(threshold); ok2 {
			return a.Equal(b)
		}
	}
	as, ok1 := toStringValue(profileValue)
	bs, ok2 := toStringValue(threshold)
	if !ok1 || !ok2 {
		return false
	}
	return as == bs
}

func opNEQ(profileValue, threshold interface{}) bool {
	return !opEQ(profileValue, threshold)
}

func opIn(profileValue, threshold interface{}) bool {
	v, ok := toStringValue(profileValue)
	if !ok {
		return false
	}
	for _, item := range toList(threshold) {
		if item == v {
			return true
		}
	}
	return false
}

func opNotIn(profileValue, threshold interface{}) bool {
	return !opIn(profileValue, threshold)
}

func opBetween(profileValue, low, high interface{}) bool {
	a, ok1 := toDecimal(profileValue)
	l, ok2 := toDecimal(low)
	h, ok3 := toDecimal(high)
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	return (a.GreaterThanOrEqual(l)) && (a.LessThanOrEqual(h))
}

func opIsTrue(profileValue interface{}) bool {
	b, ok := toBool(profileValue)
	return ok && b
}

func opIsFalse(profileValue interface{}) bool {
	b, ok := toBool(profileValue)
	return ok && !b
}

// applyOperator dispatches a single condition evaluation. An unknown
// operator means the rule corpus itself is malformed — a configuration
// defect too severe to recover from at evaluation time, so it panics
// rather than returning a typed error.
func applyOperator(operator string, profileValue, threshold, secondary interface{}) bool {
	switch operator {
	case "gt":
		return opGT(profileValue, threshold)
	case "gte":
		return opGTE(profileValue, threshold)
	case "lt":
		return opLT(profileValue, threshold)
	case "lte":
		return opLTE(profileValue, threshold)
	case "eq":
		return opEQ(profileValue, threshold)
	case "neq":
		return opNEQ(profileValue, threshold)
	case "in":
		return opIn(profileValue, threshold)
	case "not_in":
		return opNotIn(profileValue, threshold)
	case "between":
		return opBetween(profileValue, threshold, secondary)
	case "is_true":
		return opIsTrue(profileValue)
	case "is_false":
		return opIsFalse(profileValue)
	default:
		panic(fmt.Sprintf("engine: unknown operator %q", operator))
	}
}
