// Package core implements the reconciliation pipeline: month and department
// normalization, permissive row coercion, the merge of the expenditure feed
// with the revenue table, and the read-only query surface over the result.
package core

import (
	"log/slog"
	"strconv"
	"strings"
)

// Field names used by the expenditure feed. The feed is a JSON array of
// objects keyed by the source spreadsheet's column headers.
const (
	FieldMonth      = "Month"
	FieldDepartment = "Department"
	FieldTotal      = "Total"
	FieldBonus      = "Bonificacao 20"
	FieldEmployees  = "Employee Count"
	FieldGrandTotal = "Total Geral"
)

// RawRow is one undecoded feed row. Values may be JSON numbers, numeric
// strings, currency-formatted strings, null, or absent entirely.
type RawRow map[string]any

// Record is the validated expenditure for one month and department.
// TotalWithBonus carries the source's pre-summed "Total Geral" value when
// that field parses, otherwise TotalBeforeBonus + Bonus.
type Record struct {
	TotalBeforeBonus float64
	Bonus            float64
	EmployeeCount    int
	TotalWithBonus   float64
}

// CoerceExpenditureRow validates a single raw feed row. Numeric defects
// degrade to zero and are logged for diagnostics, never raised: one bad cell
// must not take down the rest of the feed. ok is false only for the
// grand-total sentinel row, which would double-count into the breakdown.
func CoerceExpenditureRow(row RawRow) (MonthKey, DepartmentKey, Record, bool) {
	month := coerceMonth(row[FieldMonth])
	dept := ResolveDepartment(coerceString(row[FieldDepartment]))
	if IsGrandTotal(dept) {
		return month, dept, Record{}, false
	}
	total := coerceNumber(row, FieldTotal)
	bonus := coerceNumber(row, FieldBonus)
	rec := Record{
		TotalBeforeBonus: total,
		Bonus:            bonus,
		EmployeeCount:    int(coerceNumber(row, FieldEmployees)),
		TotalWithBonus:   total + bonus,
	}
	if geral, ok := parseNumber(row[FieldGrandTotal]); ok {
		rec.TotalWithBonus = geral
	}
	return month, dept, rec, true
}

// coerceMonth canonicalizes a feed month. The feed already emits "YYYY-MM";
// anything else is kept as its own trimmed key rather than dropping the row.
func coerceMonth(v any) MonthKey {
	s := strings.TrimSpace(coerceString(v))
	if m, err := CanonicalMonth(s); err == nil {
		return m
	}
	return MonthKey(s)
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

func coerceNumber(row RawRow, field string) float64 {
	v := row[field]
	n, ok := parseNumber(v)
	if !ok && v != nil {
		slog.Debug("numeric field degraded to zero", "field", field, "value", v)
	}
	return n
}

// parseNumber accepts JSON numbers, plain numeric strings, and
// BRL-formatted currency strings ("R$ 623.628,74").
func parseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return parseBRL(s)
	default:
		return 0, false
	}
}

// parseBRL parses a pt-BR currency string: the symbol, quotes, and thousands
// dots are stripped and the decimal comma becomes a dot.
func parseBRL(s string) (float64, bool) {
	s = strings.NewReplacer(`"`, "", "R$", "", ".", "", " ", "", " ", "").Replace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
