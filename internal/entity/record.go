package entity

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Record is one row as the remote API returns it. The dashboard never
// enforces a schema; each renderer or form reads only the fields it needs.
type Record map[string]any

// Str returns the field as a string, or "" when absent.
func (r Record) Str(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int returns the field as an int. JSON numbers decode as float64, but some
// endpoints return numeric IDs as strings, so both are accepted.
func (r Record) Int(field string) int {
	switch v := r[field].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Bool treats absent fields and JSON null as false.
func (r Record) Bool(field string) bool {
	v, _ := r[field].(bool)
	return v
}

// Decimal returns the field as a decimal, accepting both JSON numbers and
// numeric strings. Absent or malformed values come back as zero.
func (r Record) Decimal(field string) decimal.Decimal {
	switch v := r[field].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
