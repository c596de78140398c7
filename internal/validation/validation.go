package validation

import (
	"strconv"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

// PositiveInt parses value as a strictly positive integer. The parsed number
// is returned so callers do not parse twice.
func PositiveInt(field, value string, v Violations) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		v[field] = "must_be_positive_integer"
		return 0
	}
	return n
}

func MaxInt(field string, val, maxVal int, v Violations) {
	if val > maxVal {
		v[field] = "exceeds_maximum"
	}
}
