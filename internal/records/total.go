package records

import (
	"fmt"
	"regexp"
	"strconv"
)

var reNonAmount = regexp.MustCompile(`[^0-9.\-]`)

// CoerceAmount renders a value as text, strips everything that is not a
// digit, a decimal point or a minus sign, and parses the remainder as a
// float. Returns false when nothing parseable is left ("£1,250.00" -> 1250,
// "abc" -> skip, "" -> skip).
func CoerceAmount(v any) (float64, bool) {
	if f, ok := v.(float64); ok {
		return f, true
	}
	s := reNonAmount.ReplaceAllString(AsString(v), "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SumGrossPays computes the manually verified gross-pay total over a record
// list: every value reachable under a "Gross Pay"-like key (any depth) is
// coerced to a number; values that fail coercion are skipped, not errors.
func SumGrossPays(recs []any) float64 {
	var total float64
	for _, v := range SearchKey("Gross Pay", recs) {
		if f, ok := CoerceAmount(v); ok {
			total += f
		}
	}
	return total
}

// AsString renders a decoded JSON value as text; nil becomes "". Numbers are
// formatted in plain decimal form, never scientific notation, so stripping
// currency characters downstream cannot mangle them.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
