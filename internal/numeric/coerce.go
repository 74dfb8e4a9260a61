// Package numeric implements the permissive number coercion used at the
// boundary of the estimate extractor and the settlement calculator: blank or
// unparseable input becomes zero instead of failing the computation.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Coerce converts a user-entered cell or form value into a float64.
// Thousands separators and currency markers are stripped first. Values that
// still do not parse are treated as zero.
func Coerce(raw string) float64 {
	cleaned := clean(raw)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	// ParseFloat accepts "NaN" and "Inf"; those would poison derived totals.
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

// CoerceInt converts a user-entered value into an int, truncating any
// fractional part. Blank or unparseable input becomes zero.
func CoerceInt(raw string) int {
	return int(Coerce(raw))
}

func clean(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "₩", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	return cleaned
}
