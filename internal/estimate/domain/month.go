package estimate

import "time"

// MonthKey is the persisted representation of a reporting month ("2006-01").
type MonthKey string

// MonthKeyUnspecified buckets documents whose issue date could not be read.
const MonthKeyUnspecified MonthKey = "unspecified"

const monthKeyLayout = "2006-01"

// NewMonthKey builds a MonthKey for the month containing t.
// A zero time yields the unspecified sentinel.
func NewMonthKey(t time.Time) MonthKey {
	if t.IsZero() {
		return MonthKeyUnspecified
	}
	return MonthKey(t.UTC().Format(monthKeyLayout))
}

// ParseMonthKey validates a raw month string.
func ParseMonthKey(raw string) (MonthKey, error) {
	if raw == string(MonthKeyUnspecified) {
		return MonthKeyUnspecified, nil
	}
	t, err := time.Parse(monthKeyLayout, raw)
	if err != nil {
		return "", err
	}
	return NewMonthKey(t), nil
}

// String returns the raw string for storage.
func (k MonthKey) String() string { return string(k) }

// Before reports whether k sorts before other, with the unspecified sentinel
// ordered after every real month.
func (k MonthKey) Before(other MonthKey) bool {
	if k == MonthKeyUnspecified {
		return false
	}
	if other == MonthKeyUnspecified {
		return true
	}
	return string(k) < string(other)
}
