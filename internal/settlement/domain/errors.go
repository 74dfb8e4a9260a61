package settlement

import "errors"

var (
	// ErrNilRecord is returned when saving a nil record.
	ErrNilRecord = errors.New("settlement: nil record")
	// ErrEmptyID is returned when a record id is missing.
	ErrEmptyID = errors.New("settlement: empty record id")
	// ErrEmptyLabel is returned when the settlement label is missing.
	ErrEmptyLabel = errors.New("settlement: empty label")
	// ErrInvalidMonth is returned when the month bucket is not YYYY-MM.
	ErrInvalidMonth = errors.New("settlement: invalid month")
	// ErrRecordNotFound is returned when a settlement is not found.
	ErrRecordNotFound = errors.New("settlement: record not found")
	// ErrNegativeSetting is returned when a settings value is negative.
	ErrNegativeSetting = errors.New("settlement: negative settings value")
)
