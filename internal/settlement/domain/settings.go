package settlement

import (
	"context"
	"time"
)

// Settings holds the mutable constants owned outside the core.
type Settings struct {
	DeliveryCostWithVat float64   `json:"deliveryCostWithVat"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Validate checks settings bounds.
func (s Settings) Validate() error {
	if s.DeliveryCostWithVat < 0 {
		return ErrNegativeSetting
	}
	return nil
}

// SettingsRepository stores the single settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) error
}
