package memory

import (
	"context"
	"sync"

	settlement "adsettle/internal/settlement/domain"
)

// SettingsRepository is an in-memory settings store.
type SettingsRepository struct {
	mu       sync.RWMutex
	settings settlement.Settings
}

// NewSettingsRepository constructs a store seeded with defaults.
func NewSettingsRepository(defaults settlement.Settings) *SettingsRepository {
	return &SettingsRepository{settings: defaults}
}

// Get returns the current settings.
func (r *SettingsRepository) Get(ctx context.Context) (settlement.Settings, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

// Update overwrites the settings.
func (r *SettingsRepository) Update(ctx context.Context, settings settlement.Settings) error {
	_ = ctx
	if err := settings.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.settings = settings
	r.mu.Unlock()
	return nil
}
