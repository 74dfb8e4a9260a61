package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	settlement "adsettle/internal/settlement/domain"
)

const defaultSettingsTable = "settings"

// SettingsRepository stores the single settings row.
type SettingsRepository struct {
	db    *sql.DB
	table string
}

// SettingsOption configures the repository.
type SettingsOption func(*SettingsRepository)

// WithSettingsTable overrides the default table name.
func WithSettingsTable(table string) SettingsOption {
	return func(repo *SettingsRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// NewSettingsRepository constructs a repository with defaults.
func NewSettingsRepository(db *sql.DB, opts ...SettingsOption) *SettingsRepository {
	repo := &SettingsRepository{db: db, table: defaultSettingsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Get returns the current settings; a missing row yields zero values.
func (r *SettingsRepository) Get(ctx context.Context) (settlement.Settings, error) {
	if r == nil || r.db == nil {
		return settlement.Settings{}, errors.New("settings repo: nil db")
	}

	query := fmt.Sprintf("SELECT delivery_cost_with_vat, updated_at FROM %s WHERE id = 1", r.table)
	var settings settlement.Settings
	var updatedAt time.Time
	if err := r.db.QueryRowContext(ctx, query).Scan(&settings.DeliveryCostWithVat, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settlement.Settings{}, nil
		}
		return settlement.Settings{}, err
	}
	settings.UpdatedAt = updatedAt
	return settings, nil
}

// Update upserts the settings row.
func (r *SettingsRepository) Update(ctx context.Context, settings settlement.Settings) error {
	if r == nil || r.db == nil {
		return errors.New("settings repo: nil db")
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.UpdatedAt.IsZero() {
		settings.UpdatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, delivery_cost_with_vat, updated_at)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET delivery_cost_with_vat = EXCLUDED.delivery_cost_with_vat, updated_at = EXCLUDED.updated_at`, r.table)
	_, err := r.db.ExecContext(ctx, query, settings.DeliveryCostWithVat, settings.UpdatedAt.UTC())
	return err
}
