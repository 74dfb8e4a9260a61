package pricing

import (
	"context"
	"errors"

	settlement "adsettle/internal/settlement/domain"
)

// FixedDeliveryCostProvider returns a fixed per-unit delivery cost with VAT.
type FixedDeliveryCostProvider struct {
	cost float64
}

// NewFixedDeliveryCostProvider constructs the provider.
func NewFixedDeliveryCostProvider(cost float64) (*FixedDeliveryCostProvider, error) {
	if cost < 0 {
		return nil, errors.New("delivery cost provider: negative cost")
	}
	return &FixedDeliveryCostProvider{cost: cost}, nil
}

// DeliveryCostWithVat returns the configured cost.
func (p *FixedDeliveryCostProvider) DeliveryCostWithVat(ctx context.Context) (float64, error) {
	_ = ctx
	return p.cost, nil
}

// SettingsDeliveryCostProvider resolves the cost from the settings store on
// every call, so settings changes apply to all subsequent calculations.
type SettingsDeliveryCostProvider struct {
	settings settlement.SettingsRepository
}

// NewSettingsDeliveryCostProvider constructs the provider.
func NewSettingsDeliveryCostProvider(settings settlement.SettingsRepository) (*SettingsDeliveryCostProvider, error) {
	if settings == nil {
		return nil, errors.New("delivery cost provider: nil settings repository")
	}
	return &SettingsDeliveryCostProvider{settings: settings}, nil
}

// DeliveryCostWithVat reads the current settings value.
func (p *SettingsDeliveryCostProvider) DeliveryCostWithVat(ctx context.Context) (float64, error) {
	current, err := p.settings.Get(ctx)
	if err != nil {
		return 0, err
	}
	return current.DeliveryCostWithVat, nil
}
