package usecase

import (
	"context"

	"github.com/gstbooks/gstbooks/internal/domain"
)

// SettingsUseCase reads and writes the durable valuation configuration.
// Settings live in a single database row, not process memory, so they
// survive restarts and are shared across instances.
type SettingsUseCase struct {
	settings SettingsRepository
}

// NewSettingsUseCase creates a new SettingsUseCase.
func NewSettingsUseCase(settings SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// ValuationSettings returns the stored settings, or the shipped defaults
// when nothing has been saved yet.
func (uc *SettingsUseCase) ValuationSettings(ctx context.Context) (*domain.ValuationSettings, error) {
	settings, err := uc.settings.GetValuationSettings(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		defaults := domain.DefaultValuationSettings()
		return &defaults, nil
	}

	return settings, nil
}

// SaveValuationSettings replaces the stored settings. The FIFO rounding
// precision is clamped to the 0..6 decimal places the stock reports
// support.
func (uc *SettingsUseCase) SaveValuationSettings(ctx context.Context, settings *domain.ValuationSettings) error {
	if settings.FifoRoundingPrecision < 0 {
		settings.FifoRoundingPrecision = 0
	}
	if settings.FifoRoundingPrecision > 6 {
		settings.FifoRoundingPrecision = 6
	}

	return uc.settings.SaveValuationSettings(ctx, settings)
}
