package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbooks/gstbooks/internal/domain"
)

// SettingsRepository implements usecase.SettingsRepository. Valuation
// settings live in a single JSONB row keyed by a constant id, upserted
// whole on every save.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// GetValuationSettings reads the stored settings. A nil result means
// nothing has been saved yet.
func (r *SettingsRepository) GetValuationSettings(ctx context.Context) (*domain.ValuationSettings, error) {
	var raw []byte

	err := r.pool.QueryRow(ctx, `
		SELECT settings
		FROM valuation_settings
		WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	var settings domain.ValuationSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// SaveValuationSettings upserts the settings row.
func (r *SettingsRepository) SaveValuationSettings(ctx context.Context, settings *domain.ValuationSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO valuation_settings (id, settings, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET settings = EXCLUDED.settings, updated_at = EXCLUDED.updated_at`,
		raw, timeToPgTimestamptz(time.Now().UTC()))

	return err
}
