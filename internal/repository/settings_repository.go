package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"griya-properti/internal/domain"
)

const watermarkSettingsType = "watermark"

type SettingsRepository interface {
	GetWatermark(ctx context.Context) (*domain.WatermarkSettings, error)
	UpsertWatermark(ctx context.Context, settings *domain.WatermarkSettings) error
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetWatermark(ctx context.Context) (*domain.WatermarkSettings, error) {
	var row struct {
		Data      []byte       `db:"data"`
		UpdatedAt sql.NullTime `db:"updated_at"`
	}
	query := `SELECT data, updated_at FROM settings WHERE type = $1`

	err := r.db.GetContext(ctx, &row, query, watermarkSettingsType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var settings domain.WatermarkSettings
	if err := json.Unmarshal(row.Data, &settings); err != nil {
		return nil, err
	}
	if row.UpdatedAt.Valid {
		settings.UpdatedAt = row.UpdatedAt.Time
	}
	return &settings, nil
}

func (r *settingsRepository) UpsertWatermark(ctx context.Context, settings *domain.WatermarkSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO settings (type, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (type) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query, watermarkSettingsType, data).Scan(&settings.UpdatedAt)
}
