package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruitflow/pkg/settings"
)

// SettingsRepository хранит настройки организации одним JSONB-документом.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) Get(ctx context.Context, orgID uuid.UUID) (settings.Settings, error) {
	var payload []byte
	var updatedAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT payload, updated_at FROM org_settings WHERE organization_id = $1
	`, orgID).Scan(&payload, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return settings.Settings{}, settings.ErrNotFound
	}
	if err != nil {
		return settings.Settings{}, err
	}

	var s settings.Settings
	if err := json.Unmarshal(payload, &s); err != nil {
		return settings.Settings{}, err
	}
	s.OrganizationID = orgID
	s.UpdatedAt = updatedAt.UTC()
	return s, nil
}

func (r *SettingsRepository) Put(ctx context.Context, s settings.Settings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO org_settings (organization_id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id) DO UPDATE
			SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`, s.OrganizationID, payload, s.UpdatedAt)
	return err
}
