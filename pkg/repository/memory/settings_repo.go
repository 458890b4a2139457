package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/settings"
)

// SettingsRepo реализует settings.Repository в памяти.
type SettingsRepo struct {
	s *Store
}

func (r *SettingsRepo) Get(_ context.Context, orgID uuid.UUID) (settings.Settings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s, ok := r.s.settings[orgID]
	if !ok {
		return settings.Settings{}, settings.ErrNotFound
	}
	return s, nil
}

func (r *SettingsRepo) Put(_ context.Context, s settings.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[s.OrganizationID] = s
	return nil
}
