package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/candidate"
)

// CandidateRepo реализует candidate.Repository в памяти.
// orgID == uuid.Nil отключает фильтр организации.
type CandidateRepo struct {
	s *Store
}

func (r *CandidateRepo) Create(_ context.Context, c candidate.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.candidates[c.ID] = c
	return nil
}

func (r *CandidateRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (candidate.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.candidates[id]
	if !ok || c.DeletedAt != nil {
		return candidate.Candidate{}, candidate.ErrNotFound
	}
	if orgID != uuid.Nil && c.OrganizationID != orgID {
		return candidate.Candidate{}, candidate.ErrNotFound
	}
	return c, nil
}

func (r *CandidateRepo) GetByEmail(_ context.Context, orgID uuid.UUID, email string) (candidate.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.candidates {
		if c.DeletedAt == nil && c.OrganizationID == orgID && strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return candidate.Candidate{}, candidate.ErrNotFound
}

func (r *CandidateRepo) List(_ context.Context, orgID uuid.UUID, f candidate.Filters, limit, offset int) ([]candidate.Candidate, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var all []candidate.Candidate
	for _, c := range r.s.candidates {
		if c.DeletedAt != nil {
			continue
		}
		if orgID != uuid.Nil && c.OrganizationID != orgID {
			continue
		}
		if matches(c, f) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return []candidate.Candidate{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (r *CandidateRepo) Update(_ context.Context, c candidate.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.candidates[c.ID]
	if !ok || old.DeletedAt != nil {
		return candidate.ErrNotFound
	}
	r.s.candidates[c.ID] = c
	return nil
}

func (r *CandidateRepo) SoftDelete(_ context.Context, orgID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok || c.DeletedAt != nil || c.OrganizationID != orgID {
		return candidate.ErrNotFound
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	c.IsActive = false
	r.s.candidates[id] = c
	return nil
}

func (r *CandidateRepo) UpsertParsedFields(_ context.Context, candidateID uuid.UUID, fields []candidate.ParsedField) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[candidateID]
	if !ok {
		return candidate.ErrNotFound
	}
	c.ParsedFields = fields
	r.s.candidates[candidateID] = c
	return nil
}

func (r *CandidateRepo) CountByStatus(_ context.Context, orgID uuid.UUID) (map[candidate.Status]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[candidate.Status]int)
	for _, c := range r.s.candidates {
		if c.DeletedAt != nil || c.OrganizationID != orgID {
			continue
		}
		out[c.Status]++
	}
	return out, nil
}

func matches(c candidate.Candidate, f candidate.Filters) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
			return false
		}
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if c.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, want := range f.Skills {
		found := false
		for _, have := range c.Skills {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinExperience != nil && (c.YearsExperience == nil || *c.YearsExperience < *f.MinExperience) {
		return false
	}
	if f.MaxExperience != nil && (c.YearsExperience == nil || *c.YearsExperience > *f.MaxExperience) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(c.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}
