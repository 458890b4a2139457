package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/resume"
)

// ResumeRepo реализует resume.Repository в памяти.
type ResumeRepo struct {
	s *Store
}

func (r *ResumeRepo) Create(_ context.Context, rs resume.Resume) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.resumes[rs.ID] = rs
	return nil
}

func (r *ResumeRepo) GetByID(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rs, ok := r.s.resumes[id]
	if !ok {
		return resume.Resume{}, resume.ErrNotFound
	}
	return rs, nil
}

func (r *ResumeRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]resume.Resume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []resume.Resume
	for _, rs := range r.s.resumes {
		if rs.CandidateID == candidateID {
			out = append(out, rs)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *ResumeRepo) Update(_ context.Context, rs resume.Resume) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.resumes[rs.ID]; !ok {
		return resume.ErrNotFound
	}
	r.s.resumes[rs.ID] = rs
	return nil
}

func (r *ResumeRepo) CountParsed(_ context.Context, orgID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, rs := range r.s.resumes {
		if !rs.IsParsed {
			continue
		}
		if c, ok := r.s.candidates[rs.CandidateID]; ok && c.OrganizationID == orgID {
			n++
		}
	}
	return n, nil
}
