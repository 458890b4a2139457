package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/job"
)

// JobRepo реализует job.Repository в памяти.
type JobRepo struct {
	s *Store
}

func (r *JobRepo) Create(_ context.Context, j job.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.jobs[j.ID] = j
	r.s.jobOrder = append(r.s.jobOrder, j.ID)
	return nil
}

func (r *JobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

// ClaimNext забирает самую старую queued-задачу под общей блокировкой.
func (r *JobRepo) ClaimNext(_ context.Context) (job.Job, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.jobOrder {
		j := r.s.jobs[id]
		if j.Status != job.StatusQueued {
			continue
		}
		now := time.Now().UTC()
		j.Status = job.StatusProcessing
		j.StartedAt = &now
		r.s.jobs[id] = j
		return j, true, nil
	}
	return job.Job{}, false, nil
}

func (r *JobRepo) Update(_ context.Context, j job.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[j.ID]; !ok {
		return job.ErrNotFound
	}
	r.s.jobs[j.ID] = j
	return nil
}

func (r *JobRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]job.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []job.Job
	for _, j := range r.s.jobs {
		if j.CandidateID != nil && *j.CandidateID == candidateID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *JobRepo) CountByStatus(_ context.Context, orgID uuid.UUID) (map[job.Status]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[job.Status]int)
	for _, j := range r.s.jobs {
		if j.OrganizationID == orgID {
			out[j.Status]++
		}
	}
	return out, nil
}
