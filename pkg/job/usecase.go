package job

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UseCase — сценарии жизненного цикла фоновых задач.
// Чтение всегда скоупится организацией: чужая задача неотличима от
// несуществующей.
type UseCase interface {
	Enqueue(ctx context.Context, orgID uuid.UUID, t Type, candidateID, resumeID, messageID *uuid.UUID) (Job, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (Job, error)
	ListByCandidate(ctx context.Context, orgID, candidateID uuid.UUID) ([]Job, error)
	MarkProgress(ctx context.Context, j Job, progress int) (Job, error)
	Complete(ctx context.Context, j Job) error
	Fail(ctx context.Context, j Job, cause error) error
	Stats(ctx context.Context, orgID uuid.UUID) (map[Status]int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) Enqueue(ctx context.Context, orgID uuid.UUID, t Type, candidateID, resumeID, messageID *uuid.UUID) (Job, error) {
	j := Job{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Type:           t,
		Status:         StatusQueued,
		CandidateID:    candidateID,
		ResumeID:       resumeID,
		MessageID:      messageID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) Get(ctx context.Context, orgID, id uuid.UUID) (Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if j.OrganizationID != orgID {
		return Job{}, ErrNotFound
	}
	return j, nil
}

func (s *service) ListByCandidate(ctx context.Context, orgID, candidateID uuid.UUID) ([]Job, error) {
	all, err := s.repo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	out := make([]Job, 0, len(all))
	for _, j := range all {
		if j.OrganizationID == orgID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *service) MarkProgress(ctx context.Context, j Job, progress int) (Job, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	j.Progress = progress
	if err := s.repo.Update(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) Complete(ctx context.Context, j Job) error {
	now := time.Now().UTC()
	j.Status = StatusCompleted
	j.Progress = 100
	j.CompletedAt = &now
	return s.repo.Update(ctx, j)
}

func (s *service) Fail(ctx context.Context, j Job, cause error) error {
	now := time.Now().UTC()
	j.Status = StatusFailed
	j.CompletedAt = &now
	if cause != nil {
		j.Error = cause.Error()
	}
	return s.repo.Update(ctx, j)
}

func (s *service) Stats(ctx context.Context, orgID uuid.UUID) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx, orgID)
}
