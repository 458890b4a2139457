package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/message"
)

// MessageRepo реализует message.Repository в памяти. Порядок переписки —
// по timestamp, при равенстве по порядку вставки.
type MessageRepo struct {
	s *Store
}

func (r *MessageRepo) Create(_ context.Context, m message.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messages[m.ID] = m
	r.s.msgOrder = append(r.s.msgOrder, m.ID)
	return nil
}

func (r *MessageRepo) GetByID(_ context.Context, id uuid.UUID) (message.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.messages[id]
	if !ok {
		return message.Message{}, message.ErrNotFound
	}
	return m, nil
}

func (r *MessageRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID, limit, offset int) ([]message.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []message.Message
	for _, id := range r.s.msgOrder {
		m := r.s.messages[id]
		if m.CandidateID == candidateID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })

	if offset > 0 {
		if offset >= len(out) {
			return []message.Message{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MessageRepo) Update(_ context.Context, m message.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.messages[m.ID]; !ok {
		return message.ErrNotFound
	}
	r.s.messages[m.ID] = m
	return nil
}

func (r *MessageRepo) CountByDirection(_ context.Context, orgID uuid.UUID, dir message.Direction) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, m := range r.s.messages {
		if m.Direction != dir {
			continue
		}
		if c, ok := r.s.candidates[m.CandidateID]; ok && c.OrganizationID == orgID {
			n++
		}
	}
	return n, nil
}

func (r *MessageRepo) ListPendingReview(_ context.Context, orgID uuid.UUID, limit, offset int) ([]message.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []message.Message
	for _, id := range r.s.msgOrder {
		m := r.s.messages[id]
		if m.Direction != message.DirectionIncoming || !m.RequiresHRReview || m.HRApproved {
			continue
		}
		if c, ok := r.s.candidates[m.CandidateID]; ok && c.OrganizationID == orgID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })

	if offset > 0 {
		if offset >= len(out) {
			return []message.Message{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
