package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruitflow/pkg/message"
)

// MessageRepository реализует message.Repository поверх PostgreSQL.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

const messageColumns = `id, candidate_id, direction, content, ts, status, intent, generated_by,
	asked_fields, classification, suggested_reply, extracted_fields, requires_hr_review,
	ai_suggested_reply, hr_approved, hr_approved_at, hr_approved_by, created_at`

func (r *MessageRepository) Create(ctx context.Context, m message.Message) error {
	extracted, err := json.Marshal(m.ExtractedFields)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO messages (`+messageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, m.ID, m.CandidateID, m.Direction, m.Content, m.Timestamp, m.Status, m.Intent, m.GeneratedBy,
		m.AskedFields, m.Classification, m.SuggestedReply, extracted, m.RequiresHRReview,
		m.AISuggestedReply, m.HRApproved, m.HRApprovedAt, m.HRApprovedBy, m.CreatedAt)
	return err
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+messageColumns+` FROM messages WHERE id = $1
	`, id)
	return scanMessage(row)
}

// ListByCandidate отдаёт сообщения в порядке переписки. limit <= 0
// означает «все».
func (r *MessageRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]message.Message, error) {
	query := `
		SELECT ` + messageColumns + ` FROM messages
		WHERE candidate_id = $1
		ORDER BY ts, created_at
	`
	args := []any{candidateID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func (r *MessageRepository) Update(ctx context.Context, m message.Message) error {
	extracted, err := json.Marshal(m.ExtractedFields)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE messages SET
			status = $2, classification = $3, suggested_reply = $4, extracted_fields = $5,
			requires_hr_review = $6, ai_suggested_reply = $7,
			hr_approved = $8, hr_approved_at = $9, hr_approved_by = $10
		WHERE id = $1
	`, m.ID, m.Status, m.Classification, m.SuggestedReply, extracted,
		m.RequiresHRReview, m.AISuggestedReply,
		m.HRApproved, m.HRApprovedAt, m.HRApprovedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return message.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) CountByDirection(ctx context.Context, orgID uuid.UUID, dir message.Direction) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM messages m
		JOIN candidates c ON c.id = m.candidate_id
		WHERE c.organization_id = $1 AND m.direction = $2
	`, orgID, dir).Scan(&n)
	return n, err
}

func (r *MessageRepository) ListPendingReview(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]message.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixColumns("m.", messageColumns)+` FROM messages m
		JOIN candidates c ON c.id = m.candidate_id
		WHERE c.organization_id = $1
			AND m.direction = 'incoming'
			AND m.requires_hr_review AND NOT m.hr_approved
		ORDER BY m.ts
		LIMIT $2 OFFSET $3
	`, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func collectMessages(rows pgx.Rows) ([]message.Message, error) {
	var out []message.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMessage(row pgx.Row) (message.Message, error) {
	var m message.Message
	var ts, createdAt time.Time
	var extracted []byte
	err := row.Scan(&m.ID, &m.CandidateID, &m.Direction, &m.Content, &ts, &m.Status, &m.Intent, &m.GeneratedBy,
		&m.AskedFields, &m.Classification, &m.SuggestedReply, &extracted, &m.RequiresHRReview,
		&m.AISuggestedReply, &m.HRApproved, &m.HRApprovedAt, &m.HRApprovedBy, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return message.Message{}, message.ErrNotFound
		}
		return message.Message{}, err
	}
	m.Timestamp = ts.UTC()
	m.CreatedAt = createdAt.UTC()
	if len(extracted) > 0 {
		if err := json.Unmarshal(extracted, &m.ExtractedFields); err != nil {
			return message.Message{}, err
		}
	}
	return m, nil
}
