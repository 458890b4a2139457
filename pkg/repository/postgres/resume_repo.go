package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruitflow/pkg/resume"
)

// ResumeRepository реализует resume.Repository поверх PostgreSQL.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

const resumeColumns = `id, candidate_id, file_name, file_type, file_size, storage_path,
	raw_text, parse_job_id, is_parsed, uploaded_at, parsed_at, reprocessed_at`

func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO resumes (`+resumeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, rs.ID, rs.CandidateID, rs.FileName, rs.FileType, rs.FileSize, rs.StoragePath,
		rs.RawText, rs.ParseJobID, rs.IsParsed, rs.UploadedAt, rs.ParsedAt, rs.ReprocessedAt)
	return err
}

func (r *ResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+resumeColumns+` FROM resumes WHERE id = $1
	`, id)
	return scanResume(row)
}

func (r *ResumeRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]resume.Resume, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+resumeColumns+` FROM resumes
		WHERE candidate_id = $1
		ORDER BY uploaded_at DESC
	`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []resume.Resume
	for rows.Next() {
		rs, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

func (r *ResumeRepository) Update(ctx context.Context, rs resume.Resume) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE resumes SET
			raw_text = $2, parse_job_id = $3, is_parsed = $4, parsed_at = $5, reprocessed_at = $6
		WHERE id = $1
	`, rs.ID, rs.RawText, rs.ParseJobID, rs.IsParsed, rs.ParsedAt, rs.ReprocessedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}
	return nil
}

func (r *ResumeRepository) CountParsed(ctx context.Context, orgID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM resumes r
		JOIN candidates c ON c.id = r.candidate_id
		WHERE c.organization_id = $1 AND r.is_parsed
	`, orgID).Scan(&n)
	return n, err
}

func scanResume(row pgx.Row) (resume.Resume, error) {
	var rs resume.Resume
	var uploadedAt time.Time
	err := row.Scan(&rs.ID, &rs.CandidateID, &rs.FileName, &rs.FileType, &rs.FileSize, &rs.StoragePath,
		&rs.RawText, &rs.ParseJobID, &rs.IsParsed, &uploadedAt, &rs.ParsedAt, &rs.ReprocessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, resume.ErrNotFound
		}
		return resume.Resume{}, err
	}
	rs.UploadedAt = uploadedAt.UTC()
	return rs, nil
}
