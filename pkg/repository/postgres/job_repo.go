package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruitflow/pkg/job"
)

// JobRepository реализует job.Repository поверх PostgreSQL.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

const jobColumns = `id, organization_id, type, status, progress, candidate_id, resume_id,
	message_id, error, created_at, started_at, completed_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, j.ID, j.OrganizationID, j.Type, j.Status, j.Progress, j.CandidateID, j.ResumeID,
		j.MessageID, j.Error, j.CreatedAt, j.StartedAt, j.CompletedAt)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+jobColumns+` FROM jobs WHERE id = $1
	`, id)
	return scanJob(row)
}

// ClaimNext атомарно забирает самую старую queued-задачу: SKIP LOCKED
// не даёт двум воркерам схватить одну строку.
func (r *JobRepository) ClaimNext(ctx context.Context) (job.Job, bool, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE jobs SET status = 'processing', started_at = $1
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = 'queued'
			ORDER BY created_at
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING `+jobColumns+`
	`, time.Now().UTC())
	j, err := scanJob(row)
	if errors.Is(err, job.ErrNotFound) {
		return job.Job{}, false, nil
	}
	if err != nil {
		return job.Job{}, false, err
	}
	return j, true, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE jobs SET status = $2, progress = $3, error = $4, started_at = $5, completed_at = $6
		WHERE id = $1
	`, j.ID, j.Status, j.Progress, j.Error, j.StartedAt, j.CompletedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+` FROM jobs
		WHERE candidate_id = $1
		ORDER BY created_at DESC
	`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[job.Status]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, count(*) FROM jobs
		WHERE organization_id = $1
		GROUP BY status
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[job.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[job.Status(status)] = n
	}
	return out, rows.Err()
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var createdAt time.Time
	err := row.Scan(&j.ID, &j.OrganizationID, &j.Type, &j.Status, &j.Progress, &j.CandidateID, &j.ResumeID,
		&j.MessageID, &j.Error, &createdAt, &j.StartedAt, &j.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.CreatedAt = createdAt.UTC()
	return j, nil
}
