package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruitflow/pkg/candidate"
)

// CandidateRepository реализует candidate.Repository поверх PostgreSQL.
// orgID == uuid.Nil отключает фильтр организации (нужно воркеру).
type CandidateRepository struct {
	pool *pgxpool.Pool
}

func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

const candidateColumns = `id, organization_id, owner_id, name, email, phone, years_experience,
	skills, current_company, education, location, portfolio_url, notice_period, expected_salary,
	status, source, overall_confidence, parsed_fields, is_active, created_at, updated_at,
	last_message_at, deleted_at`

func (r *CandidateRepository) Create(ctx context.Context, c candidate.Candidate) error {
	fields, err := json.Marshal(c.ParsedFields)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO candidates (`+candidateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`, c.ID, c.OrganizationID, c.OwnerID, c.Name, strings.ToLower(c.Email), c.Phone, c.YearsExperience,
		c.Skills, c.CurrentCompany, c.Education, c.Location, c.PortfolioURL, c.NoticePeriod, c.ExpectedSalary,
		c.Status, c.Source, c.OverallConfidence, fields, c.IsActive, c.CreatedAt, c.UpdatedAt,
		c.LastMessageAt, c.DeletedAt)
	return err
}

func (r *CandidateRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1 AND deleted_at IS NULL`
	args := []any{id}
	if orgID != uuid.Nil {
		query += ` AND organization_id = $2`
		args = append(args, orgID)
	}
	return scanCandidate(r.pool.QueryRow(ctx, query, args...))
}

func (r *CandidateRepository) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (candidate.Candidate, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+candidateColumns+` FROM candidates
		WHERE organization_id = $1 AND email = $2 AND deleted_at IS NULL
	`, orgID, strings.ToLower(email))
	return scanCandidate(row)
}

func (r *CandidateRepository) List(ctx context.Context, orgID uuid.UUID, f candidate.Filters, limit, offset int) ([]candidate.Candidate, int, error) {
	if limit <= 0 {
		limit = 50
	}
	where, args := buildCandidateFilter(orgID, f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM candidates `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM candidates %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, candidateColumns, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []candidate.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *CandidateRepository) Update(ctx context.Context, c candidate.Candidate) error {
	fields, err := json.Marshal(c.ParsedFields)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE candidates SET
			name = $2, email = $3, phone = $4, years_experience = $5, skills = $6,
			current_company = $7, education = $8, location = $9, portfolio_url = $10,
			notice_period = $11, expected_salary = $12, status = $13, source = $14,
			overall_confidence = $15, parsed_fields = $16, is_active = $17,
			updated_at = $18, last_message_at = $19
		WHERE id = $1 AND deleted_at IS NULL
	`, c.ID, c.Name, strings.ToLower(c.Email), c.Phone, c.YearsExperience, c.Skills,
		c.CurrentCompany, c.Education, c.Location, c.PortfolioURL,
		c.NoticePeriod, c.ExpectedSalary, c.Status, c.Source,
		c.OverallConfidence, fields, c.IsActive, c.UpdatedAt, c.LastMessageAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (r *CandidateRepository) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE candidates SET deleted_at = $3, is_active = FALSE
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
	`, id, orgID, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (r *CandidateRepository) UpsertParsedFields(ctx context.Context, candidateID uuid.UUID, fields []candidate.ParsedField) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE candidates SET parsed_fields = $2 WHERE id = $1
	`, candidateID, data)
	return err
}

func (r *CandidateRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[candidate.Status]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, count(*) FROM candidates
		WHERE organization_id = $1 AND deleted_at IS NULL
		GROUP BY status
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[candidate.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[candidate.ParseStatus(status)] += n
	}
	return out, rows.Err()
}

func buildCandidateFilter(orgID uuid.UUID, f candidate.Filters) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if orgID != uuid.Nil {
		conds = append(conds, "organization_id = "+arg(orgID))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR email ILIKE %s)", p, p))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		conds = append(conds, "status = ANY("+arg(statuses)+")")
	}
	if len(f.Skills) > 0 {
		conds = append(conds, "skills @> "+arg(f.Skills))
	}
	if f.MinExperience != nil {
		conds = append(conds, "years_experience >= "+arg(*f.MinExperience))
	}
	if f.MaxExperience != nil {
		conds = append(conds, "years_experience <= "+arg(*f.MaxExperience))
	}
	if f.Location != "" {
		conds = append(conds, "location ILIKE "+arg("%"+f.Location+"%"))
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanCandidate(row pgx.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	var status string
	var fields []byte
	var createdAt, updatedAt time.Time
	err := row.Scan(&c.ID, &c.OrganizationID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.YearsExperience,
		&c.Skills, &c.CurrentCompany, &c.Education, &c.Location, &c.PortfolioURL, &c.NoticePeriod, &c.ExpectedSalary,
		&status, &c.Source, &c.OverallConfidence, &fields, &c.IsActive, &createdAt, &updatedAt,
		&c.LastMessageAt, &c.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, err
	}
	c.Status = candidate.ParseStatus(status)
	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &c.ParsedFields); err != nil {
			return candidate.Candidate{}, err
		}
	}
	return c, nil
}
