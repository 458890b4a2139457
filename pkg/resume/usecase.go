package resume

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/job"
)

// ErrFileTooLarge возвращается при превышении лимита размера файла.
var ErrFileTooLarge = errors.New("resume file exceeds size limit")

// MaxFileSize — лимит размера загружаемого резюме.
const MaxFileSize = 10 << 20 // 10 MiB

// UseCase — сценарии загрузки и обработки резюме. Get и Reprocess
// скоупятся организацией через кандидата: чужое резюме неотличимо
// от несуществующего.
type UseCase interface {
	// Upload сохраняет файл, заводит кандидата-заготовку и ставит
	// задачу parse_resume в очередь.
	Upload(ctx context.Context, orgID, ownerID uuid.UUID, filename string, data []byte) (Resume, job.Job, error)
	// Reprocess повторно ставит разобранное резюме в очередь.
	Reprocess(ctx context.Context, orgID, id uuid.UUID) (Resume, job.Job, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (Resume, error)
	// Process выполняет задачу разбора: вызывается воркером.
	Process(ctx context.Context, j job.Job) error
}

type service struct {
	resumes    Repository
	candidates candidate.Repository
	jobs       job.UseCase
	uploadsDir string
}

func NewService(resumes Repository, candidates candidate.Repository, jobs job.UseCase, uploadsDir string) UseCase {
	return &service{resumes: resumes, candidates: candidates, jobs: jobs, uploadsDir: uploadsDir}
}

func (s *service) Upload(ctx context.Context, orgID, ownerID uuid.UUID, filename string, data []byte) (Resume, job.Job, error) {
	if !AllowedExt(filename) {
		return Resume{}, job.Job{}, ErrUnsupportedFormat
	}
	if len(data) > MaxFileSize {
		return Resume{}, job.Job{}, ErrFileTooLarge
	}

	now := time.Now().UTC()
	c := candidate.Candidate{
		ID:             uuid.New(),
		OrganizationID: orgID,
		OwnerID:        ownerID,
		Name:           trimExt(filename),
		Status:         candidate.StatusNew,
		Source:         "resume_upload",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.candidates.Create(ctx, c); err != nil {
		return Resume{}, job.Job{}, fmt.Errorf("create candidate: %w", err)
	}

	r := Resume{
		ID:          uuid.New(),
		CandidateID: c.ID,
		FileName:    filepath.Base(filename),
		FileType:    ext(filename),
		FileSize:    int64(len(data)),
		UploadedAt:  now,
	}
	path, err := s.saveFile(r.ID, r.FileName, data)
	if err != nil {
		return Resume{}, job.Job{}, fmt.Errorf("save file: %w", err)
	}
	r.StoragePath = path
	if err := s.resumes.Create(ctx, r); err != nil {
		return Resume{}, job.Job{}, fmt.Errorf("create resume: %w", err)
	}

	j, err := s.jobs.Enqueue(ctx, orgID, job.TypeParseResume, &c.ID, &r.ID, nil)
	if err != nil {
		return Resume{}, job.Job{}, fmt.Errorf("enqueue parse job: %w", err)
	}
	r.ParseJobID = &j.ID
	if err := s.resumes.Update(ctx, r); err != nil {
		return Resume{}, job.Job{}, err
	}
	return r, j, nil
}

func (s *service) Reprocess(ctx context.Context, orgID, id uuid.UUID) (Resume, job.Job, error) {
	r, err := s.scopedGet(ctx, orgID, id)
	if err != nil {
		return Resume{}, job.Job{}, err
	}
	j, err := s.jobs.Enqueue(ctx, orgID, job.TypeReprocessResume, &r.CandidateID, &r.ID, nil)
	if err != nil {
		return Resume{}, job.Job{}, err
	}
	r.ParseJobID = &j.ID
	if err := s.resumes.Update(ctx, r); err != nil {
		return Resume{}, job.Job{}, err
	}
	return r, j, nil
}

func (s *service) Get(ctx context.Context, orgID, id uuid.UUID) (Resume, error) {
	return s.scopedGet(ctx, orgID, id)
}

// scopedGet отдаёт резюме, только если его кандидат принадлежит
// организации.
func (s *service) scopedGet(ctx context.Context, orgID, id uuid.UUID) (Resume, error) {
	r, err := s.resumes.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if _, err := s.candidates.GetByID(ctx, orgID, r.CandidateID); err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return r, nil
}

// Process разбирает файл резюме и обогащает кандидата извлечёнными
// полями. Прогресс отражается в задаче: 10 — файл прочитан,
// 50 — текст извлечён, 100 — кандидат обновлён.
func (s *service) Process(ctx context.Context, j job.Job) error {
	if j.ResumeID == nil {
		return errors.New("parse job has no resume id")
	}
	r, err := s.resumes.GetByID(ctx, *j.ResumeID)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(r.StoragePath)
	if err != nil {
		return fmt.Errorf("read stored file: %w", err)
	}
	if j, err = s.jobs.MarkProgress(ctx, j, 10); err != nil {
		return err
	}

	text, err := ExtractText(r.FileName, data)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	if j, err = s.jobs.MarkProgress(ctx, j, 50); err != nil {
		return err
	}

	ex := ExtractFields(text)
	if err := s.enrichCandidate(ctx, r.CandidateID, ex); err != nil {
		return err
	}

	now := time.Now().UTC()
	r.RawText = text
	r.IsParsed = true
	if j.Type == job.TypeReprocessResume {
		r.ReprocessedAt = &now
	} else {
		r.ParsedAt = &now
	}
	if err := s.resumes.Update(ctx, r); err != nil {
		return err
	}
	_, err = s.jobs.MarkProgress(ctx, j, 100)
	return err
}

func (s *service) enrichCandidate(ctx context.Context, candidateID uuid.UUID, ex Extraction) error {
	// Без org-скоупа: воркер обновляет кандидата по прямому id.
	c, err := s.candidates.GetByID(ctx, uuid.Nil, candidateID)
	if err != nil {
		return err
	}
	if ex.Name != "" {
		c.Name = ex.Name
	}
	if ex.Email != "" {
		c.Email = ex.Email
	}
	if ex.Phone != "" {
		c.Phone = ex.Phone
	}
	if ex.YearsExperience != nil {
		c.YearsExperience = ex.YearsExperience
	}
	if len(ex.Skills) > 0 {
		c.Skills = ex.Skills
	}
	if ex.CurrentCompany != "" {
		c.CurrentCompany = ex.CurrentCompany
	}
	if ex.Education != "" {
		c.Education = ex.Education
	}
	if ex.Location != "" {
		c.Location = ex.Location
	}
	c.ParsedFields = mergeParsedFields(c.ParsedFields, ex.Fields)
	c.OverallConfidence = meanConfidence(c.ParsedFields)
	c.UpdatedAt = time.Now().UTC()

	if err := s.candidates.UpsertParsedFields(ctx, c.ID, c.ParsedFields); err != nil {
		return err
	}
	return s.candidates.Update(ctx, c)
}

// mergeParsedFields заменяет поля с совпадающими именами свежими
// значениями, новые добавляет в конец.
func mergeParsedFields(existing, fresh []candidate.ParsedField) []candidate.ParsedField {
	for _, f := range fresh {
		replaced := false
		for i := range existing {
			if existing[i].Name == f.Name {
				existing[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, f)
		}
	}
	return existing
}

func meanConfidence(fields []candidate.ParsedField) float64 {
	if len(fields) == 0 {
		return 0
	}
	var sum float64
	for _, f := range fields {
		sum += f.Confidence
	}
	return sum / float64(len(fields))
}

func (s *service) saveFile(id uuid.UUID, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.uploadsDir, id.String()+"_"+filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func ext(filename string) string {
	e := filepath.Ext(filename)
	if e == "" {
		return ""
	}
	return e[1:]
}

func trimExt(filename string) string {
	base := filepath.Base(filename)
	return base[:len(base)-len(filepath.Ext(base))]
}
