package resume_test

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/job"
	"github.com/artem13815/recruitflow/pkg/repository/memory"
	"github.com/artem13815/recruitflow/pkg/resume"
)

// buildDocx собирает минимальный .docx: zip с word/document.xml,
// каждый абзац — отдельная строка текста.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&doc, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(doc.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_Docx(t *testing.T) {
	data := buildDocx(t, "Ivan Petrov", "ivan@example.com")

	text, err := resume.ExtractText("cv.docx", data)
	require.NoError(t, err)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Ivan Petrov", strings.TrimSpace(lines[0]))
	assert.Equal(t, "ivan@example.com", strings.TrimSpace(lines[1]))
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	_, err := resume.ExtractText("cv.txt", []byte("plain text"))
	assert.ErrorIs(t, err, resume.ErrUnsupportedFormat)
}

func TestUpload_CreatesCandidateShellAndQueuesJob(t *testing.T) {
	store := memory.NewStore()
	jobs := job.NewService(store.Jobs())
	uc := resume.NewService(store.Resumes(), store.Candidates(), jobs, t.TempDir())
	ctx := context.Background()
	orgID, ownerID := uuid.New(), uuid.New()

	data := buildDocx(t, "Ivan Petrov")
	r, j, err := uc.Upload(ctx, orgID, ownerID, "ivan_petrov.docx", data)
	require.NoError(t, err)

	assert.Equal(t, "ivan_petrov.docx", r.FileName)
	assert.Equal(t, "docx", r.FileType)
	assert.Equal(t, int64(len(data)), r.FileSize)
	assert.False(t, r.IsParsed)
	require.NotNil(t, r.ParseJobID)
	assert.Equal(t, j.ID, *r.ParseJobID)
	assert.Equal(t, job.TypeParseResume, j.Type)
	assert.Equal(t, job.StatusQueued, j.Status)

	// Кандидат-заготовка до разбора: имя из файла.
	c, err := store.Candidates().GetByID(ctx, orgID, r.CandidateID)
	require.NoError(t, err)
	assert.Equal(t, "ivan_petrov", c.Name)
	assert.Equal(t, candidate.StatusNew, c.Status)
	assert.Equal(t, "resume_upload", c.Source)
}

func TestUpload_RejectsUnsupportedAndOversized(t *testing.T) {
	store := memory.NewStore()
	uc := resume.NewService(store.Resumes(), store.Candidates(), job.NewService(store.Jobs()), t.TempDir())
	ctx := context.Background()

	_, _, err := uc.Upload(ctx, uuid.New(), uuid.New(), "cv.txt", []byte("hi"))
	assert.ErrorIs(t, err, resume.ErrUnsupportedFormat)

	_, _, err = uc.Upload(ctx, uuid.New(), uuid.New(), "cv.pdf", make([]byte, resume.MaxFileSize+1))
	assert.ErrorIs(t, err, resume.ErrFileTooLarge)
}

func TestProcess_EnrichesCandidateFromDocx(t *testing.T) {
	store := memory.NewStore()
	jobs := job.NewService(store.Jobs())
	uc := resume.NewService(store.Resumes(), store.Candidates(), jobs, t.TempDir())
	ctx := context.Background()
	orgID := uuid.New()

	data := buildDocx(t,
		"Ivan Petrov",
		"Senior Backend Engineer at Acme Corp.",
		"ivan.petrov@example.com",
		"7 years of experience with Go, PostgreSQL and Docker.",
		"Bachelor of Computer Science, Moscow State University",
	)
	r, j, err := uc.Upload(ctx, orgID, uuid.New(), "cv.docx", data)
	require.NoError(t, err)

	require.NoError(t, uc.Process(ctx, j))

	c, err := store.Candidates().GetByID(ctx, orgID, r.CandidateID)
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", c.Name)
	assert.Equal(t, "ivan.petrov@example.com", c.Email)
	require.NotNil(t, c.YearsExperience)
	assert.Equal(t, 7, *c.YearsExperience)
	assert.Equal(t, "Acme Corp", c.CurrentCompany)
	assert.Contains(t, c.Education, "Bachelor")
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, c.Skills)
	assert.NotEmpty(t, c.ParsedFields)
	assert.Greater(t, c.OverallConfidence, 0.0)

	got, err := uc.Get(ctx, orgID, r.ID)
	require.NoError(t, err)
	assert.True(t, got.IsParsed)
	assert.NotNil(t, got.ParsedAt)
	assert.NotEmpty(t, got.RawText)

	// Прогресс задачи доведён до 100.
	stored, err := store.Jobs().GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Progress)
}

func TestReprocess(t *testing.T) {
	store := memory.NewStore()
	jobs := job.NewService(store.Jobs())
	uc := resume.NewService(store.Resumes(), store.Candidates(), jobs, t.TempDir())
	ctx := context.Background()
	orgID := uuid.New()

	r, first, err := uc.Upload(ctx, orgID, uuid.New(), "cv.docx", buildDocx(t, "Ivan Petrov"))
	require.NoError(t, err)
	require.NoError(t, uc.Process(ctx, first))

	updated, second, err := uc.Reprocess(ctx, orgID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, job.TypeReprocessResume, second.Type)
	require.NotNil(t, updated.ParseJobID)
	assert.Equal(t, second.ID, *updated.ParseJobID)

	require.NoError(t, uc.Process(ctx, second))
	got, err := uc.Get(ctx, orgID, r.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.ReprocessedAt)
}

func TestGetAndReprocess_ScopedByOrganization(t *testing.T) {
	store := memory.NewStore()
	jobs := job.NewService(store.Jobs())
	uc := resume.NewService(store.Resumes(), store.Candidates(), jobs, t.TempDir())
	ctx := context.Background()
	orgID := uuid.New()

	r, _, err := uc.Upload(ctx, orgID, uuid.New(), "cv.docx", buildDocx(t, "Ivan Petrov"))
	require.NoError(t, err)

	// Чужая организация не видит резюме и не может его переразобрать.
	otherOrg := uuid.New()
	_, err = uc.Get(ctx, otherOrg, r.ID)
	assert.ErrorIs(t, err, resume.ErrNotFound)

	_, _, err = uc.Reprocess(ctx, otherOrg, r.ID)
	assert.ErrorIs(t, err, resume.ErrNotFound)

	// Новых задач кроме исходного разбора не появилось.
	cnt, err := store.Jobs().CountByStatus(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, 1, cnt[job.StatusQueued])
	cntOther, err := store.Jobs().CountByStatus(ctx, otherOrg)
	require.NoError(t, err)
	assert.Empty(t, cntOther)
}
