package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/message"
	"github.com/artem13815/recruitflow/pkg/repository/memory"
)

func seedCandidates(t *testing.T) (*memory.Store, uuid.UUID) {
	t.Helper()
	store := memory.NewStore()
	orgID := uuid.New()
	ctx := context.Background()
	years := 7

	older := candidate.Candidate{
		ID:                uuid.New(),
		OrganizationID:    orgID,
		Name:              "Ivan Petrov",
		Email:             "ivan@example.com",
		Status:            candidate.StatusInterested,
		YearsExperience:   &years,
		Skills:            []string{"Go", "PostgreSQL"},
		OverallConfidence: 80,
		IsActive:          true,
		CreatedAt:         time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := candidate.Candidate{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           "Anna Petrova",
		Status:         candidate.StatusNew,
		Skills:         []string{"Go", "React"},
		IsActive:       true,
		CreatedAt:      time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Candidates().Create(ctx, older))
	require.NoError(t, store.Candidates().Create(ctx, newer))

	require.NoError(t, store.Messages().Create(ctx, message.Message{
		ID:          uuid.New(),
		CandidateID: older.ID,
		Direction:   message.DirectionOutgoing,
		Content:     "Hi Ivan!",
		Timestamp:   time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC),
		Status:      message.DeliverySent,
		CreatedAt:   time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC),
	}))
	return store, orgID
}

func TestCSV(t *testing.T) {
	store, orgID := seedCandidates(t)
	uc := NewService(store.Candidates(), store.Messages())

	data, err := uc.CSV(context.Background(), orgID, candidate.Filters{}, nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, candidateHeader, rows[0])

	// Кандидаты идут от новых к старым.
	assert.Equal(t, "Anna Petrova", rows[1][0])
	assert.Equal(t, "Ivan Petrov", rows[2][0])
	assert.Equal(t, "ivan@example.com", rows[2][1])
	assert.Equal(t, "interested", rows[2][3])
	assert.Equal(t, "7", rows[2][4])
	assert.Equal(t, "Go, PostgreSQL", rows[2][5])
	assert.Equal(t, "80%", rows[2][9])
	assert.Equal(t, "2026-08-01", rows[2][10])
}

func TestCSV_FiltersApply(t *testing.T) {
	store, orgID := seedCandidates(t)
	uc := NewService(store.Candidates(), store.Messages())

	data, err := uc.CSV(context.Background(), orgID, candidate.Filters{
		Statuses: []candidate.Status{candidate.StatusInterested},
	}, nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ivan Petrov", rows[1][0])
}

func TestCSV_FieldSubset(t *testing.T) {
	store, orgID := seedCandidates(t)
	uc := NewService(store.Candidates(), store.Messages())

	data, err := uc.CSV(context.Background(), orgID, candidate.Filters{}, []string{"name", "Status", "bogus"})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// Неизвестные имена колонок молча игнорируются.
	assert.Equal(t, []string{"Name", "Status"}, rows[0])
	assert.Equal(t, []string{"Anna Petrova", "new"}, rows[1])
	assert.Equal(t, []string{"Ivan Petrov", "interested"}, rows[2])
}

func TestExcel(t *testing.T) {
	store, orgID := seedCandidates(t)
	uc := NewService(store.Candidates(), store.Messages())

	data, err := uc.Excel(context.Background(), orgID, candidate.Filters{})
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	assert.ElementsMatch(t, []string{"Candidates", "Skills", "Messages"}, book.GetSheetList())

	rows, err := book.GetRows("Candidates")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, candidateHeader, rows[0])
	assert.Equal(t, "Anna Petrova", rows[1][0])

	// Go встречается у обоих, остальные навыки — по алфавиту.
	skills, err := book.GetRows("Skills")
	require.NoError(t, err)
	require.Len(t, skills, 4)
	assert.Equal(t, []string{"Go", "2"}, skills[1])
	assert.Equal(t, []string{"PostgreSQL", "1"}, skills[2])
	assert.Equal(t, []string{"React", "1"}, skills[3])

	msgs, err := book.GetRows("Messages")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Ivan Petrov", msgs[1][0])
	assert.Equal(t, "outgoing", msgs[1][1])
	assert.Equal(t, "Hi Ivan!", msgs[1][5])
}

func TestSortedSkills(t *testing.T) {
	got := sortedSkills(map[string]int{"React": 1, "Go": 3, "Docker": 1, "Kubernetes": 2})
	assert.Equal(t, []string{"Go", "Kubernetes", "Docker", "React"}, got)
}

func TestExcel_EmptyOrganization(t *testing.T) {
	store := memory.NewStore()
	uc := NewService(store.Candidates(), store.Messages())

	data, err := uc.Excel(context.Background(), uuid.New(), candidate.Filters{})
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Candidates")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
