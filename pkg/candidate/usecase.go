package candidate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/message"
)

// ErrNotFound возвращается, когда кандидат не существует или скрыт
// от текущей организации.
var ErrNotFound = errors.New("candidate not found")

// Update — частичное обновление кандидата (ручное редактирование полей).
// nil-поля не трогаются.
type Update struct {
	Name            *string
	Email           *string
	Phone           *string
	YearsExperience *int
	Skills          *[]string
	CurrentCompany  *string
	Education       *string
	Location        *string
	NoticePeriod    *string
	ExpectedSalary  *string
	Status          *Status
}

// UseCase — сценарии работы с кандидатами.
type UseCase interface {
	List(ctx context.Context, orgID uuid.UUID, f Filters, page, pageSize int) ([]Candidate, int, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (Candidate, ConversationState, error)
	Apply(ctx context.Context, orgID, id uuid.UUID, upd Update) (Candidate, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	PendingFields(ctx context.Context, orgID, id uuid.UUID) ([]FieldKey, error)
}

type service struct {
	repo Repository
	msgs message.Repository
}

func NewService(repo Repository, msgs message.Repository) UseCase {
	return &service{repo: repo, msgs: msgs}
}

func (s *service) List(ctx context.Context, orgID uuid.UUID, f Filters, page, pageSize int) ([]Candidate, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	return s.repo.List(ctx, orgID, f, pageSize, (page-1)*pageSize)
}

// Get возвращает кандидата вместе с производным состоянием диалога.
// Состояние не хранится — всегда выводится из полей и переписки.
func (s *service) Get(ctx context.Context, orgID, id uuid.UUID) (Candidate, ConversationState, error) {
	c, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return Candidate{}, ConversationState{}, err
	}
	msgs, err := s.msgs.ListByCandidate(ctx, c.ID, 0, 0)
	if err != nil {
		return Candidate{}, ConversationState{}, err
	}
	return c, DeriveConversationState(c, msgs), nil
}

func (s *service) Apply(ctx context.Context, orgID, id uuid.UUID, upd Update) (Candidate, error) {
	c, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return Candidate{}, err
	}
	applyUpdate(&c, upd)

	// Отредактированные вручную поля получают ручную provenance с
	// максимальной уверенностью, чтобы деривация это отразила.
	c.ParsedFields = mergeManualFields(c.ParsedFields, upd)
	if err := s.repo.UpsertParsedFields(ctx, c.ID, c.ParsedFields); err != nil {
		return Candidate{}, err
	}

	msgs, err := s.msgs.ListByCandidate(ctx, c.ID, 0, 0)
	if err != nil {
		return Candidate{}, err
	}
	c.OverallConfidence = OverallConfidence(DeriveConversationState(c, msgs))
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, orgID, id)
}

func (s *service) PendingFields(ctx context.Context, orgID, id uuid.UUID) ([]FieldKey, error) {
	_, state, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return PendingFields(state), nil
}

func applyUpdate(c *Candidate, upd Update) {
	if upd.Name != nil {
		c.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.YearsExperience != nil {
		c.YearsExperience = upd.YearsExperience
	}
	if upd.Skills != nil {
		c.Skills = *upd.Skills
	}
	if upd.CurrentCompany != nil {
		c.CurrentCompany = *upd.CurrentCompany
	}
	if upd.Education != nil {
		c.Education = *upd.Education
	}
	if upd.Location != nil {
		c.Location = *upd.Location
	}
	if upd.NoticePeriod != nil {
		c.NoticePeriod = *upd.NoticePeriod
	}
	if upd.ExpectedSalary != nil {
		c.ExpectedSalary = *upd.ExpectedSalary
	}
	if upd.Status != nil {
		c.Status = ParseStatus(string(*upd.Status))
	}
}

// mergeManualFields обновляет parsed-поля для атрибутов, изменённых
// вручную: value из обновления, confidence 100, source manual.
func mergeManualFields(fields []ParsedField, upd Update) []ParsedField {
	set := func(name, value string) {
		for i := range fields {
			if parsedFieldKey(fields[i].Name) == parsedFieldKey(name) {
				fields[i].Value = value
				fields[i].Confidence = 100
				fields[i].Source = SourceManual
				return
			}
		}
		fields = append(fields, ParsedField{Name: name, Value: value, Confidence: 100, Source: SourceManual})
	}
	if upd.Phone != nil && *upd.Phone != "" {
		set("phone", *upd.Phone)
	}
	if upd.CurrentCompany != nil && *upd.CurrentCompany != "" {
		set("current_company", *upd.CurrentCompany)
	}
	if upd.Education != nil && *upd.Education != "" {
		set("education", *upd.Education)
	}
	if upd.Location != nil && *upd.Location != "" {
		set("location", *upd.Location)
	}
	return fields
}
