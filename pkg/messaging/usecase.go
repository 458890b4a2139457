package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/job"
	"github.com/artem13815/recruitflow/pkg/llm"
	"github.com/artem13815/recruitflow/pkg/message"
	"github.com/artem13815/recruitflow/pkg/settings"
)

var (
	// ErrNotPendingReview — сообщение не ждёт решения HR.
	ErrNotPendingReview = errors.New("message is not pending hr review")
	// ErrAlreadyApproved — по сообщению уже отправлен ответ.
	ErrAlreadyApproved = errors.New("message is already approved")
)

// Preview — черновик исходящего сообщения до отправки.
type Preview struct {
	Content     string   `json:"content"`
	Intent      string   `json:"intent"`
	AskedFields []string `json:"askedFields"`
	GeneratedBy string   `json:"generatedBy"` // ai или template
}

// UseCase — сценарии переписки с кандидатами.
type UseCase interface {
	Conversation(ctx context.Context, orgID, candidateID uuid.UUID, page, pageSize int) ([]message.Message, candidate.ConversationState, error)
	ComposePreview(ctx context.Context, orgID, candidateID uuid.UUID, intent, instructions string) (Preview, error)
	Send(ctx context.Context, orgID, senderID, candidateID uuid.UUID, content, intent string, askedFields []string, generatedBy string) (message.Message, error)
	ReceiveReply(ctx context.Context, orgID, candidateID uuid.UUID, content string) (message.Message, *message.Message, error)
	Approve(ctx context.Context, orgID, reviewerID, messageID uuid.UUID, editedReply string) (message.Message, message.Message, error)
	PendingReview(ctx context.Context, orgID uuid.UUID, page, pageSize int) ([]message.Message, error)
}

type service struct {
	candidates candidate.Repository
	messages   message.Repository
	jobs       job.UseCase
	settings   settings.Repository
	model      llm.ChatModel // nil, если LLM не сконфигурирована
}

func NewService(candidates candidate.Repository, messages message.Repository, jobs job.UseCase, orgSettings settings.Repository, model llm.ChatModel) UseCase {
	return &service{candidates: candidates, messages: messages, jobs: jobs, settings: orgSettings, model: model}
}

func (s *service) Conversation(ctx context.Context, orgID, candidateID uuid.UUID, page, pageSize int) ([]message.Message, candidate.ConversationState, error) {
	c, err := s.candidates.GetByID(ctx, orgID, candidateID)
	if err != nil {
		return nil, candidate.ConversationState{}, err
	}
	all, err := s.messages.ListByCandidate(ctx, c.ID, 0, 0)
	if err != nil {
		return nil, candidate.ConversationState{}, err
	}
	state := candidate.DeriveConversationState(c, all)

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize
	if offset >= len(all) {
		return []message.Message{}, state, nil
	}
	end := offset + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], state, nil
}

// ComposePreview генерирует черновик сообщения: через LLM, а при её
// отсутствии или ошибке — по шаблону интента.
func (s *service) ComposePreview(ctx context.Context, orgID, candidateID uuid.UUID, intent, instructions string) (Preview, error) {
	c, err := s.candidates.GetByID(ctx, orgID, candidateID)
	if err != nil {
		return Preview{}, err
	}
	msgs, err := s.messages.ListByCandidate(ctx, c.ID, 0, 0)
	if err != nil {
		return Preview{}, err
	}
	if intent == "" {
		intent = IntentInitialContact
	}
	pending := candidate.PendingFields(candidate.DeriveConversationState(c, msgs))
	cfg, err := settings.GetOrDefaults(ctx, s.settings, orgID)
	if err != nil {
		return Preview{}, err
	}

	content, generatedBy := "", "template"
	if s.model != nil {
		answer, err := s.model.Ask(ctx, composeSystemPrompt, buildComposePrompt(c, pending, intent, instructions))
		if err == nil && strings.TrimSpace(answer) != "" {
			content, generatedBy = strings.TrimSpace(answer), "ai"
		}
	}
	if content == "" {
		content = templateMessage(c, pending, intent, cfg.IntentTemplates)
	}
	return Preview{
		Content:     content,
		Intent:      intent,
		AskedFields: DetectAskedFields(content),
		GeneratedBy: generatedBy,
	}, nil
}

// Send сохраняет исходящее сообщение и ставит задачу доставки.
// Кандидат в статусе new переводится в contacted.
func (s *service) Send(ctx context.Context, orgID, senderID, candidateID uuid.UUID, content, intent string, askedFields []string, generatedBy string) (message.Message, error) {
	c, err := s.candidates.GetByID(ctx, orgID, candidateID)
	if err != nil {
		return message.Message{}, err
	}
	if strings.TrimSpace(content) == "" {
		return message.Message{}, errors.New("message content is empty")
	}
	if len(askedFields) == 0 {
		askedFields = DetectAskedFields(content)
	}
	if generatedBy == "" {
		generatedBy = "manual"
	}

	now := time.Now().UTC()
	m := message.Message{
		ID:          uuid.New(),
		CandidateID: c.ID,
		Direction:   message.DirectionOutgoing,
		Content:     content,
		Timestamp:   now,
		Status:      message.DeliveryPending,
		Intent:      intent,
		GeneratedBy: generatedBy,
		AskedFields: askedFields,
		CreatedAt:   now,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return message.Message{}, err
	}
	if _, err := s.jobs.Enqueue(ctx, orgID, job.TypeSendMessage, &c.ID, nil, &m.ID); err != nil {
		return message.Message{}, fmt.Errorf("enqueue send job: %w", err)
	}

	if c.Status == candidate.StatusNew {
		c.Status = candidate.StatusContacted
	}
	c.LastMessageAt = &now
	c.UpdatedAt = now
	if err := s.candidates.Update(ctx, c); err != nil {
		return message.Message{}, err
	}
	_ = senderID // отправитель пока не хранится на сообщении
	return m, nil
}

// ReceiveReply регистрирует входящий ответ кандидата: классифицирует,
// извлекает поля, обновляет кандидата и, если ответ не требует
// решения HR и автоответы включены в настройках организации, отвечает
// автоматически. Возвращает входящее сообщение и автоответ (nil, если
// его не было).
func (s *service) ReceiveReply(ctx context.Context, orgID, candidateID uuid.UUID, content string) (message.Message, *message.Message, error) {
	c, err := s.candidates.GetByID(ctx, orgID, candidateID)
	if err != nil {
		return message.Message{}, nil, err
	}
	cfg, err := settings.GetOrDefaults(ctx, s.settings, orgID)
	if err != nil {
		return message.Message{}, nil, err
	}

	analysis := message.ClassifyReply(content)
	// Настройка организации отправляет и needs_clarification на ревью.
	if cfg.ReviewClarifications && analysis.Classification == message.ClassNeedsClarification {
		analysis.RequiresHRReview = true
		if analysis.AISuggestedReply == "" {
			analysis.AISuggestedReply = analysis.SuggestedReply
		}
	}
	extracted := ExtractReplyFields(content)

	now := time.Now().UTC()
	incoming := message.Message{
		ID:               uuid.New(),
		CandidateID:      c.ID,
		Direction:        message.DirectionIncoming,
		Content:          content,
		Timestamp:        now,
		Status:           message.DeliveryDelivered,
		Classification:   analysis.Classification,
		SuggestedReply:   analysis.SuggestedReply,
		ExtractedFields:  extracted,
		RequiresHRReview: analysis.RequiresHRReview,
		AISuggestedReply: analysis.AISuggestedReply,
		CreatedAt:        now,
	}
	if err := s.messages.Create(ctx, incoming); err != nil {
		return message.Message{}, nil, err
	}

	applyExtracted(&c, extracted)
	// Пока ответ ждёт HR, статус кандидата не меняется.
	if !analysis.RequiresHRReview {
		if st, ok := statusFor(analysis.Classification); ok {
			c.Status = st
		}
	}
	c.LastMessageAt = &now
	c.UpdatedAt = now
	if err := s.candidates.UpsertParsedFields(ctx, c.ID, c.ParsedFields); err != nil {
		return message.Message{}, nil, err
	}
	if err := s.candidates.Update(ctx, c); err != nil {
		return message.Message{}, nil, err
	}

	if analysis.RequiresHRReview || analysis.SuggestedReply == "" || !cfg.AutoReplyEnabled {
		return incoming, nil, nil
	}
	reply, err := s.Send(ctx, orgID, uuid.Nil, c.ID, analysis.SuggestedReply, string(analysis.Classification), nil, "ai_auto")
	if err != nil {
		return message.Message{}, nil, err
	}
	return incoming, &reply, nil
}

// Approve подтверждает ответ HR на сообщение, ждущее ревью.
// Создаётся ровно одно исходящее сообщение; повторное подтверждение
// отклоняется.
func (s *service) Approve(ctx context.Context, orgID, reviewerID, messageID uuid.UUID, editedReply string) (message.Message, message.Message, error) {
	m, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return message.Message{}, message.Message{}, err
	}
	// Скоуп организации проверяется через кандидата.
	c, err := s.candidates.GetByID(ctx, orgID, m.CandidateID)
	if err != nil {
		return message.Message{}, message.Message{}, err
	}
	if m.Direction != message.DirectionIncoming || !m.RequiresHRReview {
		return message.Message{}, message.Message{}, ErrNotPendingReview
	}
	if m.HRApproved {
		return message.Message{}, message.Message{}, ErrAlreadyApproved
	}

	reply := strings.TrimSpace(editedReply)
	if reply == "" {
		reply = m.AISuggestedReply
	}
	if reply == "" {
		reply = m.SuggestedReply
	}
	if reply == "" {
		return message.Message{}, message.Message{}, errors.New("no reply content to send")
	}

	now := time.Now().UTC()
	m.HRApproved = true
	m.HRApprovedAt = &now
	m.HRApprovedBy = &reviewerID
	if err := s.messages.Update(ctx, m); err != nil {
		return message.Message{}, message.Message{}, err
	}

	outgoing, err := s.Send(ctx, orgID, reviewerID, c.ID, reply, "hr_reply", nil, "hr")
	if err != nil {
		return message.Message{}, message.Message{}, err
	}

	// Отложенный гейтом переход статуса применяется после решения HR.
	if st, ok := statusFor(m.Classification); ok {
		c, err = s.candidates.GetByID(ctx, orgID, c.ID)
		if err != nil {
			return message.Message{}, message.Message{}, err
		}
		c.Status = st
		c.UpdatedAt = time.Now().UTC()
		if err := s.candidates.Update(ctx, c); err != nil {
			return message.Message{}, message.Message{}, err
		}
	}
	return m, outgoing, nil
}

func (s *service) PendingReview(ctx context.Context, orgID uuid.UUID, page, pageSize int) ([]message.Message, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	return s.messages.ListPendingReview(ctx, orgID, pageSize, (page-1)*pageSize)
}

// statusFor маппит классификацию ответа в статус воронки.
// Вопросы статус не меняют.
func statusFor(cl message.Classification) (candidate.Status, bool) {
	switch cl {
	case message.ClassInterested:
		return candidate.StatusInterested, true
	case message.ClassNotInterested:
		return candidate.StatusNotInterested, true
	case message.ClassNeedsClarification:
		return candidate.StatusNeedsClarification, true
	default:
		return "", false
	}
}

// applyExtracted переносит извлечённые из ответа значения в профиль
// кандидата и его parsed-поля (source=reply, confidence 0..1 → 0..100).
func applyExtracted(c *candidate.Candidate, fields map[string]message.ExtractedField) {
	set := func(name, value string, confidence float64) {
		for i := range c.ParsedFields {
			if c.ParsedFields[i].Name == name {
				c.ParsedFields[i].Value = value
				c.ParsedFields[i].Confidence = confidence * 100
				c.ParsedFields[i].Source = candidate.SourceReply
				return
			}
		}
		c.ParsedFields = append(c.ParsedFields, candidate.ParsedField{
			Name:       name,
			Value:      value,
			Confidence: confidence * 100,
			Source:     candidate.SourceReply,
		})
	}

	for key, f := range fields {
		switch key {
		case "email":
			if v, ok := f.Value.(string); ok && v != "" {
				c.Email = v
				set("email", v, f.Confidence)
			}
		case "phone":
			if v, ok := f.Value.(string); ok && v != "" {
				c.Phone = v
				set("phone", v, f.Confidence)
			}
		case "experience":
			if v, ok := f.Value.(int); ok {
				years := v
				c.YearsExperience = &years
				set("experience", fmt.Sprintf("%d", years), f.Confidence)
			}
		case "currentCompany":
			if v, ok := f.Value.(string); ok && v != "" {
				c.CurrentCompany = v
				set("current_company", v, f.Confidence)
			}
		case "location":
			if v, ok := f.Value.(string); ok && v != "" {
				c.Location = v
				set("location", v, f.Confidence)
			}
		case "skills":
			if v, ok := f.Value.([]string); ok && len(v) > 0 {
				c.Skills = mergeSkills(c.Skills, v)
				set("skills", strings.Join(v, ", "), f.Confidence)
			}
		}
	}
}

func mergeSkills(existing, fresh []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range fresh {
		if _, ok := seen[strings.ToLower(s)]; !ok {
			existing = append(existing, s)
			seen[strings.ToLower(s)] = struct{}{}
		}
	}
	return existing
}
