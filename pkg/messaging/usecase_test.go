package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/job"
	"github.com/artem13815/recruitflow/pkg/message"
	"github.com/artem13815/recruitflow/pkg/repository/memory"
	"github.com/artem13815/recruitflow/pkg/settings"
)

type fixture struct {
	store *memory.Store
	uc    UseCase
	orgID uuid.UUID
	cand  candidate.Candidate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	orgID := uuid.New()
	c := candidate.Candidate{
		ID:             uuid.New(),
		OrganizationID: orgID,
		OwnerID:        uuid.New(),
		Name:           "Ivan Petrov",
		Status:         candidate.StatusNew,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	require.NoError(t, store.Candidates().Create(context.Background(), c))

	uc := NewService(store.Candidates(), store.Messages(), job.NewService(store.Jobs()), store.Settings(), nil)
	return &fixture{store: store, uc: uc, orgID: orgID, cand: c}
}

func TestSend_MovesNewCandidateToContacted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.uc.Send(ctx, f.orgID, uuid.New(), f.cand.ID, "Hi! Could you share your phone number?", IntentInitialContact, nil, "manual")
	require.NoError(t, err)

	assert.Equal(t, message.DirectionOutgoing, m.Direction)
	assert.Equal(t, message.DeliveryPending, m.Status)
	// askedFields выводятся из текста, если не переданы явно.
	assert.Contains(t, m.AskedFields, string(candidate.FieldPhone))

	c, err := f.store.Candidates().GetByID(ctx, f.orgID, f.cand.ID)
	require.NoError(t, err)
	assert.Equal(t, candidate.StatusContacted, c.Status)
	require.NotNil(t, c.LastMessageAt)

	// Доставка поставлена в очередь.
	j, ok, err := f.store.Jobs().ClaimNext(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, job.TypeSendMessage, j.Type)
	require.NotNil(t, j.MessageID)
	assert.Equal(t, m.ID, *j.MessageID)
}

func TestReceiveReply_InterestedAutoReplies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	incoming, autoReply, err := f.uc.ReceiveReply(ctx, f.orgID, f.cand.ID, "Yes, I'm interested!")
	require.NoError(t, err)

	assert.Equal(t, message.ClassInterested, incoming.Classification)
	assert.False(t, incoming.RequiresHRReview)
	require.NotNil(t, autoReply)
	assert.Equal(t, "ai_auto", autoReply.GeneratedBy)

	c, err := f.store.Candidates().GetByID(ctx, f.orgID, f.cand.ID)
	require.NoError(t, err)
	assert.Equal(t, candidate.StatusInterested, c.Status)
}

func TestReceiveReply_QuestionHeldForHR(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	incoming, autoReply, err := f.uc.ReceiveReply(ctx, f.orgID, f.cand.ID, "What's the salary range?")
	require.NoError(t, err)

	assert.Equal(t, message.ClassQuestion, incoming.Classification)
	assert.True(t, incoming.RequiresHRReview)
	assert.NotEmpty(t, incoming.AISuggestedReply)
	// Автоответ не уходит, пока HR не подтвердил.
	assert.Nil(t, autoReply)

	// Статус кандидата не меняется до решения HR.
	c, err := f.store.Candidates().GetByID(ctx, f.orgID, f.cand.ID)
	require.NoError(t, err)
	assert.Equal(t, candidate.StatusNew, c.Status)

	pending, err := f.uc.PendingReview(ctx, f.orgID, 1, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, incoming.ID, pending[0].ID)
}

func TestReceiveReply_ExtractsFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	incoming, _, err := f.uc.ReceiveReply(ctx, f.orgID, f.cand.ID, "Sure! My email is ivan.petrov@example.com, I have 7 years with Go and PostgreSQL")
	require.NoError(t, err)

	require.Contains(t, incoming.ExtractedFields, "email")
	assert.Equal(t, "ivan.petrov@example.com", incoming.ExtractedFields["email"].Value)
	require.Contains(t, incoming.ExtractedFields, "experience")
	assert.Equal(t, 7, incoming.ExtractedFields["experience"].Value)

	c, err := f.store.Candidates().GetByID(ctx, f.orgID, f.cand.ID)
	require.NoError(t, err)
	assert.Equal(t, "ivan.petrov@example.com", c.Email)
	require.NotNil(t, c.YearsExperience)
	assert.Equal(t, 7, *c.YearsExperience)
	assert.Contains(t, c.Skills, "Go")
}

func TestApprove_SendsExactlyOneReply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reviewer := uuid.New()

	incoming, _, err := f.uc.ReceiveReply(ctx, f.orgID, f.cand.ID, "What's the salary range?")
	require.NoError(t, err)

	approved, outgoing, err := f.uc.Approve(ctx, f.orgID, reviewer, incoming.ID, "")
	require.NoError(t, err)
	assert.True(t, approved.HRApproved)
	require.NotNil(t, approved.HRApprovedBy)
	assert.Equal(t, reviewer, *approved.HRApprovedBy)
	assert.Equal(t, "hr", outgoing.GeneratedBy)
	assert.Equal(t, incoming.AISuggestedReply, outgoing.Content)

	// Повторное подтверждение отклоняется.
	_, _, err = f.uc.Approve(ctx, f.orgID, reviewer, incoming.ID, "")
	assert.ErrorIs(t, err, ErrAlreadyApproved)

	// В переписке ровно одно исходящее.
	msgs, _, err := f.uc.Conversation(ctx, f.orgID, f.cand.ID, 1, 50)
	require.NoError(t, err)
	outCount := 0
	for _, m := range msgs {
		if m.Direction == message.DirectionOutgoing {
			outCount++
		}
	}
	assert.Equal(t, 1, outCount)
}

func TestApprove_EditedReplyWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	incoming, _, err := f.uc.ReceiveReply(ctx, f.orgID, f.cand.ID, "What's the salary range?")
	require.NoError(t, err)

	_, outgoing, err := f.uc.Approve(ctx, f.orgID, uuid.New(), incoming.ID, "The range is 200-250k.")
	require.NoError(t, err)
	assert.Equal(t, "The range is 200-250k.", outgoing.Content)
}

func TestApprove_RejectsNonReviewMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	incoming, _, err := f.uc.ReceiveReply(ctx, f.orgID, f.cand.ID, "Yes, sounds great")
	require.NoError(t, err)

	_, _, err = f.uc.Approve(ctx, f.orgID, uuid.New(), incoming.ID, "")
	assert.ErrorIs(t, err, ErrNotPendingReview)
}

func TestComposePreview_TemplateFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	preview, err := f.uc.ComposePreview(ctx, f.orgID, f.cand.ID, "", "")
	require.NoError(t, err)

	assert.Equal(t, "template", preview.GeneratedBy)
	assert.Equal(t, IntentInitialContact, preview.Intent)
	assert.Contains(t, preview.Content, "Ivan Petrov")
	assert.NotEmpty(t, preview.AskedFields)
}

func TestConversation_ScopedByOrganization(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.uc.Conversation(context.Background(), uuid.New(), f.cand.ID, 1, 50)
	assert.ErrorIs(t, err, candidate.ErrNotFound)
}

func TestReceiveReply_AutoReplyDisabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg := settings.Defaults(f.orgID)
	cfg.AutoReplyEnabled = false
	require.NoError(t, f.store.Settings().Put(ctx, cfg))

	incoming, autoReply, err := f.uc.ReceiveReply(ctx, f.orgID, f.cand.ID, "Yes, I'm interested!")
	require.NoError(t, err)

	// Классификация и статус отрабатывают, автоответ — нет.
	assert.Equal(t, message.ClassInterested, incoming.Classification)
	assert.Nil(t, autoReply)

	c, err := f.store.Candidates().GetByID(ctx, f.orgID, f.cand.ID)
	require.NoError(t, err)
	assert.Equal(t, candidate.StatusInterested, c.Status)
}

func TestReceiveReply_ClarificationReviewSetting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg := settings.Defaults(f.orgID)
	cfg.ReviewClarifications = true
	require.NoError(t, f.store.Settings().Put(ctx, cfg))

	incoming, autoReply, err := f.uc.ReceiveReply(ctx, f.orgID, f.cand.ID, "I need some clarification on the role")
	require.NoError(t, err)

	assert.Equal(t, message.ClassNeedsClarification, incoming.Classification)
	assert.True(t, incoming.RequiresHRReview)
	assert.NotEmpty(t, incoming.AISuggestedReply)
	assert.Nil(t, autoReply)

	// Статус не меняется до решения HR.
	c, err := f.store.Candidates().GetByID(ctx, f.orgID, f.cand.ID)
	require.NoError(t, err)
	assert.Equal(t, candidate.StatusNew, c.Status)

	pending, err := f.uc.PendingReview(ctx, f.orgID, 1, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestComposePreview_OrgIntentTemplate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg := settings.Defaults(f.orgID)
	cfg.IntentTemplates[IntentInitialContact] = "Hello {name}, we have a role with your name on it."
	require.NoError(t, f.store.Settings().Put(ctx, cfg))

	preview, err := f.uc.ComposePreview(ctx, f.orgID, f.cand.ID, IntentInitialContact, "")
	require.NoError(t, err)
	assert.Equal(t, "template", preview.GeneratedBy)
	assert.Contains(t, preview.Content, "Hello Ivan Petrov, we have a role with your name on it.")
}

func TestExtractReplyFields_PhoneStopsAtLineEnd(t *testing.T) {
	out := ExtractReplyFields("+7 (900) 123-45-67\n7 years with Go")
	require.Contains(t, out, "phone")
	assert.Equal(t, "+7 (900) 123-45-67", out["phone"].Value)
}
