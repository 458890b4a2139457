package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruitflow/pkg/message"
)

func TestDeriveConversationState_EmptyCandidate(t *testing.T) {
	state := DeriveConversationState(Candidate{}, nil)

	require.Len(t, state.Fields, len(TrackedFields))
	for _, key := range TrackedFields {
		fs, ok := state.Fields[key]
		require.True(t, ok, key)
		assert.Equal(t, FieldStatusMissing, fs.Status(), key)
		assert.False(t, fs.Answered)
		assert.False(t, fs.Asked)
	}
	assert.Equal(t, TrackedFields, PendingFields(state))
	assert.Zero(t, OverallConfidence(state))
}

func TestDeriveConversationState_DirectValues(t *testing.T) {
	years := 5
	c := Candidate{
		Name:            "Anna Petrova",
		Email:           "anna@example.com",
		YearsExperience: &years,
		Skills:          []string{"Go", "PostgreSQL"},
	}
	state := DeriveConversationState(c, nil)

	name := state.Fields[FieldName]
	assert.Equal(t, FieldStatusAnswered, name.Status())
	assert.Equal(t, "Anna Petrova", name.Value)
	// Без parsed-поля уверенность по умолчанию 0.5.
	assert.InDelta(t, 0.5, name.Confidence, 1e-9)
	assert.Equal(t, SourceResume, name.Source)

	exp := state.Fields[FieldExperience]
	assert.Equal(t, 5, exp.Value)
	assert.True(t, exp.Answered)

	assert.Equal(t, FieldStatusMissing, state.Fields[FieldPhone].Status())
}

func TestDeriveConversationState_ParsedFieldConfidence(t *testing.T) {
	c := Candidate{
		Email: "anna@example.com",
		ParsedFields: []ParsedField{
			{Name: "email", Value: "anna@example.com", Confidence: 95, Source: SourceResume},
		},
	}
	state := DeriveConversationState(c, nil)
	// Шкала parsed-полей 0-100 переводится в 0-1.
	assert.InDelta(t, 0.95, state.Fields[FieldEmail].Confidence, 1e-9)
}

func TestDeriveConversationState_AskedFields(t *testing.T) {
	msgs := []message.Message{
		{Direction: message.DirectionOutgoing, AskedFields: []string{"phone", "location"}},
	}
	state := DeriveConversationState(Candidate{}, msgs)

	assert.Equal(t, FieldStatusAsked, state.Fields[FieldPhone].Status())
	assert.Equal(t, FieldStatusAsked, state.Fields[FieldLocation].Status())
	assert.NotContains(t, PendingFields(state), FieldPhone)
	assert.NotContains(t, PendingFields(state), FieldLocation)
}

func TestDeriveConversationState_AskDoesNotDowngradeAnswered(t *testing.T) {
	c := Candidate{Phone: "+7 900 123-45-67"}
	msgs := []message.Message{
		{Direction: message.DirectionOutgoing, AskedFields: []string{"phone"}},
	}
	state := DeriveConversationState(c, msgs)

	fs := state.Fields[FieldPhone]
	assert.Equal(t, FieldStatusAnswered, fs.Status())
	assert.False(t, fs.Asked)
}

func TestDeriveConversationState_ReplyAnswers(t *testing.T) {
	msgs := []message.Message{
		{Direction: message.DirectionOutgoing, AskedFields: []string{"experience"}},
		{Direction: message.DirectionIncoming, ExtractedFields: map[string]message.ExtractedField{
			"experience": {Value: 7, Confidence: 0.85},
		}},
	}
	state := DeriveConversationState(Candidate{}, msgs)

	fs := state.Fields[FieldExperience]
	assert.Equal(t, FieldStatusAnswered, fs.Status())
	assert.Equal(t, 7, fs.Value)
	assert.InDelta(t, 0.85, fs.Confidence, 1e-9)
	assert.Equal(t, SourceReply, fs.Source)
}

func TestDeriveConversationState_LastWriteWins(t *testing.T) {
	msgs := []message.Message{
		{Direction: message.DirectionIncoming, ExtractedFields: map[string]message.ExtractedField{
			"location": {Value: "Moscow", Confidence: 0.6},
		}},
		{Direction: message.DirectionIncoming, ExtractedFields: map[string]message.ExtractedField{
			"location": {Value: "Berlin", Confidence: 0.7},
		}},
	}
	state := DeriveConversationState(Candidate{}, msgs)

	fs := state.Fields[FieldLocation]
	assert.Equal(t, "Berlin", fs.Value)
	assert.InDelta(t, 0.7, fs.Confidence, 1e-9)
}

func TestDeriveConversationState_ReplyOverridesResume(t *testing.T) {
	c := Candidate{Location: "Moscow"}
	msgs := []message.Message{
		{Direction: message.DirectionIncoming, ExtractedFields: map[string]message.ExtractedField{
			"location": {Value: "Berlin", Confidence: 0.7},
		}},
	}
	state := DeriveConversationState(c, msgs)

	fs := state.Fields[FieldLocation]
	assert.Equal(t, "Berlin", fs.Value)
	assert.Equal(t, SourceReply, fs.Source)
}

func TestDeriveConversationState_UnknownFieldNamesIgnored(t *testing.T) {
	msgs := []message.Message{
		{Direction: message.DirectionOutgoing, AskedFields: []string{"favorite_color"}},
		{Direction: message.DirectionIncoming, ExtractedFields: map[string]message.ExtractedField{
			"favorite_color": {Value: "green", Confidence: 1},
		}},
	}
	state := DeriveConversationState(Candidate{}, msgs)
	require.Len(t, state.Fields, len(TrackedFields))
	for _, key := range TrackedFields {
		assert.Equal(t, FieldStatusMissing, state.Fields[key].Status())
	}
}

func TestDeriveConversationState_SnakeAndCamelAliases(t *testing.T) {
	msgs := []message.Message{
		{Direction: message.DirectionIncoming, ExtractedFields: map[string]message.ExtractedField{
			"current_company": {Value: "Acme", Confidence: 0.75},
			"yearsExperience": {Value: 3, Confidence: 0.8},
		}},
	}
	state := DeriveConversationState(Candidate{}, msgs)
	assert.Equal(t, "Acme", state.Fields[FieldCurrentCompany].Value)
	assert.Equal(t, 3, state.Fields[FieldExperience].Value)
}

func TestOverallConfidence_MeanOfNonZero(t *testing.T) {
	c := Candidate{
		Email: "anna@example.com",
		Phone: "+7 900 123-45-67",
		ParsedFields: []ParsedField{
			{Name: "email", Confidence: 90},
			{Name: "phone", Confidence: 70},
		},
	}
	state := DeriveConversationState(c, nil)
	// (0.9 + 0.7) / 2 * 100
	assert.InDelta(t, 80, OverallConfidence(state), 1e-9)
}

func TestPendingFields_CanonicalOrder(t *testing.T) {
	c := Candidate{Name: "Anna", Email: "a@b.c"}
	msgs := []message.Message{
		{Direction: message.DirectionOutgoing, AskedFields: []string{"location"}},
	}
	pending := PendingFields(DeriveConversationState(c, msgs))
	assert.Equal(t, []FieldKey{FieldPhone, FieldExperience, FieldSkills, FieldCurrentCompany, FieldEducation}, pending)
}
