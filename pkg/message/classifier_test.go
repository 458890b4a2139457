package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyReply_Decline(t *testing.T) {
	for _, text := range []string{
		"Not interested, thanks",
		"No thanks",
		"I'll pass on this one",
		"I have to decline",
	} {
		a := ClassifyReply(text)
		assert.Equal(t, ClassNotInterested, a.Classification, text)
		assert.False(t, a.RequiresHRReview, text)
		assert.NotEmpty(t, a.SuggestedReply, text)
	}
}

func TestClassifyReply_QuestionGoesToHRReview(t *testing.T) {
	a := ClassifyReply("What's the salary range?")
	require.Equal(t, ClassQuestion, a.Classification)
	assert.True(t, a.RequiresHRReview)
	assert.NotEmpty(t, a.AISuggestedReply)
	// Вопрос про деньги получает компенсационный черновик.
	assert.Equal(t, tmplCompensation, a.AISuggestedReply)
	assert.Equal(t, a.SuggestedReply, a.AISuggestedReply)
}

func TestClassifyReply_QuestionTopics(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Is the role remote or hybrid?", tmplWorkArrangement},
		{"Who is on the team?", tmplTeam},
		{"Why is the position open?", tmplQuestionGeneric},
		{"What benefits do you offer?", tmplQuestionGeneric},
	}
	for _, tt := range tests {
		a := ClassifyReply(tt.text)
		require.Equal(t, ClassQuestion, a.Classification, tt.text)
		assert.Equal(t, tt.want, a.AISuggestedReply, tt.text)
	}
}

func TestClassifyReply_DeclineBeatsQuestion(t *testing.T) {
	// Отказ проверяется раньше вопросительных индикаторов.
	a := ClassifyReply("No thanks, but what was the salary?")
	assert.Equal(t, ClassNotInterested, a.Classification)
	assert.False(t, a.RequiresHRReview)
}

func TestClassifyReply_Affirmative(t *testing.T) {
	a := ClassifyReply("Yes, I'm available next week")
	assert.Equal(t, ClassInterested, a.Classification)
	assert.False(t, a.RequiresHRReview)
	assert.Equal(t, tmplScheduling, a.SuggestedReply)
}

func TestClassifyReply_Clarification(t *testing.T) {
	a := ClassifyReply("Could you send more info about the role first")
	// "more info" без вопросительных индикаторов.
	assert.Equal(t, ClassNeedsClarification, a.Classification)
	assert.Equal(t, tmplClarification, a.SuggestedReply)
}

func TestClassifyReply_DefaultIsInterested(t *testing.T) {
	// Нераспознанный текст считается заинтересованностью.
	a := ClassifyReply("asdkjasd")
	assert.Equal(t, ClassInterested, a.Classification)
	assert.False(t, a.RequiresHRReview)
	assert.Equal(t, tmplAcknowledgment, a.SuggestedReply)
}

func TestClassifyReply_CaseInsensitive(t *testing.T) {
	a := ClassifyReply("NOT INTERESTED")
	assert.Equal(t, ClassNotInterested, a.Classification)
}
