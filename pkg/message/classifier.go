package message

import "strings"

// ReplyAnalysis — результат эвристической классификации ответа кандидата.
// AISuggestedReply — черновик ответа, который нельзя отправлять
// автоматически: он ждёт подтверждения HR.
type ReplyAnalysis struct {
	Classification   Classification `json:"classification"`
	SuggestedReply   string         `json:"suggestedReply"`
	RequiresHRReview bool           `json:"requiresHRReview"`
	AISuggestedReply string         `json:"aiSuggestedReply,omitempty"`
}

// Порядок проверок фиксирован: первое совпадение выигрывает.
// "not interested" содержит "interested", поэтому отказ проверяется
// раньше согласия.
var (
	declinePhrases = []string{"not interested", "no thanks", "pass", "decline"}

	questionIndicators = []string{
		"?", "what", "when", "how",
		"salary", "compensation", "package", "pay", "benefits",
		"remote", "hybrid", "location",
		"why", "who", "which",
	}

	affirmativePhrases = []string{"yes", "interested", "available", "sure"}

	clarificationPhrases = []string{"clarif", "more info"}
)

// ClassifyReply классифицирует текст ответа кандидата и решает,
// нужен ли человеческий review перед автоматическим ответом.
// Функция тотальна: для любой строки (включая пустую) возвращает
// результат; несматченный текст попадает в ветку по умолчанию
// (interested) — поведение задокументировано, не «чинить» без
// подтверждения продукта.
func ClassifyReply(text string) ReplyAnalysis {
	t := strings.ToLower(text)

	if containsAny(t, declinePhrases) {
		return ReplyAnalysis{
			Classification: ClassNotInterested,
			SuggestedReply: tmplDecline,
		}
	}

	if containsAny(t, questionIndicators) {
		draft := questionDraft(t)
		return ReplyAnalysis{
			Classification:   ClassQuestion,
			SuggestedReply:   draft,
			RequiresHRReview: true,
			AISuggestedReply: draft,
		}
	}

	if containsAny(t, affirmativePhrases) {
		return ReplyAnalysis{
			Classification: ClassInterested,
			SuggestedReply: tmplScheduling,
		}
	}

	if containsAny(t, clarificationPhrases) {
		return ReplyAnalysis{
			Classification: ClassNeedsClarification,
			SuggestedReply: tmplClarification,
		}
	}

	return ReplyAnalysis{
		Classification: ClassInterested,
		SuggestedReply: tmplAcknowledgment,
	}
}

// questionDraft подбирает шаблон черновика по теме вопроса.
func questionDraft(t string) string {
	switch {
	case containsAny(t, []string{"salary", "compensation", "pay", "package"}):
		return tmplCompensation
	case containsAny(t, []string{"remote", "hybrid", "office"}):
		return tmplWorkArrangement
	case containsAny(t, []string{"team", "who"}):
		return tmplTeam
	default:
		return tmplQuestionGeneric
	}
}

func containsAny(t string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}
