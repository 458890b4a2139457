package messaging

import (
	"fmt"
	"strings"

	"github.com/artem13815/recruitflow/pkg/candidate"
)

// Интенты исходящих сообщений.
const (
	IntentInitialContact = "initial_contact"
	IntentFollowUp       = "follow_up"
	IntentClarification  = "clarification"
	IntentScheduling     = "scheduling"
)

const composeSystemPrompt = `You are a recruiting assistant that writes short, warm outreach messages to job candidates on behalf of an HR specialist. Write 2-4 sentences, address the candidate by name, ask only for the listed missing details, and never invent facts about the role or the candidate.`

// buildComposePrompt собирает user-промпт для LLM из профиля
// кандидата и списка недостающих полей.
func buildComposePrompt(c candidate.Candidate, pending []candidate.FieldKey, intent, instructions string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Intent: %s\n", intent)
	fmt.Fprintf(&b, "Candidate name: %s\n", orUnknown(c.Name))
	if c.CurrentCompany != "" {
		fmt.Fprintf(&b, "Current company: %s\n", c.CurrentCompany)
	}
	if c.YearsExperience != nil {
		fmt.Fprintf(&b, "Years of experience: %d\n", *c.YearsExperience)
	}
	if len(c.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(c.Skills, ", "))
	}
	if len(pending) > 0 {
		labels := make([]string, 0, len(pending))
		for _, f := range pending {
			labels = append(labels, fieldLabel(f))
		}
		fmt.Fprintf(&b, "Missing details to ask about: %s\n", strings.Join(labels, ", "))
	}
	if instructions != "" {
		fmt.Fprintf(&b, "Extra instructions from HR: %s\n", instructions)
	}
	b.WriteString("Write the message now.")
	return b.String()
}

// templateMessage — запасной вариант, когда LLM недоступна. Текст
// берётся из настроек организации по интенту ({name} подставляется),
// при отсутствии — из дефолтного шаблона initial_contact.
func templateMessage(c candidate.Candidate, pending []candidate.FieldKey, intent string, templates map[string]string) string {
	name := c.Name
	if name == "" {
		name = "there"
	}
	tmpl := templates[intent]
	if tmpl == "" {
		tmpl = templates[IntentInitialContact]
	}
	if tmpl == "" {
		tmpl = "Hi {name}! I came across your profile and think you could be a great fit for a role we're hiring for. Would you be open to a quick chat?"
	}
	msg := strings.ReplaceAll(tmpl, "{name}", name)
	if ask := askSentence(pending); ask != "" && intent != IntentScheduling {
		msg += ask
	}
	return msg
}

// askSentence — просьба поделиться недостающими полями (не более трёх).
func askSentence(pending []candidate.FieldKey) string {
	if len(pending) == 0 {
		return ""
	}
	labels := make([]string, 0, 3)
	for _, f := range pending {
		if len(labels) == 3 {
			break
		}
		labels = append(labels, fieldLabel(f))
	}
	return fmt.Sprintf(" Could you share your %s?", strings.Join(labels, ", "))
}

// askedFieldKeywords — какие формулировки в тексте сообщения считаются
// вопросом про конкретное поле.
var askedFieldKeywords = map[candidate.FieldKey][]string{
	candidate.FieldName:           {"your name", "full name"},
	candidate.FieldEmail:          {"email"},
	candidate.FieldPhone:          {"phone", "number to reach"},
	candidate.FieldExperience:     {"experience", "years"},
	candidate.FieldSkills:         {"skills", "technologies", "tech stack"},
	candidate.FieldCurrentCompany: {"current company", "current employer", "where do you work"},
	candidate.FieldEducation:      {"education", "degree"},
	candidate.FieldLocation:       {"location", "based", "where are you"},
}

// DetectAskedFields находит в тексте исходящего сообщения поля,
// о которых в нём спрашивается. Порядок — канонический.
func DetectAskedFields(content string) []string {
	lower := strings.ToLower(content)
	var out []string
	for _, key := range candidate.TrackedFields {
		for _, kw := range askedFieldKeywords[key] {
			if strings.Contains(lower, kw) {
				out = append(out, string(key))
				break
			}
		}
	}
	return out
}

func fieldLabel(f candidate.FieldKey) string {
	switch f {
	case candidate.FieldName:
		return "full name"
	case candidate.FieldEmail:
		return "email address"
	case candidate.FieldPhone:
		return "phone number"
	case candidate.FieldExperience:
		return "years of experience"
	case candidate.FieldSkills:
		return "key skills"
	case candidate.FieldCurrentCompany:
		return "current company"
	case candidate.FieldEducation:
		return "education"
	case candidate.FieldLocation:
		return "location"
	default:
		return string(f)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
