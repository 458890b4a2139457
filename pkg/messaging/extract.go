package messaging

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/artem13815/recruitflow/pkg/message"
	"github.com/artem13815/recruitflow/pkg/nlp"
)

var (
	reReplyEmail = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	reReplyPhone = regexp.MustCompile(`\+?\d[\d \t().\-]{7,17}\d`)
	reReplyYears = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years?|лет|года?)\b`)
	reReplyComp  = regexp.MustCompile(`(?i)\b(?:work(?:ing)? at|i'?m at|currently at|работаю в)\s+([A-ZА-Я][\w.&\- ]{1,40}?)(?:[,.\n]|$)`)
	reReplyLoc   = regexp.MustCompile(`(?i)\b(?:based in|located in|live in|живу в)\s+([A-ZА-Я][\wа-яА-Я.\- ]{1,40}?)(?:[,.\n]|$)`)
)

// ExtractReplyFields вытаскивает значения отслеживаемых полей из
// текста ответа кандидата. Уверенность — 0..1, как её потом читает
// деривация состояния диалога.
func ExtractReplyFields(content string) map[string]message.ExtractedField {
	out := make(map[string]message.ExtractedField)

	if m := reReplyEmail.FindString(content); m != "" {
		out["email"] = message.ExtractedField{Value: strings.ToLower(m), Confidence: 0.95}
	}
	if m := reReplyPhone.FindString(content); m != "" {
		out["phone"] = message.ExtractedField{Value: strings.TrimSpace(m), Confidence: 0.9}
	}
	if m := reReplyYears.FindStringSubmatch(content); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil && years <= 60 {
			out["experience"] = message.ExtractedField{Value: years, Confidence: 0.85}
		}
	}
	if m := reReplyComp.FindStringSubmatch(content); m != nil {
		out["currentCompany"] = message.ExtractedField{Value: strings.TrimSpace(m[1]), Confidence: 0.75}
	}
	if m := reReplyLoc.FindStringSubmatch(content); m != nil {
		out["location"] = message.ExtractedField{Value: strings.TrimSpace(m[1]), Confidence: 0.7}
	}
	if skills := nlp.ExtractSkills(content); len(skills) > 0 {
		out["skills"] = message.ExtractedField{Value: skills, Confidence: 0.8}
	}
	return out
}
