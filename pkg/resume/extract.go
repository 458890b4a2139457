package resume

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/nlp"
)

// Extraction — результат эвристического разбора текста резюме.
type Extraction struct {
	Name            string
	Email           string
	Phone           string
	YearsExperience *int
	Skills          []string
	CurrentCompany  string
	Education       string
	Location        string

	Fields []candidate.ParsedField
}

var (
	reEmail = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// Пробелы только внутри строки: перевод строки завершает номер.
	rePhone = regexp.MustCompile(`\+?\d[\d \t().\-]{7,17}\d`)
	// «5 years of experience», «7+ years», «over 10 years».
	reExperience = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years?|лет|года?)\b`)
	// «Engineer at Acme», «работаю в Acme».
	reCompany  = regexp.MustCompile(`(?i)\b(?:at|в компании)\s+([A-ZА-Я][\w.&\- ]{1,40}?)(?:[,.\n]|$)`)
	reLocation = regexp.MustCompile(`(?i)\b(?:location|based in|город|г\.)[:\s]+([A-ZА-Я][\wа-яА-Я.\- ]{1,40}?)(?:[,.\n]|$)`)
)

var educationKeywords = []string{
	"bachelor", "master", "phd", "b.sc", "m.sc", "mba",
	"бакалавр", "магистр", "университет", "university", "institute",
}

// ExtractFields вытаскивает контактные и профильные поля из плоского
// текста резюме. Каждое найденное поле получает confidence 0..100 в
// зависимости от надёжности эвристики.
func ExtractFields(text string) Extraction {
	var ex Extraction
	add := func(name, value string, confidence float64) {
		ex.Fields = append(ex.Fields, candidate.ParsedField{
			Name:       name,
			Value:      value,
			Confidence: confidence,
			Source:     candidate.SourceResume,
		})
	}

	if m := reEmail.FindString(text); m != "" {
		ex.Email = strings.ToLower(m)
		add("email", ex.Email, 95)
	}
	if m := rePhone.FindString(text); m != "" {
		ex.Phone = strings.TrimSpace(m)
		add("phone", ex.Phone, 90)
	}
	if m := reExperience.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil && years <= 60 {
			ex.YearsExperience = &years
			add("experience", m[1], 85)
		}
	}
	if name := guessName(text); name != "" {
		ex.Name = name
		add("name", name, 75)
	}
	if m := reCompany.FindStringSubmatch(text); m != nil {
		ex.CurrentCompany = strings.TrimSpace(m[1])
		add("current_company", ex.CurrentCompany, 70)
	}
	if edu := findEducationLine(text); edu != "" {
		ex.Education = edu
		add("education", edu, 70)
	}
	if m := reLocation.FindStringSubmatch(text); m != nil {
		ex.Location = strings.TrimSpace(m[1])
		add("location", ex.Location, 65)
	}
	if skills := nlp.ExtractSkills(text); len(skills) > 0 {
		ex.Skills = skills
		add("skills", strings.Join(skills, ", "), 80)
	}
	return ex
}

// guessName — первая непустая строка, если похожа на имя: два-четыре
// слова, без цифр и служебных заголовков.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "resume") || strings.Contains(lower, "curriculum") || strings.Contains(lower, "резюме") {
			continue
		}
		if strings.ContainsAny(line, "0123456789@/") {
			return ""
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			return ""
		}
		return line
	}
	return ""
}

func findEducationLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, kw := range educationKeywords {
			if strings.Contains(lower, kw) {
				line = strings.TrimSpace(line)
				if len(line) > 120 {
					line = line[:120]
				}
				return line
			}
		}
	}
	return ""
}
