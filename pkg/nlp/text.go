package nlp

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}+#./]+`)

// Normalize приводит строку к нижнему регистру и заменяет все
// «не-слова» на пробелы. Символы +, #, . и / сохраняются, чтобы не
// ломать названия навыков вида c++, c#, node.js, ci/cd; при этом
// точки и слэши на краях токенов («docker.», одиночный «/») срезаются.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, " ")
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, t := range fields {
		t = strings.Trim(t, "./")
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return strings.Join(out, " ")
}

// Tokens возвращает множество токенов нормализованного текста.
func Tokens(normalized string) map[string]struct{} {
	out := make(map[string]struct{})
	if normalized == "" {
		return out
	}
	for _, t := range strings.Split(normalized, " ") {
		if t == "" {
			continue
		}
		out[t] = struct{}{}
	}
	return out
}

// ContainsPhrase проверяет вхождение нормализованной фразы в
// нормализованный текст по границам токенов.
func ContainsPhrase(normalizedText, phrase string) bool {
	phrase = Normalize(phrase)
	if phrase == "" {
		return false
	}
	padded := " " + normalizedText + " "
	return strings.Contains(padded, " "+phrase+" ")
}
