package nlp

// Словарь навыков для извлечения из текста резюме. Ключ — каноническое
// имя, значение — варианты написания (нормализованные фразы).
// Намеренно небольшой; расширять по мере появления новых вакансий.
var skillAliases = map[string][]string{
	"Go":               {"go", "golang"},
	"Python":           {"python"},
	"JavaScript":       {"javascript", "js"},
	"TypeScript":       {"typescript", "ts"},
	"Java":             {"java"},
	"C++":              {"c++"},
	"C#":               {"c#"},
	"React":            {"react", "react.js", "reactjs"},
	"Vue":              {"vue", "vue.js"},
	"Angular":          {"angular"},
	"Node.js":          {"node.js", "nodejs", "node"},
	"FastAPI":          {"fastapi"},
	"Django":           {"django"},
	"Flask":            {"flask"},
	"PostgreSQL":       {"postgresql", "postgres"},
	"MySQL":            {"mysql"},
	"MongoDB":          {"mongodb", "mongo"},
	"Redis":            {"redis"},
	"Kafka":            {"kafka"},
	"RabbitMQ":         {"rabbitmq"},
	"Docker":           {"docker"},
	"Kubernetes":       {"kubernetes", "k8s"},
	"Terraform":        {"terraform"},
	"AWS":              {"aws", "amazon web services"},
	"GCP":              {"gcp", "google cloud"},
	"Azure":            {"azure"},
	"CI/CD":            {"ci/cd", "cicd", "ci cd"},
	"Git":              {"git"},
	"Linux":            {"linux"},
	"SQL":              {"sql"},
	"GraphQL":          {"graphql"},
	"gRPC":             {"grpc"},
	"REST":             {"rest", "rest api"},
	"Excel":            {"excel"},
	"Machine Learning": {"machine learning", "ml"},
}

// ExtractSkills возвращает канонические навыки, найденные в тексте,
// в детерминированном порядке первого вхождения.
func ExtractSkills(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	type hit struct {
		name string
		pos  int
	}
	var hits []hit
	padded := " " + normalized + " "
	for name, aliases := range skillAliases {
		best := -1
		for _, alias := range aliases {
			if idx := indexPhrase(padded, alias); idx >= 0 && (best < 0 || idx < best) {
				best = idx
			}
		}
		if best >= 0 {
			hits = append(hits, hit{name: name, pos: best})
		}
	}
	// Сортировка по позиции первого вхождения.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}
	return out
}

func indexPhrase(paddedText, phrase string) int {
	p := " " + phrase + " "
	for i := 0; i+len(p) <= len(paddedText); i++ {
		if paddedText[i:i+len(p)] == p {
			return i
		}
	}
	return -1
}
