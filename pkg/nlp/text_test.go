package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"C++ and C# developer", "c++ and c# developer"},
		{"Node.js / CI/CD", "node.js ci/cd"},
		{"  много   пробелов  ", "много пробелов"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestContainsPhrase(t *testing.T) {
	text := Normalize("Senior Go developer with Kubernetes experience")
	assert.True(t, ContainsPhrase(text, "go developer"))
	assert.True(t, ContainsPhrase(text, "Kubernetes"))
	// Подстрока внутри токена — не совпадение.
	assert.False(t, ContainsPhrase(text, "develop"))
	assert.False(t, ContainsPhrase(text, ""))
}

func TestExtractSkills(t *testing.T) {
	skills := ExtractSkills("Backend engineer: Golang, PostgreSQL, k8s and a bit of React")
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes", "React"}, skills)
}

func TestExtractSkills_AliasesCollapse(t *testing.T) {
	skills := ExtractSkills("go golang Go")
	assert.Equal(t, []string{"Go"}, skills)
}

func TestExtractSkills_NoMatches(t *testing.T) {
	assert.Empty(t, ExtractSkills("I enjoy gardening and cooking"))
}
