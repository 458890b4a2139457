package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruitflow/pkg/candidate"
)

const sampleResume = `Ivan Petrov
Senior Backend Engineer at Acme Corp.
ivan.petrov@example.com
+7 (900) 123-45-67
7 years of experience with Go, PostgreSQL and Docker.
Bachelor of Computer Science, Moscow State University
Location: Moscow
`

func TestExtractFields_FullResume(t *testing.T) {
	ex := ExtractFields(sampleResume)

	assert.Equal(t, "Ivan Petrov", ex.Name)
	assert.Equal(t, "ivan.petrov@example.com", ex.Email)
	assert.Equal(t, "+7 (900) 123-45-67", ex.Phone)
	require.NotNil(t, ex.YearsExperience)
	assert.Equal(t, 7, *ex.YearsExperience)
	assert.Equal(t, "Acme Corp", ex.CurrentCompany)
	assert.Contains(t, ex.Education, "Bachelor")
	assert.Equal(t, "Moscow", ex.Location)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, ex.Skills)
}

func TestExtractFields_ParsedFieldProvenance(t *testing.T) {
	ex := ExtractFields(sampleResume)

	byName := make(map[string]candidate.ParsedField)
	for _, f := range ex.Fields {
		byName[f.Name] = f
	}
	email, ok := byName["email"]
	require.True(t, ok)
	assert.Equal(t, candidate.SourceResume, email.Source)
	assert.InDelta(t, 95, email.Confidence, 1e-9)

	// Эвристика имени слабее регулярок по контактам.
	name, ok := byName["name"]
	require.True(t, ok)
	assert.Less(t, name.Confidence, email.Confidence)
}

func TestExtractFields_PhoneStopsAtLineEnd(t *testing.T) {
	// Цифра в начале следующей строки не прилипает к номеру.
	ex := ExtractFields("+7 (900) 123-45-67\n7 years of experience")
	assert.Equal(t, "+7 (900) 123-45-67", ex.Phone)
}

func TestExtractFields_Empty(t *testing.T) {
	ex := ExtractFields("")
	assert.Empty(t, ex.Fields)
	assert.Nil(t, ex.YearsExperience)
	assert.Empty(t, ex.Email)
}

func TestGuessName_SkipsHeadersAndContacts(t *testing.T) {
	assert.Equal(t, "", guessName("ivan@example.com\nIvan Petrov"))
	assert.Equal(t, "Anna Petrova", guessName("Resume\nAnna Petrova\nEngineer"))
	assert.Equal(t, "", guessName("Engineer"))
}

func TestAllowedExt(t *testing.T) {
	assert.True(t, AllowedExt("cv.pdf"))
	assert.True(t, AllowedExt("CV.DOCX"))
	assert.False(t, AllowedExt("cv.txt"))
	assert.False(t, AllowedExt("cv"))
}
