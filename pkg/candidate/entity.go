package candidate

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status — закрытый enum статуса кандидата в воронке.
// Неизвестные значения на границе системы маппятся в StatusUnknown,
// а не пробрасываются как произвольные строки.
type Status string

const (
	StatusNew                Status = "new"
	StatusContacted          Status = "contacted"
	StatusInterested         Status = "interested"
	StatusNotInterested      Status = "not_interested"
	StatusNeedsClarification Status = "needs_clarification"
	StatusUnknown            Status = "unknown"
)

// ParseStatus валидирует строку статуса с границы (БД, API).
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusNew, StatusContacted, StatusInterested, StatusNotInterested, StatusNeedsClarification:
		return Status(s)
	default:
		return StatusUnknown
	}
}

// Source — происхождение значения поля.
type Source string

const (
	SourceResume Source = "resume"
	SourceReply  Source = "reply"
	SourceManual Source = "manual"
)

// FieldKey — один из фиксированных атрибутов кандидата, которые
// система активно собирает в диалоге.
type FieldKey string

const (
	FieldName           FieldKey = "name"
	FieldEmail          FieldKey = "email"
	FieldPhone          FieldKey = "phone"
	FieldExperience     FieldKey = "experience"
	FieldSkills         FieldKey = "skills"
	FieldCurrentCompany FieldKey = "currentCompany"
	FieldEducation      FieldKey = "education"
	FieldLocation       FieldKey = "location"
)

// TrackedFields — канонический порядок отслеживаемых полей.
// Порядок используется при выборе следующих вопросов кандидату.
var TrackedFields = []FieldKey{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldExperience,
	FieldSkills,
	FieldCurrentCompany,
	FieldEducation,
	FieldLocation,
}

// ParsedField — поле, извлечённое из резюме, с уверенностью 0–100.
type ParsedField struct {
	Name          string  `json:"name"`
	Value         string  `json:"value,omitempty"`
	Confidence    float64 `json:"confidence"` // 0-100
	RawExtraction string  `json:"rawExtraction,omitempty"`
	Source        Source  `json:"source,omitempty"`
}

// Candidate — кандидат со всеми собранными данными.
// Резюме и сообщения живут в своих репозиториях; хендлеры
// собирают полный ответ из нескольких источников.
type Candidate struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"-"`
	OwnerID        uuid.UUID `json:"-"`

	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	YearsExperience *int     `json:"yearsExperience,omitempty"`
	Skills          []string `json:"skills"`
	CurrentCompany  string   `json:"currentCompany,omitempty"`
	Education       string   `json:"education,omitempty"`
	Location        string   `json:"location,omitempty"`

	PortfolioURL   string `json:"portfolioUrl,omitempty"`
	NoticePeriod   string `json:"noticePeriod,omitempty"`
	ExpectedSalary string `json:"expectedSalary,omitempty"`

	Status            Status        `json:"status"`
	Source            string        `json:"source,omitempty"` // resume_upload, manual_entry
	OverallConfidence float64       `json:"overallConfidence"`
	ParsedFields      []ParsedField `json:"parsedFields"`

	IsActive      bool       `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	DeletedAt     *time.Time `json:"-"`
}

// Filters — фильтры листинга кандидатов.
type Filters struct {
	Search        string
	Statuses      []Status
	Skills        []string
	MinExperience *int
	MaxExperience *int
	Location      string
}

// Repository — порт доступа к кандидатам.
// List возвращает страницу и общее количество под фильтром.
type Repository interface {
	Create(ctx context.Context, c Candidate) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (Candidate, error)
	GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (Candidate, error)
	List(ctx context.Context, orgID uuid.UUID, f Filters, limit, offset int) ([]Candidate, int, error)
	Update(ctx context.Context, c Candidate) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	UpsertParsedFields(ctx context.Context, candidateID uuid.UUID, fields []ParsedField) error
	CountByStatus(ctx context.Context, orgID uuid.UUID) (map[Status]int, error)
}
