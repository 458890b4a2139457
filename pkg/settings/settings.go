package settings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращается, когда настройки ещё не сохранялись.
var ErrNotFound = errors.New("settings not found")

// Settings — настройки переписки организации.
type Settings struct {
	OrganizationID uuid.UUID `json:"-"`

	SenderName       string `json:"senderName"`
	AutoReplyEnabled bool   `json:"autoReplyEnabled"`
	// Вопросы кандидатов всегда идут через HR-ревью; флаг управляет
	// только needs_clarification.
	ReviewClarifications bool `json:"reviewClarifications"`

	WorkingHoursStart string `json:"workingHoursStart"` // "09:00"
	WorkingHoursEnd   string `json:"workingHoursEnd"`   // "18:00"

	IntentTemplates map[string]string `json:"intentTemplates"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository — порт хранения настроек.
type Repository interface {
	Get(ctx context.Context, orgID uuid.UUID) (Settings, error)
	Put(ctx context.Context, s Settings) error
}

// Defaults — настройки по умолчанию для новой организации.
func Defaults(orgID uuid.UUID) Settings {
	return Settings{
		OrganizationID:       orgID,
		SenderName:           "Recruiting Team",
		AutoReplyEnabled:     true,
		ReviewClarifications: false,
		WorkingHoursStart:    "09:00",
		WorkingHoursEnd:      "18:00",
		IntentTemplates: map[string]string{
			"initial_contact": "Hi {name}! I came across your profile and think you could be a great fit for a role we're hiring for. Would you be open to a quick chat?",
			"follow_up":       "Hi {name}, just following up on my earlier message. Looking forward to hearing from you!",
			"clarification":   "Hi {name}, thanks for your reply! Could you share a bit more detail? That would help us move forward.",
			"scheduling":      "Hi {name}, great news — we'd love to schedule a quick call with you. What times work best this week?",
		},
		UpdatedAt: time.Now().UTC(),
	}
}

// GetOrDefaults возвращает сохранённые настройки либо дефолтные.
func GetOrDefaults(ctx context.Context, repo Repository, orgID uuid.UUID) (Settings, error) {
	s, err := repo.Get(ctx, orgID)
	if errors.Is(err, ErrNotFound) {
		return Defaults(orgID), nil
	}
	return s, err
}
