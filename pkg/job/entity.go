package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращается, когда задача не существует.
var ErrNotFound = errors.New("job not found")

// Type — тип фоновой задачи.
type Type string

const (
	TypeParseResume     Type = "parse_resume"
	TypeSendMessage     Type = "send_message"
	TypeReprocessResume Type = "reprocess_resume"
)

// Status — статус фоновой задачи.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job — единица работы фонового воркера.
type Job struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"-"`

	Type     Type   `json:"type"`
	Status   Status `json:"status"`
	Progress int    `json:"progress"` // 0..100

	CandidateID *uuid.UUID `json:"candidateId,omitempty"`
	ResumeID    *uuid.UUID `json:"resumeId,omitempty"`
	MessageID   *uuid.UUID `json:"messageId,omitempty"`

	Error string `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Repository — порт хранения задач. ClaimNext атомарно забирает
// самую старую queued-задачу и переводит её в processing, чтобы
// несколько воркеров не схватили одну и ту же.
type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ClaimNext(ctx context.Context) (Job, bool, error)
	Update(ctx context.Context, j Job) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Job, error)
	CountByStatus(ctx context.Context, orgID uuid.UUID) (map[Status]int, error)
}
