package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращается, когда резюме не существует.
var ErrNotFound = errors.New("resume not found")

// Resume хранит метаданные загруженного файла и результат парсинга.
type Resume struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidateId"`

	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"` // pdf, docx
	FileSize    int64  `json:"fileSize"`
	StoragePath string `json:"-"`

	RawText    string     `json:"rawText,omitempty"`
	ParseJobID *uuid.UUID `json:"parseJobId,omitempty"`
	IsParsed   bool       `json:"isParsed"`

	UploadedAt    time.Time  `json:"uploadedAt"`
	ParsedAt      *time.Time `json:"parsedAt,omitempty"`
	ReprocessedAt *time.Time `json:"reprocessedAt,omitempty"`
}

// Repository — порт хранения резюме.
type Repository interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, id uuid.UUID) (Resume, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Resume, error)
	Update(ctx context.Context, r Resume) error
	CountParsed(ctx context.Context, orgID uuid.UUID) (int, error)
}
