package message

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращается, когда сообщения с таким id нет.
var ErrNotFound = errors.New("message not found")

// Direction — направление сообщения в переписке с кандидатом.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// DeliveryStatus — статус доставки исходящего сообщения.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryRead      DeliveryStatus = "read"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Classification — результат классификации входящего ответа кандидата.
type Classification string

const (
	ClassInterested         Classification = "interested"
	ClassNotInterested      Classification = "not_interested"
	ClassNeedsClarification Classification = "needs_clarification"
	ClassQuestion           Classification = "question"
)

// ExtractedField хранит значение, извлечённое из ответа кандидата.
// Value — строка или список строк (skills), как в ответе API.
type ExtractedField struct {
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Message — единица переписки с кандидатом.
// Для входящих сообщений заполняются поля анализа (classification,
// extractedFields, HR-review флаги); для исходящих — askedFields и intent.
type Message struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidateId"`

	Direction Direction      `json:"direction"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Status    DeliveryStatus `json:"status"`

	Intent      string   `json:"intent,omitempty"`
	GeneratedBy string   `json:"generatedBy,omitempty"` // ai, ai_auto, manual, hr
	AskedFields []string `json:"askedFields,omitempty"`

	Classification   Classification            `json:"classification,omitempty"`
	SuggestedReply   string                    `json:"suggestedReply,omitempty"`
	ExtractedFields  map[string]ExtractedField `json:"extractedFields,omitempty"`
	RequiresHRReview bool                      `json:"requiresHRReview"`
	AISuggestedReply string                    `json:"aiSuggestedReply,omitempty"`
	HRApproved       bool                      `json:"hrApproved"`
	HRApprovedAt     *time.Time                `json:"hrApprovedAt,omitempty"`
	HRApprovedBy     *uuid.UUID                `json:"hrApprovedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Repository — порт доступа к сообщениям.
// ListByCandidate возвращает сообщения в порядке переписки
// (timestamp, затем порядок вставки) — этот порядок является
// авторитетным для replay в деривации состояния диалога.
type Repository interface {
	Create(ctx context.Context, m Message) error
	GetByID(ctx context.Context, id uuid.UUID) (Message, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Message, error)
	Update(ctx context.Context, m Message) error
	CountByDirection(ctx context.Context, orgID uuid.UUID, dir Direction) (int, error)
	ListPendingReview(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]Message, error)
}
