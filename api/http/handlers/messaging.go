package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruitflow/api/http/presenter"
	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/message"
	"github.com/artem13815/recruitflow/pkg/messaging"
)

type MessagingHandler struct {
	useCase messaging.UseCase
}

func NewMessagingHandler(useCase messaging.UseCase) *MessagingHandler {
	return &MessagingHandler{useCase: useCase}
}

// Conversation отдаёт переписку с кандидатом и состояние диалога.
// @Summary Переписка с кандидатом
// @Tags    Сообщения
// @Produce json
// @Param   candidateId path string true "id кандидата"
// @Param   page query int false "страница"
// @Param   pageSize query int false "размер страницы"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /messages/conversation/{candidateId} [get]
func (h *MessagingHandler) Conversation(c *fiber.Ctx) error {
	candidateID, ok := pathID(c, "candidateId")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid candidate id")
	}
	page, pageSize := parsePage(c)
	msgs, state, err := h.useCase.Conversation(c.Context(), orgID(c), candidateID, page, pageSize)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load conversation")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"messages":          msgs,
		"conversationState": state,
	})
}

type previewRequest struct {
	CandidateID  string `json:"candidateId"`
	Intent       string `json:"intent"`
	Instructions string `json:"instructions"`
}

// GeneratePreview собирает черновик сообщения, ничего не отправляя.
// @Summary Черновик сообщения
// @Tags    Сообщения
// @Accept  json
// @Produce json
// @Param   input body previewRequest true "кандидат и интент"
// @Security BearerAuth
// @Success 200 {object} messaging.Preview
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /messages/generate-preview [post]
func (h *MessagingHandler) GeneratePreview(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	candidateID, ok := parseUUID(req.CandidateID)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid candidate id")
	}
	preview, err := h.useCase.ComposePreview(c.Context(), orgID(c), candidateID, req.Intent, req.Instructions)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to generate preview")
	}
	return presenter.JSON(c, http.StatusOK, preview)
}

type sendRequest struct {
	CandidateID string   `json:"candidateId"`
	Content     string   `json:"content"`
	Intent      string   `json:"intent"`
	AskedFields []string `json:"askedFields"`
	GeneratedBy string   `json:"generatedBy"`
}

// Send сохраняет исходящее сообщение и ставит доставку в очередь.
// @Summary Отправить сообщение
// @Tags    Сообщения
// @Accept  json
// @Produce json
// @Param   input body sendRequest true "сообщение"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /messages/send [post]
func (h *MessagingHandler) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	candidateID, ok := parseUUID(req.CandidateID)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid candidate id")
	}
	if strings.TrimSpace(req.Content) == "" {
		return presenter.Error(c, http.StatusBadRequest, "content is required")
	}
	m, err := h.useCase.Send(c.Context(), orgID(c), userID(c), candidateID, req.Content, req.Intent, req.AskedFields, req.GeneratedBy)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to send message")
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{"message": m})
}

type receiveReplyRequest struct {
	CandidateID string `json:"candidateId"`
	Content     string `json:"content"`
}

// ReceiveReply регистрирует входящий ответ кандидата (вебхук
// мессенджера или ручной ввод HR).
// @Summary Входящий ответ кандидата
// @Tags    Сообщения
// @Accept  json
// @Produce json
// @Param   input body receiveReplyRequest true "ответ кандидата"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /messages/receive-reply [post]
func (h *MessagingHandler) ReceiveReply(c *fiber.Ctx) error {
	var req receiveReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	candidateID, ok := parseUUID(req.CandidateID)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid candidate id")
	}
	if strings.TrimSpace(req.Content) == "" {
		return presenter.Error(c, http.StatusBadRequest, "content is required")
	}
	incoming, autoReply, err := h.useCase.ReceiveReply(c.Context(), orgID(c), candidateID, req.Content)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to process reply")
	}
	resp := fiber.Map{"message": incoming}
	if autoReply != nil {
		resp["autoReply"] = autoReply
	}
	return presenter.JSON(c, http.StatusCreated, resp)
}

type approveRequest struct {
	Reply string `json:"reply"`
}

// Approve подтверждает ответ на сообщение, ждущее HR-ревью.
// @Summary Подтвердить ответ HR
// @Tags    Сообщения
// @Accept  json
// @Produce json
// @Param   id path string true "id входящего сообщения"
// @Param   input body approveRequest false "отредактированный ответ (опционально)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /messages/{id}/approve [post]
func (h *MessagingHandler) Approve(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid message id")
	}
	var req approveRequest
	_ = c.BodyParser(&req) // тело опционально

	incoming, outgoing, err := h.useCase.Approve(c.Context(), orgID(c), userID(c), id, req.Reply)
	if err != nil {
		switch {
		case errors.Is(err, message.ErrNotFound), errors.Is(err, candidate.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "message not found")
		case errors.Is(err, messaging.ErrNotPendingReview):
			return presenter.Error(c, http.StatusConflict, "message is not pending hr review")
		case errors.Is(err, messaging.ErrAlreadyApproved):
			return presenter.Error(c, http.StatusConflict, "message is already approved")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to approve message")
		}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": incoming,
		"reply":   outgoing,
	})
}

// PendingReview отдаёт сообщения, ждущие решения HR.
// @Summary Очередь HR-ревью
// @Tags    Сообщения
// @Produce json
// @Param   page query int false "страница"
// @Param   pageSize query int false "размер страницы"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /messages/pending-review [get]
func (h *MessagingHandler) PendingReview(c *fiber.Ctx) error {
	page, pageSize := parsePage(c)
	msgs, err := h.useCase.PendingReview(c.Context(), orgID(c), page, pageSize)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load pending messages")
	}
	if msgs == nil {
		msgs = []message.Message{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"messages": msgs})
}
