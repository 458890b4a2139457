package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruitflow/api/http/presenter"
	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/job"
	"github.com/artem13815/recruitflow/pkg/message"
	"github.com/artem13815/recruitflow/pkg/resume"
)

// DashboardHandler собирает сводку по воронке из нескольких
// репозиториев; отдельного usecase тут нет.
type DashboardHandler struct {
	candidates candidate.Repository
	resumes    resume.Repository
	messages   message.Repository
	jobs       job.Repository
}

func NewDashboardHandler(candidates candidate.Repository, resumes resume.Repository, messages message.Repository, jobs job.Repository) *DashboardHandler {
	return &DashboardHandler{candidates: candidates, resumes: resumes, messages: messages, jobs: jobs}
}

// Stats отдаёт счётчики воронки: кандидаты по статусам, разобранные
// резюме, сообщения, фоновые задачи.
// @Summary Сводка по воронке
// @Tags    Дашборд
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	org := orgID(c)
	ctx := c.Context()

	byStatus, err := h.candidates.CountByStatus(ctx, org)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load candidate stats")
	}
	total := 0
	for _, n := range byStatus {
		total += n
	}
	parsed, err := h.resumes.CountParsed(ctx, org)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load resume stats")
	}
	sent, err := h.messages.CountByDirection(ctx, org, message.DirectionOutgoing)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load message stats")
	}
	received, err := h.messages.CountByDirection(ctx, org, message.DirectionIncoming)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load message stats")
	}
	jobStats, err := h.jobs.CountByStatus(ctx, org)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load job stats")
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"candidates": fiber.Map{
			"total":    total,
			"byStatus": byStatus,
		},
		"resumesParsed": parsed,
		"messages": fiber.Map{
			"sent":     sent,
			"received": received,
		},
		"jobs": jobStats,
	})
}

// Activity отдаёт последние сообщения ждущие HR и свежих кандидатов.
// @Summary Последняя активность
// @Tags    Дашборд
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /dashboard/activity [get]
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	org := orgID(c)
	ctx := c.Context()

	pending, err := h.messages.ListPendingReview(ctx, org, 10, 0)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load pending messages")
	}
	if pending == nil {
		pending = []message.Message{}
	}
	recent, _, err := h.candidates.List(ctx, org, candidate.Filters{}, 10, 0)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load recent candidates")
	}
	if recent == nil {
		recent = []candidate.Candidate{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"pendingReview":    pending,
		"recentCandidates": recent,
	})
}
