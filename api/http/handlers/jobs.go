package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruitflow/api/http/presenter"
	"github.com/artem13815/recruitflow/pkg/job"
)

type JobsHandler struct {
	useCase job.UseCase
}

func NewJobsHandler(useCase job.UseCase) *JobsHandler {
	return &JobsHandler{useCase: useCase}
}

// Get отдаёт фоновую задачу по id (для поллинга прогресса).
// @Summary Задача по id
// @Tags    Задачи
// @Produce json
// @Param   id path string true "id задачи"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	j, err := h.useCase.Get(c.Context(), orgID(c), id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load job")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"job": j})
}

// ListByCandidate отдаёт задачи кандидата (разборы резюме, отправки).
// @Summary Задачи кандидата
// @Tags    Задачи
// @Produce json
// @Param   candidateId path string true "id кандидата"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /jobs/candidate/{candidateId} [get]
func (h *JobsHandler) ListByCandidate(c *fiber.Ctx) error {
	candidateID, ok := pathID(c, "candidateId")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid candidate id")
	}
	jobs, err := h.useCase.ListByCandidate(c.Context(), orgID(c), candidateID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list jobs")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"jobs": jobs})
}
