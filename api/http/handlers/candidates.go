package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruitflow/api/http/presenter"
	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/resume"
)

type CandidatesHandler struct {
	useCase candidate.UseCase
	resumes resume.Repository
}

func NewCandidatesHandler(useCase candidate.UseCase, resumes resume.Repository) *CandidatesHandler {
	return &CandidatesHandler{useCase: useCase, resumes: resumes}
}

// List отдаёт страницу кандидатов организации под фильтрами.
// @Summary Список кандидатов
// @Tags    Кандидаты
// @Produce json
// @Param   page query int false "страница"
// @Param   pageSize query int false "размер страницы"
// @Param   search query string false "поиск по имени/email"
// @Param   status query string false "статусы через запятую"
// @Param   skills query string false "навыки через запятую"
// @Param   minExperience query int false "опыт от, лет"
// @Param   maxExperience query int false "опыт до, лет"
// @Param   location query string false "локация"
// @Security BearerAuth
// @Success 200 {object} presenter.Paginated
// @Router  /candidates [get]
func (h *CandidatesHandler) List(c *fiber.Ctx) error {
	page, pageSize := parsePage(c)
	items, total, err := h.useCase.List(c.Context(), orgID(c), parseFilters(c), page, pageSize)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list candidates")
	}
	if items == nil {
		items = []candidate.Candidate{}
	}
	return presenter.JSON(c, http.StatusOK, presenter.Paginated{
		Items: items, Total: total, Page: page, PageSize: pageSize,
	})
}

// Get отдаёт кандидата вместе с состоянием диалога и резюме.
// @Summary Карточка кандидата
// @Tags    Кандидаты
// @Produce json
// @Param   id path string true "id кандидата"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id} [get]
func (h *CandidatesHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid candidate id")
	}
	cand, state, err := h.useCase.Get(c.Context(), orgID(c), id)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load candidate")
	}
	resumes, err := h.resumes.ListByCandidate(c.Context(), cand.ID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load resumes")
	}
	if resumes == nil {
		resumes = []resume.Resume{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"candidate":         cand,
		"conversationState": state,
		"pendingFields":     candidate.PendingFields(state),
		"resumes":           resumes,
	})
}

type updateCandidateRequest struct {
	Name            *string   `json:"name"`
	Email           *string   `json:"email"`
	Phone           *string   `json:"phone"`
	YearsExperience *int      `json:"yearsExperience"`
	Skills          *[]string `json:"skills"`
	CurrentCompany  *string   `json:"currentCompany"`
	Education       *string   `json:"education"`
	Location        *string   `json:"location"`
	NoticePeriod    *string   `json:"noticePeriod"`
	ExpectedSalary  *string   `json:"expectedSalary"`
	Status          *string   `json:"status"`
}

// Update частично обновляет кандидата (ручное редактирование HR).
// @Summary Обновить кандидата
// @Tags    Кандидаты
// @Accept  json
// @Produce json
// @Param   id path string true "id кандидата"
// @Param   input body updateCandidateRequest true "изменяемые поля"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id} [put]
func (h *CandidatesHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid candidate id")
	}
	var req updateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	upd := candidate.Update{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		YearsExperience: req.YearsExperience,
		Skills:          req.Skills,
		CurrentCompany:  req.CurrentCompany,
		Education:       req.Education,
		Location:        req.Location,
		NoticePeriod:    req.NoticePeriod,
		ExpectedSalary:  req.ExpectedSalary,
	}
	if req.Status != nil {
		st := candidate.ParseStatus(*req.Status)
		upd.Status = &st
	}
	cand, err := h.useCase.Apply(c.Context(), orgID(c), id, upd)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to update candidate")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"candidate": cand})
}

// Delete мягко удаляет кандидата.
// @Summary Удалить кандидата
// @Tags    Кандидаты
// @Param   id path string true "id кандидата"
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id} [delete]
func (h *CandidatesHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid candidate id")
	}
	if err := h.useCase.Delete(c.Context(), orgID(c), id); err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete candidate")
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseFilters(c *fiber.Ctx) candidate.Filters {
	f := candidate.Filters{
		Search:   strings.TrimSpace(c.Query("search")),
		Location: strings.TrimSpace(c.Query("location")),
	}
	if v := c.Query("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Statuses = append(f.Statuses, candidate.ParseStatus(s))
			}
		}
	}
	if v := c.Query("skills"); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Skills = append(f.Skills, s)
			}
		}
	}
	if v := c.Query("minExperience"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinExperience = &n
		}
	}
	if v := c.Query("maxExperience"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MaxExperience = &n
		}
	}
	return f
}
