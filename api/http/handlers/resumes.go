package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruitflow/api/http/presenter"
	"github.com/artem13815/recruitflow/pkg/resume"
)

type ResumesHandler struct {
	useCase  resume.UseCase
	maxBytes int64
}

func NewResumesHandler(useCase resume.UseCase) *ResumesHandler {
	return &ResumesHandler{useCase: useCase, maxBytes: resume.MaxFileSize}
}

// Upload загружает резюме: создаётся кандидат-заготовка и фоновая
// задача разбора.
// @Summary Загрузить резюме
// @Description Принимает PDF/DOCX, сохраняет файл и ставит разбор в очередь.
// @Tags        Резюме
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Файл резюме (PDF/DOCX)"
// @Security    BearerAuth
// @Success     202 {object} map[string]any
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Router      /resumes [post]
func (h *ResumesHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	if !resume.AllowedExt(fh.Filename) {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	r, j, err := h.useCase.Upload(c.Context(), orgID(c), userID(c), fh.Filename, data)
	if err != nil {
		if errors.Is(err, resume.ErrUnsupportedFormat) || errors.Is(err, resume.ErrFileTooLarge) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to upload resume")
	}
	return presenter.JSON(c, http.StatusAccepted, fiber.Map{
		"resume":      r,
		"candidateId": r.CandidateID.String(),
		"job":         j,
	})
}

// Get отдаёт метаданные резюме.
// @Summary Резюме по id
// @Tags    Резюме
// @Produce json
// @Param   id path string true "id резюме"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid resume id")
	}
	r, err := h.useCase.Get(c.Context(), orgID(c), id)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "resume not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load resume")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"resume": r})
}

// Reprocess повторно ставит резюме в очередь разбора.
// @Summary Переразобрать резюме
// @Tags    Резюме
// @Produce json
// @Param   id path string true "id резюме"
// @Security BearerAuth
// @Success 202 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/reprocess [post]
func (h *ResumesHandler) Reprocess(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid resume id")
	}
	r, j, err := h.useCase.Reprocess(c.Context(), orgID(c), id)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "resume not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to reprocess resume")
	}
	return presenter.JSON(c, http.StatusAccepted, fiber.Map{"resume": r, "job": j})
}

func readAtMost(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.New("failed to read uploaded file")
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file is too large (max %d MB)", limit>>20)
	}
	return data, nil
}
