package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruitflow/api/http/presenter"
	"github.com/artem13815/recruitflow/pkg/export"
)

type ExportHandler struct {
	useCase export.UseCase
}

func NewExportHandler(useCase export.UseCase) *ExportHandler {
	return &ExportHandler{useCase: useCase}
}

// Excel выгружает кандидатов книгой XLSX (листы Candidates, Skills,
// Messages). Фильтры те же, что и у списка кандидатов.
// @Summary Экспорт в Excel
// @Tags    Экспорт
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router  /export/excel [get]
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	data, err := h.useCase.Excel(c.Context(), orgID(c), parseFilters(c))
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to build excel export")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="candidates.xlsx"`)
	return c.Send(data)
}

// CSV выгружает кандидатов плоским CSV.
// @Summary Экспорт в CSV
// @Tags    Экспорт
// @Produce text/csv
// @Param   fields query string false "колонки через запятую (по умолчанию все)"
// @Security BearerAuth
// @Success 200 {file} binary
// @Router  /export/csv [get]
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	var fields []string
	if v := c.Query("fields"); v != "" {
		fields = strings.Split(v, ",")
	}
	data, err := h.useCase.CSV(c.Context(), orgID(c), parseFilters(c), fields)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to build csv export")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="candidates.csv"`)
	return c.Send(data)
}

// Sheets — синхронизация с Google Sheets пока не подключена; ручка
// зарезервирована за будущей интеграцией.
// @Summary Экспорт в Google Sheets
// @Tags    Экспорт
// @Produce json
// @Security BearerAuth
// @Failure 501 {object} presenter.ErrorResponse
// @Router  /export/sheets [post]
func (h *ExportHandler) Sheets(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusNotImplemented, "google sheets export is not implemented yet")
}
