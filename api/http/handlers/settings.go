package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruitflow/api/http/presenter"
	"github.com/artem13815/recruitflow/pkg/settings"
)

type SettingsHandler struct {
	repo settings.Repository
}

func NewSettingsHandler(repo settings.Repository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// Get отдаёт настройки организации (дефолтные, если не сохранялись).
// @Summary Настройки переписки
// @Tags    Настройки
// @Produce json
// @Security BearerAuth
// @Success 200 {object} settings.Settings
// @Router  /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := settings.GetOrDefaults(c.Context(), h.repo, orgID(c))
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load settings")
	}
	return presenter.JSON(c, http.StatusOK, s)
}

// Put сохраняет настройки организации целиком.
// @Summary Сохранить настройки
// @Tags    Настройки
// @Accept  json
// @Produce json
// @Param   input body settings.Settings true "настройки"
// @Security BearerAuth
// @Success 200 {object} settings.Settings
// @Router  /settings [put]
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var s settings.Settings
	if err := c.BodyParser(&s); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	s.OrganizationID = orgID(c)
	s.UpdatedAt = time.Now().UTC()
	if err := h.repo.Put(c.Context(), s); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save settings")
	}
	return presenter.JSON(c, http.StatusOK, s)
}
