package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parsePage(c *fiber.Ctx) (page, pageSize int) {
	page, pageSize = 1, 50
	if v := strings.TrimSpace(c.Query("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := strings.TrimSpace(c.Query("pageSize")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			pageSize = n
		}
	}
	return page, pageSize
}

// orgID и userID кладутся в Locals auth-middleware'ом.
func orgID(c *fiber.Ctx) uuid.UUID {
	s, _ := c.Locals("orgId").(string)
	id, _ := uuid.Parse(s)
	return id
}

func userID(c *fiber.Ctx) uuid.UUID {
	s, _ := c.Locals("userId").(string)
	id, _ := uuid.Parse(s)
	return id
}

func pathID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

func parseUUID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	return id, err == nil
}
