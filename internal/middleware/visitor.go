package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localVisitor = "visitor_id"

	VisitorCookie = "estepage_visitor"
	visitorMaxAge = 365 * 24 * time.Hour
)

// Visitor tags each browser with a long-lived anonymous id used for view
// de-duplication and search logs.
func Visitor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(VisitorCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     VisitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(visitorMaxAge.Seconds()),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localVisitor, id)
		return c.Next()
	}
}

func VisitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(localVisitor).(string)
	return id
}
