package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	ClientIPContextKey  = "client_ip"
	UserAgentContextKey = "user_agent"
)

// RequestInfo stores the real client IP and user agent in locals so
// handlers behind a proxy see the original caller.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("CF-Connecting-IP")
		if ip == "" {
			ip = c.Get("X-Forwarded-For")
		}
		if ip == "" {
			ip = c.IP()
		}

		c.Locals(ClientIPContextKey, ip)
		c.Locals(UserAgentContextKey, c.Get("User-Agent"))

		return c.Next()
	}
}
