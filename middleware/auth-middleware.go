package middleware

import (
	"artfolio/auth"

	"github.com/gofiber/fiber/v2"
)

const accountIDKey = "accountID"

// Protected rejects requests that do not carry a valid bearer credential
// and stores the resolved account id in the request locals for handlers.
func Protected(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var tokenStr string

		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		} else {
			tokenStr = c.Cookies("JWT")
		}

		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "You are not authorized!",
				"data":    nil,
			})
		}

		accountID, err := svc.ParseToken(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid token",
				"data":    nil,
			})
		}

		c.Locals(accountIDKey, accountID)
		return c.Next()
	}
}

// AccountID returns the authenticated account id stored by Protected.
func AccountID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(accountIDKey).(uint)
	return id, ok
}
