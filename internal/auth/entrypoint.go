package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// UnauthorizedResponder answers requests that failed authorization.
// Preflight requests get the CORS grants they asked for and a 200 so the
// browser can send the real request; everything else gets a plain 401.
func UnauthorizedResponder(c *fiber.Ctx, err error) error {
	if c.Method() == fiber.MethodOptions {
		c.Set(fiber.HeaderAccessControlAllowOrigin, c.Get(fiber.HeaderOrigin))
		c.Set(fiber.HeaderAccessControlAllowHeaders, c.Get(fiber.HeaderAccessControlRequestHeaders))
		c.Set(fiber.HeaderAccessControlAllowMethods, c.Get(fiber.HeaderAccessControlRequestMethod))
		c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		return c.SendStatus(http.StatusOK)
	}

	message := http.StatusText(http.StatusUnauthorized)
	var authErr *AuthorizationError
	if errors.As(err, &authErr) && authErr.Message != "" {
		message = authErr.Message
	} else if err != nil && err.Error() != "" {
		message = err.Error()
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(http.StatusUnauthorized).SendString(message)
}
