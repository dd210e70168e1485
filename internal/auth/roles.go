package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const authenticationRequired = "Full authentication is required to access this resource"

// PublicRoute is a method/path pair reachable without a principal. A path
// ending in "/*" matches everything below it; an empty method matches any.
type PublicRoute struct {
	Method string
	Path   string
}

func (r PublicRoute) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Path, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Path
}

// RequireAuthenticated rejects anonymous requests except those matching public.
// Registered with app.Use it guards every route, preflights included.
func RequireAuthenticated(public ...PublicRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, route := range public {
			if route.matches(c.Method(), c.Path()) {
				return c.Next()
			}
		}
		if _, ok := PrincipalFromContext(c); !ok {
			return UnauthorizedResponder(c, NewAuthorizationError(authenticationRequired))
		}
		return c.Next()
	}
}

// RequireRole ensures the principal holds at least one of the allowed roles.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return UnauthorizedResponder(c, NewAuthorizationError(authenticationRequired))
		}
		for _, role := range allowed {
			if principal.HasRole(role) {
				return c.Next()
			}
		}
		return UnauthorizedResponder(c, NewAuthorizationError("insufficient role"))
	}
}
