package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dns-auth/token-service/internal/api/dto"
	"github.com/dns-auth/token-service/internal/domain"
	"github.com/dns-auth/token-service/internal/repository"
	"github.com/dns-auth/token-service/internal/service"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// SignUp handles POST /sign-up.
func (h *UsersHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	roles := make([]domain.Role, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, domain.Role(r))
	}

	_, err := h.users.SignUp(c.UserContext(), service.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password:  req.Password,
		Roles:     roles,
	})
	if err != nil {
		return mapServiceError(err)
	}
	return c.SendStatus(http.StatusCreated)
}

// Current handles GET /user.
func (h *UsersHandler) Current(c *fiber.Ctx) error {
	user, err := h.users.Current(c.UserContext())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// GetByID handles GET /user/:id.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// List handles GET /all-user.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Delete handles DELETE /user/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return mapServiceError(err)
	}
	return c.SendStatus(http.StatusOK)
}

// SearchByName handles the /user-by-* search routes. required lists the
// query parameters the route insists on.
func (h *UsersHandler) SearchByName(required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, param := range required {
			if c.Query(param) == "" {
				return fiber.NewError(http.StatusBadRequest, param+" required")
			}
		}
		users, err := h.users.Search(c.UserContext(), repository.UserFilter{
			FirstName: c.Query("firstName"),
			LastName:  c.Query("lastName"),
		})
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(dto.NewUserResponses(users))
	}
}

func userID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid user id")
	}
	return int64(id), nil
}
