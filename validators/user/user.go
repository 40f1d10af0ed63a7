package userValidator

import (
	"strings"
	"tms/middleware"
	"tms/models"
	authValidator "tms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	NIP      string `json:"nip"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Rank     string `json:"rank"`
	Email    string `json:"email"`
	Active   *bool  `json:"active"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	NIP      *string `json:"nip"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Rank     *string `json:"rank"`
	Email    *string `json:"email"`
	Active   *bool   `json:"active"`
}

func validRole(role string) bool {
	return role == models.RoleUser || role == models.RoleAdmin
}

func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUserRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if !authValidator.ValidNIP(reqData.NIP) {
			errors["nip"] = "NIP must be in the format NN.NNNN.NN!"
		}
		if len(reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}
		if reqData.Role == "" {
			reqData.Role = models.RoleUser
		} else if !validRole(reqData.Role) {
			errors["role"] = "Role must be 'user' or 'admin'!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateUser", reqData)
		return c.Next()
	}
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			errors["name"] = "Name cannot be empty!"
		}
		if reqData.NIP != nil && !authValidator.ValidNIP(*reqData.NIP) {
			errors["nip"] = "NIP must be in the format NN.NNNN.NN!"
		}
		if reqData.Password != nil && len(*reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}
		if reqData.Role != nil && !validRole(*reqData.Role) {
			errors["role"] = "Role must be 'user' or 'admin'!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateUser", reqData)
		return c.Next()
	}
}
