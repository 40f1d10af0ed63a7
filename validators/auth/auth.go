package authValidator

import (
	"regexp"
	"strings"
	"tms/middleware"

	"github.com/gofiber/fiber/v2"
)

// NIP format: NN.NNNN.NN
var nipPattern = regexp.MustCompile(`^\d{2}\.\d{4}\.\d{2}$`)

type LoginRequest struct {
	NIP      string `json:"nip"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	NIP      string `json:"nip"`
	Password string `json:"password"`
	Rank     string `json:"rank"`
	Email    string `json:"email"`
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.NIP) == "" {
			errors["nip"] = "NIP is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if !nipPattern.MatchString(reqData.NIP) {
			errors["nip"] = "NIP must be in the format NN.NNNN.NN!"
		}
		if len(reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}
		if reqData.Email != "" && !strings.Contains(reqData.Email, "@") {
			errors["email"] = "Email must be a valid address!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// ValidNIP reports whether s matches the NIP format.
func ValidNIP(s string) bool {
	return nipPattern.MatchString(s)
}
