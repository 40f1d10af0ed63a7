package middleware

import (
	"tms/database"
	"tms/models"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware restricts a route to active admin accounts. The role is
// re-read from the database rather than trusted from the token so demoting an
// admin takes effect before their session expires.
func AdminMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND active = ?", userID, true).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if user.Role != models.RoleAdmin {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	return c.Next()
}
