package middleware

import (
	"edupath/database"
	"edupath/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminOnly resolves the caller's admin capability once per request and
// rejects non-admins before any handler runs. Handlers read
// c.Locals("isAdmin") instead of re-querying the role table.
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var role models.UserRole
	err := database.Database.Db.Where("user_id = ? AND role = ? AND is_deleted = false",
		userID, models.RoleAdmin).First(&role).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
	}

	c.Locals("isAdmin", true)
	return c.Next()
}
