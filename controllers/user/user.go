package userController

import (
	"errors"
	"log"
	"tms/config"
	statsController "tms/controllers/stats"
	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/utils"
	userValidator "tms/validators/user"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ListUsers returns every user with their watch aggregates. Admin only.
func ListUsers(c *fiber.Ctx) error {
	users, err := statsController.ListUsersWithStats(database.Database.Db)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", users)
}

// CreateUser creates an account from the admin surface.
func CreateUser(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCreateUser").(*userValidator.CreateUserRequest)

	db := database.Database.Db

	if err := db.Where("nip = ?", reqData.NIP).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "NIP is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	active := true
	if reqData.Active != nil {
		active = *reqData.Active
	}

	newUser := models.User{
		Name:     reqData.Name,
		NIP:      reqData.NIP,
		Password: string(hashedPassword),
		Role:     reqData.Role,
		Rank:     reqData.Rank,
		Email:    reqData.Email,
		Active:   active,
	}

	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "NIP is already registered!", nil)
		}
		log.Printf("Error creating user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	if newUser.Email != "" {
		go func(u models.User) {
			if err := utils.SendAccountCreatedEmail(u.Email, u.Name, u.NIP); err != nil {
				log.Printf("Error sending account email for user %d: %v", u.ID, err)
			}
		}(newUser)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully.", newUser)
}

// UpdateUser applies a partial update; a supplied password is re-hashed.
func UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := c.Locals("validatedUpdateUser").(*userValidator.UpdateUserRequest)

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	updates := make(map[string]interface{})
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.NIP != nil {
		updates["nip"] = *reqData.NIP
	}
	if reqData.Role != nil {
		updates["role"] = *reqData.Role
	}
	if reqData.Rank != nil {
		updates["rank"] = *reqData.Rank
	}
	if reqData.Email != nil {
		updates["email"] = *reqData.Email
	}
	if reqData.Active != nil {
		updates["active"] = *reqData.Active
	}
	if reqData.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}
		updates["password"] = string(hashedPassword)
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "NIP is already registered!", nil)
			}
			log.Printf("Error updating user %d: %v", user.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", user)
}

// DeleteUser removes a user account.
func DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Delete(&user).Error; err != nil {
		log.Printf("Error deleting user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", nil)
}

// GetUserProgress returns a user's stats plus their completion and view rows.
// A non-admin may only fetch their own progress.
func GetUserProgress(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	callerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	if callerID != uint(targetID) {
		var caller models.User
		if err := db.First(&caller, callerID).Error; err != nil || caller.Role != models.RoleAdmin {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
		}
	}

	stats, err := statsController.ComputeUserStats(db, uint(targetID))
	if err != nil {
		log.Printf("Error computing stats for user %d: %v", targetID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var completions []models.VideoCompletion
	if err := db.Where("user_id = ?", targetID).Find(&completions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var views []models.VideoView
	if err := db.Where("user_id = ?", targetID).Find(&views).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", fiber.Map{
		"stats":       stats,
		"completions": completions,
		"views":       views,
	})
}
