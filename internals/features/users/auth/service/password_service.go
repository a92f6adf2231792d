package service

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authHelper "cra_backend/internals/features/users/auth/helper"
	authRepo "cra_backend/internals/features/users/auth/repository"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPasswordHash(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}

	sess, err := helperAuth.RequireSession(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := authHelper.ValidatePassword(input.NewPassword); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByID(ctx, db, sess.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Usuário não encontrado")
	}
	if err := CheckPasswordHash(user.Password, input.CurrentPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Senha atual incorreta")
	}

	newHash, err := HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar hash da senha")
	}
	if err := authRepo.UpdateUserPassword(ctx, db, sess.UserID, newHash); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar senha")
	}
	return helper.JsonUpdated(c, "Senha alterada", nil)
}
