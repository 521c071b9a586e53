package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/configs"
	logService "yogacrm_backend/internals/features/logs/service"
	"yogacrm_backend/internals/features/users/authz"
	"yogacrm_backend/internals/features/users/dto"
	"yogacrm_backend/internals/features/users/model"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// POST /user/login
// The only unauthenticated route. -1 means the account does not exist,
// -2 means the password is wrong; both deliberately distinct.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var user model.UserModel
	if err := db.First(&user, "user_username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, -1, "user does not exist")
		}
		return helper.JsonError(c, "login", err)
	}
	if !user.CheckPassword(req.Password) {
		return helper.JsonFail(c, -2, "wrong password")
	}

	token := helperAuth.IssueToken(user.UserID, time.Now())

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "login", tx.Error)
	}
	if err := logService.AppendLog(tx, user.UserID, "login"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "login", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "login", err)
	}

	// Retention rides on login traffic; never blocks the response.
	logService.TrimLogs(db, configs.MaxLogRows)

	log.Printf("[INFO] user %d logged in", user.UserID)
	return helper.JsonOK(c, "login success", fiber.Map{
		"sessionid": token,
		"user":      dto.FromUserModel(&user),
	})
}

// POST /user/loginCheck
// Token validity is already enforced by the session middleware; reaching
// the handler means the session is live, so just echo the identity back.
func (ctrl *AuthController) LoginCheck(c *fiber.Ctx) error {
	user, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}
	return helper.JsonOK(c, "session valid", fiber.Map{
		"user": dto.FromUserModel(user),
	})
}

// POST /user/getUserInfo
func (ctrl *AuthController) GetUserInfo(c *fiber.Ctx) error {
	user, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}
	return helper.JsonOK(c, "user info fetched", fiber.Map{
		"user": dto.FromUserModel(user),
	})
}

// POST /user/modifyPwd
// Requires the old password even with a live session.
func (ctrl *AuthController) ModifyPwd(c *fiber.Ctx) error {
	user, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.ModifyPwdRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if !user.CheckPassword(req.OldPwd) {
		return helper.JsonFail(c, -2, "wrong password")
	}

	hashed, err := model.HashPassword(req.NewPwd)
	if err != nil {
		return helper.JsonError(c, "modify password", err)
	}

	db := ctrl.DB.WithContext(c.Context())
	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "modify password", tx.Error)
	}
	if err := tx.Model(&model.UserModel{}).
		Where("user_id = ?", user.UserID).
		Update("user_hashed_password", hashed).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "modify password", err)
	}
	if err := logService.AppendLog(tx, user.UserID, "changed own password"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "modify password", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "modify password", err)
	}

	return helper.JsonOK(c, "password changed", nil)
}

// POST /user/initUserPwd
// Admin reset to the well-known default "12345".
func (ctrl *AuthController) InitUserPwd(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}
	if !authz.IsAdmin(actor) {
		return helper.JsonFail(c, -2, "insufficient permission")
	}

	var req dto.UserIDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var target model.UserModel
	if err := db.First(&target, "user_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, "reset password", err)
	}

	hashed, err := model.HashPassword("12345")
	if err != nil {
		return helper.JsonError(c, "reset password", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "reset password", tx.Error)
	}
	if err := tx.Model(&model.UserModel{}).
		Where("user_id = ?", target.UserID).
		Update("user_hashed_password", hashed).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "reset password", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "reset password of user "+target.UserUsername); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "reset password", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "reset password", err)
	}

	return helper.JsonOK(c, "password reset", nil)
}
