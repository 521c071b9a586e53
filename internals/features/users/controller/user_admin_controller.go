package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	logService "yogacrm_backend/internals/features/logs/service"
	"yogacrm_backend/internals/features/users/authz"
	"yogacrm_backend/internals/features/users/dto"
	"yogacrm_backend/internals/features/users/model"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type UserAdminController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db, Validate: validator.New()}
}

// POST /user/register
// Admin-only staff account creation. School is derived from the chosen
// department so the two can never disagree.
func (ctrl *UserAdminController) Register(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}
	if !authz.IsAdmin(actor) {
		return helper.JsonFail(c, -1, "insufficient permission")
	}

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	// Only a super admin may mint another admin.
	if req.Usertype != 1 && !authz.IsSuperAdmin(actor) {
		return helper.JsonFail(c, -2, "insufficient permission")
	}

	db := ctrl.DB.WithContext(c.Context())

	var count int64
	if err := db.Model(&model.UserModel{}).
		Where("user_username = ?", req.Username).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, "register user", err)
	}
	if count > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "username already taken")
	}

	hashed, err := model.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, "register user", err)
	}

	user := model.UserModel{
		UserUsername:       req.Username,
		UserHashedPassword: hashed,
		UserGender:         req.Gender,
		UserPhone:          req.Phone,
		UserAddress:        req.Address,
		UserUsertype:       req.Usertype,
		UserDepartmentID:   req.DepartmentID,
		UserVocationID:     req.VocationID,
		UserStatus:         req.Status,
		UserRoleID:         req.RoleID,
		UserVisibleRange:   req.VisibleRange,
	}
	if req.DepartmentID != nil {
		var schoolID *int64
		err := db.Table("departments").
			Select("department_school_id").
			Where("department_id = ?", *req.DepartmentID).
			Scan(&schoolID).Error
		if err != nil {
			return helper.JsonError(c, "register user", err)
		}
		if schoolID == nil {
			return helper.JsonFail(c, fiber.StatusNotFound, "department not found")
		}
		user.UserSchoolID = schoolID
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "register user", tx.Error)
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "register user", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "registered user "+user.UserUsername); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "register user", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "register user", err)
	}

	return helper.JsonOK(c, "user registered", fiber.Map{
		"user": dto.FromUserModel(&user),
	})
}

// POST /user/getAllUsers
func (ctrl *UserAdminController) GetAllUsers(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}
	if !authz.IsAdmin(actor) {
		return helper.JsonFail(c, -2, "insufficient permission")
	}

	var req dto.GetAllUsersRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.UserModel{}).Order("user_id ASC")
	if req.Name != "" {
		query = query.Where("user_username LIKE ?", "%"+req.Name+"%")
	}
	if req.SchoolID != nil {
		query = query.Where("user_school_id = ?", *req.SchoolID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch users", err)
	}

	var users []model.UserModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		return helper.JsonError(c, "fetch users", err)
	}

	return helper.JsonOK(c, "users fetched", fiber.Map{
		"users": dto.FromUserModels(users),
		"total": total,
	})
}

// POST /user/updateUser
// Field-by-field allow-listed update; the password has its own routes.
func (ctrl *UserAdminController) UpdateUser(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}
	if !authz.IsAdmin(actor) {
		return helper.JsonFail(c, -2, "insufficient permission")
	}

	var req dto.UpdateUserRequest
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
		return helper.JsonError(c, "update user", err)
	}
	if authz.IsSuperAdmin(&target) && !authz.IsSuperAdmin(actor) {
		return helper.JsonFail(c, -2, "insufficient permission")
	}
	if req.Usertype != nil && !authz.IsSuperAdmin(actor) {
		return helper.JsonFail(c, -2, "insufficient permission")
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		var count int64
		if err := db.Model(&model.UserModel{}).
			Where("user_username = ? AND user_id <> ?", *req.Username, req.ID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, "update user", err)
		}
		if count > 0 {
			return helper.JsonFail(c, fiber.StatusBadRequest, "username already taken")
		}
		updates["user_username"] = *req.Username
	}
	if req.Gender != nil {
		updates["user_gender"] = *req.Gender
	}
	if req.Email != nil {
		updates["user_email"] = *req.Email
	}
	if req.Phone != nil {
		updates["user_phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["user_address"] = *req.Address
	}
	if req.WorkNum != nil {
		updates["user_work_num"] = *req.WorkNum
	}
	if req.AvatarURL != nil {
		updates["user_avatar_url"] = *req.AvatarURL
	}
	if req.VocationID != nil {
		updates["user_vocation_id"] = *req.VocationID
	}
	if req.Status != nil {
		updates["user_status"] = *req.Status
	}
	if req.Usertype != nil {
		updates["user_usertype"] = *req.Usertype
	}
	if req.RoleID != nil {
		updates["user_role_id"] = *req.RoleID
	}
	if req.VisibleRange != nil {
		updates["user_visible_range"] = *req.VisibleRange
	}
	if req.DepartmentID != nil {
		var schoolID *int64
		err := db.Table("departments").
			Select("department_school_id").
			Where("department_id = ?", *req.DepartmentID).
			Scan(&schoolID).Error
		if err != nil {
			return helper.JsonError(c, "update user", err)
		}
		if schoolID == nil {
			return helper.JsonFail(c, fiber.StatusNotFound, "department not found")
		}
		updates["user_department_id"] = *req.DepartmentID
		updates["user_school_id"] = *schoolID
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update user", tx.Error)
	}
	if err := tx.Model(&model.UserModel{}).
		Where("user_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update user", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated user "+target.UserUsername); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update user", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update user", err)
	}

	return helper.JsonOK(c, "user updated", nil)
}

// POST /user/deleteUser
// Two hard guards: never yourself, never a super admin.
func (ctrl *UserAdminController) DeleteUser(c *fiber.Ctx) error {
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
	if req.ID == actor.UserID {
		return helper.JsonFail(c, fiber.StatusBadRequest, "cannot delete yourself")
	}

	db := ctrl.DB.WithContext(c.Context())

	var target model.UserModel
	if err := db.First(&target, "user_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, "delete user", err)
	}
	if authz.IsSuperAdmin(&target) {
		return helper.JsonFail(c, -2, "insufficient permission")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete user", tx.Error)
	}
	if err := tx.Delete(&model.UserModel{}, "user_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete user", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted user "+target.UserUsername); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete user", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete user", err)
	}

	return helper.JsonOK(c, "user deleted", nil)
}
