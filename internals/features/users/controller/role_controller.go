package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	logService "yogacrm_backend/internals/features/logs/service"
	"yogacrm_backend/internals/features/users/authz"
	"yogacrm_backend/internals/features/users/dto"
	"yogacrm_backend/internals/features/users/model"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type RoleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewRoleController(db *gorm.DB) *RoleController {
	return &RoleController{DB: db, Validate: validator.New()}
}

func (ctrl *RoleController) requireAdmin(c *fiber.Ctx) (*model.UserModel, error) {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return nil, helper.JsonFail(c, -1, "not logged in")
	}
	if !authz.IsAdmin(actor) {
		return nil, helper.JsonFail(c, -2, "insufficient permission")
	}
	return actor, nil
}

// POST /user/getRoles
func (ctrl *RoleController) GetRoles(c *fiber.Ctx) error {
	if _, err := ctrl.requireAdmin(c); err != nil {
		return err
	}

	var roles []model.RoleModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("role_id ASC").Find(&roles).Error; err != nil {
		return helper.JsonError(c, "fetch roles", err)
	}
	return helper.JsonOK(c, "roles fetched", fiber.Map{"roles": roles})
}

// POST /user/addRole
func (ctrl *RoleController) AddRole(c *fiber.Ctx) error {
	actor, err := ctrl.requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var count int64
	if err := db.Model(&model.RoleModel{}).
		Where("role_name = ?", req.Name).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, "add role", err)
	}
	if count > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "role name already taken")
	}

	role := model.RoleModel{
		RoleName:   req.Name,
		RoleGrants: pq.Int64Array(req.Grants),
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add role", tx.Error)
	}
	if err := tx.Create(&role).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add role", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "created role "+role.RoleName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add role", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add role", err)
	}

	return helper.JsonOK(c, "role created", fiber.Map{"role": role})
}

// POST /user/updateRole
func (ctrl *RoleController) UpdateRole(c *fiber.Ctx) error {
	actor, err := ctrl.requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var role model.RoleModel
	if err := db.First(&role, "role_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "role not found")
		}
		return helper.JsonError(c, "update role", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		var count int64
		if err := db.Model(&model.RoleModel{}).
			Where("role_name = ? AND role_id <> ?", *req.Name, req.ID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, "update role", err)
		}
		if count > 0 {
			return helper.JsonFail(c, fiber.StatusBadRequest, "role name already taken")
		}
		updates["role_name"] = *req.Name
	}
	if req.Grants != nil {
		updates["role_grants"] = pq.Int64Array(*req.Grants)
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update role", tx.Error)
	}
	if err := tx.Model(&model.RoleModel{}).
		Where("role_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update role", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated role "+role.RoleName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update role", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update role", err)
	}

	return helper.JsonOK(c, "role updated", nil)
}

// POST /user/deleteRole
// A role still attached to users stays.
func (ctrl *RoleController) DeleteRole(c *fiber.Ctx) error {
	actor, err := ctrl.requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.UserIDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var role model.RoleModel
	if err := db.First(&role, "role_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "role not found")
		}
		return helper.JsonError(c, "delete role", err)
	}

	var attached int64
	if err := db.Model(&model.UserModel{}).
		Where("user_role_id = ?", req.ID).
		Count(&attached).Error; err != nil {
		return helper.JsonError(c, "delete role", err)
	}
	if attached > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "role is still assigned to users")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete role", tx.Error)
	}
	if err := tx.Delete(&model.RoleModel{}, "role_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete role", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted role "+role.RoleName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete role", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete role", err)
	}

	return helper.JsonOK(c, "role deleted", nil)
}
