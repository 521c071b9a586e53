package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	logService "yogacrm_backend/internals/features/logs/service"
	"yogacrm_backend/internals/features/organization/dto"
	"yogacrm_backend/internals/features/organization/model"
	"yogacrm_backend/internals/features/users/authz"
	userModel "yogacrm_backend/internals/features/users/model"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type DeptController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewDeptController(db *gorm.DB) *DeptController {
	return &DeptController{DB: db, Validate: validator.New()}
}

func requireAdmin(c *fiber.Ctx) (*userModel.UserModel, error) {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return nil, helper.JsonFail(c, -1, "not logged in")
	}
	if !authz.IsAdmin(actor) {
		return nil, helper.JsonFail(c, -2, "insufficient permission")
	}
	return actor, nil
}

// POST /dept/addDept
func (ctrl *DeptController) AddDept(c *fiber.Ctx) error {
	actor, err := requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.CreateDeptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var school model.SchoolModel
	if err := db.First(&school, "school_id = ?", req.SchoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "school not found")
		}
		return helper.JsonError(c, "add department", err)
	}

	// Name unique within the school, not globally.
	var count int64
	if err := db.Model(&model.DepartmentModel{}).
		Where("department_name = ? AND department_school_id = ?", req.Name, req.SchoolID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, "add department", err)
	}
	if count > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "department name already taken")
	}

	dept := model.DepartmentModel{
		DepartmentName:     req.Name,
		DepartmentSchoolID: req.SchoolID,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add department", tx.Error)
	}
	if err := tx.Create(&dept).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add department", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "created department "+dept.DepartmentName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add department", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add department", err)
	}

	return helper.JsonOK(c, "department created", fiber.Map{"department": dept})
}

// POST /dept/updateDept
// Moving a department also moves every user in it to the new school.
func (ctrl *DeptController) UpdateDept(c *fiber.Ctx) error {
	actor, err := requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.UpdateDeptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var dept model.DepartmentModel
	if err := db.First(&dept, "department_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "department not found")
		}
		return helper.JsonError(c, "update department", err)
	}

	updates := map[string]interface{}{}
	newSchool := dept.DepartmentSchoolID
	if req.SchoolID != nil {
		var school model.SchoolModel
		if err := db.First(&school, "school_id = ?", *req.SchoolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonFail(c, fiber.StatusNotFound, "school not found")
			}
			return helper.JsonError(c, "update department", err)
		}
		updates["department_school_id"] = *req.SchoolID
		newSchool = *req.SchoolID
	}
	if req.Name != nil {
		var count int64
		if err := db.Model(&model.DepartmentModel{}).
			Where("department_name = ? AND department_school_id = ? AND department_id <> ?",
				*req.Name, newSchool, req.ID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, "update department", err)
		}
		if count > 0 {
			return helper.JsonFail(c, fiber.StatusBadRequest, "department name already taken")
		}
		updates["department_name"] = *req.Name
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update department", tx.Error)
	}
	if err := tx.Model(&model.DepartmentModel{}).
		Where("department_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update department", err)
	}
	if req.SchoolID != nil && *req.SchoolID != dept.DepartmentSchoolID {
		if err := tx.Model(&userModel.UserModel{}).
			Where("user_department_id = ?", req.ID).
			Update("user_school_id", *req.SchoolID).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, "update department", err)
		}
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated department "+dept.DepartmentName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update department", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update department", err)
	}

	return helper.JsonOK(c, "department updated", nil)
}

// POST /dept/deleteDept
// Refused while staff are still attached.
func (ctrl *DeptController) DeleteDept(c *fiber.Ctx) error {
	actor, err := requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.IDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var dept model.DepartmentModel
	if err := db.First(&dept, "department_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "department not found")
		}
		return helper.JsonError(c, "delete department", err)
	}

	var attached int64
	if err := db.Model(&userModel.UserModel{}).
		Where("user_department_id = ?", req.ID).
		Count(&attached).Error; err != nil {
		return helper.JsonError(c, "delete department", err)
	}
	if attached > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "department still has users")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete department", tx.Error)
	}
	if err := tx.Delete(&model.DepartmentModel{}, "department_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete department", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted department "+dept.DepartmentName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete department", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete department", err)
	}

	return helper.JsonOK(c, "department deleted", nil)
}

// POST /dept/getAllDepts
func (ctrl *DeptController) GetAllDepts(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	type deptRow struct {
		model.DepartmentModel
		SchoolName string `json:"school_name"`
	}
	var depts []deptRow
	err := ctrl.DB.WithContext(c.Context()).
		Model(&model.DepartmentModel{}).
		Select("departments.*, schools.school_name AS school_name").
		Joins("JOIN schools ON schools.school_id = departments.department_school_id").
		Order("departments.department_id ASC").
		Find(&depts).Error
	if err != nil {
		return helper.JsonError(c, "fetch departments", err)
	}
	return helper.JsonOK(c, "departments fetched", fiber.Map{"departments": depts})
}

// POST /dept/getDeptUsers
func (ctrl *DeptController) GetDeptUsers(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.MemberListRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&userModel.UserModel{}).
		Where("user_department_id = ?", req.ID).
		Order("user_id ASC")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch department users", err)
	}
	var users []userModel.UserModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		return helper.JsonError(c, "fetch department users", err)
	}

	return helper.JsonOK(c, "users fetched", fiber.Map{
		"users": users,
		"total": total,
	})
}
