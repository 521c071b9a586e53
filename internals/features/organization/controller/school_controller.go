package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	logService "yogacrm_backend/internals/features/logs/service"
	"yogacrm_backend/internals/features/organization/dto"
	"yogacrm_backend/internals/features/organization/model"
	userModel "yogacrm_backend/internals/features/users/model"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type SchoolController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db, Validate: validator.New()}
}

// POST /dept/addSchool
func (ctrl *SchoolController) AddSchool(c *fiber.Ctx) error {
	actor, err := requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var count int64
	if err := db.Model(&model.SchoolModel{}).
		Where("school_name = ?", req.Name).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, "add school", err)
	}
	if count > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "school name already taken")
	}

	school := model.SchoolModel{
		SchoolName:    req.Name,
		SchoolAddress: req.Address,
		SchoolPhone:   req.Phone,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add school", tx.Error)
	}
	if err := tx.Create(&school).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add school", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "created school "+school.SchoolName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add school", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add school", err)
	}

	return helper.JsonOK(c, "school created", fiber.Map{"school": school})
}

// POST /dept/updateSchool
func (ctrl *SchoolController) UpdateSchool(c *fiber.Ctx) error {
	actor, err := requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var school model.SchoolModel
	if err := db.First(&school, "school_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "school not found")
		}
		return helper.JsonError(c, "update school", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		var count int64
		if err := db.Model(&model.SchoolModel{}).
			Where("school_name = ? AND school_id <> ?", *req.Name, req.ID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, "update school", err)
		}
		if count > 0 {
			return helper.JsonFail(c, fiber.StatusBadRequest, "school name already taken")
		}
		updates["school_name"] = *req.Name
	}
	if req.Address != nil {
		updates["school_address"] = *req.Address
	}
	if req.Phone != nil {
		updates["school_phone"] = *req.Phone
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update school", tx.Error)
	}
	if err := tx.Model(&model.SchoolModel{}).
		Where("school_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update school", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated school "+school.SchoolName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update school", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update school", err)
	}

	return helper.JsonOK(c, "school updated", nil)
}

// POST /dept/deleteSchool
// Refused while departments or staff still hang off it.
func (ctrl *SchoolController) DeleteSchool(c *fiber.Ctx) error {
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

	var school model.SchoolModel
	if err := db.First(&school, "school_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "school not found")
		}
		return helper.JsonError(c, "delete school", err)
	}

	var depts int64
	if err := db.Model(&model.DepartmentModel{}).
		Where("department_school_id = ?", req.ID).
		Count(&depts).Error; err != nil {
		return helper.JsonError(c, "delete school", err)
	}
	if depts > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "school still has departments")
	}
	var users int64
	if err := db.Model(&userModel.UserModel{}).
		Where("user_school_id = ?", req.ID).
		Count(&users).Error; err != nil {
		return helper.JsonError(c, "delete school", err)
	}
	if users > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "school still has users")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete school", tx.Error)
	}
	if err := tx.Delete(&model.SchoolModel{}, "school_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete school", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted school "+school.SchoolName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete school", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete school", err)
	}

	return helper.JsonOK(c, "school deleted", nil)
}

// POST /dept/getAllSchools
func (ctrl *SchoolController) GetAllSchools(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var schools []model.SchoolModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("school_id ASC").Find(&schools).Error; err != nil {
		return helper.JsonError(c, "fetch schools", err)
	}
	return helper.JsonOK(c, "schools fetched", fiber.Map{"schools": schools})
}

// POST /dept/getSchoolUsers
func (ctrl *SchoolController) GetSchoolUsers(c *fiber.Ctx) error {
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
		Where("user_school_id = ?", req.ID).
		Order("user_id ASC")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch school users", err)
	}
	var users []userModel.UserModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		return helper.JsonError(c, "fetch school users", err)
	}

	return helper.JsonOK(c, "users fetched", fiber.Map{
		"users": users,
		"total": total,
	})
}

// POST /dept/getSchoolCourses
func (ctrl *SchoolController) GetSchoolCourses(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.IDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	type courseRow struct {
		CourseID    int64    `json:"course_id"`
		CourseName  string   `json:"course_name"`
		CoursePrice *float64 `json:"course_price,omitempty"`
	}
	var courses []courseRow
	err := ctrl.DB.WithContext(c.Context()).
		Table("courses").
		Select("course_id, course_name, course_price").
		Where("course_school_id = ?", req.ID).
		Order("course_id ASC").
		Find(&courses).Error
	if err != nil {
		return helper.JsonError(c, "fetch school courses", err)
	}
	return helper.JsonOK(c, "courses fetched", fiber.Map{"courses": courses})
}

// POST /dept/calcSchoolBudget
// The ledger has no school column; payments roll up to a school through
// the responsible teacher. Balance before the window plus signed sums
// inside it.
func (ctrl *SchoolController) CalcSchoolBudget(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var school model.SchoolModel
	if err := db.First(&school, "school_id = ?", req.SchoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusBadRequest, "school not found")
		}
		return helper.JsonError(c, "calculate budget", err)
	}

	base := db.Table("payments").
		Joins("JOIN users ON users.user_id = payments.payment_teacher_id").
		Where("users.user_school_id = ?", req.SchoolID)

	var budgetBefore float64
	err := base.Session(&gorm.Session{}).
		Where("payments.payment_date < ?", req.StartDate).
		Select("COALESCE(SUM(payments.payment_amount), 0)").
		Scan(&budgetBefore).Error
	if err != nil {
		return helper.JsonError(c, "calculate budget", err)
	}

	type duringRow struct {
		Income  float64
		Expense float64
	}
	var during duringRow
	err = base.Session(&gorm.Session{}).
		Where("payments.payment_date >= ? AND payments.payment_date <= ?", req.StartDate, req.EndDate).
		Select(`COALESCE(SUM(CASE WHEN payments.payment_amount > 0 THEN payments.payment_amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN payments.payment_amount < 0 THEN payments.payment_amount ELSE 0 END), 0) AS expense`).
		Scan(&during).Error
	if err != nil {
		return helper.JsonError(c, "calculate budget", err)
	}

	return helper.JsonOK(c, "budget calculated", fiber.Map{
		"data": fiber.Map{
			"school_name":    school.SchoolName,
			"budget_before":  budgetBefore,
			"income_during":  during.Income,
			"expense_during": during.Expense,
			"budget_after":   budgetBefore + during.Income + during.Expense,
		},
	})
}
