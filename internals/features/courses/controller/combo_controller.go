package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/courses/dto"
	"yogacrm_backend/internals/features/courses/model"
	logService "yogacrm_backend/internals/features/logs/service"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type ComboController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewComboController(db *gorm.DB) *ComboController {
	return &ComboController{DB: db, Validate: validator.New()}
}

// POST /course/getAllCombos
func (ctrl *ComboController) GetAllCombos(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.GetCombosRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.CourseComboModel{}).Order("combo_id ASC")
	if req.SchoolID != nil {
		query = query.Where("combo_school_id = ?", *req.SchoolID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch combos", err)
	}
	var combos []model.CourseComboModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&combos).Error; err != nil {
		return helper.JsonError(c, "fetch combos", err)
	}

	return helper.JsonOK(c, "combos fetched", fiber.Map{
		"combos": combos,
		"total":  total,
	})
}

// POST /course/addCombo
func (ctrl *ComboController) AddCombo(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermAddCombo)
	if err != nil {
		return err
	}

	var req dto.CreateComboRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	combo := model.CourseComboModel{
		ComboName:      req.Name,
		ComboCourseIDs: pq.Int64Array(req.CourseIDs),
		ComboSchoolID:  req.SchoolID,
		ComboPrice:     req.Price,
	}
	if req.Info != "" {
		combo.ComboInfo = &req.Info
	}

	var schoolName string
	if err := db.Table("schools").
		Select("school_name").
		Where("school_id = ?", req.SchoolID).
		Scan(&schoolName).Error; err != nil {
		return helper.JsonError(c, "add combo", err)
	}
	if schoolName == "" {
		schoolName = "unknown school"
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add combo", tx.Error)
	}
	if err := tx.Create(&combo).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add combo", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		"added combo "+combo.ComboName+" for "+schoolName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add combo", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add combo", err)
	}

	return helper.JsonOK(c, "combo added", fiber.Map{"combo": combo})
}

// POST /course/updateCombo
func (ctrl *ComboController) UpdateCombo(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermUpdateCombo)
	if err != nil {
		return err
	}

	var req dto.UpdateComboRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var combo model.CourseComboModel
	if err := db.First(&combo, "combo_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "combo not found")
		}
		return helper.JsonError(c, "update combo", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["combo_name"] = *req.Name
	}
	if req.CourseIDs != nil {
		updates["combo_course_ids"] = pq.Int64Array(*req.CourseIDs)
	}
	if req.SchoolID != nil {
		updates["combo_school_id"] = *req.SchoolID
	}
	if req.Price != nil {
		updates["combo_price"] = *req.Price
	}
	if req.Info != nil {
		updates["combo_info"] = *req.Info
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update combo", tx.Error)
	}
	if err := tx.Model(&model.CourseComboModel{}).
		Where("combo_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update combo", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated combo "+combo.ComboName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update combo", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update combo", err)
	}

	return helper.JsonOK(c, "combo updated", nil)
}

// POST /course/deleteCombo
func (ctrl *ComboController) DeleteCombo(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermDeleteCombo)
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

	var combo model.CourseComboModel
	if err := db.First(&combo, "combo_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "combo not found")
		}
		return helper.JsonError(c, "delete combo", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete combo", tx.Error)
	}
	if err := tx.Delete(&model.CourseComboModel{}, "combo_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete combo", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted combo "+combo.ComboName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete combo", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete combo", err)
	}

	return helper.JsonOK(c, "combo deleted", nil)
}
