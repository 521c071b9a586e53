package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/courses/dto"
	"yogacrm_backend/internals/features/courses/model"
	logService "yogacrm_backend/internals/features/logs/service"
	"yogacrm_backend/internals/features/users/authz"
	userModel "yogacrm_backend/internals/features/users/model"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type CourseController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db, Validate: validator.New()}
}

// requirePermission resolves the actor and checks one permission code.
// A nil user means the error response has already been written.
func requirePermission(c *fiber.Ctx, db *gorm.DB, code int64) (*userModel.UserModel, error) {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return nil, helper.JsonFail(c, -1, "not logged in")
	}
	if !authz.CheckPermission(db, actor, code) {
		return nil, helper.JsonFail(c, -2, "insufficient permission")
	}
	return actor, nil
}

// POST /course/getCourses
func (ctrl *CourseController) GetCourses(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.GetCoursesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	// The course picker loads everything, so the default page is huge.
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10000, 10000)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.CourseModel{}).
		Order("course_school_id ASC, course_created_time DESC")
	if req.SchoolID != nil {
		query = query.Where("course_school_id = ?", *req.SchoolID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch courses", err)
	}
	var courses []model.CourseModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&courses).Error; err != nil {
		return helper.JsonError(c, "fetch courses", err)
	}

	return helper.JsonOK(c, "courses fetched", fiber.Map{
		"courses": courses,
		"total":   total,
	})
}

// POST /course/getCoursesByIds
func (ctrl *CourseController) GetCoursesByIDs(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.IDsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var courses []model.CourseModel
	err := ctrl.DB.WithContext(c.Context()).
		Find(&courses, "course_id IN ?", req.IDs).Error
	if err != nil {
		return helper.JsonError(c, "fetch courses", err)
	}
	return helper.JsonOK(c, "courses fetched", fiber.Map{"courses": courses})
}

// POST /course/addCourse
func (ctrl *CourseController) AddCourse(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermAddCourse)
	if err != nil {
		return err
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var count int64
	if err := db.Model(&model.CourseModel{}).
		Where("course_name = ? AND course_school_id = ?", req.Name, req.SchoolID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, "add course", err)
	}
	if count > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "a school cannot offer two courses with the same name")
	}

	course := model.CourseModel{
		CourseName:      req.Name,
		CourseCategory:  req.Category,
		CourseSchoolID:  req.SchoolID,
		CourseDuration:  req.Duration,
		CoursePrice:     req.Price,
		CourseCreatorID: &actor.UserID,
	}
	if req.Info != "" {
		course.CourseInfo = &req.Info
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add course", tx.Error)
	}
	if err := tx.Create(&course).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add course", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "added course "+course.CourseName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add course", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add course", err)
	}

	return helper.JsonOK(c, "course added", fiber.Map{"course": course})
}

// POST /course/updateCourse
func (ctrl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermUpdateCourse)
	if err != nil {
		return err
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var course model.CourseModel
	if err := db.First(&course, "course_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "course not found")
		}
		return helper.JsonError(c, "update course", err)
	}

	updates := map[string]interface{}{}
	schoolID := course.CourseSchoolID
	if req.SchoolID != nil {
		updates["course_school_id"] = *req.SchoolID
		schoolID = *req.SchoolID
	}
	if req.Name != nil && *req.Name != "" && *req.Name != course.CourseName {
		var count int64
		if err := db.Model(&model.CourseModel{}).
			Where("course_name = ? AND course_school_id = ? AND course_id <> ?",
				*req.Name, schoolID, req.ID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, "update course", err)
		}
		if count > 0 {
			return helper.JsonFail(c, fiber.StatusBadRequest, "a school cannot offer two courses with the same name")
		}
		updates["course_name"] = *req.Name
	}
	if req.Category != nil && *req.Category != "" {
		updates["course_category"] = *req.Category
	}
	if req.Duration != nil {
		updates["course_duration"] = *req.Duration
	}
	if req.Price != nil {
		updates["course_price"] = *req.Price
	}
	if req.Info != nil {
		updates["course_info"] = *req.Info
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update course", tx.Error)
	}
	if err := tx.Model(&model.CourseModel{}).
		Where("course_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update course", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated course "+course.CourseName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update course", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update course", err)
	}

	return helper.JsonOK(c, "course updated", nil)
}

// POST /course/deleteCourse
func (ctrl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermDeleteCourse)
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

	var course model.CourseModel
	if err := db.First(&course, "course_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "course not found")
		}
		return helper.JsonError(c, "delete course", err)
	}

	// Courses with scheduled lessons cannot go.
	var lessons int64
	if err := db.Model(&model.LessonModel{}).
		Where("lesson_course_id = ?", req.ID).
		Count(&lessons).Error; err != nil {
		return helper.JsonError(c, "delete course", err)
	}
	if lessons > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "course still has lessons")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete course", tx.Error)
	}
	if err := tx.Delete(&model.CourseModel{}, "course_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete course", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted course "+course.CourseName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete course", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete course", err)
	}

	return helper.JsonOK(c, "course deleted", nil)
}
