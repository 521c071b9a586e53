package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/courses/dto"
	"yogacrm_backend/internals/features/courses/model"
	logService "yogacrm_backend/internals/features/logs/service"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type LessonController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db, Validate: validator.New()}
}

func parseLessonDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			d := datatypes.Date(t)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

// POST /course/getLessons
func (ctrl *LessonController) GetLessons(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.GetLessonsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.LessonModel{}).
		Order("lessons.lesson_start_date ASC, lessons.lesson_id DESC")

	if req.Name != "" {
		query = query.Where("lessons.lesson_name LIKE ?", "%"+req.Name+"%")
	}
	needsCourse := req.CourseName != "" || req.SchoolID != nil || req.Category != ""
	if needsCourse {
		query = query.Joins("JOIN courses ON courses.course_id = lessons.lesson_course_id")
		if req.CourseName != "" {
			query = query.Where("courses.course_name LIKE ?", "%"+req.CourseName+"%")
		}
		if req.SchoolID != nil {
			query = query.Where("courses.course_school_id = ?", *req.SchoolID)
		}
		if req.Category != "" {
			query = query.Where("courses.course_category = ?", req.Category)
		}
	}
	if req.ChiefTeacherName != "" {
		query = query.Where("lessons.lesson_chief_teacher_name LIKE ?", "%"+req.ChiefTeacherName+"%")
	}
	if req.ClassTeacherName != "" {
		query = query.Where(
			"lessons.lesson_class_teacher_id IN (SELECT user_id FROM users WHERE user_username LIKE ?)",
			"%"+req.ClassTeacherName+"%")
	}
	if req.TeachingAssistantName != "" {
		query = query.Where("lessons.lesson_teaching_assistant_name LIKE ?", "%"+req.TeachingAssistantName+"%")
	}
	if req.StartDate != "" {
		query = query.Where("lessons.lesson_start_date >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("lessons.lesson_start_date <= ?", req.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch lessons", err)
	}
	var lessons []model.LessonModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&lessons).Error; err != nil {
		return helper.JsonError(c, "fetch lessons", err)
	}

	return helper.JsonOK(c, "lessons fetched", fiber.Map{
		"lessons": lessons,
		"total":   total,
	})
}

// POST /course/getLessonsByIds
func (ctrl *LessonController) GetLessonsByIDs(c *fiber.Ctx) error {
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

	var lessons []model.LessonModel
	err := ctrl.DB.WithContext(c.Context()).
		Find(&lessons, "lesson_id IN ?", req.IDs).Error
	if err != nil {
		return helper.JsonError(c, "fetch lessons", err)
	}
	return helper.JsonOK(c, "lessons fetched", fiber.Map{"lessons": lessons})
}

// POST /course/addLesson
func (ctrl *LessonController) AddLesson(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermAddLesson)
	if err != nil {
		return err
	}

	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var course model.CourseModel
	if err := db.First(&course, "course_id = ?", req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "course not found")
		}
		return helper.JsonError(c, "add lesson", err)
	}

	startDate, err := parseLessonDate(req.StartDate)
	if err != nil || startDate == nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid start date")
	}
	endDate, err := parseLessonDate(req.EndDate)
	if err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid end date")
	}

	lesson := model.LessonModel{
		LessonName:             req.Name,
		LessonCourseID:         req.CourseID,
		LessonChiefTeacherName: req.ChiefTeacherName,
		LessonClassTeacherID:   req.ClassTeacherID,
		LessonStartDate:        *startDate,
		LessonEndDate:          endDate,
	}
	if req.TeachingAssistantName != "" {
		lesson.LessonTeachingAssistantName = &req.TeachingAssistantName
	}
	if req.Info != "" {
		lesson.LessonInfo = &req.Info
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add lesson", tx.Error)
	}
	if err := tx.Create(&lesson).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add lesson", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "added lesson "+lesson.LessonName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add lesson", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add lesson", err)
	}

	return helper.JsonOK(c, "lesson added", fiber.Map{"lesson": lesson})
}

// POST /course/updateLesson
func (ctrl *LessonController) UpdateLesson(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermUpdateLesson)
	if err != nil {
		return err
	}

	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var lesson model.LessonModel
	if err := db.First(&lesson, "lesson_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "lesson not found")
		}
		return helper.JsonError(c, "update lesson", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["lesson_name"] = *req.Name
	}
	if req.CourseID != nil {
		updates["lesson_course_id"] = *req.CourseID
	}
	if req.ChiefTeacherName != nil && *req.ChiefTeacherName != "" {
		updates["lesson_chief_teacher_name"] = *req.ChiefTeacherName
	}
	if req.ClassTeacherID != nil {
		updates["lesson_class_teacher_id"] = *req.ClassTeacherID
	}
	if req.TeachingAssistantName != nil {
		updates["lesson_teaching_assistant_name"] = *req.TeachingAssistantName
	}
	if req.Info != nil {
		updates["lesson_info"] = *req.Info
	}
	if req.StartDate != nil && *req.StartDate != "" {
		d, err := parseLessonDate(*req.StartDate)
		if err != nil {
			return helper.JsonFail(c, fiber.StatusBadRequest, "invalid start date")
		}
		updates["lesson_start_date"] = d
	}
	if req.EndDate != nil && *req.EndDate != "" {
		d, err := parseLessonDate(*req.EndDate)
		if err != nil {
			return helper.JsonFail(c, fiber.StatusBadRequest, "invalid end date")
		}
		updates["lesson_end_date"] = d
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update lesson", tx.Error)
	}
	if err := tx.Model(&model.LessonModel{}).
		Where("lesson_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update lesson", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated lesson "+lesson.LessonName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update lesson", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update lesson", err)
	}

	return helper.JsonOK(c, "lesson updated", nil)
}

// POST /course/deleteLesson
func (ctrl *LessonController) DeleteLesson(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermDeleteLesson)
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

	var lesson model.LessonModel
	if err := db.First(&lesson, "lesson_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "lesson not found")
		}
		return helper.JsonError(c, "delete lesson", err)
	}

	// Enrollment lives on the client rows; a lesson with students stays.
	var enrolled int64
	if err := db.Table("clients").
		Where("? = ANY(client_lesson_ids)", req.ID).
		Count(&enrolled).Error; err != nil {
		return helper.JsonError(c, "delete lesson", err)
	}
	if enrolled > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "lesson still has students")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete lesson", tx.Error)
	}
	if err := tx.Delete(&model.LessonModel{}, "lesson_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete lesson", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted lesson "+lesson.LessonName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete lesson", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete lesson", err)
	}

	return helper.JsonOK(c, "lesson deleted", nil)
}
