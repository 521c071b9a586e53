package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	clientModel "yogacrm_backend/internals/features/clients/model"
	clientService "yogacrm_backend/internals/features/clients/service"
	"yogacrm_backend/internals/features/courses/dto"
	"yogacrm_backend/internals/features/courses/model"
	logService "yogacrm_backend/internals/features/logs/service"
	"yogacrm_backend/internals/features/users/authz"
	userModel "yogacrm_backend/internals/features/users/model"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type EnrollmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db, Validate: validator.New()}
}

func contains(list pq.Int64Array, id int64) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func todayDate() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func dateValue(d datatypes.Date) time.Time {
	t := time.Time(d)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func remove(list pq.Int64Array, id int64) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// POST /course/getQualifiedStudents
// Closed-deal clients who bought the lesson's course, narrowed to the
// caller's visibility scope.
func (ctrl *EnrollmentController) GetQualifiedStudents(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.QualifiedStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	scope := authz.ScopeFor(actor)
	if scope.Tier == constants.VisibleNone {
		return helper.JsonFail(c, -2, "no visibility scope configured")
	}

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&clientModel.ClientModel{}).
		Where("client_process_status = ?", constants.ProcessClosed).
		Where("? = ANY(client_course_ids)", req.LessonCourseID).
		Order("client_status ASC, client_created_time DESC")
	query = clientService.ApplyScope(query, scope, actor.UserID)

	var clients []clientModel.ClientModel
	if err := query.Find(&clients).Error; err != nil {
		return helper.JsonError(c, "fetch qualified students", err)
	}

	return helper.JsonOK(c, "qualified students fetched", fiber.Map{"clients": clients})
}

// POST /course/addStudent
// Guards fire in order: lesson, client, double enrollment. A client
// whose deal is not closed is not a paying student yet and is refused.
func (ctrl *EnrollmentController) AddStudent(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermAddStudent)
	if err != nil {
		return err
	}

	var req dto.AddStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var lesson model.LessonModel
	if err := db.First(&lesson, "lesson_id = ?", req.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, -3, "lesson not found")
		}
		return helper.JsonError(c, "add student", err)
	}

	var client clientModel.ClientModel
	if err := db.First(&client, "client_id = ?", req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, -4, "student not found")
		}
		return helper.JsonError(c, "add student", err)
	}

	if client.ClientProcessStatus == nil || *client.ClientProcessStatus != constants.ProcessClosed {
		return helper.JsonFail(c, fiber.StatusBadRequest, "client deal is not closed")
	}
	if contains(client.ClientLessonIDs, req.LessonID) {
		return helper.JsonFail(c, -5, "student already in this lesson")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add student", tx.Error)
	}
	if err := tx.Model(&clientModel.ClientModel{}).
		Where("client_id = ?", client.ClientID).
		Update("client_lesson_ids", append(client.ClientLessonIDs, req.LessonID)).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add student", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID,
		"enrolled in lesson "+lesson.LessonName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add student", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add student", err)
	}

	return helper.JsonOK(c, "student added", nil)
}

// POST /course/removeStudent
// Ordinary staff may only touch what is theirs; school managers
// (vocation 2) may touch anything placed in their school.
func (ctrl *EnrollmentController) RemoveStudent(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermRemoveStudent)
	if err != nil {
		return err
	}

	var req dto.RemoveStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var client clientModel.ClientModel
	if err := db.First(&client, "client_id = ?", req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, -3, "student not found")
		}
		return helper.JsonError(c, "remove student", err)
	}

	if actor.UserUsertype == constants.UsertypeOrdinary {
		if actor.UserVocationID != nil && *actor.UserVocationID == constants.VocationSchoolManager {
			clientSchool := ctrl.clientSchoolID(db, &client)
			if clientSchool == nil || actor.UserSchoolID == nil || *clientSchool != *actor.UserSchoolID {
				return helper.JsonFail(c, -5, "you may only remove students of your own school")
			}
		} else {
			owned := (client.ClientCreatorID != nil && *client.ClientCreatorID == actor.UserID) ||
				(client.ClientAffiliatedUserID != nil && *client.ClientAffiliatedUserID == actor.UserID) ||
				(client.ClientAppointerID != nil && *client.ClientAppointerID == actor.UserID)
			if !owned {
				return helper.JsonFail(c, -6, "you may only remove your own students")
			}
		}
	}

	if !contains(client.ClientLessonIDs, req.LessonID) {
		return helper.JsonFail(c, -4, "student is not in this lesson")
	}

	var lesson model.LessonModel
	if err := db.First(&lesson, "lesson_id = ?", req.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "lesson not found")
		}
		return helper.JsonError(c, "remove student", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "remove student", tx.Error)
	}
	if err := tx.Model(&clientModel.ClientModel{}).
		Where("client_id = ?", client.ClientID).
		Update("client_lesson_ids", remove(client.ClientLessonIDs, req.LessonID)).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "remove student", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID,
		"removed from lesson "+lesson.LessonName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "remove student", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "remove student", err)
	}

	return helper.JsonOK(c, "student removed", nil)
}

// clientSchoolID resolves the client's effective school by chasing the
// staff around it.
func (ctrl *EnrollmentController) clientSchoolID(db *gorm.DB, client *clientModel.ClientModel) *int64 {
	load := func(id *int64) *userModel.UserModel {
		if id == nil {
			return nil
		}
		var u userModel.UserModel
		if err := db.First(&u, "user_id = ?", *id).Error; err != nil {
			return nil
		}
		return &u
	}
	return clientService.EffectiveSchoolID(client,
		load(client.ClientAffiliatedUserID),
		load(client.ClientAppointerID),
		load(client.ClientCreatorID))
}

// POST /course/graduateClient
// Per-lesson graduation, separate from the whole-client one.
func (ctrl *EnrollmentController) GraduateStudent(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermGraduateClient)
	if err != nil {
		return err
	}

	var req dto.LessonGraduationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var client clientModel.ClientModel
	if err := db.First(&client, "client_id = ?", req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, -3, "student not found")
		}
		return helper.JsonError(c, "graduate student", err)
	}
	if contains(client.ClientGraduatedLessonIDs, req.LessonID) {
		return helper.JsonFail(c, -4, "student already graduated this lesson")
	}

	var lesson model.LessonModel
	if err := db.First(&lesson, "lesson_id = ?", req.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "lesson not found")
		}
		return helper.JsonError(c, "graduate student", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "graduate student", tx.Error)
	}
	if err := tx.Model(&clientModel.ClientModel{}).
		Where("client_id = ?", client.ClientID).
		Update("client_graduated_lesson_ids",
			append(client.ClientGraduatedLessonIDs, req.LessonID)).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "graduate student", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID,
		"graduated lesson "+lesson.LessonName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "graduate student", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "graduate student", err)
	}

	return helper.JsonOK(c, "student graduated", nil)
}

// POST /course/ungraduateClient
func (ctrl *EnrollmentController) UngraduateStudent(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	actor, err := requirePermission(c, db, constants.PermGraduateClient)
	if err != nil {
		return err
	}

	var req dto.LessonGraduationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var client clientModel.ClientModel
	if err := db.First(&client, "client_id = ?", req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, -3, "student not found")
		}
		return helper.JsonError(c, "ungraduate student", err)
	}
	if !contains(client.ClientGraduatedLessonIDs, req.LessonID) {
		return helper.JsonFail(c, -4, "student has not graduated this lesson")
	}

	var lesson model.LessonModel
	if err := db.First(&lesson, "lesson_id = ?", req.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "lesson not found")
		}
		return helper.JsonError(c, "ungraduate student", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "ungraduate student", tx.Error)
	}
	if err := tx.Model(&clientModel.ClientModel{}).
		Where("client_id = ?", client.ClientID).
		Update("client_graduated_lesson_ids",
			remove(client.ClientGraduatedLessonIDs, req.LessonID)).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "ungraduate student", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID,
		"graduation cancelled for lesson "+lesson.LessonName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "ungraduate student", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "ungraduate student", err)
	}

	return helper.JsonOK(c, "graduation cancelled", nil)
}

// POST /course/getCourseClients
func (ctrl *EnrollmentController) GetCourseClients(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.CourseClientsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	return ctrl.memberIDs(c, "client_course_ids", req.CourseID)
}

// POST /course/getLessonClients
func (ctrl *EnrollmentController) GetLessonClients(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.LessonClientsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	return ctrl.memberIDs(c, "client_lesson_ids", req.LessonID)
}

// POST /course/getLessonGraduatedClients
func (ctrl *EnrollmentController) GetLessonGraduatedClients(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.LessonClientsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	return ctrl.memberIDs(c, "client_graduated_lesson_ids", req.LessonID)
}

// memberIDs lists the closed-deal clients whose id-array column holds
// the given id. Only ids go out; the roster screen fetches details
// separately.
func (ctrl *EnrollmentController) memberIDs(c *fiber.Ctx, column string, id int64) error {
	var ids []int64
	err := ctrl.DB.WithContext(c.Context()).
		Model(&clientModel.ClientModel{}).
		Where("client_process_status = ?", constants.ProcessClosed).
		Where("? = ANY("+column+")", id).
		Pluck("client_id", &ids).Error
	if err != nil {
		return helper.JsonError(c, "fetch members", err)
	}

	members := make([]fiber.Map, 0, len(ids))
	for _, cid := range ids {
		members = append(members, fiber.Map{"id": cid})
	}
	return helper.JsonOK(c, "members fetched", fiber.Map{
		"clients": members,
		"total":   len(ids),
	})
}

// POST /course/getStudentCourses
// Splits a student's purchased courses into finished / ongoing / not yet
// started, judged by the lessons they are enrolled in.
func (ctrl *EnrollmentController) GetStudentCourses(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.StudentCoursesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var student clientModel.ClientModel
	if err := db.First(&student, "client_id = ?", req.StuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, "fetch student courses", err)
	}

	courseIDs := make(map[int64]bool)
	for _, id := range student.ClientCourseIDs {
		courseIDs[id] = true
	}

	var lessons []model.LessonModel
	if len(student.ClientLessonIDs) > 0 {
		if err := db.Find(&lessons, "lesson_id IN ?", []int64(student.ClientLessonIDs)).Error; err != nil {
			return helper.JsonError(c, "fetch student courses", err)
		}
	}

	today := todayDate()
	ongoing := make(map[int64]bool)
	lessonCourses := make(map[int64]bool)
	for i := range lessons {
		l := &lessons[i]
		lessonCourses[l.LessonCourseID] = true
		start := dateValue(l.LessonStartDate)
		if l.LessonEndDate != nil {
			end := dateValue(*l.LessonEndDate)
			if !start.After(today) && !end.Before(today) {
				ongoing[l.LessonCourseID] = true
			}
		} else if !start.After(today) {
			ongoing[l.LessonCourseID] = true
		}
	}

	var finished, ongoingIDs, notStarted []int64
	for id := range courseIDs {
		switch {
		case ongoing[id]:
			ongoingIDs = append(ongoingIDs, id)
		case !lessonCourses[id]:
			notStarted = append(notStarted, id)
		default:
			finished = append(finished, id)
		}
	}

	names := func(ids []int64) []string {
		if len(ids) == 0 {
			return []string{}
		}
		var out []string
		if err := db.Model(&model.CourseModel{}).
			Where("course_id IN ?", ids).
			Pluck("course_name", &out).Error; err != nil {
			return []string{}
		}
		return out
	}

	return helper.JsonOK(c, "student courses fetched", fiber.Map{
		"finished_course_names":    names(finished),
		"ongoing_course_names":     names(ongoingIDs),
		"not_started_course_names": names(notStarted),
	})
}
