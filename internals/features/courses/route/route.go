package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/courses/controller"
)

func CourseRoutes(course fiber.Router, db *gorm.DB) {
	courses := controller.NewCourseController(db)
	combos := controller.NewComboController(db)
	lessons := controller.NewLessonController(db)
	enrollment := controller.NewEnrollmentController(db)

	course.Post("/getCourses", courses.GetCourses)
	course.Post("/getCoursesByIds", courses.GetCoursesByIDs)
	course.Post("/addCourse", courses.AddCourse)
	course.Post("/updateCourse", courses.UpdateCourse)
	course.Post("/deleteCourse", courses.DeleteCourse)

	course.Post("/getAllCombos", combos.GetAllCombos)
	course.Post("/addCombo", combos.AddCombo)
	course.Post("/updateCombo", combos.UpdateCombo)
	course.Post("/deleteCombo", combos.DeleteCombo)

	course.Post("/getLessons", lessons.GetLessons)
	course.Post("/getLessonsByIds", lessons.GetLessonsByIDs)
	course.Post("/addLesson", lessons.AddLesson)
	course.Post("/updateLesson", lessons.UpdateLesson)
	course.Post("/deleteLesson", lessons.DeleteLesson)

	course.Post("/getQualifiedStudents", enrollment.GetQualifiedStudents)
	course.Post("/addStudent", enrollment.AddStudent)
	course.Post("/removeStudent", enrollment.RemoveStudent)
	course.Post("/graduateClient", enrollment.GraduateStudent)
	course.Post("/ungraduateClient", enrollment.UngraduateStudent)
	course.Post("/getCourseClients", enrollment.GetCourseClients)
	course.Post("/getLessonClients", enrollment.GetLessonClients)
	course.Post("/getLessonGraduatedClients", enrollment.GetLessonGraduatedClients)
	course.Post("/getStudentCourses", enrollment.GetStudentCourses)
}
