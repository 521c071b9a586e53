package dto

import "strings"

/* ================= Courses ================= */

type GetCoursesRequest struct {
	SchoolID *int64 `json:"school_id,omitempty"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
}

type IDsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

type CreateCourseRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=120"`
	Category string  `json:"category" validate:"required"`
	SchoolID int64   `json:"school_id" validate:"required"`
	Duration int     `json:"duration" validate:"required,min=1"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Info     string  `json:"info"`
}

func (r *CreateCourseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type UpdateCourseRequest struct {
	ID       int64    `json:"id" validate:"required"`
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	SchoolID *int64   `json:"school_id,omitempty"`
	Duration *int     `json:"duration,omitempty" validate:"omitempty,min=1"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Info     *string  `json:"info,omitempty"`
}

type IDRequest struct {
	ID int64 `json:"id" validate:"required"`
}

/* ================= Combos ================= */

type GetCombosRequest struct {
	SchoolID *int64 `json:"school_id,omitempty"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
}

type CreateComboRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=120"`
	CourseIDs []int64 `json:"course_ids" validate:"required,min=1"`
	SchoolID  int64   `json:"school_id" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Info      string  `json:"info"`
}

type UpdateComboRequest struct {
	ID        int64    `json:"id" validate:"required"`
	Name      *string  `json:"name,omitempty"`
	CourseIDs *[]int64 `json:"course_ids,omitempty"`
	SchoolID  *int64   `json:"school_id,omitempty"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Info      *string  `json:"info,omitempty"`
}

/* ================= Lessons ================= */

type GetLessonsRequest struct {
	Name                  string `json:"name"`
	CourseName            string `json:"course_name"`
	SchoolID              *int64 `json:"school_id,omitempty"`
	Category              string `json:"category"`
	ChiefTeacherName      string `json:"chief_teacher_name"`
	ClassTeacherName      string `json:"class_teacher_name"`
	TeachingAssistantName string `json:"teaching_assistant_name"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	Page                  int    `json:"page"`
	PerPage               int    `json:"per_page"`
}

type CreateLessonRequest struct {
	Name                  string `json:"name" validate:"required,min=1,max=120"`
	CourseID              int64  `json:"course_id" validate:"required"`
	ChiefTeacherName      string `json:"chief_teacher_name" validate:"required"`
	ClassTeacherID        *int64 `json:"class_teacher_id,omitempty"`
	TeachingAssistantName string `json:"teaching_assistant_name"`
	StartDate             string `json:"start_date" validate:"required"`
	EndDate               string `json:"end_date"`
	Info                  string `json:"info"`
}

type UpdateLessonRequest struct {
	ID                    int64   `json:"id" validate:"required"`
	Name                  *string `json:"name,omitempty"`
	CourseID              *int64  `json:"course_id,omitempty"`
	ChiefTeacherName      *string `json:"chief_teacher_name,omitempty"`
	ClassTeacherID        *int64  `json:"class_teacher_id,omitempty"`
	TeachingAssistantName *string `json:"teaching_assistant_name,omitempty"`
	StartDate             *string `json:"start_date,omitempty"`
	EndDate               *string `json:"end_date,omitempty"`
	Info                  *string `json:"info,omitempty"`
}

/* ================= Enrollment ================= */

type QualifiedStudentsRequest struct {
	LessonCourseID int64 `json:"lesson_course_id" validate:"required"`
}

type AddStudentRequest struct {
	LessonID  int64 `json:"lesson_id" validate:"required"`
	StudentID int64 `json:"student_id" validate:"required"`
}

type RemoveStudentRequest struct {
	LessonID  int64 `json:"lesson_id" validate:"required"`
	StudentID int64 `json:"student_id" validate:"required"`
}

type LessonGraduationRequest struct {
	ClientID int64 `json:"client_id" validate:"required"`
	LessonID int64 `json:"lesson_id" validate:"required"`
}

type LessonClientsRequest struct {
	LessonID int64 `json:"lesson_id" validate:"required"`
}

type CourseClientsRequest struct {
	CourseID int64 `json:"course_id" validate:"required"`
}

type StudentCoursesRequest struct {
	StuID int64 `json:"stu_id" validate:"required"`
}
