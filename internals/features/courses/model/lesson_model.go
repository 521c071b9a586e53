package model

import (
	"time"

	"gorm.io/datatypes"
)

// LessonModel maps the `lessons` table: a scheduled class section of one
// course. The chief teacher and assistant are free-text names (outside
// hires happen), the class teacher is a staff reference.
type LessonModel struct {
	LessonID       int64  `json:"lesson_id" gorm:"column:lesson_id;primaryKey;autoIncrement"`
	LessonName     string `json:"lesson_name" gorm:"column:lesson_name;type:varchar(120);not null"`
	LessonCourseID int64  `json:"lesson_course_id" gorm:"column:lesson_course_id;not null;index"`

	LessonChiefTeacherName      string  `json:"lesson_chief_teacher_name" gorm:"column:lesson_chief_teacher_name;type:varchar(80);not null"`
	LessonClassTeacherID        *int64  `json:"lesson_class_teacher_id,omitempty" gorm:"column:lesson_class_teacher_id"`
	LessonTeachingAssistantName *string `json:"lesson_teaching_assistant_name,omitempty" gorm:"column:lesson_teaching_assistant_name;type:varchar(80)"`

	LessonStartDate datatypes.Date  `json:"lesson_start_date" gorm:"column:lesson_start_date;not null"`
	LessonEndDate   *datatypes.Date `json:"lesson_end_date,omitempty" gorm:"column:lesson_end_date"`

	LessonInfo        *string   `json:"lesson_info,omitempty" gorm:"column:lesson_info;type:text"`
	LessonCreatedTime time.Time `json:"lesson_created_time" gorm:"column:lesson_created_time;autoCreateTime"`
}

func (LessonModel) TableName() string {
	return "lessons"
}
