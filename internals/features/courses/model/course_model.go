package model

import "time"

// CourseModel maps the `courses` table. Course names are unique within a
// school, not globally.
type CourseModel struct {
	CourseID          int64     `json:"course_id" gorm:"column:course_id;primaryKey;autoIncrement"`
	CourseName        string    `json:"course_name" gorm:"column:course_name;type:varchar(120);not null"`
	CourseCategory    string    `json:"course_category" gorm:"column:course_category;type:varchar(80);not null"`
	CourseSchoolID    int64     `json:"course_school_id" gorm:"column:course_school_id;not null;index"`
	CourseDuration    int       `json:"course_duration" gorm:"column:course_duration;not null"`
	CoursePrice       float64   `json:"course_price" gorm:"column:course_price;not null"`
	CourseInfo        *string   `json:"course_info,omitempty" gorm:"column:course_info;type:text"`
	CourseCreatorID   *int64    `json:"course_creator_id,omitempty" gorm:"column:course_creator_id"`
	CourseCreatedTime time.Time `json:"course_created_time" gorm:"column:course_created_time;autoCreateTime"`
}

func (CourseModel) TableName() string {
	return "courses"
}
