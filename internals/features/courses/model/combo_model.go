package model

import "github.com/lib/pq"

// CourseComboModel maps the `course_combos` table: a bundle of courses
// sold at one price, scoped to a school.
type CourseComboModel struct {
	ComboID        int64         `json:"combo_id" gorm:"column:combo_id;primaryKey;autoIncrement"`
	ComboName      string        `json:"combo_name" gorm:"column:combo_name;type:varchar(120);not null"`
	ComboCourseIDs pq.Int64Array `json:"combo_course_ids" gorm:"column:combo_course_ids;type:bigint[]"`
	ComboSchoolID  int64         `json:"combo_school_id" gorm:"column:combo_school_id;not null;index"`
	ComboPrice     float64       `json:"combo_price" gorm:"column:combo_price;not null"`
	ComboInfo      *string       `json:"combo_info,omitempty" gorm:"column:combo_info;type:text"`
}

func (CourseComboModel) TableName() string {
	return "course_combos"
}
