package model

// DepartmentModel maps the `departments` table. Every department belongs
// to exactly one school; staff placement flows department → school.
type DepartmentModel struct {
	DepartmentID       int64  `json:"department_id" gorm:"column:department_id;primaryKey;autoIncrement"`
	DepartmentName     string `json:"department_name" gorm:"column:department_name;type:varchar(120);not null"`
	DepartmentSchoolID int64  `json:"department_school_id" gorm:"column:department_school_id;not null;index"`
}

func (DepartmentModel) TableName() string {
	return "departments"
}
