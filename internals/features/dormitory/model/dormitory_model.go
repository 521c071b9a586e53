package model

/* ================= Dormitory ================= */

type DormitoryModel struct {
	DormitoryID       int64   `gorm:"column:dormitory_id;primaryKey;autoIncrement" json:"dormitory_id"`
	DormitoryName     string  `gorm:"column:dormitory_name;type:varchar(120);not null" json:"dormitory_name"`
	DormitoryCategory *string `gorm:"column:dormitory_category;type:varchar(50)" json:"dormitory_category,omitempty"`
	DormitorySchoolID int64   `gorm:"column:dormitory_school_id;not null;index" json:"dormitory_school_id"`
}

func (DormitoryModel) TableName() string {
	return "dormitories"
}
