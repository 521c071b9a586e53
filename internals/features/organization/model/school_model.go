package model

// SchoolModel maps the `schools` table: a campus/branch of the business.
type SchoolModel struct {
	SchoolID      int64   `json:"school_id" gorm:"column:school_id;primaryKey;autoIncrement"`
	SchoolName    string  `json:"school_name" gorm:"column:school_name;type:varchar(120);not null"`
	SchoolAddress *string `json:"school_address,omitempty" gorm:"column:school_address;type:text"`
	SchoolPhone   *string `json:"school_phone,omitempty" gorm:"column:school_phone;type:varchar(40)"`
}

func (SchoolModel) TableName() string {
	return "schools"
}
