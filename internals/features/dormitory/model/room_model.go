package model

/* ================= Room ================= */

type RoomModel struct {
	RoomID          int64   `gorm:"column:room_id;primaryKey;autoIncrement" json:"room_id"`
	RoomDormitoryID int64   `gorm:"column:room_dormitory_id;not null;index" json:"room_dormitory_id"`
	RoomNumber      string  `gorm:"column:room_number;type:varchar(30);not null" json:"room_number"`
	RoomBuilding    *string `gorm:"column:room_building;type:varchar(60)" json:"room_building,omitempty"`
	RoomMaxBeds     int     `gorm:"column:room_max_beds;not null;default:0" json:"room_max_beds"`
}

func (RoomModel) TableName() string {
	return "rooms"
}
