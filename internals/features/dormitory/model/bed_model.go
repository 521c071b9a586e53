package model

/* ================= Bed ================= */

// Occupancy is not stored here. The occupant is the client whose
// client_bed_id points at this bed.
type BedModel struct {
	BedID            int64   `gorm:"column:bed_id;primaryKey;autoIncrement" json:"bed_id"`
	BedRoomID        int64   `gorm:"column:bed_room_id;not null;index" json:"bed_room_id"`
	BedNumber        string  `gorm:"column:bed_number;type:varchar(30);not null" json:"bed_number"`
	BedCategory      *string `gorm:"column:bed_category;type:varchar(50)" json:"bed_category,omitempty"`
	BedDurationWeeks int     `gorm:"column:bed_duration_weeks;not null;default:0" json:"bed_duration_weeks"`
}

func (BedModel) TableName() string {
	return "beds"
}
