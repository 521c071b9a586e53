package dto

/* ================= Dormitories ================= */

type GetDormitoriesRequest struct {
	SchoolID *int64 `json:"school_id,omitempty"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
}

type CreateDormitoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Category string `json:"category"`
	SchoolID int64  `json:"school_id" validate:"required"`
}

type UpdateDormitoryRequest struct {
	ID       int64   `json:"id" validate:"required"`
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	SchoolID *int64  `json:"school_id,omitempty"`
}

type IDRequest struct {
	ID int64 `json:"id" validate:"required"`
}

/* ================= Rooms ================= */

type GetRoomsRequest struct {
	DormitoryID int64 `json:"dormitory_id" validate:"required"`
}

type CreateRoomRequest struct {
	DormitoryID int64  `json:"dormitory_id" validate:"required"`
	RoomNumber  string `json:"room_number" validate:"required,min=1,max=30"`
	Building    string `json:"building"`
	MaxBeds     int    `json:"max_beds" validate:"omitempty,min=0"`
}

type UpdateRoomRequest struct {
	ID         int64   `json:"id" validate:"required"`
	RoomNumber *string `json:"room_number,omitempty"`
	Building   *string `json:"building,omitempty"`
	MaxBeds    *int    `json:"max_beds,omitempty" validate:"omitempty,min=0"`
}

/* ================= Beds ================= */

type GetBedsRequest struct {
	RoomID int64 `json:"room_id" validate:"required"`
}

type CreateBedRequest struct {
	RoomID        int64  `json:"room_id" validate:"required"`
	BedNumber     string `json:"bed_number" validate:"required,min=1,max=30"`
	Category      string `json:"category"`
	DurationWeeks int    `json:"duration_weeks" validate:"omitempty,min=0"`
}

type UpdateBedRequest struct {
	ID            int64   `json:"id" validate:"required"`
	BedNumber     *string `json:"bed_number,omitempty"`
	Category      *string `json:"category,omitempty"`
	DurationWeeks *int    `json:"duration_weeks,omitempty" validate:"omitempty,min=0"`
}

type AssignBedRequest struct {
	BedID    int64 `json:"bed_id" validate:"required"`
	ClientID int64 `json:"client_id" validate:"required"`
}

type CheckOutBedRequest struct {
	BedID int64 `json:"bed_id" validate:"required"`
}
