package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	clientModel "yogacrm_backend/internals/features/clients/model"
	"yogacrm_backend/internals/features/dormitory/dto"
	"yogacrm_backend/internals/features/dormitory/model"
	"yogacrm_backend/internals/features/dormitory/service"
	logService "yogacrm_backend/internals/features/logs/service"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type BedController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewBedController(db *gorm.DB) *BedController {
	return &BedController{DB: db, Validate: validator.New()}
}

type bedRow struct {
	BedID            int64   `json:"bed_id"`
	BedRoomID        int64   `json:"bed_room_id"`
	BedNumber        string  `json:"bed_number"`
	BedCategory      *string `json:"bed_category,omitempty"`
	BedDurationWeeks int     `json:"bed_duration_weeks"`
	ClientID         *int64  `json:"client_id,omitempty"`
	ClientName       *string `json:"client_name,omitempty"`
}

// POST /dorm/getBeds
// Occupant name rides along so the floor plan screen needs one call.
func (ctrl *BedController) GetBeds(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.GetBedsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var beds []bedRow
	err := ctrl.DB.WithContext(c.Context()).
		Table("beds").
		Select("beds.bed_id, beds.bed_room_id, beds.bed_number, beds.bed_category, beds.bed_duration_weeks, clients.client_id, clients.client_name").
		Joins("LEFT JOIN clients ON clients.client_bed_id = beds.bed_id").
		Where("beds.bed_room_id = ?", req.RoomID).
		Order("beds.bed_number ASC").
		Scan(&beds).Error
	if err != nil {
		return helper.JsonError(c, "fetch beds", err)
	}

	return helper.JsonOK(c, "beds fetched", fiber.Map{"beds": beds})
}

// POST /dorm/addBed
func (ctrl *BedController) AddBed(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.CreateBedRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var room model.RoomModel
	if err := db.First(&room, "room_id = ?", req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "room not found")
		}
		return helper.JsonError(c, "add bed", err)
	}

	if room.RoomMaxBeds > 0 {
		var beds int64
		if err := db.Model(&model.BedModel{}).
			Where("bed_room_id = ?", req.RoomID).
			Count(&beds).Error; err != nil {
			return helper.JsonError(c, "add bed", err)
		}
		if beds >= int64(room.RoomMaxBeds) {
			return helper.JsonFail(c, fiber.StatusBadRequest, "room is already at its bed limit")
		}
	}

	bed := model.BedModel{
		BedRoomID:        req.RoomID,
		BedNumber:        req.BedNumber,
		BedDurationWeeks: req.DurationWeeks,
	}
	if req.Category != "" {
		bed.BedCategory = &req.Category
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add bed", tx.Error)
	}
	if err := tx.Create(&bed).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add bed", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		"added bed "+bed.BedNumber+" to room "+room.RoomNumber); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add bed", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add bed", err)
	}

	return helper.JsonOK(c, "bed added", fiber.Map{"id": bed.BedID})
}

// POST /dorm/updateBed
func (ctrl *BedController) UpdateBed(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.UpdateBedRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var bed model.BedModel
	if err := db.First(&bed, "bed_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "bed not found")
		}
		return helper.JsonError(c, "update bed", err)
	}

	updates := map[string]interface{}{}
	if req.BedNumber != nil && *req.BedNumber != "" {
		updates["bed_number"] = *req.BedNumber
	}
	if req.Category != nil {
		updates["bed_category"] = *req.Category
	}
	if req.DurationWeeks != nil {
		updates["bed_duration_weeks"] = *req.DurationWeeks
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update bed", tx.Error)
	}
	if err := tx.Model(&model.BedModel{}).
		Where("bed_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update bed", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated bed "+bed.BedNumber); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update bed", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update bed", err)
	}

	return helper.JsonOK(c, "bed updated", nil)
}

// POST /dorm/deleteBed
func (ctrl *BedController) DeleteBed(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.IDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var bed model.BedModel
	if err := db.First(&bed, "bed_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "bed not found")
		}
		return helper.JsonError(c, "delete bed", err)
	}

	var occupied int64
	if err := db.Table("clients").
		Where("client_bed_id = ?", req.ID).
		Count(&occupied).Error; err != nil {
		return helper.JsonError(c, "delete bed", err)
	}
	if occupied > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "bed is occupied")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete bed", tx.Error)
	}
	if err := tx.Delete(&model.BedModel{}, "bed_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete bed", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted bed "+bed.BedNumber); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete bed", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete bed", err)
	}

	return helper.JsonOK(c, "bed deleted", nil)
}

// POST /dorm/assignBed
// The check-in itself lives on the client row, so a move to another bed
// is just another assignBed call after the checkout.
func (ctrl *BedController) AssignBed(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.AssignBedRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var bed model.BedModel
	if err := db.First(&bed, "bed_id = ?", req.BedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "bed not found")
		}
		return helper.JsonError(c, "assign bed", err)
	}

	var client clientModel.ClientModel
	if err := db.First(&client, "client_id = ?", req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "client not found")
		}
		return helper.JsonError(c, "assign bed", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "assign bed", tx.Error)
	}

	// The free check runs inside the transaction so two concurrent
	// assignments cannot both see an empty bed.
	var occupied int64
	if err := tx.Model(&clientModel.ClientModel{}).
		Where("client_bed_id = ?", req.BedID).
		Count(&occupied).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "assign bed", err)
	}
	if occupied > 0 {
		tx.Rollback()
		return helper.JsonFail(c, fiber.StatusBadRequest, "bed is already occupied")
	}

	checkIn := datatypes.Date(time.Now())
	if err := tx.Model(&clientModel.ClientModel{}).
		Where("client_id = ?", req.ClientID).
		Updates(map[string]interface{}{
			"client_bed_id":        req.BedID,
			"client_check_in_date": checkIn,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "assign bed", err)
	}
	if err := logService.AppendBoth(tx, client.ClientID, actor.UserID,
		"checked "+client.ClientName+" into bed "+bed.BedNumber); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "assign bed", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "assign bed", err)
	}

	return helper.JsonOK(c, "bed assigned", nil)
}

// POST /dorm/checkOutBed
func (ctrl *BedController) CheckOutBed(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.CheckOutBedRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var bed model.BedModel
	if err := db.First(&bed, "bed_id = ?", req.BedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "bed not found")
		}
		return helper.JsonError(c, "check out bed", err)
	}

	var client clientModel.ClientModel
	if err := db.First(&client, "client_bed_id = ?", req.BedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusBadRequest, "bed is not occupied")
		}
		return helper.JsonError(c, "check out bed", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "check out bed", tx.Error)
	}
	if err := tx.Model(&clientModel.ClientModel{}).
		Where("client_id = ?", client.ClientID).
		Updates(map[string]interface{}{
			"client_bed_id":        nil,
			"client_check_in_date": nil,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "check out bed", err)
	}
	if err := logService.AppendBoth(tx, client.ClientID, actor.UserID,
		"checked "+client.ClientName+" out of bed "+bed.BedNumber); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "check out bed", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "check out bed", err)
	}

	return helper.JsonOK(c, "bed checked out", nil)
}

type overdueRow struct {
	BedID         int64     `json:"bed_id"`
	BedNumber     string    `json:"bed_number"`
	DurationWeeks int       `json:"duration_weeks"`
	RoomNumber    string    `json:"room_number"`
	DormitoryName string    `json:"dormitory_name"`
	ClientID      int64     `json:"client_id"`
	ClientName    string    `json:"client_name"`
	CheckInDate   time.Time `json:"check_in_date"`
}

// POST /dorm/getOverdueBeds
// Scans occupied beds and keeps the stays that ran past their booked
// weeks.
func (ctrl *BedController) GetOverdueBeds(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var rows []overdueRow
	err := ctrl.DB.WithContext(c.Context()).
		Table("clients").
		Select("beds.bed_id, beds.bed_number, beds.bed_duration_weeks AS duration_weeks, "+
			"rooms.room_number, dormitories.dormitory_name, "+
			"clients.client_id, clients.client_name, clients.client_check_in_date AS check_in_date").
		Joins("JOIN beds ON beds.bed_id = clients.client_bed_id").
		Joins("JOIN rooms ON rooms.room_id = beds.bed_room_id").
		Joins("JOIN dormitories ON dormitories.dormitory_id = rooms.room_dormitory_id").
		Where("clients.client_bed_id IS NOT NULL AND clients.client_check_in_date IS NOT NULL").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, "fetch overdue beds", err)
	}

	now := time.Now()
	overdue := make([]fiber.Map, 0)
	for _, row := range rows {
		if !service.IsOverdue(row.CheckInDate, row.DurationWeeks, now) {
			continue
		}
		overdue = append(overdue, fiber.Map{
			"bed_id":         row.BedID,
			"bed_number":     row.BedNumber,
			"room_number":    row.RoomNumber,
			"dormitory_name": row.DormitoryName,
			"client_id":      row.ClientID,
			"client_name":    row.ClientName,
			"check_in_date":  row.CheckInDate.Format("2006-01-02"),
			"due_date":       service.CheckOutDue(row.CheckInDate, row.DurationWeeks).Format("2006-01-02"),
			"overdue_days":   service.OverdueDays(row.CheckInDate, row.DurationWeeks, now),
		})
	}

	return helper.JsonOK(c, "overdue beds fetched", fiber.Map{
		"beds":  overdue,
		"total": len(overdue),
	})
}
