package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/dormitory/dto"
	"yogacrm_backend/internals/features/dormitory/model"
	logService "yogacrm_backend/internals/features/logs/service"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type DormitoryController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewDormitoryController(db *gorm.DB) *DormitoryController {
	return &DormitoryController{DB: db, Validate: validator.New()}
}

// POST /dorm/getDormitories
func (ctrl *DormitoryController) GetDormitories(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.GetDormitoriesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.DormitoryModel{}).Order("dormitory_id ASC")
	if req.SchoolID != nil {
		query = query.Where("dormitory_school_id = ?", *req.SchoolID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch dormitories", err)
	}
	var dorms []model.DormitoryModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&dorms).Error; err != nil {
		return helper.JsonError(c, "fetch dormitories", err)
	}

	return helper.JsonOK(c, "dormitories fetched", fiber.Map{
		"dormitories": dorms,
		"total":       total,
	})
}

// POST /dorm/addDormitory
func (ctrl *DormitoryController) AddDormitory(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.CreateDormitoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	dorm := model.DormitoryModel{
		DormitoryName:     req.Name,
		DormitorySchoolID: req.SchoolID,
	}
	if req.Category != "" {
		dorm.DormitoryCategory = &req.Category
	}

	db := ctrl.DB.WithContext(c.Context())
	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add dormitory", tx.Error)
	}
	if err := tx.Create(&dorm).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add dormitory", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "added dormitory "+dorm.DormitoryName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add dormitory", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add dormitory", err)
	}

	return helper.JsonOK(c, "dormitory added", fiber.Map{"id": dorm.DormitoryID})
}

// POST /dorm/updateDormitory
func (ctrl *DormitoryController) UpdateDormitory(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.UpdateDormitoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var dorm model.DormitoryModel
	if err := db.First(&dorm, "dormitory_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "dormitory not found")
		}
		return helper.JsonError(c, "update dormitory", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["dormitory_name"] = *req.Name
	}
	if req.Category != nil {
		updates["dormitory_category"] = *req.Category
	}
	if req.SchoolID != nil {
		updates["dormitory_school_id"] = *req.SchoolID
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update dormitory", tx.Error)
	}
	if err := tx.Model(&model.DormitoryModel{}).
		Where("dormitory_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update dormitory", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated dormitory "+dorm.DormitoryName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update dormitory", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update dormitory", err)
	}

	return helper.JsonOK(c, "dormitory updated", nil)
}

// POST /dorm/deleteDormitory
// Takes the whole building with it: beds first, then rooms, then the
// dormitory, all in one transaction.
func (ctrl *DormitoryController) DeleteDormitory(c *fiber.Ctx) error {
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
	var dorm model.DormitoryModel
	if err := db.First(&dorm, "dormitory_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "dormitory not found")
		}
		return helper.JsonError(c, "delete dormitory", err)
	}

	var occupied int64
	if err := db.Table("clients").
		Where("client_bed_id IN (SELECT bed_id FROM beds WHERE bed_room_id IN (SELECT room_id FROM rooms WHERE room_dormitory_id = ?))", req.ID).
		Count(&occupied).Error; err != nil {
		return helper.JsonError(c, "delete dormitory", err)
	}
	if occupied > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "dormitory still has occupied beds")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete dormitory", tx.Error)
	}
	if err := tx.Where("bed_room_id IN (SELECT room_id FROM rooms WHERE room_dormitory_id = ?)", req.ID).
		Delete(&model.BedModel{}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete dormitory", err)
	}
	if err := tx.Delete(&model.RoomModel{}, "room_dormitory_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete dormitory", err)
	}
	if err := tx.Delete(&model.DormitoryModel{}, "dormitory_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete dormitory", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted dormitory "+dorm.DormitoryName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete dormitory", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete dormitory", err)
	}

	return helper.JsonOK(c, "dormitory deleted", nil)
}

// POST /dorm/getRooms
func (ctrl *DormitoryController) GetRooms(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.GetRoomsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var rooms []model.RoomModel
	err := ctrl.DB.WithContext(c.Context()).
		Order("room_number ASC").
		Find(&rooms, "room_dormitory_id = ?", req.DormitoryID).Error
	if err != nil {
		return helper.JsonError(c, "fetch rooms", err)
	}
	return helper.JsonOK(c, "rooms fetched", fiber.Map{"rooms": rooms})
}

// POST /dorm/addRoom
func (ctrl *DormitoryController) AddRoom(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var dorm model.DormitoryModel
	if err := db.First(&dorm, "dormitory_id = ?", req.DormitoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "dormitory not found")
		}
		return helper.JsonError(c, "add room", err)
	}

	room := model.RoomModel{
		RoomDormitoryID: req.DormitoryID,
		RoomNumber:      req.RoomNumber,
		RoomMaxBeds:     req.MaxBeds,
	}
	if req.Building != "" {
		room.RoomBuilding = &req.Building
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add room", tx.Error)
	}
	if err := tx.Create(&room).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add room", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		"added room "+room.RoomNumber+" to dormitory "+dorm.DormitoryName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add room", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add room", err)
	}

	return helper.JsonOK(c, "room added", fiber.Map{"id": room.RoomID})
}

// POST /dorm/updateRoom
func (ctrl *DormitoryController) UpdateRoom(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var room model.RoomModel
	if err := db.First(&room, "room_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "room not found")
		}
		return helper.JsonError(c, "update room", err)
	}

	updates := map[string]interface{}{}
	if req.RoomNumber != nil && *req.RoomNumber != "" {
		updates["room_number"] = *req.RoomNumber
	}
	if req.Building != nil {
		updates["room_building"] = *req.Building
	}
	if req.MaxBeds != nil {
		// Shrinking below the bed count already placed makes no sense.
		var beds int64
		if err := db.Model(&model.BedModel{}).
			Where("bed_room_id = ?", req.ID).
			Count(&beds).Error; err != nil {
			return helper.JsonError(c, "update room", err)
		}
		if int64(*req.MaxBeds) < beds {
			return helper.JsonFail(c, fiber.StatusBadRequest, "room already has more beds than the new limit")
		}
		updates["room_max_beds"] = *req.MaxBeds
	}
	if len(updates) == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "nothing to update")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update room", tx.Error)
	}
	if err := tx.Model(&model.RoomModel{}).
		Where("room_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update room", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "updated room "+room.RoomNumber); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update room", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update room", err)
	}

	return helper.JsonOK(c, "room updated", nil)
}

// POST /dorm/deleteRoom
func (ctrl *DormitoryController) DeleteRoom(c *fiber.Ctx) error {
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
	var room model.RoomModel
	if err := db.First(&room, "room_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "room not found")
		}
		return helper.JsonError(c, "delete room", err)
	}

	var occupied int64
	if err := db.Table("clients").
		Where("client_bed_id IN (SELECT bed_id FROM beds WHERE bed_room_id = ?)", req.ID).
		Count(&occupied).Error; err != nil {
		return helper.JsonError(c, "delete room", err)
	}
	if occupied > 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "room still has occupied beds")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete room", tx.Error)
	}
	if err := tx.Delete(&model.BedModel{}, "bed_room_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete room", err)
	}
	if err := tx.Delete(&model.RoomModel{}, "room_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete room", err)
	}
	if err := logService.AppendLog(tx, actor.UserID, "deleted room "+room.RoomNumber); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete room", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete room", err)
	}

	return helper.JsonOK(c, "room deleted", nil)
}
