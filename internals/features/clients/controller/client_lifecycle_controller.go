package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/clients/dto"
	"yogacrm_backend/internals/features/clients/model"
	"yogacrm_backend/internals/features/clients/service"
	logService "yogacrm_backend/internals/features/logs/service"
	userModel "yogacrm_backend/internals/features/users/model"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type ClientLifecycleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewClientLifecycleController(db *gorm.DB) *ClientLifecycleController {
	return &ClientLifecycleController{DB: db, Validate: validator.New()}
}

// parseDate accepts the two formats the frontend has historically sent.
func parseDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			d := datatypes.Date(t)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

func (ctrl *ClientLifecycleController) loadClient(db *gorm.DB, id int64) (*model.ClientModel, error) {
	var client model.ClientModel
	if err := db.First(&client, "client_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// POST /extra/addClient
func (ctrl *ClientLifecycleController) AddClient(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	weixin := req.Weixin
	contacts := service.ContactSet{
		Phone:       req.Phone,
		Weixin:      &weixin,
		QQ:          req.QQ,
		Douyin:      req.Douyin,
		Rednote:     req.Rednote,
		Shangwutong: req.Shangwutong,
	}
	if err := service.CheckUniqueContacts(db, 0, contacts); err != nil {
		var taken *service.ErrContactTaken
		if errors.As(err, &taken) {
			return helper.JsonFail(c, fiber.StatusBadRequest, taken.Error())
		}
		return helper.JsonError(c, "add client", err)
	}

	fromSource := req.FromSource
	client := model.ClientModel{
		ClientName:        req.Name,
		ClientFromSource:  &fromSource,
		ClientWeixin:      &weixin,
		ClientGender:      req.Gender,
		ClientAge:         req.Age,
		ClientIDNumber:    req.IDNumber,
		ClientAddress:     req.Address,
		ClientPhone:       req.Phone,
		ClientQQ:          req.QQ,
		ClientDouyin:      req.Douyin,
		ClientRednote:     req.Rednote,
		ClientShangwutong: req.Shangwutong,
		ClientStatus:      constants.ClientUnassigned,
		ClientCreatorID:   &actor.UserID,
	}
	if req.Info != nil && *req.Info != "" {
		client.ClientInfo = pq.StringArray{*req.Info}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add client", tx.Error)
	}
	if err := tx.Create(&client).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add client", err)
	}
	if err := logService.AppendBoth(tx, client.ClientID, actor.UserID, "created lead "+client.ClientName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add client", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add client", err)
	}

	return helper.JsonOK(c, "client created", fiber.Map{"client": client})
}

// POST /extra/updateClient
// Allow-listed field updates; the audit entry records per-field diffs.
func (ctrl *ClientLifecycleController) UpdateClient(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	client, err := ctrl.loadClient(db, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, -2, "client not found")
		}
		return helper.JsonError(c, "update client", err)
	}

	if err := service.CheckUniqueContacts(db, req.ID, service.ContactSet{
		Phone:       req.Phone,
		Weixin:      req.Weixin,
		QQ:          req.QQ,
		Douyin:      req.Douyin,
		Rednote:     req.Rednote,
		Shangwutong: req.Shangwutong,
	}); err != nil {
		var taken *service.ErrContactTaken
		if errors.As(err, &taken) {
			return helper.JsonFail(c, fiber.StatusBadRequest, taken.Error())
		}
		return helper.JsonError(c, "update client", err)
	}

	updates := map[string]interface{}{}
	var changes []string

	setStr := func(column, label string, old *string, incoming *string) {
		if incoming == nil || *incoming == "" {
			return
		}
		oldVal := ""
		if old != nil {
			oldVal = *old
		}
		if oldVal == *incoming {
			return
		}
		updates[column] = *incoming
		changes = append(changes, fmt.Sprintf("%s: %s -> %s", label, oldVal, *incoming))
	}

	if req.Name != nil && *req.Name != "" && *req.Name != client.ClientName {
		updates["client_name"] = *req.Name
		changes = append(changes, fmt.Sprintf("name: %s -> %s", client.ClientName, *req.Name))
	}
	if req.Gender != nil {
		if client.ClientGender == nil || *client.ClientGender != *req.Gender {
			updates["client_gender"] = *req.Gender
			changes = append(changes, "gender changed")
		}
	}
	if req.Age != nil {
		if client.ClientAge == nil || *client.ClientAge != *req.Age {
			updates["client_age"] = *req.Age
			changes = append(changes, "age changed")
		}
	}
	setStr("client_id_number", "id number", client.ClientIDNumber, req.IDNumber)
	setStr("client_address", "address", client.ClientAddress, req.Address)
	setStr("client_from_source", "source", client.ClientFromSource, req.FromSource)
	setStr("client_phone", "phone", client.ClientPhone, req.Phone)
	setStr("client_weixin", "weixin", client.ClientWeixin, req.Weixin)
	setStr("client_qq", "QQ", client.ClientQQ, req.QQ)
	setStr("client_douyin", "douyin", client.ClientDouyin, req.Douyin)
	setStr("client_rednote", "rednote", client.ClientRednote, req.Rednote)
	setStr("client_shangwutong", "shangwutong", client.ClientShangwutong, req.Shangwutong)

	if req.Info != nil && *req.Info != "" {
		updates["client_info"] = append(client.ClientInfo, *req.Info)
		changes = append(changes, "added note: "+*req.Info)
	}

	logContent := "updated client (no changes)"
	if len(changes) > 0 {
		logContent = "updated client: "
		for i, ch := range changes {
			if i > 0 {
				logContent += "; "
			}
			logContent += ch
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update client", tx.Error)
	}
	if len(updates) > 0 {
		if err := tx.Model(&model.ClientModel{}).
			Where("client_id = ?", req.ID).
			Updates(updates).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, "update client", err)
		}
	}
	if err := logService.AppendBoth(tx, req.ID, actor.UserID, logContent); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update client", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update client", err)
	}

	return helper.JsonOK(c, "client updated", nil)
}

// POST /extra/deleteClient
func (ctrl *ClientLifecycleController) DeleteClient(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req struct {
		ID int64 `json:"id" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	client, err := ctrl.loadClient(db, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "client not found")
		}
		return helper.JsonError(c, "delete client", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete client", tx.Error)
	}
	if err := tx.Delete(&model.ClientModel{}, "client_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete client", err)
	}
	if err := logService.AppendBoth(tx, req.ID, actor.UserID, "deleted client "+client.ClientName); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete client", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete client", err)
	}

	return helper.JsonOK(c, "client deleted", nil)
}

// POST /extra/assignClients
// Batch: status → assigned, owner → chosen staff member.
func (ctrl *ClientLifecycleController) AssignClients(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.AssignClientsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var assignee userModel.UserModel
	if err := db.First(&assignee, "user_id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "assignee not found")
		}
		return helper.JsonError(c, "assign clients", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "assign clients", tx.Error)
	}
	if err := tx.Model(&model.ClientModel{}).
		Where("client_id IN ?", req.IDs).
		Updates(map[string]interface{}{
			"client_status":             constants.ClientAssigned,
			"client_affiliated_user_id": req.UserID,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "assign clients", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		fmt.Sprintf("assigned %d clients to %s", len(req.IDs), assignee.UserUsername)); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "assign clients", err)
	}
	for _, id := range req.IDs {
		if err := logService.AppendClientLog(tx, id, actor.UserID, "assigned to "+assignee.UserUsername); err != nil {
			tx.Rollback()
			return helper.JsonError(c, "assign clients", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "assign clients", err)
	}

	return helper.JsonOK(c, "clients assigned", nil)
}

// POST /extra/unassignClients
// Batch: back to the pool, owner cleared.
func (ctrl *ClientLifecycleController) UnassignClients(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.UnassignClientsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "unassign clients", tx.Error)
	}
	if err := tx.Model(&model.ClientModel{}).
		Where("client_id IN ?", req.IDs).
		Updates(map[string]interface{}{
			"client_status":             constants.ClientUnassigned,
			"client_affiliated_user_id": nil,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "unassign clients", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		fmt.Sprintf("unassigned %d clients", len(req.IDs))); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "unassign clients", err)
	}
	for _, id := range req.IDs {
		if err := logService.AppendClientLog(tx, id, actor.UserID, "unassigned"); err != nil {
			tx.Rollback()
			return helper.JsonError(c, "unassign clients", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "unassign clients", err)
	}

	return helper.JsonOK(c, "clients unassigned", nil)
}

// POST /extra/convertToClients
// Batch: lead → converted, records the conversion time.
func (ctrl *ClientLifecycleController) ConvertToClients(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.ConvertClientsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var clients []model.ClientModel
	if err := db.Find(&clients, "client_id IN ?", req.IDs).Error; err != nil {
		return helper.JsonError(c, "convert clients", err)
	}

	now := time.Now()
	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "convert clients", tx.Error)
	}
	if err := tx.Model(&model.ClientModel{}).
		Where("client_id IN ?", req.IDs).
		Updates(map[string]interface{}{
			"client_status":         constants.ClientConverted,
			"client_to_client_time": now,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "convert clients", err)
	}
	for i := range clients {
		if err := logService.AppendLog(tx, actor.UserID,
			"converted lead "+clients[i].ClientName+" to client"); err != nil {
			tx.Rollback()
			return helper.JsonError(c, "convert clients", err)
		}
		if err := logService.AppendClientLog(tx, clients[i].ClientID, actor.UserID,
			"converted to client"); err != nil {
			tx.Rollback()
			return helper.JsonError(c, "convert clients", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "convert clients", err)
	}

	return helper.JsonOK(c, "clients converted", nil)
}

// POST /extra/submitReserve
// Re-appointing an already appointed client is allowed; the new fields
// simply replace the old ones.
func (ctrl *ClientLifecycleController) SubmitReserve(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.SubmitReserveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	client, err := ctrl.loadClient(db, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "client not found")
		}
		return helper.JsonError(c, "submit reserve", err)
	}

	appointDate, err := parseDate(req.AppointDate)
	if err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid appoint date")
	}
	nextTalkDate, err := parseDate(req.NextTalkDate)
	if err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid next talk date")
	}

	updates := map[string]interface{}{
		"client_status":         constants.ClientAppointed,
		"client_appointer_id":   req.AppointerID,
		"client_appoint_date":   appointDate,
		"client_course_ids":     pq.Int64Array(req.CourseIDs),
		"client_next_talk_date": nextTalkDate,
		"client_process_status": constants.ProcessOpen,
	}
	if req.UseCombo {
		updates["client_combo_id"] = req.ComboID
	}
	if req.Info != "" {
		updates["client_info"] = append(client.ClientInfo, req.Info)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "submit reserve", tx.Error)
	}
	if err := tx.Model(&model.ClientModel{}).
		Where("client_id = ?", req.ClientID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "submit reserve", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		"client "+client.ClientName+" appointed a visit"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "submit reserve", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID, "appointed"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "submit reserve", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "submit reserve", err)
	}

	return helper.JsonOK(c, "appointment saved", nil)
}

// POST /extra/cancelReserve
func (ctrl *ClientLifecycleController) CancelReserve(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.ClientIDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	client, err := ctrl.loadClient(db, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "client not found")
		}
		return helper.JsonError(c, "cancel reserve", err)
	}
	if err := service.CanCancelReserve(client); err != nil {
		return helper.JsonFail(c, -2, err.Error())
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "cancel reserve", tx.Error)
	}
	if err := tx.Model(&model.ClientModel{}).
		Where("client_id = ?", req.ClientID).
		Updates(map[string]interface{}{
			"client_status":         constants.ClientConverted,
			"client_appointer_id":   nil,
			"client_appoint_date":   nil,
			"client_course_ids":     nil,
			"client_next_talk_date": nil,
			"client_process_status": nil,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "cancel reserve", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		"client "+client.ClientName+" cancelled the appointment"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "cancel reserve", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID, "cancelled appointment"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "cancel reserve", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "cancel reserve", err)
	}

	return helper.JsonOK(c, "appointment cancelled", nil)
}

// POST /extra/confirmCooperation
// Closing twice without a cancel in between is refused so the first
// contract number and close time survive.
func (ctrl *ClientLifecycleController) ConfirmCooperation(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.ConfirmCooperationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	client, err := ctrl.loadClient(db, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusBadRequest, "client not found")
		}
		return helper.JsonError(c, "confirm cooperation", err)
	}
	if err := service.CanConfirmCooperation(client); err != nil {
		return helper.JsonFail(c, -2, err.Error())
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "confirm cooperation", tx.Error)
	}
	if err := tx.Model(&model.ClientModel{}).
		Where("client_id = ?", req.ClientID).
		Updates(map[string]interface{}{
			"client_process_status": constants.ProcessClosed,
			"client_contract_no":    req.ContractNo,
			"client_cooperate_time": time.Now(),
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "confirm cooperation", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		"client "+client.ClientName+" signed contract "+req.ContractNo); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "confirm cooperation", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID,
		"signed contract "+req.ContractNo); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "confirm cooperation", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "confirm cooperation", err)
	}

	return helper.JsonOK(c, "contract signed", nil)
}

// POST /extra/cancelCooperation
func (ctrl *ClientLifecycleController) CancelCooperation(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.ClientIDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	client, err := ctrl.loadClient(db, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusBadRequest, "client not found")
		}
		return helper.JsonError(c, "cancel cooperation", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "cancel cooperation", tx.Error)
	}
	if err := tx.Model(&model.ClientModel{}).
		Where("client_id = ?", req.ClientID).
		Updates(map[string]interface{}{
			"client_process_status": constants.ProcessOpen,
			"client_contract_no":    nil,
			"client_cooperate_time": nil,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "cancel cooperation", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		"client "+client.ClientName+" cancelled the contract"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "cancel cooperation", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID, "cancelled contract"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "cancel cooperation", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "cancel cooperation", err)
	}

	return helper.JsonOK(c, "contract cancelled", nil)
}

// POST /extra/graduateClient
func (ctrl *ClientLifecycleController) GraduateClient(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req struct {
		ID int64 `json:"id" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	client, err := ctrl.loadClient(db, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, -2, "client not found")
		}
		return helper.JsonError(c, "graduate client", err)
	}
	if err := service.CanGraduate(client); err != nil {
		return helper.JsonFail(c, -3, err.Error())
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "graduate client", tx.Error)
	}
	if err := tx.Model(&model.ClientModel{}).
		Where("client_id = ?", req.ID).
		Update("client_status", constants.ClientGraduated).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "graduate client", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		"student "+client.ClientName+" graduated"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "graduate client", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID, "graduated"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "graduate client", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "graduate client", err)
	}

	return helper.JsonOK(c, "student graduated", nil)
}

// POST /extra/cancelGraduate
func (ctrl *ClientLifecycleController) CancelGraduate(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req struct {
		ID int64 `json:"id" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	client, err := ctrl.loadClient(db, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, -2, "client not found")
		}
		return helper.JsonError(c, "cancel graduate", err)
	}
	if err := service.CanCancelGraduate(client); err != nil {
		return helper.JsonFail(c, -3, err.Error())
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "cancel graduate", tx.Error)
	}
	if err := tx.Model(&model.ClientModel{}).
		Where("client_id = ?", req.ID).
		Update("client_status", constants.ClientAppointed).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "cancel graduate", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		"student "+client.ClientName+" un-graduated"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "cancel graduate", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID, "un-graduated"); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "cancel graduate", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "cancel graduate", err)
	}

	return helper.JsonOK(c, "graduation cancelled", nil)
}

// POST /extra/batchImportClues
// Best-effort import: bad rows are counted and skipped, good rows land
// in one commit. The first duplicate reason is echoed back.
func (ctrl *ClientLifecycleController) BatchImportClues(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.BatchImportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var successCount, errorCount int
	var firstError string

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "import clues", tx.Error)
	}
	for i := range req.Clues {
		clue := &req.Clues[i]
		if clue.Name == "" || clue.Weixin == "" {
			errorCount++
			continue
		}

		weixin := clue.Weixin
		contacts := service.ContactSet{Weixin: &weixin}
		if clue.Phone != "" {
			contacts.Phone = &clue.Phone
		}
		if clue.QQ != "" {
			contacts.QQ = &clue.QQ
		}
		if clue.Douyin != "" {
			contacts.Douyin = &clue.Douyin
		}
		if clue.Rednote != "" {
			contacts.Rednote = &clue.Rednote
		}
		if clue.Shangwutong != "" {
			contacts.Shangwutong = &clue.Shangwutong
		}
		if err := service.CheckUniqueContacts(tx, 0, contacts); err != nil {
			var taken *service.ErrContactTaken
			if errors.As(err, &taken) {
				if firstError == "" {
					firstError = taken.Error()
				}
				errorCount++
				continue
			}
			tx.Rollback()
			return helper.JsonError(c, "import clues", err)
		}

		client := model.ClientModel{
			ClientName:      clue.Name,
			ClientGender:    clue.Gender,
			ClientAge:       clue.Age,
			ClientWeixin:    &weixin,
			ClientStatus:    constants.ClientUnassigned,
			ClientCreatorID: &actor.UserID,
		}
		if clue.IDNumber != "" {
			client.ClientIDNumber = &clue.IDNumber
		}
		if clue.Phone != "" {
			client.ClientPhone = &clue.Phone
		}
		if clue.QQ != "" {
			client.ClientQQ = &clue.QQ
		}
		if clue.Douyin != "" {
			client.ClientDouyin = &clue.Douyin
		}
		if clue.Rednote != "" {
			client.ClientRednote = &clue.Rednote
		}
		if clue.Shangwutong != "" {
			client.ClientShangwutong = &clue.Shangwutong
		}
		if clue.Address != "" {
			client.ClientAddress = &clue.Address
		}
		if clue.Info != "" {
			client.ClientInfo = pq.StringArray{clue.Info}
		}

		if err := tx.Create(&client).Error; err != nil {
			errorCount++
			continue
		}
		successCount++
	}
	if err := logService.AppendLog(tx, actor.UserID,
		fmt.Sprintf("imported %d leads (%d failed)", successCount, errorCount)); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "import clues", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "import clues", err)
	}

	message := fmt.Sprintf("import finished: %d succeeded, %d failed", successCount, errorCount)
	if firstError != "" {
		message += ". reason: " + firstError
	}
	return helper.JsonOK(c, message, fiber.Map{
		"data": fiber.Map{
			"success": successCount,
			"error":   errorCount,
		},
	})
}
