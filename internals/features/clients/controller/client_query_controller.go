package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/clients/dto"
	"yogacrm_backend/internals/features/clients/model"
	"yogacrm_backend/internals/features/clients/service"
	"yogacrm_backend/internals/features/users/authz"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type ClientQueryController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewClientQueryController(db *gorm.DB) *ClientQueryController {
	return &ClientQueryController{DB: db, Validate: validator.New()}
}

// POST /extra/getClientById
func (ctrl *ClientQueryController) GetClientByID(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.ClientIDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var client model.ClientModel
	err := ctrl.DB.WithContext(c.Context()).
		First(&client, "client_id = ?", req.ClientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "client not found")
		}
		return helper.JsonError(c, "fetch client", err)
	}

	return helper.JsonOK(c, "client fetched", fiber.Map{"client": client})
}

// POST /extra/getClueClients
// The open lead pool: everything except converted/appointed, newest
// first, narrowed to the caller's visibility scope.
func (ctrl *ClientQueryController) GetClueClients(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.ClueClientsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.ClientModel{}).
		Order("client_created_time DESC, client_status ASC")
	query = service.ApplyScope(query, authz.ScopeFor(actor), actor.UserID)

	if req.Name != "" {
		query = query.Where("client_name LIKE ?", "%"+req.Name+"%")
	}
	if len(req.FromSource) > 0 {
		query = query.Where("client_from_source IN ?", req.FromSource)
	}
	if req.Gender != nil {
		query = query.Where("client_gender = ?", *req.Gender)
	}
	if req.Age != nil {
		query = query.Where("client_age = ?", *req.Age)
	}
	if req.IDNumber != "" {
		query = query.Where("client_id_number LIKE ?", "%"+req.IDNumber+"%")
	}
	if req.Phone != "" {
		query = query.Where("client_phone LIKE ?", "%"+req.Phone+"%")
	}
	if req.Weixin != "" {
		query = query.Where("client_weixin LIKE ?", "%"+req.Weixin+"%")
	}
	if req.QQ != "" {
		query = query.Where("client_qq LIKE ?", "%"+req.QQ+"%")
	}
	if req.Douyin != "" {
		query = query.Where("client_douyin LIKE ?", "%"+req.Douyin+"%")
	}
	if req.Rednote != "" {
		query = query.Where("client_rednote LIKE ?", "%"+req.Rednote+"%")
	}
	if req.Shangwutong != "" {
		query = query.Where("client_shangwutong LIKE ?", "%"+req.Shangwutong+"%")
	}
	if req.Address != "" {
		query = query.Where("client_address LIKE ?", "%"+req.Address+"%")
	}
	if len(req.ClientStatus) > 0 {
		query = query.Where("client_status IN ?", req.ClientStatus)
	}
	if req.StartTime != "" {
		query = query.Where("client_created_time >= ?", req.StartTime)
	}
	if req.EndTime != "" {
		query = query.Where("client_created_time <= ?", req.EndTime)
	}
	if len(req.CreatorIDs) > 0 {
		query = query.Where("client_creator_id IN ?", req.CreatorIDs)
	}
	if len(req.OwnerIDs) > 0 {
		query = query.Where("client_affiliated_user_id IN ?", req.OwnerIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch clue clients", err)
	}
	var clients []model.ClientModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&clients).Error; err != nil {
		return helper.JsonError(c, "fetch clue clients", err)
	}

	return helper.JsonOK(c, "clients fetched", fiber.Map{
		"clients": clients,
		"total":   total,
	})
}

// POST /extra/getClients
// Converted and appointed clients (status 3/4).
func (ctrl *ClientQueryController) GetClients(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.ClientsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.ClientModel{}).
		Where("clients.client_status IN ?", []int{constants.ClientConverted, constants.ClientAppointed}).
		Order("clients.client_status ASC, clients.client_created_time DESC")
	query = service.ApplyScope(query, authz.ScopeFor(actor), actor.UserID)

	if req.ClientStatus != nil {
		query = query.Where("clients.client_status = ?", *req.ClientStatus)
	}
	if req.ProcessStatus != nil {
		query = query.Where("clients.client_process_status = ?", *req.ProcessStatus)
	}
	if req.Name != "" {
		query = query.Where("clients.client_name LIKE ?", "%"+req.Name+"%")
	}
	if req.FromSource != "" {
		query = query.Where("clients.client_from_source = ?", req.FromSource)
	}
	if req.Gender != nil {
		query = query.Where("clients.client_gender = ?", *req.Gender)
	}
	if req.Age != nil {
		query = query.Where("clients.client_age = ?", *req.Age)
	}
	if req.IDNumber != "" {
		query = query.Where("clients.client_id_number LIKE ?", "%"+req.IDNumber+"%")
	}
	if req.Phone != "" {
		query = query.Where("clients.client_phone LIKE ?", "%"+req.Phone+"%")
	}
	if req.Weixin != "" {
		query = query.Where("clients.client_weixin LIKE ?", "%"+req.Weixin+"%")
	}
	if req.QQ != "" {
		query = query.Where("clients.client_qq LIKE ?", "%"+req.QQ+"%")
	}
	if req.Douyin != "" {
		query = query.Where("clients.client_douyin LIKE ?", "%"+req.Douyin+"%")
	}
	if req.Rednote != "" {
		query = query.Where("clients.client_rednote LIKE ?", "%"+req.Rednote+"%")
	}
	if req.Shangwutong != "" {
		query = query.Where("clients.client_shangwutong LIKE ?", "%"+req.Shangwutong+"%")
	}
	if req.Address != "" {
		query = query.Where("clients.client_address LIKE ?", "%"+req.Address+"%")
	}
	if req.AppointerID != nil {
		query = query.Where("clients.client_appointer_id = ?", *req.AppointerID)
	}
	if req.OwnerName != "" || req.SchoolID != nil {
		query = query.Joins("JOIN users ON users.user_id = clients.client_affiliated_user_id")
		if req.OwnerName != "" {
			query = query.Where("users.user_username LIKE ?", "%"+req.OwnerName+"%")
		}
		if req.SchoolID != nil {
			query = query.Where("users.user_school_id = ?", *req.SchoolID)
		}
	}
	if req.StartTime != "" && req.EndTime != "" {
		query = query.Where("clients.client_created_time BETWEEN ? AND ?", req.StartTime, req.EndTime)
	}
	if req.AppointStartDate != "" && req.AppointEndDate != "" {
		query = query.Where("clients.client_appoint_date BETWEEN ? AND ?", req.AppointStartDate, req.AppointEndDate)
	}
	if req.NextTalkStartDate != "" && req.NextTalkEndDate != "" {
		query = query.Where("clients.client_next_talk_date BETWEEN ? AND ?", req.NextTalkStartDate, req.NextTalkEndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch clients", err)
	}
	var clients []model.ClientModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&clients).Error; err != nil {
		return helper.JsonError(c, "fetch clients", err)
	}

	return helper.JsonOK(c, "clients fetched", fiber.Map{
		"clients": clients,
		"total":   total,
	})
}

// POST /extra/getDealedClients
// Closed deals only (process status 2).
func (ctrl *ClientQueryController) GetDealedClients(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.DealedClientsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.ClientModel{}).
		Where("client_process_status = ?", constants.ProcessClosed).
		Order("client_status ASC, client_created_time DESC")
	query = service.ApplyScope(query, authz.ScopeFor(actor), actor.UserID)

	if req.Name != "" {
		query = query.Where("client_name LIKE ?", "%"+req.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch dealed clients", err)
	}
	var clients []model.ClientModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&clients).Error; err != nil {
		return helper.JsonError(c, "fetch dealed clients", err)
	}

	return helper.JsonOK(c, "clients fetched", fiber.Map{
		"clients": clients,
		"total":   total,
	})
}

// POST /extra/getClassStudents
// Compact projection used by the class roster screen.
func (ctrl *ClientQueryController) GetClassStudents(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req struct {
		StuID int64 `json:"stu_id" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var student model.ClientModel
	err := ctrl.DB.WithContext(c.Context()).
		First(&student, "client_id = ?", req.StuID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, "fetch student", err)
	}

	return helper.JsonOK(c, "student fetched", fiber.Map{
		"stu_info": fiber.Map{
			"id":             student.ClientID,
			"name":           student.ClientName,
			"gender":         student.ClientGender,
			"phone":          student.ClientPhone,
			"weixin":         student.ClientWeixin,
			"cooperate_time": student.ClientCooperateTime,
		},
	})
}
