package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/logs/model"
	helper "yogacrm_backend/internals/helpers"
)

/* ================= Controller & Constructor ================= */

type LogController struct {
	DB *gorm.DB
}

func NewLogController(db *gorm.DB) *LogController {
	return &LogController{DB: db}
}

type getLogsRequest struct {
	OperatorName string `json:"operator_name"`
	Operation    string `json:"operation"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Page         int    `json:"page"`
	PerPage      int    `json:"per_page"`
}

// POST /extra/getLogs
func (ctrl *LogController) GetLogs(c *fiber.Ctx) error {
	var req getLogsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.LogModel{}).Order("log_time DESC")

	if req.OperatorName != "" {
		query = query.
			Joins("JOIN users ON users.user_id = logs.log_operator_id").
			Where("users.user_username LIKE ?", "%"+req.OperatorName+"%")
	}
	if req.Operation != "" {
		query = query.Where("log_operation LIKE ?", "%"+req.Operation+"%")
	}
	if req.StartTime != "" {
		query = query.Where("log_time >= ?", req.StartTime)
	}
	if req.EndTime != "" {
		query = query.Where("log_time <= ?", req.EndTime)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch logs", err)
	}

	var logs []model.LogModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&logs).Error; err != nil {
		return helper.JsonError(c, "fetch logs", err)
	}

	return helper.JsonOK(c, "logs fetched", fiber.Map{
		"logs":  logs,
		"total": total,
	})
}

type getClientLogsRequest struct {
	ClientID int64 `json:"client_id"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
}

// POST /extra/getClientLogs
func (ctrl *LogController) GetClientLogs(c *fiber.Ctx) error {
	var req getClientLogsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if req.ClientID == 0 {
		return helper.JsonFail(c, fiber.StatusBadRequest, "client_id is required")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Model(&model.ClientLogModel{}).
		Where("client_log_client_id = ?", req.ClientID).
		Order("client_log_time DESC")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch client logs", err)
	}

	var logs []model.ClientLogModel
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Find(&logs).Error; err != nil {
		return helper.JsonError(c, "fetch client logs", err)
	}

	return helper.JsonOK(c, "logs fetched", fiber.Map{
		"logs":  logs,
		"total": total,
	})
}
