package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/reports/dto"
	"yogacrm_backend/internals/features/reports/service"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type ReportController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Validate: validator.New()}
}

// POST /report/getFunnelReport
// One grouped scan over the client table; the fold into per-channel
// funnels happens in memory.
func (ctrl *ReportController) GetFunnelReport(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.FunnelReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}

	db := ctrl.DB.WithContext(c.Context())
	query := db.Table("clients").
		Select("client_from_source AS from_source, client_status AS status, COUNT(*) AS total, "+
			"SUM(CASE WHEN client_process_status = ? THEN 1 ELSE 0 END) AS closed",
			constants.ProcessClosed).
		Group("client_from_source, client_status")

	if req.SchoolID != nil {
		query = query.Where(
			"client_creator_id IN (SELECT user_id FROM users WHERE user_school_id = ?)",
			*req.SchoolID)
	}
	if req.StartTime != "" {
		query = query.Where("client_created_time >= ?", req.StartTime)
	}
	if req.EndTime != "" {
		query = query.Where("client_created_time <= ?", req.EndTime)
	}

	var rows []service.FunnelRow
	if err := query.Scan(&rows).Error; err != nil {
		return helper.JsonError(c, "build funnel report", err)
	}

	return helper.JsonOK(c, "funnel report built", fiber.Map{
		"channels": service.BuildFunnel(rows),
	})
}

type staffRow struct {
	UserID       int64  `json:"user_id"`
	UserUsername string `json:"user_username"`
}

type countRow struct {
	ID int64
	N  int64
}

type sumRow struct {
	ID  int64
	Sum float64
}

// POST /report/getStaffPerformance
// Per staff member: leads they created, clients they own, how many of
// those converted and closed, and the payment volume booked under them.
func (ctrl *ReportController) GetStaffPerformance(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.StaffPerformanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 20, 200)

	db := ctrl.DB.WithContext(c.Context())
	staffQuery := db.Table("users").
		Select("user_id, user_username").
		Order("user_id ASC")
	if req.SchoolID != nil {
		staffQuery = staffQuery.Where("user_school_id = ?", *req.SchoolID)
	}

	var total int64
	if err := staffQuery.Count(&total).Error; err != nil {
		return helper.JsonError(c, "build staff report", err)
	}
	var staff []staffRow
	if err := staffQuery.Offset(paging.Offset).Limit(paging.Limit).Scan(&staff).Error; err != nil {
		return helper.JsonError(c, "build staff report", err)
	}

	clientRange := func(q *gorm.DB) *gorm.DB {
		if req.StartTime != "" {
			q = q.Where("client_created_time >= ?", req.StartTime)
		}
		if req.EndTime != "" {
			q = q.Where("client_created_time <= ?", req.EndTime)
		}
		return q
	}

	countBy := func(column string, extra string, args ...interface{}) (map[int64]int64, error) {
		query := db.Table("clients").
			Select(column + " AS id, COUNT(*) AS n").
			Where(column + " IS NOT NULL").
			Group(column)
		if extra != "" {
			query = query.Where(extra, args...)
		}
		var rows []countRow
		if err := clientRange(query).Scan(&rows).Error; err != nil {
			return nil, err
		}
		out := make(map[int64]int64, len(rows))
		for _, row := range rows {
			out[row.ID] = row.N
		}
		return out, nil
	}

	created, err := countBy("client_creator_id", "")
	if err != nil {
		return helper.JsonError(c, "build staff report", err)
	}
	owned, err := countBy("client_affiliated_user_id", "")
	if err != nil {
		return helper.JsonError(c, "build staff report", err)
	}
	converted, err := countBy("client_affiliated_user_id",
		"client_status >= ?", constants.ClientConverted)
	if err != nil {
		return helper.JsonError(c, "build staff report", err)
	}
	closed, err := countBy("client_affiliated_user_id",
		"client_process_status = ?", constants.ProcessClosed)
	if err != nil {
		return helper.JsonError(c, "build staff report", err)
	}

	paymentQuery := db.Table("payments").
		Select("payment_teacher_id AS id, COALESCE(SUM(payment_amount), 0) AS sum").
		Group("payment_teacher_id")
	if req.StartTime != "" {
		paymentQuery = paymentQuery.Where("payment_date >= ?", req.StartTime)
	}
	if req.EndTime != "" {
		paymentQuery = paymentQuery.Where("payment_date <= ?", req.EndTime)
	}
	var sums []sumRow
	if err := paymentQuery.Scan(&sums).Error; err != nil {
		return helper.JsonError(c, "build staff report", err)
	}
	paymentTotals := make(map[int64]float64, len(sums))
	for _, row := range sums {
		paymentTotals[row.ID] = row.Sum
	}

	report := make([]fiber.Map, 0, len(staff))
	for _, s := range staff {
		report = append(report, fiber.Map{
			"user_id":       s.UserID,
			"user_username": s.UserUsername,
			"leads_created": created[s.UserID],
			"clients_owned": owned[s.UserID],
			"converted":     converted[s.UserID],
			"closed":        closed[s.UserID],
			"payment_total": paymentTotals[s.UserID],
		})
	}

	return helper.JsonOK(c, "staff performance built", fiber.Map{
		"staff": report,
		"total": total,
	})
}
