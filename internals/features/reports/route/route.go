package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/reports/controller"
)

func ReportRoutes(report fiber.Router, db *gorm.DB) {
	reports := controller.NewReportController(db)

	report.Post("/getFunnelReport", reports.GetFunnelReport)
	report.Post("/getStaffPerformance", reports.GetStaffPerformance)
}
