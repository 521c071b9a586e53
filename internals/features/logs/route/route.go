package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/logs/controller"
)

// Log reads live under /extra alongside the client routes they audit.
func LogRoutes(extra fiber.Router, db *gorm.DB) {
	ctrl := controller.NewLogController(db)

	extra.Post("/getLogs", ctrl.GetLogs)
	extra.Post("/getClientLogs", ctrl.GetClientLogs)
}
