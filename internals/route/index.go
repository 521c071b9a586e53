package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingRoute "yogacrm_backend/internals/features/billing/route"
	clientRoute "yogacrm_backend/internals/features/clients/route"
	courseRoute "yogacrm_backend/internals/features/courses/route"
	dormRoute "yogacrm_backend/internals/features/dormitory/route"
	logRoute "yogacrm_backend/internals/features/logs/route"
	orgRoute "yogacrm_backend/internals/features/organization/route"
	reportRoute "yogacrm_backend/internals/features/reports/route"
	userController "yogacrm_backend/internals/features/users/controller"
	userRoute "yogacrm_backend/internals/features/users/route"
	"yogacrm_backend/internals/middlewares"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== LOGIN =====================
	// The one route outside the session guard, throttled on its own.
	log.Println("[INFO] Mounting login route...")
	auth := userController.NewAuthController(db)
	app.Post("/user/login", middlewares.LoginRateLimiter(), auth.Login)

	session := middlewares.SessionMiddleware(db)

	// ===================== GROUPS =====================
	log.Println("[INFO] Mounting user routes...")
	user := app.Group("/user", session)
	userRoute.UserRoutes(user, db)

	log.Println("[INFO] Mounting organization routes...")
	dept := app.Group("/dept", session)
	orgRoute.OrganizationRoutes(dept, db)

	log.Println("[INFO] Mounting course routes...")
	course := app.Group("/course", session)
	courseRoute.CourseRoutes(course, db)

	log.Println("[INFO] Mounting dormitory routes...")
	dorm := app.Group("/dorm", session)
	dormRoute.DormitoryRoutes(dorm, db)

	log.Println("[INFO] Mounting client, billing and log routes...")
	extra := app.Group("/extra", session)
	clientRoute.ClientRoutes(extra, db)
	billingRoute.BillingRoutes(extra, db)
	logRoute.LogRoutes(extra, db)

	log.Println("[INFO] Mounting report routes...")
	report := app.Group("/report", session)
	reportRoute.ReportRoutes(report, db)
}
