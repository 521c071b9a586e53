package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/billing/controller"
)

func BillingRoutes(extra fiber.Router, db *gorm.DB) {
	payments := controller.NewPaymentController(db)

	extra.Post("/submitPayment", payments.SubmitPayment)
	extra.Post("/addPayment", payments.AddPayment)
	extra.Post("/updatePayment", payments.UpdatePayment)
	extra.Post("/deletePayment", payments.DeletePayment)
	extra.Post("/getClientPayments", payments.GetClientPayments)
	extra.Post("/getPayments", payments.GetPayments)
}
