package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/clients/controller"
)

func ClientRoutes(extra fiber.Router, db *gorm.DB) {
	queries := controller.NewClientQueryController(db)
	lifecycle := controller.NewClientLifecycleController(db)

	extra.Post("/getClientById", queries.GetClientByID)
	extra.Post("/getClueClients", queries.GetClueClients)
	extra.Post("/getClients", queries.GetClients)
	extra.Post("/getDealedClients", queries.GetDealedClients)
	extra.Post("/getClassStudents", queries.GetClassStudents)

	extra.Post("/addClient", lifecycle.AddClient)
	extra.Post("/updateClient", lifecycle.UpdateClient)
	extra.Post("/deleteClient", lifecycle.DeleteClient)
	extra.Post("/assignClients", lifecycle.AssignClients)
	extra.Post("/unassignClients", lifecycle.UnassignClients)
	extra.Post("/convertToClients", lifecycle.ConvertToClients)
	extra.Post("/submitReserve", lifecycle.SubmitReserve)
	extra.Post("/cancelReserve", lifecycle.CancelReserve)
	extra.Post("/confirmCooperation", lifecycle.ConfirmCooperation)
	extra.Post("/cancelCooperation", lifecycle.CancelCooperation)
	extra.Post("/graduateClient", lifecycle.GraduateClient)
	extra.Post("/cancelGraduate", lifecycle.CancelGraduate)
	extra.Post("/batchImportClues", lifecycle.BatchImportClues)
}
