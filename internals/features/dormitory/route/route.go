package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/dormitory/controller"
)

func DormitoryRoutes(dorm fiber.Router, db *gorm.DB) {
	dorms := controller.NewDormitoryController(db)
	beds := controller.NewBedController(db)

	dorm.Post("/getDormitories", dorms.GetDormitories)
	dorm.Post("/addDormitory", dorms.AddDormitory)
	dorm.Post("/updateDormitory", dorms.UpdateDormitory)
	dorm.Post("/deleteDormitory", dorms.DeleteDormitory)

	dorm.Post("/getRooms", dorms.GetRooms)
	dorm.Post("/addRoom", dorms.AddRoom)
	dorm.Post("/updateRoom", dorms.UpdateRoom)
	dorm.Post("/deleteRoom", dorms.DeleteRoom)

	dorm.Post("/getBeds", beds.GetBeds)
	dorm.Post("/addBed", beds.AddBed)
	dorm.Post("/updateBed", beds.UpdateBed)
	dorm.Post("/deleteBed", beds.DeleteBed)
	dorm.Post("/assignBed", beds.AssignBed)
	dorm.Post("/checkOutBed", beds.CheckOutBed)
	dorm.Post("/getOverdueBeds", beds.GetOverdueBeds)
}
