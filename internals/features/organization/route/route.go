package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/organization/controller"
)

func OrganizationRoutes(dept fiber.Router, db *gorm.DB) {
	depts := controller.NewDeptController(db)
	schools := controller.NewSchoolController(db)

	dept.Post("/addDept", depts.AddDept)
	dept.Post("/updateDept", depts.UpdateDept)
	dept.Post("/deleteDept", depts.DeleteDept)
	dept.Post("/getAllDepts", depts.GetAllDepts)
	dept.Post("/getDeptUsers", depts.GetDeptUsers)

	dept.Post("/addSchool", schools.AddSchool)
	dept.Post("/updateSchool", schools.UpdateSchool)
	dept.Post("/deleteSchool", schools.DeleteSchool)
	dept.Post("/getAllSchools", schools.GetAllSchools)
	dept.Post("/getSchoolUsers", schools.GetSchoolUsers)
	dept.Post("/getSchoolCourses", schools.GetSchoolCourses)
	dept.Post("/calcSchoolBudget", schools.CalcSchoolBudget)
}
