package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/users/controller"
)

// UserRoutes registers everything under /user except /user/login, which
// the route index mounts before the session middleware.
func UserRoutes(user fiber.Router, db *gorm.DB) {
	auth := controller.NewAuthController(db)
	admin := controller.NewUserAdminController(db)
	roles := controller.NewRoleController(db)

	user.Post("/loginCheck", auth.LoginCheck)
	user.Post("/getUserInfo", auth.GetUserInfo)
	user.Post("/modifyPwd", auth.ModifyPwd)
	user.Post("/initUserPwd", auth.InitUserPwd)

	user.Post("/register", admin.Register)
	user.Post("/getAllUsers", admin.GetAllUsers)
	user.Post("/updateUser", admin.UpdateUser)
	user.Post("/deleteUser", admin.DeleteUser)

	user.Post("/getRoles", roles.GetRoles)
	user.Post("/addRole", roles.AddRole)
	user.Post("/updateRole", roles.UpdateRole)
	user.Post("/deleteRole", roles.DeleteRole)
}
