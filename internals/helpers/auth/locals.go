package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	userModel "yogacrm_backend/internals/features/users/model"
)

// Keys set by the session middleware.
const (
	LocalUserID   = "user_id"
	LocalUser     = "current_user"
	LocalUsertype = "usertype"
)

var ErrNoIdentity = errors.New("no identity in request context")

func GetUserID(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals(LocalUserID).(int64)
	if !ok || id == 0 {
		return 0, ErrNoIdentity
	}
	return id, nil
}

func GetCurrentUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	u, ok := c.Locals(LocalUser).(*userModel.UserModel)
	if !ok || u == nil {
		return nil, ErrNoIdentity
	}
	return u, nil
}
