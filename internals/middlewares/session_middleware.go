// internals/middlewares/session_middleware.go
package middlewares

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
	userModel "yogacrm_backend/internals/features/users/model"
)

// SessionMiddleware guards every route except /user/login. It reads the
// opaque sessionid header, reverses the token, enforces the 3-hour
// window (the codec itself does not) and resolves the acting user once,
// so handlers read it from locals instead of reloading per check.
//
// Envelope statuses: -1 not logged in, -2 session expired.
func SessionMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("sessionid")
		if token == "" {
			return helper.JsonFail(c, -1, "not logged in")
		}

		sess, err := helperAuth.ValidateToken(token)
		if err != nil {
			return helper.JsonFail(c, -1, "not logged in")
		}
		if sess.Expired(time.Now()) {
			return helper.JsonFail(c, -2, "session expired, please log in again")
		}

		var user userModel.UserModel
		if err := db.WithContext(c.Context()).First(&user, "user_id = ?", sess.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// token signed for a deleted account — fail closed
				return helper.JsonFail(c, -1, "not logged in")
			}
			log.Printf("[ERROR] session user lookup: %v", err)
			return helper.JsonError(c, "session check", err)
		}

		c.Locals(helperAuth.LocalUserID, user.UserID)
		c.Locals(helperAuth.LocalUser, &user)
		c.Locals(helperAuth.LocalUsertype, user.UserUsertype)
		return c.Next()
	}
}
